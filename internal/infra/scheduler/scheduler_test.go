//go:build !integration

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"telegram-post-curator/internal/infra/logging"
)

type countingJob struct {
	runs int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	atomic.AddInt32(&j.runs, 1)
	return j.err
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestScheduler_RunsImmediatelyAndOnTicks(t *testing.T) {
	job := &countingJob{err: errors.New("flaky")}
	s := NewScheduler(10*time.Millisecond, job, logging.Nop())

	s.Start(context.Background())
	s.Start(context.Background()) // no-op

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&job.runs) < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
	s.Stop()

	if n := atomic.LoadInt32(&job.runs); n < 3 {
		t.Fatalf("expected at least 3 runs despite errors, got %d", n)
	}
	after := atomic.LoadInt32(&job.runs)
	time.Sleep(30 * time.Millisecond)
	if atomic.LoadInt32(&job.runs) != after {
		t.Error("expected no runs after Stop")
	}
}

func TestStoreProbe_ReturnsPingResult(t *testing.T) {
	up := NewStoreProbe("sqlite", pingFunc(func(context.Context) error { return nil }))
	if err := up.Run(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	down := NewStoreProbe("sqlite", pingFunc(func(context.Context) error { return errors.New("gone") }))
	if err := down.Run(context.Background()); err == nil {
		t.Fatal("expected ping error to be returned")
	}
}
