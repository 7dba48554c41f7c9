//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/adapter"
	"telegram-post-curator/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// ---- MockUserRepo ----

type MockUserRepo struct {
	mu    sync.Mutex
	users map[int64]*model.User

	InsertIfAbsentFunc func(ctx context.Context, u *model.User) (bool, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{users: make(map[int64]*model.User)}
}

func (m *MockUserRepo) InsertIfAbsent(ctx context.Context, u *model.User) (bool, error) {
	if m.InsertIfAbsentFunc != nil {
		return m.InsertIfAbsentFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.TelegramID]; ok {
		return false, nil
	}
	cp := *u
	cp.CreatedAt = time.Now()
	m.users[u.TelegramID] = &cp
	return true, nil
}

func (m *MockUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// ---- MockEventRepo ----

// MockEventRepo keeps events in memory; Clock stamps events inserted with a zero CreatedAt.
type MockEventRepo struct {
	mu     sync.Mutex
	events []*model.Event
	Clock  func() time.Time

	InsertFunc func(ctx context.Context, e *model.Event) error
	FindFunc   func(ctx context.Context, tgID int64, start, end time.Time) ([]*model.Event, error)

	LastStart, LastEnd time.Time
}

var _ repository.EventRepository = (*MockEventRepo)(nil)

func NewMockEventRepo() *MockEventRepo {
	return &MockEventRepo{Clock: time.Now}
}

func (m *MockEventRepo) Insert(ctx context.Context, e *model.Event) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = m.Clock()
	}
	cp := *e
	m.events = append(m.events, &cp)
	return nil
}

func (m *MockEventRepo) FindByTelegramIDBetween(ctx context.Context, tgID int64, start, end time.Time) ([]*model.Event, error) {
	m.mu.Lock()
	m.LastStart, m.LastEnd = start, end
	m.mu.Unlock()
	if m.FindFunc != nil {
		return m.FindFunc(ctx, tgID, start, end)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Event
	for _, e := range m.events {
		if e.TelegramID != tgID || e.CreatedAt.Before(start) || e.CreatedAt.After(end) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ---- MockCompletionService ----

type MockCompletionService struct {
	mu    sync.Mutex
	Calls [][]adapter.Message

	CompleteFunc func(ctx context.Context, msgs []adapter.Message) (adapter.Completion, error)
}

var _ adapter.CompletionService = (*MockCompletionService)(nil)

func (m *MockCompletionService) Provider() string { return "mock" }
func (m *MockCompletionService) Model() string    { return "mock-model" }

func (m *MockCompletionService) Complete(ctx context.Context, msgs []adapter.Message) (adapter.Completion, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, msgs)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, msgs)
	}
	return adapter.Completion{Text: "posts"}, nil
}
