//go:build integration

package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/model"
)

func TestMongoUserRepo_Integration(t *testing.T) {
	repo := NewMongoUserRepo(testDB)
	ctx := context.Background()

	t.Run("first contact is stored once", func(t *testing.T) {
		cleanup(t)

		u, _ := model.NewUser(model.Profile{TelegramID: 42, FirstName: "Ada"})
		if created, err := repo.InsertIfAbsent(ctx, u); err != nil || !created {
			t.Fatalf("expected create, got created=%v err=%v", created, err)
		}
		again, _ := model.NewUser(model.Profile{TelegramID: 42, FirstName: "Changed"})
		if created, err := repo.InsertIfAbsent(ctx, again); err != nil || created {
			t.Fatalf("expected no-op, got created=%v err=%v", created, err)
		}

		found, err := repo.FindByTelegramID(ctx, 42)
		if err != nil {
			t.Fatalf("FindByTelegramID failed: %v", err)
		}
		if found.FirstName != "Ada" {
			t.Errorf("expected original profile, got %q", found.FirstName)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		cleanup(t)
		if _, err := repo.FindByTelegramID(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMongoEventRepo_Integration(t *testing.T) {
	repo := NewMongoEventRepo(testDB)
	ctx := context.Background()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	cleanup(t)
	for _, tc := range []struct {
		tgID int64
		text string
		at   time.Time
	}{
		{42, "second", day.Add(10 * time.Hour)},
		{42, "first", day},
		{42, "last", day.Add(24*time.Hour - time.Millisecond)},
		{42, "tomorrow", day.Add(24 * time.Hour)},
		{7, "someone else", day.Add(time.Hour)},
	} {
		e, _ := model.NewEvent(tc.tgID, tc.text)
		e.CreatedAt = tc.at
		if err := repo.Insert(ctx, e); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	start, end := model.DayWindow(day, time.UTC)
	got, err := repo.FindByTelegramIDBetween(ctx, 42, start, end)
	if err != nil {
		t.Fatalf("FindByTelegramIDBetween failed: %v", err)
	}
	texts := model.Texts(got)
	want := []string{"first", "second", "last"}
	if len(texts) != len(want) {
		t.Fatalf("wanted %v, got %v", want, texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("at %d: wanted %q, got %q", i, want[i], texts[i])
		}
	}
}
