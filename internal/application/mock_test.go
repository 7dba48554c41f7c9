//go:build !integration

package application_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/adapter"
	"telegram-post-curator/internal/infra/i18n"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func newTestTranslator() *i18n.Translator {
	tr, err := i18n.NewTranslator(i18n.LocalesFS, "en")
	if err != nil {
		panic(err)
	}
	return tr
}

// ---- MockMessenger ----

// MockMessenger records every outbound call as "text:<msg>", "sticker:<id>" or "delete:<id>".
type MockMessenger struct {
	mu     sync.Mutex
	nextID int
	Ops    []string
	Texts  []string

	SendTextFunc      func(ctx context.Context, chatID int64, text string) (int, error)
	SendStickerFunc   func(ctx context.Context, chatID int64, fileID string) (int, error)
	DeleteMessageFunc func(ctx context.Context, chatID int64, messageID int) error
}

var _ adapter.Messenger = (*MockMessenger)(nil)

func (m *MockMessenger) record(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.Ops = append(m.Ops, op)
	return m.nextID
}

func (m *MockMessenger) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	if m.SendTextFunc != nil {
		return m.SendTextFunc(ctx, chatID, text)
	}
	m.mu.Lock()
	m.Texts = append(m.Texts, text)
	m.mu.Unlock()
	return m.record("text:" + text), nil
}

func (m *MockMessenger) SendSticker(ctx context.Context, chatID int64, fileID string) (int, error) {
	if m.SendStickerFunc != nil {
		return m.SendStickerFunc(ctx, chatID, fileID)
	}
	return m.record("sticker:" + fileID), nil
}

func (m *MockMessenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	m.record(fmt.Sprintf("delete:%d", messageID))
	if m.DeleteMessageFunc != nil {
		return m.DeleteMessageFunc(ctx, chatID, messageID)
	}
	return nil
}

// LastText is the most recent text reply.
func (m *MockMessenger) LastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Texts) == 0 {
		return ""
	}
	return m.Texts[len(m.Texts)-1]
}

// ---- use case mocks ----

type mockUsers struct {
	OnFirstContactFunc func(ctx context.Context, p model.Profile) (bool, error)
}

func (m *mockUsers) OnFirstContact(ctx context.Context, p model.Profile) (bool, error) {
	if m.OnFirstContactFunc != nil {
		return m.OnFirstContactFunc(ctx, p)
	}
	return true, nil
}

type mockEvents struct {
	RecordFunc       func(ctx context.Context, tgID int64, text string) (*model.Event, error)
	EventsForDayFunc func(ctx context.Context, tgID int64, ref time.Time) ([]*model.Event, error)
}

func (m *mockEvents) Record(ctx context.Context, tgID int64, text string) (*model.Event, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, tgID, text)
	}
	return &model.Event{TelegramID: tgID, Text: text}, nil
}

func (m *mockEvents) EventsForDay(ctx context.Context, tgID int64, ref time.Time) ([]*model.Event, error) {
	if m.EventsForDayFunc != nil {
		return m.EventsForDayFunc(ctx, tgID, ref)
	}
	return nil, nil
}

type mockPosts struct {
	Calls          [][]string
	ComposePostsFn func(ctx context.Context, texts []string) (string, error)
}

func (m *mockPosts) ComposePosts(ctx context.Context, texts []string) (string, error) {
	m.Calls = append(m.Calls, texts)
	if m.ComposePostsFn != nil {
		return m.ComposePostsFn(ctx, texts)
	}
	return "posts", nil
}

// ---- MockCompletionService (for flows through the real post use case) ----

type MockCompletionService struct {
	Calls        [][]adapter.Message
	CompleteFunc func(ctx context.Context, msgs []adapter.Message) (adapter.Completion, error)
}

func (m *MockCompletionService) Provider() string { return "mock" }
func (m *MockCompletionService) Model() string    { return "mock-model" }

func (m *MockCompletionService) Complete(ctx context.Context, msgs []adapter.Message) (adapter.Completion, error) {
	m.Calls = append(m.Calls, msgs)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, msgs)
	}
	return adapter.Completion{Text: "posts"}, nil
}
