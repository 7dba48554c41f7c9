//go:build !integration

package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/infra/worker"
)

// fakeBot records outbound chattables and serves updates from a channel.
type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int

	SendErr    error
	RequestErr error

	updates chan tgbotapi.Update
	stopped bool
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 16)}
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return tgbotapi.Message{}, f.SendErr
	}
	f.nextID++
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	if f.RequestErr != nil {
		return nil, f.RequestErr
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeBot) StopReceivingUpdates() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeBot) HandleUpdate(r *http.Request) (*tgbotapi.Update, error) {
	var up tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		return nil, err
	}
	return &up, nil
}

func (f *fakeBot) Sent() []tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), f.sent...)
}

func (f *fakeBot) Requests() []tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), f.requests...)
}

// call is one facade invocation.
type call struct {
	Kind   string
	ChatID int64
	TgID   int64
	Text   string
}

type mockFacade struct {
	mu    sync.Mutex
	calls []call
	Err   error
}

func (m *mockFacade) record(c call) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
	return m.Err
}

func (m *mockFacade) HandleStart(_ context.Context, chatID int64, p model.Profile) error {
	return m.record(call{Kind: "start", ChatID: chatID, TgID: p.TelegramID})
}

func (m *mockFacade) HandleGenerate(_ context.Context, chatID int64, p model.Profile) error {
	return m.record(call{Kind: "generate", ChatID: chatID, TgID: p.TelegramID})
}

func (m *mockFacade) HandleText(_ context.Context, chatID int64, p model.Profile, text string) error {
	return m.record(call{Kind: "text", ChatID: chatID, TgID: p.TelegramID, Text: text})
}

func (m *mockFacade) Calls() []call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]call(nil), m.calls...)
}

// inlinePool runs tasks on the caller's goroutine.
type inlinePool struct {
	Err error
}

func (p *inlinePool) Submit(ctx context.Context, task worker.Task) error {
	if p.Err != nil {
		return p.Err
	}
	return task(ctx)
}

// memGuard reports each update id as new exactly once.
type memGuard struct {
	mu   sync.Mutex
	seen map[int]bool
}

func (g *memGuard) FirstSeen(_ context.Context, updateID int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen == nil {
		g.seen = map[int]bool{}
	}
	if g.seen[updateID] {
		return false
	}
	g.seen[updateID] = true
	return true
}

var errBoom = errors.New("boom")

func textUpdate(updateID int, tgID, chatID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: updateID,
		From:      &tgbotapi.User{ID: tgID, FirstName: "Ada", UserName: "ada"},
		Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
		Text:      text,
	}
	if len(text) > 0 && text[0] == '/' {
		end := len(text)
		for i, r := range text {
			if r == ' ' {
				end = i
				break
			}
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}}
	}
	return tgbotapi.Update{UpdateID: updateID, Message: msg}
}
