package model

import (
	"strings"
	"time"

	"telegram-post-curator/internal/domain"
)

// User is a Telegram user known to the bot. It is written once, on first
// contact, and never updated afterwards.
type User struct {
	TelegramID int64
	FirstName  string
	LastName   string
	IsBot      bool
	Username   string
	CreatedAt  time.Time
}

// Profile carries what Telegram reports about the sender of a message.
type Profile struct {
	TelegramID int64
	FirstName  string
	LastName   string
	IsBot      bool
	Username   string
}

func NewUser(p Profile) (*User, error) {
	if p.TelegramID == 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		TelegramID: p.TelegramID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		IsBot:      p.IsBot,
		Username:   p.Username,
	}, nil
}

// DisplayName is the name used in greetings.
func (p Profile) DisplayName() string {
	if n := strings.TrimSpace(p.FirstName); n != "" {
		return n
	}
	if n := strings.TrimSpace(p.Username); n != "" {
		return n
	}
	return "there"
}
