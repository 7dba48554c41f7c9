package model

import (
	"time"

	"github.com/oklog/ulid/v2"

	"telegram-post-curator/internal/domain"
)

// Event is a free-text note a user sent during the day. Events are append-only.
// CreatedAt is left zero by callers; the store assigns it on insert.
type Event struct {
	ID         string
	TelegramID int64
	Text       string
	CreatedAt  time.Time
}

func NewEvent(tgID int64, text string) (*Event, error) {
	if tgID == 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Event{
		ID:         ulid.Make().String(),
		TelegramID: tgID,
		Text:       text,
	}, nil
}

// DayWindow returns the inclusive [00:00:00.000, 23:59:59.999] bounds of the
// calendar day containing ref, in loc.
func DayWindow(ref time.Time, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.Local
	}
	r := ref.In(loc)
	start = time.Date(r.Year(), r.Month(), r.Day(), 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// Texts returns the text of each event, in order.
func Texts(events []*Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		out = append(out, e.Text)
	}
	return out
}
