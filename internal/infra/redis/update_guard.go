package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"telegram-post-curator/internal/infra/metrics"
)

// UpdateGuard remembers Telegram update ids so a redelivered webhook is
// processed once. It fails open: when Redis is unavailable every update passes.
type UpdateGuard struct {
	cli RedisClient
	ttl time.Duration
	log *zerolog.Logger
}

func NewUpdateGuard(cli RedisClient, ttl time.Duration, logger *zerolog.Logger) *UpdateGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UpdateGuard{cli: cli, ttl: ttl, log: logger}
}

func updateKey(updateID int) string {
	return fmt.Sprintf("tg:update:%d", updateID)
}

// FirstSeen reports whether updateID has not been seen within the TTL.
func (g *UpdateGuard) FirstSeen(ctx context.Context, updateID int) bool {
	if g == nil || g.cli == nil {
		return true
	}
	ok, err := g.cli.SetNX(ctx, updateKey(updateID), 1, g.ttl)
	if err != nil {
		g.log.Warn().Err(err).Int("update_id", updateID).Msg("update guard unavailable; processing anyway")
		return true
	}
	if !ok {
		metrics.IncUpdateDeduplicated()
	}
	return ok
}
