package scheduler

import (
	"context"

	"telegram-post-curator/internal/infra/metrics"
)

// Pinger is implemented by db.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreProbe pings the record store and publishes the result as store_up.
type StoreProbe struct {
	backend string
	store   Pinger
}

func NewStoreProbe(backend string, store Pinger) *StoreProbe {
	return &StoreProbe{backend: backend, store: store}
}

func (p *StoreProbe) Name() string { return "store_probe" }

func (p *StoreProbe) Run(ctx context.Context) error {
	err := p.store.Ping(ctx)
	metrics.SetStoreUp(p.backend, err == nil)
	return err
}
