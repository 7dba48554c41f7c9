// Package db selects and opens the record store backend named by the database URL.
package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"

	"telegram-post-curator/internal/config"
	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/ports/repository"
	"telegram-post-curator/internal/infra/db/mongodb"
	"telegram-post-curator/internal/infra/db/postgres"
	"telegram-post-curator/internal/infra/db/sqlite"
)

const (
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Store is an opened record store.
type Store struct {
	Backend string
	Users   repository.UserRepository
	Events  repository.EventRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend's connections.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// BackendFor maps a database URL scheme to a backend name.
func BackendFor(rawURL string) (string, error) {
	i := strings.Index(rawURL, ":")
	if i <= 0 {
		return "", fmt.Errorf("database url %q has no scheme", redactURL(rawURL))
	}
	switch strings.ToLower(rawURL[:i]) {
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "sqlite", "file":
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", rawURL[:i])
	}
}

// Open connects to the backend selected by cfg.URL. Failures are tagged
// domain.KindStoreConnection.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zerolog.Logger) (*Store, error) {
	backend, err := BackendFor(cfg.URL)
	if err != nil {
		return nil, domain.E(domain.KindStoreConnection, "db.Open", err)
	}

	var st *Store
	switch backend {
	case BackendMongo:
		st, err = openMongo(ctx, cfg)
	case BackendPostgres:
		st, err = openPostgres(ctx, cfg)
	case BackendSQLite:
		st, err = openSQLite(cfg, log)
	}
	if err != nil {
		return nil, domain.E(domain.KindStoreConnection, "db.Open."+backend, err)
	}

	log.Info().Str("backend", backend).Str("url", redactURL(cfg.URL)).Msg("record store connected")
	return st, nil
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	client, database, err := mongodb.Connect(ctx, cfg.URL, cfg.Name, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	return &Store{
		Backend: BackendMongo,
		Users:   mongodb.NewMongoUserRepo(database),
		Events:  mongodb.NewMongoEventRepo(database),
		ping:    func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
		close:   client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	pool, err := postgres.NewPgxPool(ctx, cfg.URL, cfg.MaxConns, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	return &Store{
		Backend: BackendPostgres,
		Users:   postgres.NewPostgresUserRepo(pool),
		Events:  postgres.NewPostgresEventRepo(pool),
		ping:    func(ctx context.Context) error { return pingPostgres(ctx, pool) },
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func pingPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	postgres.ReportPoolStats(pool)
	return pool.Ping(ctx)
}

func openSQLite(cfg config.DatabaseConfig, log *zerolog.Logger) (*Store, error) {
	gdb, err := sqlite.Open(sqlite.DSNFromURL(cfg.URL), log)
	if err != nil {
		return nil, err
	}
	return &Store{
		Backend: BackendSQLite,
		Users:   sqlite.NewUserRepo(gdb),
		Events:  sqlite.NewEventRepo(gdb),
		ping:    func(ctx context.Context) error { return pingGorm(ctx, gdb) },
		close:   func(context.Context) error { return closeGorm(gdb) },
	}, nil
}

func pingGorm(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func closeGorm(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// redactURL drops credentials before a URL reaches the log.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
