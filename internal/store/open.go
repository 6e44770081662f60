package store

import (
	"io"

	"github.com/pkg/errors"

	"github.com/tgienger/dues/internal/config"
	"github.com/tgienger/dues/internal/db"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenBackend constructs the backend selected by cfg. The returned
// closer releases its connection.
func OpenBackend(cfg *config.Config) (Backend, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.New(db.DriverSQLite, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return database, database, nil

	case config.BackendPostgres:
		database, err := db.New(db.DriverPostgres, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return database, database, nil

	case config.BackendRedis:
		backend, err := NewRedisBackend(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return backend, backend, nil

	case config.BackendMemory:
		return NewMemoryBackend(), nopCloser{}, nil
	}
	return nil, nil, errors.Errorf("store: unknown backend %q", cfg.Backend)
}
