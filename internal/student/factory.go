package student

import (
	"context"
	"fmt"

	"github.com/bassista/go_grades/internal/config"
	"github.com/bassista/go_grades/internal/logger"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// NewRepositoryFromConfig creates the student Repository for cfg.
// "memory" (default) seeds from SeedFile when set; "postgres" connects to DatabaseURL.
// A non-empty RedisAddr wraps the result in a read-through cache.
func NewRepositoryFromConfig(ctx context.Context, cfg config.StudentsConfig) (Repository, error) {
	var (
		repo Repository
		err  error
	)

	switch cfg.Backend {
	case BackendMemory, "":
		if cfg.SeedFile != "" {
			repo, err = NewMemoryRepositoryFromFile(cfg.SeedFile)
			if err != nil {
				return nil, err
			}
		} else {
			repo = NewMemoryRepository()
		}
	case BackendPostgres:
		repo, err = NewPostgresRepository(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown students backend: %s (supported: %s, %s)", cfg.Backend, BackendMemory, BackendPostgres)
	}

	if cfg.RedisAddr == "" {
		return repo, nil
	}

	logger.WithComponent("students").Infof("caching student lookups in redis at %s (ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	return NewCachedRepository(repo, RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
	}), nil
}
