package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
)

const (
	databaseInitTimeout = 15 * time.Second
	metricsNamespace    = "meetai"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*pgxpool.Pool, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
		defer cancel()

		p, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect database: %w", err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := RunMigration(ctx, p); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to run migration: %w", err)
		}
		reg := do.MustInvoke[*prometheus.Registry](i)
		if err := reg.Register(NewPoolStatsCollector(p, metricsNamespace)); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to register pool metrics: %w", err)
		}
		return p, nil
	})
	do.Provide(injector, func(i do.Injector) (repository.Repository, error) {
		return NewPostgresRepository(do.MustInvoke[*pgxpool.Pool](i)), nil
	})
}

// Migrate connects, applies the schema, and closes the pool.
func Migrate(ctx context.Context, databaseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, databaseInitTimeout)
	defer cancel()

	p, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer p.Close()
	if err := RunMigration(ctx, p); err != nil {
		return fmt.Errorf("failed to run migration: %w", err)
	}
	return nil
}
