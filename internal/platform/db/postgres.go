package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres wraps DB connectivity.
// Row-locking transaction semantics live in the context adapters; this layer
// only owns the connection lifecycle.
type Postgres struct {
	DB *gorm.DB
}

func Connect(dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	var db *gorm.DB
	err := backoff.RetryNotify(func() error {
		opened, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("open gorm postgres: %w", err)
		}

		sqlDB, err := opened.DB()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("resolve postgres sql db handle: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("ping postgres: %w", err)
		}
		db = opened
		return nil
	}, bo, func(err error, wait time.Duration) {
		slog.Warn("postgres connect retrying",
			"event", "postgres_connect_retry",
			"layer", "platform",
			"wait", wait.String(),
			"error", err.Error(),
		)
	})
	if err != nil {
		return nil, err
	}
	return &Postgres{DB: db}, nil
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
