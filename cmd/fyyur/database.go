package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// retryPolicy bounds how long startup waits for Postgres to accept connections.
type retryPolicy struct {
	PingTimeout time.Duration
	Budget      time.Duration
	FirstDelay  time.Duration
	MaxDelay    time.Duration
}

var defaultRetry = retryPolicy{
	PingTimeout: 5 * time.Second,
	Budget:      30 * time.Second,
	FirstDelay:  500 * time.Millisecond,
	MaxDelay:    5 * time.Second,
}

// delay returns the wait before the given retry, doubling up to MaxDelay.
func (p retryPolicy) delay(attempt int) time.Duration {
	d := p.FirstDelay
	for i := 1; i < attempt && d < p.MaxDelay; i++ {
		d *= 2
	}
	return min(d, p.MaxDelay)
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// waitForDatabase pings db until it answers, the budget runs out or ctx ends.
func waitForDatabase(ctx context.Context, db pinger, policy retryPolicy) error {
	giveUp := time.Now().Add(policy.Budget)
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, policy.PingTimeout)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("ping database: %w", ctx.Err())
		}
		wait := policy.delay(attempt)
		if time.Now().Add(wait).After(giveUp) {
			return fmt.Errorf("ping database after %d attempts: %w", attempt, err)
		}

		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("postgres not accepting connections yet")
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping database: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
}

// openDatabase returns a pooled pgx-backed handle once Postgres answers a ping.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := waitForDatabase(ctx, db, defaultRetry); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
