package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/desi-diet/internal/domain/subscription"
	"github.com/yanqian/desi-diet/internal/infra/config"
)

type sweepCounter struct {
	subscription.Service
	swept chan struct{}
}

func (s *sweepCounter) SweepExpired(context.Context) (int64, error) {
	select {
	case s.swept <- struct{}{}:
	default:
	}
	return 0, nil
}

func TestProvideScheduler_IntervalSweep(t *testing.T) {
	cfg := &config.Config{Subscription: config.SubscriptionConfig{
		SweepAt:       "03:00",
		SweepTimezone: "UTC",
		SweepInterval: time.Second,
	}}
	subs := &sweepCounter{swept: make(chan struct{}, 1)}

	jobs, err := provideScheduler(cfg, subs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Equal(t, 1, jobs.Entries())

	jobs.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = jobs.Stop(ctx)
	}()

	select {
	case <-subs.swept:
	case <-time.After(3 * time.Second):
		t.Fatal("subscription sweep did not run on its interval")
	}
}

func TestProvideScheduler_DailySweep(t *testing.T) {
	cfg := &config.Config{Subscription: config.SubscriptionConfig{
		SweepAt:       "03:00",
		SweepTimezone: "UTC",
	}}
	jobs, err := provideScheduler(cfg, &sweepCounter{swept: make(chan struct{}, 1)}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.Equal(t, 1, jobs.Entries())

	cfg.Subscription.SweepAt = "25:99"
	_, err = provideScheduler(cfg, &sweepCounter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
