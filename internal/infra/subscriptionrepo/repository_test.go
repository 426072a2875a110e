package subscriptionrepo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/desi-diet/internal/domain/subscription"
	"github.com/yanqian/desi-diet/internal/infra/sqlitedb"
)

func TestMemoryRepository_Contract(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}

func TestSQLiteRepository_Contract(t *testing.T) {
	db, err := sqlitedb.Open(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)), &SubscriptionRow{})
	require.NoError(t, err)
	exerciseRepository(t, NewSQLiteRepository(db))
}

func exerciseRepository(t *testing.T, repo subscription.Repository) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, found, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, found)

	active := subscription.Subscription{
		ID: "a", UserID: 1, PlanID: "premium", Tier: subscription.TierPremium, AmountCents: 999,
		StartedAt: now, ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
	expired := subscription.Subscription{
		ID: "b", UserID: 2, PlanID: "pro", Tier: subscription.TierProfessional, AmountCents: 1999,
		StartedAt: now.Add(-40 * 24 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}
	cancelledAt := now.Add(-time.Minute)
	cancelled := subscription.Subscription{
		ID: "c", UserID: 3, PlanID: "premium", Tier: subscription.TierPremium, AmountCents: 999,
		StartedAt: now, ExpiresAt: now.Add(time.Hour), CancelledAt: &cancelledAt,
	}
	for _, sub := range []subscription.Subscription{active, expired, cancelled} {
		require.NoError(t, repo.Upsert(ctx, sub))
	}

	got, found, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "premium", got.PlanID)
	require.Equal(t, subscription.TierPremium, got.Tier)
	require.True(t, got.ExpiresAt.Equal(active.ExpiresAt))
	require.Nil(t, got.CancelledAt)

	replaced := active
	replaced.ID = "a2"
	replaced.PlanID = "pro"
	require.NoError(t, repo.Upsert(ctx, replaced))
	got, _, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "a2", got.ID)
	require.Equal(t, "pro", got.PlanID)

	removed, err := repo.DeleteInactive(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	_, found, err = repo.Get(ctx, 2)
	require.NoError(t, err)
	require.False(t, found)
	_, found, err = repo.Get(ctx, 3)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, repo.Delete(ctx, 1))
	_, found, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, repo.Delete(ctx, 1))
}
