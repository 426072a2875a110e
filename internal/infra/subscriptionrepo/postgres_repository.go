package subscriptionrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/desi-diet/internal/domain/subscription"
)

// PostgresRepository implements subscription.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the subscriptions table when missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS subscriptions (
			user_id      BIGINT PRIMARY KEY,
			id           TEXT NOT NULL,
			plan_id      TEXT NOT NULL,
			tier         TEXT NOT NULL,
			amount_cents INTEGER NOT NULL DEFAULT 0,
			started_at   TIMESTAMPTZ NOT NULL,
			expires_at   TIMESTAMPTZ NOT NULL,
			cancelled_at TIMESTAMPTZ
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate subscriptions: %w", err)
	}
	return nil
}

// Get fetches the user's subscription.
func (r *PostgresRepository) Get(ctx context.Context, userID int64) (subscription.Subscription, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, plan_id, tier, amount_cents, started_at, expires_at, cancelled_at
		FROM subscriptions
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return subscription.Subscription{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return subscription.Subscription{}, false, rows.Err()
	}
	sub, err := scanSubscription(rows)
	if err != nil {
		return subscription.Subscription{}, false, err
	}
	return sub, true, rows.Err()
}

// Upsert inserts or replaces the user's subscription.
func (r *PostgresRepository) Upsert(ctx context.Context, sub subscription.Subscription) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subscriptions (user_id, id, plan_id, tier, amount_cents, started_at, expires_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			id = EXCLUDED.id,
			plan_id = EXCLUDED.plan_id,
			tier = EXCLUDED.tier,
			amount_cents = EXCLUDED.amount_cents,
			started_at = EXCLUDED.started_at,
			expires_at = EXCLUDED.expires_at,
			cancelled_at = EXCLUDED.cancelled_at
	`, sub.UserID, sub.ID, sub.PlanID, string(sub.Tier), sub.AmountCents, sub.StartedAt, sub.ExpiresAt, sub.CancelledAt)
	return err
}

// Delete removes the user's subscription.
func (r *PostgresRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE user_id = $1`, userID)
	return err
}

// DeleteInactive removes cancelled and expired subscriptions.
func (r *PostgresRepository) DeleteInactive(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM subscriptions
		WHERE cancelled_at IS NOT NULL OR expires_at <= $1
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (subscription.Subscription, error) {
	var (
		sub  subscription.Subscription
		tier string
	)
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanID, &tier, &sub.AmountCents, &sub.StartedAt, &sub.ExpiresAt, &sub.CancelledAt); err != nil {
		return subscription.Subscription{}, err
	}
	sub.Tier = subscription.Tier(tier)
	return sub, nil
}

var _ subscription.Repository = (*PostgresRepository)(nil)
