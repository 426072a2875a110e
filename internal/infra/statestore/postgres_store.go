package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/desi-diet/internal/domain/state"
)

// PostgresStore implements state.Store on a state_blobs table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the backing table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS state_blobs (
			key        TEXT PRIMARY KEY,
			version    BIGINT NOT NULL,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate state_blobs: %w", err)
	}
	return nil
}

// Load fetches the record under key.
func (s *PostgresStore) Load(ctx context.Context, key string) (state.Record, bool, error) {
	var (
		rec  state.Record
		data string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT data::text, version, updated_at
		FROM state_blobs
		WHERE key = $1
	`, key).Scan(&data, &rec.Version, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return state.Record{}, false, nil
		}
		return state.Record{}, false, fmt.Errorf("load %s: %w", key, err)
	}
	rec.Data = []byte(data)
	return rec, true, nil
}

// Save inserts the first version or updates the row whose version matches.
func (s *PostgresStore) Save(ctx context.Context, key string, data []byte, expectedVersion int64) (int64, error) {
	var (
		next int64
		err  error
		now  = time.Now().UTC()
	)
	if expectedVersion == 0 {
		err = s.pool.QueryRow(ctx, `
			INSERT INTO state_blobs (key, version, data, updated_at)
			VALUES ($1, 1, $2::jsonb, $3)
			ON CONFLICT (key) DO NOTHING
			RETURNING version
		`, key, string(data), now).Scan(&next)
	} else {
		err = s.pool.QueryRow(ctx, `
			UPDATE state_blobs
			SET data = $3::jsonb, version = version + 1, updated_at = $4
			WHERE key = $1 AND version = $2
			RETURNING version
		`, key, expectedVersion, string(data), now).Scan(&next)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, state.ErrVersionConflict
		}
		return 0, fmt.Errorf("save %s: %w", key, err)
	}
	return next, nil
}

var _ state.Store = (*PostgresStore)(nil)
