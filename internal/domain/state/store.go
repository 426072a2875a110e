package state

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"
)

// ErrVersionConflict is returned by Save when the stored version differs from
// the expected one.
var ErrVersionConflict = errors.New("state version conflict")

// Record is one stored JSON document. Version 0 means the key has never been written.
type Record struct {
	Data      []byte
	Version   int64
	UpdatedAt time.Time
}

// Store persists opaque per-key JSON documents with optimistic concurrency.
type Store interface {
	// Load returns the record under key; found is false when nothing is stored.
	Load(ctx context.Context, key string) (Record, bool, error)
	// Save writes data when the stored version equals expectedVersion
	// (0 for a new key) and returns the new version.
	Save(ctx context.Context, key string, data []byte, expectedVersion int64) (int64, error)
}

// Keys under which per-user documents are stored.
const (
	MealsKey   = "desiDietMeals"
	ProfileKey = "desiDietUserProfile"
)

// UserKey scopes a document key to one user.
func UserKey(base string, userID int64) string {
	return base + ":" + strconv.FormatInt(userID, 10)
}

// LoadJSON loads key and decodes it into a T. Absent or undecodable content
// yields the zero T with found=false; malformed content is logged, not returned.
// The record version is returned in both cases so callers can save over it.
func LoadJSON[T any](ctx context.Context, store Store, key string, logger *slog.Logger) (T, int64, bool, error) {
	var zero T
	rec, found, err := store.Load(ctx, key)
	if err != nil {
		return zero, 0, false, err
	}
	if !found || len(rec.Data) == 0 {
		return zero, rec.Version, false, nil
	}
	var out T
	if err := json.Unmarshal(rec.Data, &out); err != nil {
		logger.Warn("discarding malformed stored state", "key", key, "version", rec.Version, "error", err)
		return zero, rec.Version, false, nil
	}
	return out, rec.Version, true, nil
}
