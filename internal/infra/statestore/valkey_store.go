package statestore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/desi-diet/internal/domain/state"
)

// Each record is a hash {data, version, updated}. The script performs the
// version check and write atomically and returns -1 on mismatch.
var casScript = valkey.NewLuaScript(`
local current = tonumber(redis.call('HGET', KEYS[1], 'version') or '0')
if current ~= tonumber(ARGV[2]) then
  return -1
end
local next = current + 1
redis.call('HSET', KEYS[1], 'data', ARGV[1], 'version', next, 'updated', ARGV[3])
return next
`)

// ValkeyStore persists state records in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "desidiet"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Load reads the record hash under key.
func (s *ValkeyStore) Load(ctx context.Context, key string) (state.Record, bool, error) {
	cmd := s.client.B().Hgetall().Key(s.recordKey(key)).Build()
	fields, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return state.Record{}, false, nil
		}
		return state.Record{}, false, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return state.Record{}, false, nil
	}
	version, err := strconv.ParseInt(fields["version"], 10, 64)
	if err != nil {
		return state.Record{}, false, fmt.Errorf("parse version for %s: %w", key, err)
	}
	rec := state.Record{
		Data:    []byte(fields["data"]),
		Version: version,
	}
	if updated, err := strconv.ParseInt(fields["updated"], 10, 64); err == nil {
		rec.UpdatedAt = time.UnixMilli(updated).UTC()
	}
	return rec, true, nil
}

// Save runs the compare-and-set script.
func (s *ValkeyStore) Save(ctx context.Context, key string, data []byte, expectedVersion int64) (int64, error) {
	resp := casScript.Exec(ctx, s.client,
		[]string{s.recordKey(key)},
		[]string{string(data), strconv.FormatInt(expectedVersion, 10), strconv.FormatInt(time.Now().UnixMilli(), 10)},
	)
	next, err := resp.AsInt64()
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", key, err)
	}
	if next < 0 {
		return 0, state.ErrVersionConflict
	}
	return next, nil
}

func (s *ValkeyStore) recordKey(key string) string {
	return fmt.Sprintf("%s:state:%s", s.prefix, key)
}

var _ state.Store = (*ValkeyStore)(nil)
