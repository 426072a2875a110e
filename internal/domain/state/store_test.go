package state

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubStore struct {
	rec   Record
	found bool
	err   error
}

func (s stubStore) Load(context.Context, string) (Record, bool, error) {
	return s.rec, s.found, s.err
}

func (s stubStore) Save(context.Context, string, []byte, int64) (int64, error) {
	return 0, errors.New("not implemented")
}

type doc struct {
	Name string `json:"name"`
}

func TestUserKey(t *testing.T) {
	require.Equal(t, "desiDietMeals:42", UserKey(MealsKey, 42))
	require.Equal(t, "desiDietUserProfile:7", UserKey(ProfileKey, 7))
}

func TestLoadJSON(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	ctx := context.Background()

	got, version, found, err := LoadJSON[doc](ctx, stubStore{}, "k", logger)
	require.NoError(t, err)
	require.False(t, found)
	require.Zero(t, version)
	require.Equal(t, doc{}, got)

	got, version, found, err = LoadJSON[doc](ctx, stubStore{found: true, rec: Record{Data: []byte(`{"name":"Asha"}`), Version: 3}}, "k", logger)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(3), version)
	require.Equal(t, "Asha", got.Name)

	_, version, found, err = LoadJSON[doc](ctx, stubStore{found: true, rec: Record{Data: []byte(`{"name":`), Version: 5}}, "k", logger)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, int64(5), version)
	require.Contains(t, logs.String(), "discarding malformed stored state")

	_, _, _, err = LoadJSON[doc](ctx, stubStore{err: errors.New("down")}, "k", logger)
	require.Error(t, err)
}
