package sqlitedb

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   uint
	Name string
}

func TestOpen_CreatesDirectoryAndMigrates(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	db, err := Open(path, logger, &widget{})
	require.NoError(t, err)
	require.True(t, db.Migrator().HasTable(&widget{}))

	_, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err)

	require.NoError(t, db.Create(&widget{Name: "a"}).Error)
	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestOpen_InMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(":memory:", logger, &widget{})
	require.NoError(t, err)
	require.NoError(t, db.Create(&widget{Name: "b"}).Error)

	var got widget
	require.NoError(t, db.First(&got).Error)
	require.Equal(t, "b", got.Name)
}
