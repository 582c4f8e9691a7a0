package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/growthkit/linkedin-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := Open(ctx, config.StorageConfig{Driver: config.StorageFile}, filepath.Join(dir, "s.json"), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, kv)
	kv.Close()

	kv, err = Open(ctx, config.StorageConfig{Driver: config.StorageSQLite}, filepath.Join(dir, "s.db"), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, kv)
	kv.Close()

	mr := miniredis.RunT(t)
	kv, err = Open(ctx, config.StorageConfig{Driver: config.StorageRedis, RedisURL: "redis://" + mr.Addr()}, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, kv)
	kv.Close()
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "floppy"}, "", nil)
	assert.Error(t, err)

	_, err = Open(context.Background(), config.StorageConfig{Driver: config.StoragePostgres}, "", nil)
	assert.Error(t, err)
}
