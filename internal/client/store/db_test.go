package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_MigratesAndReturnsRepos(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "portal.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.DB.Close() })

	require.NoError(t, repos.State.Set(ctx, "authToken", []byte("tok")))
	got, err := repos.State.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), got)
}

func TestInitDatabase_IdempotentMigrations(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "portal.db")

	first, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, first.DB.Close())

	second, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, second.DB.Close())
}
