//go:build testutil
// +build testutil

package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuserp/campuserp/internal/testutil/testdb"
	"github.com/campuserp/campuserp/migrations"
)

func TestMigrateIsIdempotent(t *testing.T) {
	handle, err := testdb.Start(context.Background())
	require.NoError(t, err)
	defer handle.Close()

	// testdb.Start already ran the migrations once; a second run must be a
	// no-op.
	migrator := NewMigrator(handle.Pool)
	require.NoError(t, migrator.Migrate(context.Background(), migrations.Files))

	var applied int
	err = handle.Pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM schema_migrations").Scan(&applied)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	var tables int
	err = handle.Pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM information_schema.tables
		 WHERE table_schema = 'public' AND table_name = 'students'`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 1, tables)
}
