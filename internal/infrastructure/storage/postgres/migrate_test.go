package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/infrastructure/storage/postgres/migrations"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/inv?sslmode=disable", migrateURL("postgres://u:p@db:5432/inv?sslmode=disable"))
	assert.Equal(t, "pgx5://db/inv", migrateURL("postgresql://db/inv"))
	assert.Equal(t, "pgx5://db/inv", migrateURL("pgx5://db/inv"))
}

func TestEmbeddedMigrations_Paired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations.FS, "*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
