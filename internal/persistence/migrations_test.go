package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/attendx/hrms-service/internal/config"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.sql", "0001_a.sql", "README.md", "0003_c.sql.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0000_dir.sql"), 0o700))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, files)
}

func TestMigrationFiles_ShippedSchema(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", DefaultMigrationsDir))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0001_create_departments.sql",
		"0002_create_offices.sql",
		"0003_create_users.sql",
		"0004_create_bootstrap_marker.sql",
	}, files)
}

func TestRunMigrationsFrom_RequiresPool(t *testing.T) {
	err := RunMigrationsFrom(context.Background(), nil, t.TempDir(), zap.NewNop())
	assert.Error(t, err)
}

func TestNewPostgres_RejectsEmptyDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, pg)
}
