package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestMigrations lays out a two-step migration set in a temp dir so
// the tests stay independent of the repository's migrations/ directory.
func writeTestMigrations(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"0001_widgets.up.sql":   `CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT);`,
		"0001_widgets.down.sql": `DROP TABLE widgets;`,
		"0002_labels.up.sql":    `ALTER TABLE widgets ADD COLUMN label TEXT;`,
		"0002_labels.down.sql":  `ALTER TABLE widgets DROP COLUMN label;`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	return dir
}

func TestMigrateUpAndVersion(t *testing.T) {
	d := newTestDB(t)
	dir := writeTestMigrations(t)

	version, dirty, err := d.MigrateVersion(dir)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(0), version)

	require.NoError(t, d.MigrateUp(dir))

	version, dirty, err = d.MigrateVersion(dir)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(2), version)

	// Running up again is a no-op, not an error.
	require.NoError(t, d.MigrateUp(dir))
}

func TestMigrateDown(t *testing.T) {
	d := newTestDB(t)
	dir := writeTestMigrations(t)

	require.NoError(t, d.MigrateUp(dir))
	require.NoError(t, d.MigrateDown(dir))

	version, dirty, err := d.MigrateVersion(dir)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}
