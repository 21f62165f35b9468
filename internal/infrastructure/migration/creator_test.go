package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("writes an up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "Add Trade-In Quotes", "quote column on trade_in_requests")

		require.NoError(t, err)
		assert.Contains(t, mf.UpPath, "add_trade_in_quotes.up.sql")
		assert.Contains(t, mf.DownPath, "add_trade_in_quotes.down.sql")

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "quote column on trade_in_requests")

		_, err = os.Stat(mf.DownPath)
		require.NoError(t, err)
	})

	t.Run("sanitizes awkward names", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "  Drop -- Legacy!! Sold Flag  ", "")

		require.NoError(t, err)
		assert.Contains(t, mf.UpPath, "drop_legacy_sold_flag.up.sql")
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("returns base names for up files", func(t *testing.T) {
		dir := t.TempDir()
		_, err := CreateMigration(dir, "init schema", "")
		require.NoError(t, err)

		names, err := ListMigrations(dir)

		require.NoError(t, err)
		require.Len(t, names, 1)
		assert.Contains(t, names[0], "init_schema")
	})

	t.Run("missing directory is empty not an error", func(t *testing.T) {
		names, err := ListMigrations("/nonexistent/migrations")

		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
