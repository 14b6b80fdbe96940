package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/retail/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Users-Table", "add_users_table"},
		{"add__users__table", "add_users_table"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)

	mf, err := CreateMigration(dir, "Add Order Notes", "Free text notes on orders", now)
	require.NoError(t, err)

	assert.Equal(t, "20230304050607", mf.Version)
	assert.Equal(t, filepath.Join(dir, "20230304050607_add_order_notes.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "20230304050607_add_order_notes.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_order_notes")
	assert.Contains(t, string(up), "-- Description: Free text notes on orders")
	assert.Contains(t, string(up), "-- Created: 2023-03-04T05:06:07Z")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")

	t.Run("same version twice fails without clobbering", func(t *testing.T) {
		_, err := CreateMigration(dir, "add order notes", "", now)
		assert.Error(t, err)

		again, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Equal(t, up, again)
	})

	t.Run("unusable name", func(t *testing.T) {
		_, err := CreateMigration(dir, "!!!", "", now)
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_b.up.sql":   {},
		"002_b.down.sql": {},
		"001_a.up.sql":   {},
		"001_a.down.sql": {},
		"README.md":      {},
	}

	names, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a", "002_b"}, names)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		_, err := migrations.FS.Open(name + ".down.sql")
		assert.NoError(t, err, "missing down migration for %s", name)
	}
}
