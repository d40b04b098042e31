package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	require.NoError(t, createMigration(dir, "add_indexes", now))
	for _, suffix := range []string{".up.sql", ".down.sql"} {
		_, err := os.Stat(filepath.Join(dir, "20250304050607_add_indexes"+suffix))
		assert.NoError(t, err)
	}

	assert.Error(t, createMigration(dir, "add_indexes", now), "existing files are kept")
	assert.Error(t, createMigration(dir, "", now))
	assert.Error(t, createMigration(dir, "has space", now))
}
