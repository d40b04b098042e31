package main

import (
	"context"
	"path/filepath"
	"testing"

	"prompt-library/internal/config"
	"prompt-library/internal/db"
	"prompt-library/internal/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSeed(t *testing.T) {
	seed, err := readSeed(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)
	assert.Len(t, seed.Categories, 2)
	assert.Len(t, seed.Tools, 2)
	require.Len(t, seed.Prompts, 2)
	assert.Equal(t, "prompts/cursor-agent.md", seed.Prompts[0].File)
	assert.Equal(t, []string{"chat", "agent"}, seed.Tools[0].Features)

	_, err = readSeed(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}

func TestApplySeedIsIdempotent(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "seed.db")
	conn, err := db.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	require.NoError(t, db.Migrate(conn))

	seed, err := readSeed(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)
	lib := library.New(conn)
	ctx := context.Background()

	first, err := applySeed(ctx, lib, seed, "testdata")
	require.NoError(t, err)
	assert.Equal(t, summary{Created: 6}, first)

	second, err := applySeed(ctx, lib, seed, "testdata")
	require.NoError(t, err)
	assert.Equal(t, summary{Skipped: 6}, second)

	var prompt db.Prompt
	require.NoError(t, conn.Where("type = ?", db.PromptTypeAgent).First(&prompt).Error)
	assert.Equal(t, "You are an AI coding assistant operating inside an editor.\n", prompt.Content)
	assert.True(t, prompt.IsOfficial)
	assert.JSONEq(t, `{"model":"unknown"}`, string(prompt.Metadata))

	var users int64
	require.NoError(t, conn.Model(&db.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}
