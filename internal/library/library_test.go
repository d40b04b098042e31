package library

import (
	"context"
	"path/filepath"
	"testing"

	"prompt-library/internal/config"
	"prompt-library/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLibrary(t *testing.T) (*Library, *gorm.DB) {
	t.Helper()
	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "library.db")
	conn, err := db.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() { _ = db.Close(conn) })
	return New(conn), conn
}

func mustCategory(t *testing.T, lib *Library, slug string) *db.Category {
	t.Helper()
	category, err := lib.CreateCategory(context.Background(), CategoryInput{Name: slug, Slug: slug})
	require.NoError(t, err)
	return category
}

func mustTool(t *testing.T, lib *Library, categoryID, name, slug string) *db.Tool {
	t.Helper()
	tool, err := lib.CreateTool(context.Background(), ToolInput{Name: name, Slug: slug, CategoryID: categoryID})
	require.NoError(t, err)
	return tool
}

func mustPrompt(t *testing.T, lib *Library, toolID, content string) *db.Prompt {
	t.Helper()
	prompt, err := lib.CreatePrompt(context.Background(), PromptInput{ToolID: toolID, Version: "1.0", Content: content})
	require.NoError(t, err)
	return prompt
}

func mustUser(t *testing.T, lib *Library, id string) *db.User {
	t.Helper()
	user, err := lib.EnsureUser(context.Background(), UserInput{ID: id})
	require.NoError(t, err)
	return user
}

func strPtr(value string) *string {
	return &value
}
