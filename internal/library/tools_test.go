package library

import (
	"context"
	"testing"
	"time"

	"prompt-library/internal/apperr"
	"prompt-library/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateToolDefaults(t *testing.T) {
	lib, _ := newTestLibrary(t)
	category := mustCategory(t, lib, "cli")

	tool, err := lib.CreateTool(context.Background(), ToolInput{Name: "Acme", Slug: "acme", CategoryID: category.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, tool.ID)
	assert.Equal(t, db.ToolStatusActive, tool.Status)
	assert.Equal(t, []string{}, []string(tool.Features))
	assert.Equal(t, []string{}, []string(tool.Tags))
	require.NotNil(t, tool.Category)
	assert.Equal(t, "cli", tool.Category.Slug)
}

func TestCreateToolErrors(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()
	category := mustCategory(t, lib, "cli")
	mustTool(t, lib, category.ID, "Acme", "acme")

	_, err := lib.CreateTool(ctx, ToolInput{Name: "Acme", CategoryID: category.ID})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = lib.CreateTool(ctx, ToolInput{Name: "Other", Slug: "acme", CategoryID: category.ID})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "slug already exists", apperr.Message(err, ""))

	_, err = lib.CreateTool(ctx, ToolInput{Name: "Other", Slug: "other", CategoryID: "missing"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = lib.CreateTool(ctx, ToolInput{Name: "Other", Slug: "other", CategoryID: category.ID, Status: "RETIRED"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestListToolsFiltersAndOrders(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()
	cli := mustCategory(t, lib, "cli")
	ide := mustCategory(t, lib, "ide")
	cursor := mustTool(t, lib, ide.ID, "Cursor", "cursor")
	mustTool(t, lib, cli.ID, "Codex CLI", "codex-cli")
	_, err := lib.CreateTool(ctx, ToolInput{Name: "Aider", Slug: "aider", CategoryID: cli.ID, Status: db.ToolStatusArchived})
	require.NoError(t, err)
	mustPrompt(t, lib, cursor.ID, "You are Cursor")
	mustPrompt(t, lib, cursor.ID, "You are Cursor, v2")

	result, err := lib.ListTools(ctx, ToolFilter{}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Codex CLI", result.Items[0].Name)
	assert.Equal(t, "Cursor", result.Items[1].Name)
	assert.Equal(t, int64(2), result.Items[1].PromptCount)
	assert.Equal(t, int64(2), result.Pagination.Total)

	result, err = lib.ListTools(ctx, ToolFilter{Status: db.ToolStatusArchived}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "aider", result.Items[0].Slug)

	result, err = lib.ListTools(ctx, ToolFilter{CategoryID: cli.ID}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "codex-cli", result.Items[0].Slug)

	result, err = lib.ListTools(ctx, ToolFilter{Search: "CURS"}, Page{Number: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "cursor", result.Items[0].Slug)
}

func TestGetToolIncludesPromptsNewestFirst(t *testing.T) {
	lib, conn := newTestLibrary(t)
	ctx := context.Background()
	category := mustCategory(t, lib, "ide")
	tool := mustTool(t, lib, category.ID, "Cursor", "cursor")
	older := mustPrompt(t, lib, tool.ID, "first")
	newer := mustPrompt(t, lib, tool.ID, "second")
	require.NoError(t, conn.Model(&db.Prompt{}).Where("id = ?", older.ID).
		UpdateColumn("created_at", older.CreatedAt.Add(-time.Hour)).Error)

	loaded, err := lib.GetTool(ctx, "cursor")
	require.NoError(t, err)
	require.Len(t, loaded.Prompts, 2)
	assert.Equal(t, newer.ID, loaded.Prompts[0].ID)
	assert.Equal(t, int64(2), loaded.PromptCount)

	_, err = lib.GetTool(ctx, "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListCategoriesOrdered(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()
	_, err := lib.CreateCategory(ctx, CategoryInput{Name: "Platforms", Slug: "platform", Order: 3})
	require.NoError(t, err)
	_, err = lib.CreateCategory(ctx, CategoryInput{Name: "IDE & Editors", Slug: "ide", Order: 1})
	require.NoError(t, err)

	_, err = lib.CreateCategory(ctx, CategoryInput{Name: "Dup", Slug: "ide"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	categories, err := lib.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "ide", categories[0].Slug)
	assert.Equal(t, "platform", categories[1].Slug)

	found, err := lib.CategoryBySlug(ctx, "platform")
	require.NoError(t, err)
	assert.Equal(t, "Platforms", found.Name)
}
