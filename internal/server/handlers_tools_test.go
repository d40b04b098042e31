package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"prompt-library/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateToolAppliesDefaultsAndRejectsDuplicateSlug(t *testing.T) {
	ts, conn := startServer(t)
	category := seedCategory(t, conn, "cli")

	payload := map[string]any{"name": "Acme", "slug": "acme", "categoryId": category.ID}
	body := expectStatus(t, ts, http.MethodPost, "/api/tools", payload, http.StatusCreated)
	assert.True(t, body.Success)

	var raw map[string]json.RawMessage
	decodeData(t, body, &raw)
	assert.JSONEq(t, `"ACTIVE"`, string(raw["status"]))
	assert.JSONEq(t, `[]`, string(raw["features"]))
	assert.JSONEq(t, `[]`, string(raw["tags"]))

	body = expectStatus(t, ts, http.MethodPost, "/api/tools", payload, http.StatusConflict)
	assert.False(t, body.Success)
	assert.Equal(t, "slug already exists", body.Error)
}

func TestCreateToolValidation(t *testing.T) {
	ts, conn := startServer(t)
	category := seedCategory(t, conn, "cli")

	body := expectStatus(t, ts, http.MethodPost, "/api/tools", map[string]any{"name": "Acme"}, http.StatusBadRequest)
	assert.Equal(t, "missing required fields", body.Error)

	body = expectStatus(t, ts, http.MethodPost, "/api/tools", map[string]any{
		"name": "Acme", "slug": "acme", "categoryId": category.ID, "status": "RETIRED",
	}, http.StatusBadRequest)
	assert.Equal(t, "invalid tool status", body.Error)

	body = expectStatus(t, ts, http.MethodPost, "/api/tools", `{"name":`, http.StatusBadRequest)
	assert.Equal(t, "invalid request body", body.Error)

	body = expectStatus(t, ts, http.MethodPost, "/api/tools", map[string]any{
		"name": "Acme", "slug": "acme", "categoryId": "missing",
	}, http.StatusNotFound)
	assert.Equal(t, "category not found", body.Error)

	var count int64
	require.NoError(t, conn.Model(&db.Tool{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListAndGetTools(t *testing.T) {
	ts, conn := startServer(t)
	category := seedCategory(t, conn, "cli")
	beta := createTool(t, ts, category.ID, "beta")
	createTool(t, ts, category.ID, "alpha")
	expectStatus(t, ts, http.MethodPost, "/api/tools", map[string]any{
		"name": "gamma", "slug": "gamma", "categoryId": category.ID, "status": "ARCHIVED",
	}, http.StatusCreated)
	createPrompt(t, ts, beta.ID, "beta prompt")

	body := expectStatus(t, ts, http.MethodGet, "/api/tools", nil, http.StatusOK)
	var tools []db.Tool
	decodeData(t, body, &tools)
	require.Len(t, tools, 2)
	assert.Equal(t, "alpha", tools[0].Slug)
	assert.Equal(t, "beta", tools[1].Slug)
	assert.Equal(t, int64(1), tools[1].PromptCount)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 20, body.Pagination.Limit)
	assert.Equal(t, int64(2), body.Pagination.Total)

	body = expectStatus(t, ts, http.MethodGet, "/api/tools?status=ARCHIVED", nil, http.StatusOK)
	decodeData(t, body, &tools)
	require.Len(t, tools, 1)
	assert.Equal(t, "gamma", tools[0].Slug)

	body = expectStatus(t, ts, http.MethodGet, "/api/tools/beta", nil, http.StatusOK)
	var tool db.Tool
	decodeData(t, body, &tool)
	require.Len(t, tool.Prompts, 1)
	require.NotNil(t, tool.Category)
	assert.Equal(t, "cli", tool.Category.Slug)

	body = expectStatus(t, ts, http.MethodGet, "/api/tools/nope", nil, http.StatusNotFound)
	assert.Equal(t, "tool not found", body.Error)
}
