package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompt-library/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body io.Reader = bytes.NewReader(nil)
	switch value := payload.(type) {
	case nil:
	case string:
		body = bytes.NewReader([]byte(value))
	default:
		data, err := json.Marshal(value)
		require.NoError(t, err, "marshal payload")
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err, "new request")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "do request")
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body), "decode body")
	return body
}

// expectStatus performs the request and decodes the envelope after checking
// the status code.
func expectStatus(t *testing.T, ts *httptest.Server, method, path string, payload any, status int) envelope {
	t.Helper()
	resp := doRequest(t, ts, method, path, payload)
	body := decodeBody(t, resp)
	require.Equal(t, status, resp.StatusCode, "unexpected status for %s %s: %+v", method, path, body)
	return body
}

func decodeData(t *testing.T, body envelope, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body.Data, dest), "decode data")
}

func seedCategory(t *testing.T, conn *gorm.DB, slug string) db.Category {
	t.Helper()
	category := db.Category{Name: slug, Slug: slug}
	require.NoError(t, conn.Create(&category).Error)
	return category
}

func seedUser(t *testing.T, conn *gorm.DB, id string) db.User {
	t.Helper()
	user := db.User{ID: id}
	require.NoError(t, conn.Create(&user).Error)
	return user
}

func createTool(t *testing.T, ts *httptest.Server, categoryID, slug string) db.Tool {
	t.Helper()
	body := expectStatus(t, ts, http.MethodPost, "/api/tools", map[string]any{
		"name":       slug,
		"slug":       slug,
		"categoryId": categoryID,
	}, http.StatusCreated)
	var tool db.Tool
	decodeData(t, body, &tool)
	return tool
}

func createPrompt(t *testing.T, ts *httptest.Server, toolID, content string) db.Prompt {
	t.Helper()
	body := expectStatus(t, ts, http.MethodPost, "/api/prompts", map[string]any{
		"toolId":  toolID,
		"version": "1.0",
		"content": content,
	}, http.StatusCreated)
	var prompt db.Prompt
	decodeData(t, body, &prompt)
	return prompt
}
