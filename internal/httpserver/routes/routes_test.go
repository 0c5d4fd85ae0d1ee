package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarehq/flare/internal/catalog"
	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/httpserver/deps"
	"github.com/flarehq/flare/internal/logger"
	"github.com/flarehq/flare/internal/store/memory"
)

func newTestRouter(t *testing.T) (chi.Router, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := catalog.NewService(st, nil, nil, nil, logger.NewNop())

	r := chi.NewRouter()
	RegisterAll(r, deps.Deps{
		Logger:    logger.NewNop(),
		StartTime: time.Now(),
		Version:   "test",
		Catalog:   svc,
	})
	return r, st
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func TestAppLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/apps", map[string]any{
		"name": "Grafana",
		"url":  "http://grafana:3000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.App
	decode(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.DefaultCategoryID, created.CategoryID)
	assert.True(t, created.IsPinned)

	rec = doJSON(t, r, http.MethodGet, "/api/apps", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var listed []domain.App
	decode(t, rec, &listed)
	require.Len(t, listed, 1)

	rec = doJSON(t, r, http.MethodPut, "/api/apps/1", map[string]any{"url": "http://grafana:3001"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.App
	decode(t, rec, &updated)
	assert.Equal(t, "http://grafana:3001", updated.URL)
	assert.Equal(t, "Grafana", updated.Name)

	rec = doJSON(t, r, http.MethodDelete, "/api/apps/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/apps/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAppValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/apps", map[string]any{"name": "NoURL"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/apps/banana", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReorderRejectedUnderWrongPolicy(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPut, "/api/apps/reorder", map[string]any{
		"categoryId": domain.DefaultCategoryID,
		"ids":        []int64{1},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode(t, rec, nil)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestReorderHappyPathAndConflict(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()

	set, err := st.GetSettings(ctx)
	require.NoError(t, err)
	set.UseOrdering = domain.OrderByManual
	_, err = st.UpdateSettings(ctx, set)
	require.NoError(t, err)

	a, err := st.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: domain.DefaultCategoryID, OrderID: 1})
	require.NoError(t, err)
	b, err := st.CreateApp(ctx, &domain.App{Name: "b", URL: "http://b", CategoryID: domain.DefaultCategoryID, OrderID: 2})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPut, "/api/apps/reorder", map[string]any{
		"categoryId": domain.DefaultCategoryID,
		"ids":        []int64{b.ID, a.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := st.GetApp(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OrderID)

	rec = doJSON(t, r, http.MethodPut, "/api/apps/reorder", map[string]any{
		"categoryId": domain.DefaultCategoryID,
		"ids":        []int64{a.ID, 999},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSettingsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var set domain.Settings
	decode(t, rec, &set)
	assert.Equal(t, domain.OrderByCreated, set.UseOrdering)

	set.UseOrdering = domain.OrderByName
	rec = doJSON(t, r, http.MethodPut, "/api/settings", set)
	require.Equal(t, http.StatusOK, rec.Code)

	set.UseOrdering = "alphabetical"
	rec = doJSON(t, r, http.MethodPut, "/api/settings", set)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerRefreshWithoutScheduler(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/settings/refresh", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/categories", map[string]any{
		"name": "Monitoring",
		"type": "apps",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/categories", map[string]any{
		"name": "Things",
		"type": "gadgets",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/categories?type=apps", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []domain.Category
	decode(t, rec, &categories)
	assert.Len(t, categories, 2) // Discovered + Monitoring

	// The reserved discovered category cannot be removed.
	rec = doJSON(t, r, http.MethodDelete, "/api/categories/-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarkEndpoints(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()

	cat, err := st.CreateCategory(ctx, &domain.Category{Name: "Reading", Type: domain.CategoryBookmarks})
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPost, "/api/bookmarks", map[string]any{
		"name":       "Docs",
		"url":        "https://docs.example.com",
		"categoryId": cat.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/bookmarks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bookmarks []domain.Bookmark
	decode(t, rec, &bookmarks)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "Docs", bookmarks[0].Name)
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
