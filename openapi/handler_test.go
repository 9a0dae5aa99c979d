package openapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/oasamples/mux"
)

func setupTestHandler(t *testing.T, cfg *HandleConfig) (*mux.Router, *Handler) {
	t.Helper()
	r := mux.NewRouter()
	h := NewHandler(r, cfg)
	require.NoError(t, h.Update(mustParseYAML(t, petstoreYAML)))
	return r, h
}

func serveRequest(h http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHandler(t *testing.T) {
	t.Run("JSON spec at /docs/schema.json", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{BasePath: "/docs"})

		w := serveRequest(r, http.MethodGet, "/docs/schema.json")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var doc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
		assert.Contains(t, doc["paths"], "/pets")
	})

	t.Run("YAML spec at /docs/schema.yaml", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{BasePath: "/docs"})

		w := serveRequest(r, http.MethodGet, "/docs/schema.yaml")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-yaml", w.Header().Get("Content-Type"))

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
	})

	t.Run("redoc is the default UI", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{BasePath: "/docs"})

		w := serveRequest(r, http.MethodGet, "/docs/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.Contains(t, body, "<redoc")
		assert.Contains(t, body, "<title>Petstore</title>")
		assert.Contains(t, body, "/docs/schema.json")
	})

	t.Run("docs without trailing slash", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{BasePath: "/docs/"})

		w := serveRequest(r, http.MethodGet, "/docs")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("root base path", func(t *testing.T) {
		r, _ := setupTestHandler(t, nil)

		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/").Code)
		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/schema.json").Code)
		assert.Equal(t, http.StatusNotFound, serveRequest(r, http.MethodGet, "/other").Code)
	})

	t.Run("swagger ui with config", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{
			UI:              DocsSwaggerUI,
			Title:           "Custom <Title>",
			SwaggerUIConfig: map[string]any{"docExpansion": "none"},
		})

		body := serveRequest(r, http.MethodGet, "/").Body.String()
		assert.Contains(t, body, "swagger-ui")
		assert.Contains(t, body, "Custom &lt;Title&gt;")
		assert.Contains(t, body, `docExpansion: "none"`)
	})

	t.Run("rapidoc", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{UI: DocsRapiDoc})
		assert.Contains(t, serveRequest(r, http.MethodGet, "/").Body.String(), "rapi-doc")
	})

	t.Run("disabled endpoints", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{YAMLFilename: "-", DisableDocs: true})

		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/schema.json").Code)
		assert.Equal(t, http.StatusNotFound, serveRequest(r, http.MethodGet, "/schema.yaml").Code)
		assert.Equal(t, http.StatusNotFound, serveRequest(r, http.MethodGet, "/").Code)
	})

	t.Run("absolute filename", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{BasePath: "/docs", JSONFilename: "/api/openapi.json"})

		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/api/openapi.json").Code)
		assert.Contains(t, serveRequest(r, http.MethodGet, "/docs/").Body.String(), "/api/openapi.json")
	})

	t.Run("HEAD allowed, other methods rejected", func(t *testing.T) {
		r, _ := setupTestHandler(t, &HandleConfig{BasePath: "/docs"})

		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodHead, "/docs/schema.json").Code)

		w := serveRequest(r, http.MethodPost, "/docs/schema.json")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))
	})

	t.Run("not loaded yet", func(t *testing.T) {
		r := mux.NewRouter()
		NewHandler(r, nil)
		assert.Equal(t, http.StatusServiceUnavailable, serveRequest(r, http.MethodGet, "/schema.json").Code)
		assert.Equal(t, http.StatusServiceUnavailable, serveRequest(r, http.MethodGet, "/").Code)
	})

	t.Run("update swaps the revision", func(t *testing.T) {
		r, h := setupTestHandler(t, nil)
		require.NoError(t, h.Update(mustParseYAML(t, "info: {title: Second}\npaths: {}\n")))

		body := serveRequest(r, http.MethodGet, "/schema.json").Body.String()
		assert.Contains(t, body, "Second")
		assert.NotContains(t, body, "Petstore")
	})
}

func TestParseDocsUI(t *testing.T) {
	tests := []struct {
		name     string
		expected DocsUI
		ok       bool
	}{
		{"", DocsRedoc, true},
		{"redoc", DocsRedoc, true},
		{"Swagger-UI", DocsSwaggerUI, true},
		{"rapidoc", DocsRapiDoc, true},
		{"scalar", DocsRedoc, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, ok := ParseDocsUI(tt.name)
			assert.Equal(t, tt.expected, ui)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
