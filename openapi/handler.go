package openapi

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/vitalvas/oasamples/mux"
)

// DocsUI selects which interactive documentation UI to serve.
type DocsUI int

const (
	// DocsRedoc is the default: Redoc renders x-code-samples as tabs.
	DocsRedoc DocsUI = iota
	DocsSwaggerUI
	DocsRapiDoc
)

// ParseDocsUI maps a UI name to a DocsUI. Unknown names return false.
func ParseDocsUI(name string) (DocsUI, bool) {
	switch strings.ToLower(name) {
	case "", "redoc":
		return DocsRedoc, true
	case "swagger", "swagger-ui", "swaggerui":
		return DocsSwaggerUI, true
	case "rapidoc":
		return DocsRapiDoc, true
	default:
		return DocsRedoc, false
	}
}

// HandleConfig configures the endpoints registered by Handler.
type HandleConfig struct {
	// UI selects the interactive docs UI (default: DocsRedoc).
	UI DocsUI

	// Title overrides the HTML page title (default: document info.title).
	Title string

	// BasePath prefixes every endpoint. A trailing slash is stripped.
	BasePath string

	// JSONFilename is the path for the JSON spec endpoint
	// (default: "schema.json"). Set to "-" to disable.
	//
	// Relative paths are joined with the base path; absolute paths
	// (starting with "/") are used as-is.
	JSONFilename string

	// YAMLFilename is the path for the YAML spec endpoint
	// (default: "schema.yaml"). Set to "-" to disable.
	YAMLFilename string

	// DisableDocs disables the interactive HTML docs UI endpoint.
	DisableDocs bool

	// SwaggerUIConfig provides additional SwaggerUIBundle configuration options.
	// Only used when UI is DocsSwaggerUI.
	//
	// See: https://swagger.io/docs/open-source-tools/swagger-ui/usage/configuration/
	SwaggerUIConfig map[string]any
}

// jsonFilename returns the configured JSON spec filename, defaulting to "schema.json".
func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "schema.json"
	}
	return cfg.JSONFilename
}

// yamlFilename returns the configured YAML spec filename, defaulting to "schema.yaml".
func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "schema.yaml"
	}
	return cfg.YAMLFilename
}

// resolvePath returns the full route path for a filename.
// Absolute filenames (starting with "/") are returned as-is.
// Relative filenames are joined under basePath.
func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	if basePath == "" {
		return "/" + filename
	}
	return basePath + "/" + filename
}

// snapshot is one serialized revision of the served document.
type snapshot struct {
	title string
	json  []byte
	yaml  []byte
}

// Handler serves a document as JSON, YAML and an interactive docs page.
// The document can be replaced at any time with Update; requests see either
// the old or the new revision, never a mix.
type Handler struct {
	cfg HandleConfig

	mu   sync.RWMutex
	snap *snapshot
}

// NewHandler registers the endpoints described by cfg on r. Until Update is
// called every endpoint answers 503.
//
//	<basePath>/            - interactive HTML docs (unless DisableDocs)
//	<JSONFilename path>    - document as JSON  (unless JSONFilename is "-")
//	<YAMLFilename path>    - document as YAML  (unless YAMLFilename is "-")
func NewHandler(r *mux.Router, cfg *HandleConfig) *Handler {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	h := &Handler{cfg: *cfg}

	basePath := strings.TrimRight(cfg.BasePath, "/")

	var jsonPath, yamlPath string

	if jsonFile := cfg.jsonFilename(); jsonFile != "-" {
		jsonPath = resolvePath(basePath, jsonFile)
		r.HandleFunc(jsonPath, h.serveJSON).Methods(http.MethodGet, http.MethodHead)
	}

	if yamlFile := cfg.yamlFilename(); yamlFile != "-" {
		yamlPath = resolvePath(basePath, yamlFile)
		r.HandleFunc(yamlPath, h.serveYAML).Methods(http.MethodGet, http.MethodHead)
	}

	if !cfg.DisableDocs {
		specURL := jsonPath
		if specURL == "" {
			specURL = yamlPath
		}

		// Skip docs registration when no spec endpoint is available.
		if specURL != "" {
			docs := h.docsHandler(specURL)
			if basePath == "" {
				r.HandleFunc("/", docs).Methods(http.MethodGet, http.MethodHead)
			} else {
				r.HandleFunc(basePath, docs).Methods(http.MethodGet, http.MethodHead)
				r.HandleFunc(basePath+"/", docs).Methods(http.MethodGet, http.MethodHead)
			}
		}
	}

	return h
}

// Update serializes doc and makes it the served revision.
func (h *Handler) Update(doc *Document) error {
	jsonData, err := doc.JSON()
	if err != nil {
		return fmt.Errorf("serialize document as JSON: %w", err)
	}
	yamlData, err := doc.YAML()
	if err != nil {
		return fmt.Errorf("serialize document as YAML: %w", err)
	}

	title := h.cfg.Title
	if title == "" {
		if spec, err := doc.Spec(); err == nil {
			title = spec.Info.Title
		}
	}
	if title == "" {
		title = "API Reference"
	}

	h.mu.Lock()
	h.snap = &snapshot{title: title, json: jsonData, yaml: yamlData}
	h.mu.Unlock()
	return nil
}

func (h *Handler) current() *snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

func (h *Handler) serveJSON(w http.ResponseWriter, _ *http.Request) {
	snap := h.current()
	if snap == nil {
		http.Error(w, "document not loaded yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(snap.json)
}

func (h *Handler) serveYAML(w http.ResponseWriter, _ *http.Request) {
	snap := h.current()
	if snap == nil {
		http.Error(w, "document not loaded yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(snap.yaml)
}

func (h *Handler) docsHandler(specURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := h.current()
		if snap == nil {
			http.Error(w, "document not loaded yet", http.StatusServiceUnavailable)
			return
		}

		var page string
		switch h.cfg.UI {
		case DocsRapiDoc:
			page = rapidocTemplate(snap.title, specURL)
		case DocsSwaggerUI:
			page = swaggerUITemplate(snap.title, specURL, h.cfg.SwaggerUIConfig)
		default:
			page = redocTemplate(snap.title, specURL)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page))
	}
}

func swaggerUITemplate(title, specPath string, config map[string]any) string {
	var extra string
	if len(config) > 0 {
		keys := make([]string, 0, len(config))
		for k := range config {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		for _, k := range keys {
			v, err := json.Marshal(config[k])
			if err != nil {
				continue
			}
			fmt.Fprintf(&buf, ", %s: %s", k, v)
		}
		extra = buf.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
</script>
</body>
</html>`, html.EscapeString(title), specPath, extra)
}

func rapidocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url=%q></rapi-doc>
</body>
</html>`, html.EscapeString(title), specPath)
}

func redocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body>
<redoc spec-url=%q></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`, html.EscapeString(title), specPath)
}
