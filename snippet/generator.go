package snippet

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/kballard/go-shellquote"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vitalvas/oasamples/openapi"
)

// Snippet is one generated code sample. Title carries the target identifier.
type Snippet struct {
	Title   string
	Content string
}

// Generator produces snippets for a single operation, one per target, in
// target order.
type Generator interface {
	Generate(doc *openapi.Document, path, method string, targets TargetSet) ([]Snippet, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(doc *openapi.Document, path, method string, targets TargetSet) ([]Snippet, error)

// Generate calls f.
func (f GeneratorFunc) Generate(doc *openapi.Document, path, method string, targets TargetSet) ([]Snippet, error) {
	return f(doc, path, method, targets)
}

// TemplateGenerator renders built-in text templates for every target of the
// vocabulary.
type TemplateGenerator struct {
	templates map[string]*template.Template
}

var parsedTemplates = mustParseTemplates()

// NewTemplateGenerator returns the built-in generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{templates: parsedTemplates}
}

// Generate builds the request for the operation once and renders it for each
// target.
func (g *TemplateGenerator) Generate(doc *openapi.Document, path, method string, targets TargetSet) ([]Snippet, error) {
	req, err := BuildRequest(doc, path, method)
	if err != nil {
		return nil, err
	}

	out := make([]Snippet, 0, targets.Len())
	for _, id := range targets.ids {
		content, err := g.Render(id, req)
		if err != nil {
			return nil, err
		}
		out = append(out, Snippet{Title: id, Content: content})
	}
	return out, nil
}

// Render renders a single target for a prepared request.
func (g *TemplateGenerator) Render(id string, req *Request) (string, error) {
	tmpl, ok := g.templates[id]
	if !ok {
		return "", fmt.Errorf("no template for target %q", id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render %s: %w", id, err)
	}
	return tidy(buf.String()), nil
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// tidy collapses runs of blank lines left by optional template sections.
func tidy(s string) string {
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func mustParseTemplates() map[string]*template.Template {
	funcs := template.FuncMap{
		"q":         strconv.Quote,
		"sq":        singleQuote,
		"sh":        func(s string) string { return shellquote.Join(s) },
		"obj":       inlineMap,
		"swiftdict": swiftDict,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"title": func(s string) string {
			return cases.Title(language.English).String(strings.ToLower(s))
		},
		"tick": func() string { return "`" },
	}

	out := make(map[string]*template.Template, len(templates))
	for _, t := range vocabulary {
		src, ok := templates[t.ID]
		if !ok {
			panic(fmt.Sprintf("snippet: missing template for %s", t.ID))
		}
		out[t.ID] = template.Must(template.New(t.ID).Funcs(funcs).Parse(src))
	}
	return out
}

// singleQuote renders a single-quoted PHP/Ruby literal.
func singleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func inlineMap(pairs []Pair) string {
	if len(pairs) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, strconv.Quote(p.Name)+": "+strconv.Quote(p.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func swiftDict(pairs []Pair) string {
	if len(pairs) == 0 {
		return "[:]"
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, strconv.Quote(p.Name)+": "+strconv.Quote(p.Value))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
