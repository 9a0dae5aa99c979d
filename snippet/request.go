package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/vitalvas/oasamples/openapi"
)

// maxSchemaDepth bounds placeholder generation for recursive schemas.
const maxSchemaDepth = 6

// Pair is an ordered name/value entry (header, query or form field).
type Pair struct {
	Name  string
	Value string
}

// Request is the normalized HTTP request a snippet describes.
type Request struct {
	Method      string
	URL         string // full URL including the query string
	BaseURLPath string // URL without the query string
	Scheme      string
	Host        string // host[:port]
	Hostname    string
	Port        string
	PathQuery   string
	Query       []Pair
	Headers     []Pair
	ContentType string
	Body        string
}

// BuildRequest derives the example request for one operation: servers,
// path/query/header/cookie parameters and a request body, for both
// Swagger 2.0 and OpenAPI 3.x documents.
func BuildRequest(doc *openapi.Document, path, method string) (*Request, error) {
	item, err := doc.PathItem(path)
	if err != nil {
		return nil, err
	}
	op, err := doc.Operation(path, method)
	if err != nil {
		return nil, err
	}

	itemSpec, err := item.Spec()
	if err != nil {
		return nil, err
	}
	opSpec, err := op.Spec()
	if err != nil {
		return nil, err
	}

	b := &requestBuilder{doc: doc}

	base := doc.BaseURL()
	switch {
	case len(opSpec.Servers) > 0:
		base = openapi.ServerURL(opSpec.Servers[0])
	case len(itemSpec.Servers) > 0:
		base = openapi.ServerURL(itemSpec.Servers[0])
	}

	params, err := b.mergeParameters(itemSpec.Parameters, opSpec.Parameters)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
	}

	req := &Request{Method: op.HTTPMethod()}
	resolvedPath := path
	var cookies []string
	var form []Pair
	var bodyParam *openapi.Parameter

	for _, p := range params {
		switch p.In {
		case "path":
			resolvedPath = strings.ReplaceAll(resolvedPath, "{"+p.Name+"}", url.PathEscape(b.paramValue(p)))
		case "query":
			if p.Required || hasExample(p) {
				req.Query = append(req.Query, Pair{Name: p.Name, Value: b.paramValue(p)})
			}
		case "header":
			if p.Required || hasExample(p) {
				req.Headers = append(req.Headers, Pair{Name: p.Name, Value: b.paramValue(p)})
			}
		case "cookie":
			if p.Required || hasExample(p) {
				cookies = append(cookies, p.Name+"="+b.paramValue(p))
			}
		case "formData":
			form = append(form, Pair{Name: p.Name, Value: b.paramValue(p)})
		case "body":
			bodyParam = p
		}
	}

	if len(cookies) > 0 {
		req.Headers = append(req.Headers, Pair{Name: "cookie", Value: strings.Join(cookies, "; ")})
	}

	switch {
	case opSpec.RequestBody != nil:
		if err := b.requestBody(req, opSpec.RequestBody); err != nil {
			return nil, fmt.Errorf("%s %s: %w", req.Method, path, err)
		}
	case bodyParam != nil:
		req.ContentType = b.consumes(opSpec, "application/json")
		req.Body = encodeBody(req.ContentType, b.sampleValue(bodyParam.Schema, 0))
	case len(form) > 0:
		req.ContentType = b.consumes(opSpec, "application/x-www-form-urlencoded")
		req.Body = encodePairs(form)
	}

	if req.ContentType != "" {
		req.Headers = append(req.Headers, Pair{Name: "content-type", Value: req.ContentType})
	}

	req.BaseURLPath = base + resolvedPath
	req.URL = req.BaseURLPath
	if len(req.Query) > 0 {
		req.URL += "?" + encodePairs(req.Query)
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("%s %s: invalid url %q: %w", req.Method, path, req.URL, err)
	}
	req.Scheme = u.Scheme
	req.Host = u.Host
	req.Hostname = u.Hostname()
	req.Port = u.Port()
	req.PathQuery = u.RequestURI()

	return req, nil
}

type requestBuilder struct {
	doc *openapi.Document
}

// mergeParameters resolves references and lets operation parameters
// override path-level ones with the same name and location.
func (b *requestBuilder) mergeParameters(pathLevel, opLevel []*openapi.Parameter) ([]*openapi.Parameter, error) {
	var out []*openapi.Parameter
	index := make(map[string]int)

	for _, group := range [][]*openapi.Parameter{pathLevel, opLevel} {
		for _, p := range group {
			if p == nil {
				continue
			}
			resolved, err := b.resolveParameter(p)
			if err != nil {
				return nil, err
			}
			if i, ok := index[resolved.Key()]; ok {
				out[i] = resolved
				continue
			}
			index[resolved.Key()] = len(out)
			out = append(out, resolved)
		}
	}
	return out, nil
}

func (b *requestBuilder) resolveParameter(p *openapi.Parameter) (*openapi.Parameter, error) {
	for depth := 0; p.Ref != ""; depth++ {
		if depth >= maxSchemaDepth {
			return nil, fmt.Errorf("parameter reference %q is too deep", p.Ref)
		}
		node, err := b.doc.Resolve(p.Ref)
		if err != nil {
			return nil, err
		}
		var next openapi.Parameter
		if err := node.Decode(&next); err != nil {
			return nil, fmt.Errorf("decode parameter %q: %w", p.Ref, err)
		}
		p = &next
	}
	return p, nil
}

func (b *requestBuilder) resolveSchema(s *openapi.Schema) *openapi.Schema {
	for depth := 0; s != nil && s.Ref != ""; depth++ {
		if depth >= maxSchemaDepth {
			return nil
		}
		node, err := b.doc.Resolve(s.Ref)
		if err != nil {
			return nil
		}
		var next openapi.Schema
		if err := node.Decode(&next); err != nil {
			return nil
		}
		s = &next
	}
	return s
}

func (b *requestBuilder) requestBody(req *Request, rb *openapi.RequestBody) error {
	for depth := 0; rb.Ref != ""; depth++ {
		if depth >= maxSchemaDepth {
			return fmt.Errorf("request body reference %q is too deep", rb.Ref)
		}
		node, err := b.doc.Resolve(rb.Ref)
		if err != nil {
			return err
		}
		var next openapi.RequestBody
		if err := node.Decode(&next); err != nil {
			return fmt.Errorf("decode request body %q: %w", rb.Ref, err)
		}
		rb = &next
	}

	contentType, media := pickMediaType(rb.Content)
	if contentType == "" {
		return nil
	}
	req.ContentType = contentType

	var value any
	switch {
	case media == nil:
	case media.Example != nil:
		value = media.Example
	case len(media.Examples) > 0:
		value = firstExample(media.Examples)
	default:
		value = b.sampleValue(media.Schema, 0)
	}
	req.Body = encodeBody(contentType, value)
	return nil
}

func (b *requestBuilder) consumes(op *openapi.OperationSpec, fallback string) string {
	if len(op.Consumes) > 0 {
		return op.Consumes[0]
	}
	if spec, err := b.doc.Spec(); err == nil && len(spec.Consumes) > 0 {
		return spec.Consumes[0]
	}
	return fallback
}

// paramValue picks the most concrete value a parameter declares, falling
// back to a typed placeholder.
func (b *requestBuilder) paramValue(p *openapi.Parameter) string {
	switch {
	case p.Example != nil:
		return formatValue(p.Example)
	case len(p.Examples) > 0:
		return formatValue(firstExample(p.Examples))
	case p.Default != nil:
		return formatValue(p.Default)
	case len(p.Enum) > 0:
		return formatValue(p.Enum[0])
	}

	if s := b.resolveSchema(p.Schema); s != nil {
		if v := concreteValue(s); v != nil {
			return formatValue(v)
		}
		if t := s.Type.Primary(); t != "" {
			return placeholder(t, s.Format)
		}
	}
	if p.Type != "" {
		return placeholder(p.Type, p.Format)
	}
	return placeholder("string", "")
}

// sampleValue builds an example value from a schema.
func (b *requestBuilder) sampleValue(s *openapi.Schema, depth int) any {
	if depth > maxSchemaDepth {
		return nil
	}
	s = b.resolveSchema(s)
	if s == nil {
		return nil
	}
	if v := concreteValue(s); v != nil {
		return v
	}

	switch t := s.Type.Primary(); {
	case t == "object" || (t == "" && len(s.Properties) > 0):
		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		obj := make(map[string]any, len(names))
		for _, name := range names {
			obj[name] = b.sampleValue(s.Properties[name], depth+1)
		}
		return obj
	case t == "array":
		item := b.sampleValue(s.Items, depth+1)
		if item == nil {
			return []any{}
		}
		return []any{item}
	case t == "string":
		return stringPlaceholder(s.Format)
	case t == "integer", t == "number":
		return 0
	case t == "boolean":
		return true
	default:
		return nil
	}
}

func concreteValue(s *openapi.Schema) any {
	switch {
	case s.Example != nil:
		return s.Example
	case len(s.Examples) > 0:
		return s.Examples[0]
	case s.Default != nil:
		return s.Default
	case len(s.Enum) > 0:
		return s.Enum[0]
	default:
		return nil
	}
}

func hasExample(p *openapi.Parameter) bool {
	return p.Example != nil || len(p.Examples) > 0
}

func firstExample(examples map[string]*openapi.Example) any {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ex := examples[name]; ex != nil && ex.Value != nil {
			return ex.Value
		}
	}
	return nil
}

// pickMediaType prefers JSON, then the alphabetically first media type.
func pickMediaType(content map[string]*openapi.MediaType) (string, *openapi.MediaType) {
	if len(content) == 0 {
		return "", nil
	}
	if m, ok := content["application/json"]; ok {
		return "application/json", m
	}
	types := make([]string, 0, len(content))
	for ct := range content {
		types = append(types, ct)
	}
	sort.Strings(types)
	for _, ct := range types {
		if strings.Contains(ct, "json") {
			return ct, content[ct]
		}
	}
	return types[0], content[types[0]]
}

// placeholder names the expected type, except for string formats that
// have a conventional example.
func placeholder(typ, format string) string {
	if typ == "string" {
		if v := stringPlaceholder(format); v != "string" {
			return v
		}
	}
	return "SOME_" + strings.ToUpper(typ) + "_VALUE"
}

func stringPlaceholder(format string) string {
	switch format {
	case "date":
		return "2024-01-01"
	case "date-time":
		return "2024-01-01T00:00:00Z"
	case "uuid":
		return "00000000-0000-0000-0000-000000000000"
	case "email":
		return "user@example.com"
	case "uri", "url":
		return "https://example.com"
	default:
		return "string"
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return marshalCompact(val)
	default:
		return fmt.Sprint(val)
	}
}

func encodeBody(contentType string, value any) string {
	if value == nil {
		return ""
	}
	if strings.Contains(contentType, "x-www-form-urlencoded") {
		if obj, ok := value.(map[string]any); ok {
			names := make([]string, 0, len(obj))
			for name := range obj {
				names = append(names, name)
			}
			sort.Strings(names)
			pairs := make([]Pair, 0, len(names))
			for _, name := range names {
				pairs = append(pairs, Pair{Name: name, Value: formatValue(obj[name])})
			}
			return encodePairs(pairs)
		}
	}
	if s, ok := value.(string); ok && !strings.Contains(contentType, "json") {
		return s
	}
	return marshalCompact(value)
}

func encodePairs(pairs []Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

func marshalCompact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}
