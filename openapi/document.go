package openapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// CodeSamplesKey is the vendor extension holding generated client examples.
// Redoc renders it as a tabbed code panel next to each operation.
const CodeSamplesKey = "x-code-samples"

// httpMethods lists the path item keys that describe operations.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
var httpMethods = map[string]string{
	"get":     http.MethodGet,
	"put":     http.MethodPut,
	"post":    http.MethodPost,
	"delete":  http.MethodDelete,
	"options": http.MethodOptions,
	"head":    http.MethodHead,
	"patch":   http.MethodPatch,
	"trace":   http.MethodTrace,
}

// IsHTTPMethod reports whether a path item key names an operation.
func IsHTTPMethod(key string) bool {
	_, ok := httpMethods[key]
	return ok
}

// Document is an order-preserving OpenAPI (v2 or v3) document.
//
// The document is kept as a yaml.Node tree so that keys keep their source
// order through enrichment and serialization, and so that fields this
// package knows nothing about pass through untouched.
type Document struct {
	root *yaml.Node
}

// NewDocument wraps a parsed node. Document nodes are unwrapped to their
// content; anything other than a mapping is rejected.
func NewDocument(node *yaml.Node) (*Document, error) {
	if node == nil {
		return nil, fmt.Errorf("empty document")
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("empty document")
		}
		node = node.Content[0]
	}
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be a mapping, got %s", kindName(node.Kind))
	}
	return &Document{root: node}, nil
}

// Root returns the underlying mapping node.
func (d *Document) Root() *yaml.Node {
	return d.root
}

// Spec decodes the document-level fields into a typed view.
func (d *Document) Spec() (*DocumentSpec, error) {
	var spec DocumentSpec
	if err := d.root.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &spec, nil
}

// Version returns the declared specification version from the "openapi" or
// "swagger" field. It returns nil when neither is present or parsable.
func (d *Document) Version() *semver.Version {
	for _, key := range []string{"openapi", "swagger"} {
		if n := lookup(d.root, key); n != nil && n.Kind == yaml.ScalarNode {
			v, err := semver.NewVersion(n.Value)
			if err == nil {
				return v
			}
		}
	}
	return nil
}

// IsSwagger2 reports whether the document declares Swagger 2.x.
func (d *Document) IsSwagger2() bool {
	if n := lookup(d.root, "swagger"); n != nil {
		return true
	}
	v := d.Version()
	return v != nil && v.Major() == 2
}

// BaseURL derives the URL requests are made against: the first server for
// OpenAPI 3.x, scheme/host/basePath for Swagger 2.0. Falls back to
// http://localhost when the document declares none.
func (d *Document) BaseURL() string {
	spec, err := d.Spec()
	if err != nil {
		return "http://localhost"
	}

	if len(spec.Servers) > 0 {
		return ServerURL(spec.Servers[0])
	}

	if spec.Host == "" && spec.BasePath == "" {
		return "http://localhost"
	}

	scheme := "https"
	if len(spec.Schemes) > 0 {
		scheme = spec.Schemes[0]
	}
	host := spec.Host
	if host == "" {
		host = "localhost"
	}
	return scheme + "://" + host + strings.TrimRight(spec.BasePath, "/")
}

// ServerURL substitutes server variable defaults into the server URL template.
//
// See: https://spec.openapis.org/oas/v3.1.0#server-variable-object
func ServerURL(s Server) string {
	u := s.URL
	for name, v := range s.Variables {
		if v == nil {
			continue
		}
		u = strings.ReplaceAll(u, "{"+name+"}", v.Default)
	}
	if u == "" || strings.HasPrefix(u, "/") {
		u = "http://localhost" + u
	}
	return strings.TrimRight(u, "/")
}

// Paths returns the "paths" mapping. ok is false when the document does not
// expose one.
func (d *Document) Paths() (*Paths, bool) {
	n := lookup(d.root, "paths")
	if n == nil {
		return nil, false
	}
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, false
	}
	return &Paths{doc: d, node: n}, true
}

// PathItem returns the path item declared for path.
func (d *Document) PathItem(path string) (*PathItem, error) {
	paths, ok := d.Paths()
	if !ok {
		return nil, fmt.Errorf("document has no paths")
	}
	for _, item := range paths.Items() {
		if item.Path == path {
			return item, nil
		}
	}
	return nil, fmt.Errorf("path %q not found", path)
}

// Operation returns the operation for a path and lowercase method.
func (d *Document) Operation(path, method string) (*Operation, error) {
	item, err := d.PathItem(path)
	if err != nil {
		return nil, err
	}
	for _, op := range item.Operations() {
		if op.Method == method {
			return op, nil
		}
	}
	return nil, fmt.Errorf("no %s operation on path %q", method, path)
}

// Resolve follows a local JSON reference ("#/components/...") to its node.
//
// See: https://datatracker.ietf.org/doc/html/rfc6901
func (d *Document) Resolve(ref string) (*yaml.Node, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("unsupported reference %q: only local references are resolved", ref)
	}

	node := d.root
	for _, token := range strings.Split(ref[2:], "/") {
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")

		next := lookup(node, token)
		if next == nil {
			return nil, fmt.Errorf("reference %q: %q not found", ref, token)
		}
		node = resolveAlias(next)
	}
	return node, nil
}

// Paths is the ordered "paths" mapping of a document.
//
// Reads see the mapping as it encodes: aliases are followed and merge keys
// ("<<") are expanded. Writes first give the touched branch its own copy of
// anything it shares through an alias or a merge, so anchored nodes reused
// elsewhere never change.
type Paths struct {
	doc  *Document
	node *yaml.Node
}

// Len returns the number of declared paths.
func (p *Paths) Len() int {
	return len(mappingPairs(p.node))
}

// Items returns path items in document order.
func (p *Paths) Items() []*PathItem {
	pairs := mappingPairs(p.node)
	items := make([]*PathItem, 0, len(pairs))
	for _, pair := range pairs {
		items = append(items, &PathItem{
			Path:  pair[0].Value,
			paths: p,
			node:  resolveAlias(pair[1]),
		})
	}
	return items
}

func (p *Paths) writable() (*yaml.Node, error) {
	n := own(p.doc.root, "paths")
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document has no paths mapping")
	}
	p.node = n
	return n, nil
}

// PathItem is one entry of the paths mapping.
type PathItem struct {
	Path  string
	paths *Paths
	node  *yaml.Node
}

// Keys returns every key of the path item, in document order.
func (pi *PathItem) Keys() []string {
	if pi.node.Kind != yaml.MappingNode {
		return nil
	}
	pairs := mappingPairs(pi.node)
	keys := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		keys = append(keys, pair[0].Value)
	}
	return keys
}

// Operations returns the operations of the path item in document order.
// Keys that are not HTTP methods (parameters, servers, extensions) are not
// operations and are left out.
func (pi *PathItem) Operations() []*Operation {
	if pi.node.Kind != yaml.MappingNode {
		return nil
	}
	var ops []*Operation
	for _, pair := range mappingPairs(pi.node) {
		key := pair[0].Value
		if !IsHTTPMethod(key) {
			continue
		}
		ops = append(ops, &Operation{
			Path:   pi.Path,
			Method: key,
			item:   pi,
			node:   resolveAlias(pair[1]),
		})
	}
	return ops
}

// Spec decodes the path-level fields.
func (pi *PathItem) Spec() (*PathItemSpec, error) {
	var spec PathItemSpec
	if pi.node.Kind != yaml.MappingNode {
		return &spec, nil
	}
	if err := pi.node.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode path item %q: %w", pi.Path, err)
	}
	return &spec, nil
}

func (pi *PathItem) writable() (*yaml.Node, error) {
	paths, err := pi.paths.writable()
	if err != nil {
		return nil, err
	}
	n := own(paths, pi.Path)
	if n == nil {
		return nil, fmt.Errorf("path %q not found", pi.Path)
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("path item %q is a %s, not a mapping", pi.Path, kindName(n.Kind))
	}
	pi.node = n
	return n, nil
}

// Operation is a reference to one operation object.
type Operation struct {
	Path   string
	Method string
	item   *PathItem
	node   *yaml.Node
}

// HTTPMethod returns the canonical upper-case method name.
func (o *Operation) HTTPMethod() string {
	return httpMethods[o.Method]
}

// writable returns the operation as a mapping that can be changed in place.
// A null operation ("get:" with no body) becomes an empty mapping.
func (o *Operation) writable() (*yaml.Node, error) {
	if !isNull(o.node) && o.node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("operation %s %s is a %s, not a mapping", o.Method, o.Path, kindName(o.node.Kind))
	}
	item, err := o.item.writable()
	if err != nil {
		return nil, err
	}
	n := own(item, o.Method)
	if n == nil {
		return nil, fmt.Errorf("no %s operation on path %q", o.Method, o.Path)
	}
	if isNull(n) {
		n.Kind = yaml.MappingNode
		n.Tag = "!!map"
		n.Value = ""
		n.Style = 0
	}
	o.node = n
	return n, nil
}

// Spec decodes the operation into its typed view. A null operation has an
// empty view.
func (o *Operation) Spec() (*OperationSpec, error) {
	var spec OperationSpec
	if isNull(o.node) {
		return &spec, nil
	}
	if o.node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("operation %s %s is a %s, not a mapping", o.Method, o.Path, kindName(o.node.Kind))
	}
	if err := o.node.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode operation %s %s: %w", o.Method, o.Path, err)
	}
	return &spec, nil
}

// HasCodeSamples reports whether the operation declares a non-null
// x-code-samples field, whatever its content.
func (o *Operation) HasCodeSamples() bool {
	n := lookup(o.node, CodeSamplesKey)
	return n != nil && !isNull(resolveAlias(n))
}

// InitCodeSamples adds an empty x-code-samples sequence, replacing an
// explicit null. It reports false, without touching the operation, when the
// field already holds a value.
func (o *Operation) InitCodeSamples() (bool, error) {
	if o.HasCodeSamples() {
		return false, nil
	}
	m, err := o.writable()
	if err != nil {
		return false, err
	}
	if n := own(m, CodeSamplesKey); n != nil {
		n.Kind = yaml.SequenceNode
		n.Tag = "!!seq"
		n.Value = ""
		n.Style = 0
		n.Content = nil
		return true, nil
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: CodeSamplesKey},
		&yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"},
	)
	return true, nil
}

// samples returns the x-code-samples sequence node for reading.
func (o *Operation) samples() (*yaml.Node, error) {
	if !isNull(o.node) && o.node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("operation %s %s is a %s, not a mapping", o.Method, o.Path, kindName(o.node.Kind))
	}
	n := lookup(o.node, CodeSamplesKey)
	if n == nil {
		return nil, fmt.Errorf("operation %s %s has no %s", o.Method, o.Path, CodeSamplesKey)
	}
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, &FieldTypeError{Field: CodeSamplesKey, Want: "sequence", Got: kindName(n.Kind)}
	}
	return n, nil
}

// SampleCount returns the number of occupied x-code-samples positions.
func (o *Operation) SampleCount() (int, error) {
	seq, err := o.samples()
	if err != nil {
		return 0, err
	}
	return len(seq.Content), nil
}

// CodeSamples decodes every entry. Entries written by other tools that do
// not look like samples decode to zero values.
func (o *Operation) CodeSamples() ([]Sample, error) {
	seq, err := o.samples()
	if err != nil {
		return nil, err
	}
	out := make([]Sample, 0, len(seq.Content))
	for _, n := range seq.Content {
		var s Sample
		_ = n.Decode(&s)
		out = append(out, s)
	}
	return out, nil
}

// PutSample writes s at position i if that position is free. It reports
// false and leaves the sequence untouched when an entry already occupies i.
// Positions are never skipped: writing past the end appends.
func (o *Operation) PutSample(i int, s Sample) (bool, error) {
	count, err := o.SampleCount()
	if err != nil {
		return false, err
	}
	if i < count {
		return false, nil
	}
	m, err := o.writable()
	if err != nil {
		return false, err
	}
	seq := own(m, CodeSamplesKey)
	seq.Content = append(seq.Content, s.node())
	return true, nil
}

// Sample is one generated client example.
type Sample struct {
	Lang   string `yaml:"lang" json:"lang"`
	Source string `yaml:"source" json:"source"`
}

func (s Sample) node() *yaml.Node {
	source := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Source}
	if strings.Contains(s.Source, "\n") {
		source.Style = yaml.LiteralStyle
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "lang"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Lang},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "source"},
			source,
		},
	}
}

// FieldTypeError reports a field whose node kind cannot be used.
type FieldTypeError struct {
	Field string
	Want  string
	Got   string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %q must be a %s, got %s", e.Field, e.Want, e.Got)
}

// lookup returns the value node for key in a mapping, or nil. Keys brought
// in through merge keys are found too.
func lookup(m *yaml.Node, key string) *yaml.Node {
	m = resolveAlias(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for _, pair := range mappingPairs(m) {
		if pair[0].Value == key {
			return pair[1]
		}
	}
	return nil
}

// own returns the value for key in the mapping m, ready to be changed in
// place. Merge keys in m are inlined first. A value that is an alias or
// carries an anchor is replaced by a private copy. Returns nil when m has
// no such key.
func own(m *yaml.Node, key string) *yaml.Node {
	inlineMerges(m)
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		if v.Kind == yaml.AliasNode || v.Anchor != "" {
			v = detach(v)
			m.Content[i+1] = v
		}
		return v
	}
	return nil
}

// inlineMerges rewrites m so that every key it encodes is declared on m
// itself. Merged values are copied, so m shares nothing through the merge.
// The encoded form is unchanged.
func inlineMerges(m *yaml.Node) {
	merged := false
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].ShortTag() == "!!merge" {
			merged = true
			break
		}
	}
	if !merged {
		return
	}

	declared := make(map[*yaml.Node]bool, len(m.Content)/2)
	for i := 1; i < len(m.Content); i += 2 {
		declared[m.Content[i]] = true
	}

	pairs := mappingPairs(m)
	content := make([]*yaml.Node, 0, 2*len(pairs))
	for _, pair := range pairs {
		key, value := pair[0], pair[1]
		if !declared[value] {
			key = detach(key)
			value = detach(value)
		}
		content = append(content, key, value)
	}
	m.Content = content
}

// detach returns a deep copy of n with aliases at the top resolved and
// anchors dropped. Nested aliases are kept as references.
func detach(n *yaml.Node) *yaml.Node {
	n = resolveAlias(n)
	c := *n
	c.Anchor = ""
	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			if child.Kind == yaml.AliasNode {
				c.Content[i] = child
				continue
			}
			c.Content[i] = detach(child)
		}
	}
	return &c
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
