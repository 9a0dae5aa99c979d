package openapi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// The types below are a read-only typed view over the parts of a document
// that snippet generators need. They cover both Swagger 2.0 and OpenAPI 3.x
// field names; fields absent from one version simply stay empty. Decoding
// ignores everything else, so the view never loses data: the document tree
// remains the source of truth.

// DocumentSpec holds the document-level fields used to build request URLs.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
// See: https://swagger.io/specification/v2/#swagger-object
type DocumentSpec struct {
	OpenAPI  string   `yaml:"openapi"`
	Swagger  string   `yaml:"swagger"`
	Info     Info     `yaml:"info"`
	Servers  []Server `yaml:"servers"`
	Host     string   `yaml:"host"`
	BasePath string   `yaml:"basePath"`
	Schemes  []string `yaml:"schemes"`
	Consumes []string `yaml:"consumes"`
	Produces []string `yaml:"produces"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#info-object
type Info struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

// Server represents a server.
//
// See: https://spec.openapis.org/oas/v3.1.0#server-object
type Server struct {
	URL         string                     `yaml:"url"`
	Description string                     `yaml:"description"`
	Variables   map[string]*ServerVariable `yaml:"variables"`
}

// ServerVariable represents a server variable for URL template substitution.
//
// See: https://spec.openapis.org/oas/v3.1.0#server-variable-object
type ServerVariable struct {
	Enum        []string `yaml:"enum"`
	Default     string   `yaml:"default"`
	Description string   `yaml:"description"`
}

// PathItemSpec holds the path-level fields shared by every operation on a path.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
type PathItemSpec struct {
	Ref        string       `yaml:"$ref"`
	Servers    []Server     `yaml:"servers"`
	Parameters []*Parameter `yaml:"parameters"`
}

// OperationSpec describes a single API operation on a path.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
// See: https://swagger.io/specification/v2/#operation-object
type OperationSpec struct {
	OperationID string       `yaml:"operationId"`
	Summary     string       `yaml:"summary"`
	Parameters  []*Parameter `yaml:"parameters"`
	RequestBody *RequestBody `yaml:"requestBody"`
	Servers     []Server     `yaml:"servers"`
	Consumes    []string     `yaml:"consumes"`
	Produces    []string     `yaml:"produces"`
	Deprecated  bool         `yaml:"deprecated"`
}

// Parameter describes a single operation parameter.
// The "in" field determines the parameter location: "query", "header",
// "path", "cookie", or for Swagger 2.0 also "body" and "formData".
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-object
// See: https://swagger.io/specification/v2/#parameter-object
type Parameter struct {
	Ref      string              `yaml:"$ref"`
	Name     string              `yaml:"name"`
	In       string              `yaml:"in"`
	Required bool                `yaml:"required"`
	Schema   *Schema             `yaml:"schema"`
	Example  any                 `yaml:"example"`
	Examples map[string]*Example `yaml:"examples"`

	// Swagger 2.0 non-body parameters carry their type inline.
	Type    string `yaml:"type"`
	Format  string `yaml:"format"`
	Default any    `yaml:"default"`
	Enum    []any  `yaml:"enum"`
}

// Key identifies a parameter within an operation: name and location.
func (p *Parameter) Key() string {
	return p.In + ":" + p.Name
}

// RequestBody describes a single request body.
//
// See: https://spec.openapis.org/oas/v3.1.0#request-body-object
type RequestBody struct {
	Ref      string                `yaml:"$ref"`
	Required bool                  `yaml:"required"`
	Content  map[string]*MediaType `yaml:"content"`
}

// MediaType describes a media type with a schema and optional example.
//
// See: https://spec.openapis.org/oas/v3.1.0#media-type-object
type MediaType struct {
	Schema   *Schema             `yaml:"schema"`
	Example  any                 `yaml:"example"`
	Examples map[string]*Example `yaml:"examples"`
}

// Example represents an example value.
//
// See: https://spec.openapis.org/oas/v3.1.0#example-object
type Example struct {
	Summary string `yaml:"summary"`
	Value   any    `yaml:"value"`
}

// SchemaType represents a JSON Schema type that can be a single string
// or an array of strings (per JSON Schema Draft 2020-12, section 6.1.1).
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.1
type SchemaType struct {
	value []string
}

// Primary returns the first non-null type, or "" when unset.
func (st SchemaType) Primary() string {
	for _, v := range st.value {
		if v != "null" {
			return v
		}
	}
	return ""
}

// UnmarshalYAML decodes the schema type from either a YAML scalar or sequence.
func (st *SchemaType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		st.value = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		st.value = arr
		return nil
	default:
		return fmt.Errorf("unsupported YAML node kind %d for SchemaType", node.Kind)
	}
}

// Schema is the subset of a JSON Schema object that drives placeholder values.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
type Schema struct {
	Ref        string             `yaml:"$ref"`
	Type       SchemaType         `yaml:"type"`
	Format     string             `yaml:"format"`
	Default    any                `yaml:"default"`
	Example    any                `yaml:"example"`
	Examples   []any              `yaml:"examples"`
	Enum       []any              `yaml:"enum"`
	Items      *Schema            `yaml:"items"`
	Properties map[string]*Schema `yaml:"properties"`
}
