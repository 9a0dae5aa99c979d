package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://{region}.example.com/v1/
    variables:
      region: {default: eu}
paths:
  /pets:
    parameters:
      - {name: limit, in: query, schema: {type: integer}}
    post:
      operationId: createPet
    get:
      operationId: listPets
      x-code-samples:
        - {lang: shell_curl, source: curl existing}
  /pets/{id}:
    summary: single pet
    get:
    delete:
      operationId: deletePet
`

func mustParseYAML(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestNewDocument(t *testing.T) {
	t.Run("rejects non-mapping root", func(t *testing.T) {
		_, err := ParseYAML([]byte("- a\n- b\n"))
		assert.ErrorContains(t, err, "must be a mapping")
	})

	t.Run("rejects empty document", func(t *testing.T) {
		_, err := ParseYAML([]byte(""))
		assert.Error(t, err)
	})
}

func TestDocumentVersion(t *testing.T) {
	t.Run("openapi 3", func(t *testing.T) {
		doc := mustParseYAML(t, petstoreYAML)
		v := doc.Version()
		require.NotNil(t, v)
		assert.Equal(t, uint64(3), v.Major())
		assert.False(t, doc.IsSwagger2())
	})

	t.Run("swagger 2", func(t *testing.T) {
		doc := mustParseYAML(t, "swagger: '2.0'\npaths: {}\n")
		v := doc.Version()
		require.NotNil(t, v)
		assert.Equal(t, uint64(2), v.Major())
		assert.True(t, doc.IsSwagger2())
	})

	t.Run("missing", func(t *testing.T) {
		doc := mustParseYAML(t, "paths: {}\n")
		assert.Nil(t, doc.Version())
	})
}

func TestDocumentBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"server variables are substituted", petstoreYAML, "https://eu.example.com/v1"},
		{"relative server", "openapi: 3.1.0\nservers: [{url: /api}]\n", "http://localhost/api"},
		{"swagger host and base path", "swagger: '2.0'\nhost: api.example.com\nbasePath: /v2\nschemes: [http]\n", "http://api.example.com/v2"},
		{"swagger default scheme", "swagger: '2.0'\nhost: api.example.com\n", "https://api.example.com"},
		{"nothing declared", "openapi: 3.0.0\n", "http://localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustParseYAML(t, tt.src).BaseURL())
		})
	}
}

func TestDocumentPaths(t *testing.T) {
	t.Run("missing paths", func(t *testing.T) {
		doc := mustParseYAML(t, "openapi: 3.0.0\n")
		_, ok := doc.Paths()
		assert.False(t, ok)
	})

	t.Run("paths that is not a mapping", func(t *testing.T) {
		doc := mustParseYAML(t, "paths: [a]\n")
		_, ok := doc.Paths()
		assert.False(t, ok)
	})

	t.Run("document order is kept", func(t *testing.T) {
		doc := mustParseYAML(t, petstoreYAML)
		paths, ok := doc.Paths()
		require.True(t, ok)
		assert.Equal(t, 2, paths.Len())

		items := paths.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "/pets", items[0].Path)
		assert.Equal(t, []string{"parameters", "post", "get"}, items[0].Keys())

		var methods []string
		for _, op := range items[0].Operations() {
			methods = append(methods, op.Method)
		}
		assert.Equal(t, []string{"post", "get"}, methods)

		methods = nil
		for _, op := range items[1].Operations() {
			methods = append(methods, op.HTTPMethod())
		}
		assert.Equal(t, []string{"GET", "DELETE"}, methods)
	})

	t.Run("merge keys are expanded", func(t *testing.T) {
		doc := mustParseYAML(t, `
x-item: &item
  parameters: []
  get: {}
paths:
  /a:
    <<: *item
    post: {}
`)
		paths, ok := doc.Paths()
		require.True(t, ok)

		items := paths.Items()
		require.Len(t, items, 1)
		assert.Equal(t, []string{"parameters", "get", "post"}, items[0].Keys())

		var methods []string
		for _, op := range items[0].Operations() {
			methods = append(methods, op.Method)
		}
		assert.Equal(t, []string{"get", "post"}, methods)
	})

	t.Run("path item spec", func(t *testing.T) {
		doc := mustParseYAML(t, petstoreYAML)
		paths, _ := doc.Paths()
		spec, err := paths.Items()[0].Spec()
		require.NoError(t, err)
		require.Len(t, spec.Parameters, 1)
		assert.Equal(t, "limit", spec.Parameters[0].Name)
	})
}

func TestDocumentOperation(t *testing.T) {
	doc := mustParseYAML(t, petstoreYAML)

	op, err := doc.Operation("/pets", "get")
	require.NoError(t, err)
	spec, err := op.Spec()
	require.NoError(t, err)
	assert.Equal(t, "listPets", spec.OperationID)

	_, err = doc.Operation("/pets", "patch")
	assert.ErrorContains(t, err, "no patch operation")

	_, err = doc.Operation("/owners", "get")
	assert.ErrorContains(t, err, "not found")
}

func TestDocumentResolve(t *testing.T) {
	doc := mustParseYAML(t, `
components:
  parameters:
    Limit: {name: limit, in: query}
  schemas:
    a/b: {type: string}
`)

	n, err := doc.Resolve("#/components/parameters/Limit")
	require.NoError(t, err)
	var p Parameter
	require.NoError(t, n.Decode(&p))
	assert.Equal(t, "limit", p.Name)

	_, err = doc.Resolve("#/components/schemas/a~1b")
	assert.NoError(t, err)

	_, err = doc.Resolve("#/components/parameters/Missing")
	assert.ErrorContains(t, err, "not found")

	_, err = doc.Resolve("other.yaml#/Pet")
	assert.ErrorContains(t, err, "only local references")
}

func TestOperationCodeSamples(t *testing.T) {
	t.Run("existing field", func(t *testing.T) {
		doc := mustParseYAML(t, petstoreYAML)
		op, err := doc.Operation("/pets", "get")
		require.NoError(t, err)

		assert.True(t, op.HasCodeSamples())
		added, err := op.InitCodeSamples()
		require.NoError(t, err)
		assert.False(t, added)

		samples, err := op.CodeSamples()
		require.NoError(t, err)
		assert.Equal(t, []Sample{{Lang: "shell_curl", Source: "curl existing"}}, samples)
	})

	t.Run("positional writes", func(t *testing.T) {
		doc := mustParseYAML(t, petstoreYAML)
		op, err := doc.Operation("/pets", "get")
		require.NoError(t, err)

		written, err := op.PutSample(0, Sample{Lang: "python_requests", Source: "requests.get()"})
		require.NoError(t, err)
		assert.False(t, written, "occupied position must not be overwritten")

		written, err = op.PutSample(1, Sample{Lang: "python_requests", Source: "requests.get()"})
		require.NoError(t, err)
		assert.True(t, written)

		samples, err := op.CodeSamples()
		require.NoError(t, err)
		assert.Equal(t, []Sample{
			{Lang: "shell_curl", Source: "curl existing"},
			{Lang: "python_requests", Source: "requests.get()"},
		}, samples)
	})

	t.Run("null operation becomes a mapping", func(t *testing.T) {
		doc := mustParseYAML(t, petstoreYAML)
		op, err := doc.Operation("/pets/{id}", "get")
		require.NoError(t, err)

		assert.False(t, op.HasCodeSamples())
		added, err := op.InitCodeSamples()
		require.NoError(t, err)
		assert.True(t, added)

		n, err := op.SampleCount()
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("explicit null is treated as absent", func(t *testing.T) {
		doc := mustParseYAML(t, "paths:\n  /a:\n    get:\n      x-code-samples: null\n")
		op, err := doc.Operation("/a", "get")
		require.NoError(t, err)

		assert.False(t, op.HasCodeSamples())
		added, err := op.InitCodeSamples()
		require.NoError(t, err)
		assert.True(t, added)

		n, err := op.SampleCount()
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("writes leave anchored nodes alone", func(t *testing.T) {
		doc := mustParseYAML(t, `
x-base: &base
  x-code-samples: []
paths:
  /a:
    get:
      <<: *base
`)
		op, err := doc.Operation("/a", "get")
		require.NoError(t, err)

		assert.True(t, op.HasCodeSamples())
		written, err := op.PutSample(0, Sample{Lang: "shell_curl", Source: "curl"})
		require.NoError(t, err)
		assert.True(t, written)

		out, err := doc.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t,
			`{"x-base":{"x-code-samples":[]},"paths":{"/a":{"get":{"x-code-samples":[{"lang":"shell_curl","source":"curl"}]}}}}`,
			string(out))
	})

	t.Run("field of the wrong kind", func(t *testing.T) {
		doc := mustParseYAML(t, "paths:\n  /a:\n    get:\n      x-code-samples: {lang: go}\n")
		op, err := doc.Operation("/a", "get")
		require.NoError(t, err)

		_, err = op.SampleCount()
		var fieldErr *FieldTypeError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, CodeSamplesKey, fieldErr.Field)
		assert.Equal(t, "mapping", fieldErr.Got)
	})

	t.Run("scalar operation is rejected", func(t *testing.T) {
		doc := mustParseYAML(t, "paths:\n  /a:\n    get: nope\n")
		op, err := doc.Operation("/a", "get")
		require.NoError(t, err)

		_, err = op.InitCodeSamples()
		assert.ErrorContains(t, err, "not a mapping")
	})
}

func TestIsHTTPMethod(t *testing.T) {
	for _, m := range []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"} {
		assert.True(t, IsHTTPMethod(m), m)
	}
	for _, k := range []string{"parameters", "servers", "summary", "$ref", "x-internal", "GET"} {
		assert.False(t, IsHTTPMethod(k), k)
	}
}
