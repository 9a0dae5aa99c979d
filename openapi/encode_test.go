package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDocumentJSON(t *testing.T) {
	t.Run("yaml source keeps order", func(t *testing.T) {
		doc := mustParseYAML(t, "paths:\n  /b: {}\n  /a: {}\ninfo: {title: T}\n")
		out, err := doc.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"paths":{"/b":{},"/a":{}},"info":{"title":"T"}}`, string(out))
	})

	t.Run("yaml scalars", func(t *testing.T) {
		doc := mustParseYAML(t, "a: 0x1F\nb: .5\nc: True\nd: ~\ne: '12'\nf: 2024-01-02\ng: -3\n")
		out, err := doc.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"a":31,"b":0.5,"c":true,"d":null,"e":"12","f":"2024-01-02","g":-3}`, string(out))
	})

	t.Run("infinity is rejected", func(t *testing.T) {
		doc := mustParseYAML(t, "a: .inf\n")
		_, err := doc.MarshalJSON()
		assert.ErrorContains(t, err, "no JSON representation")
	})

	t.Run("anchors and merge keys", func(t *testing.T) {
		doc := mustParseYAML(t, `
base: &base {a: 1, b: 2}
child:
  <<: *base
  b: 3
ref: *base
`)
		out, err := doc.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"base":{"a":1,"b":2},"child":{"a":1,"b":3},"ref":{"a":1,"b":2}}`, string(out))
	})

	t.Run("no html escaping", func(t *testing.T) {
		doc := mustParseYAML(t, "s: \"a && b <c>\"\n")
		out, err := doc.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"s":"a && b <c>"}`, string(out))
	})

	t.Run("indented output", func(t *testing.T) {
		doc := mustParseYAML(t, "paths:\n  /pets:\n    get: {}\n")
		out, err := doc.JSON()
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"paths\": {\n    \"/pets\": {\n      \"get\": {}\n    }\n  }\n}\n", string(out))
	})

	t.Run("json marshal uses document order", func(t *testing.T) {
		doc := mustParseYAML(t, "z: 1\na: 2\n")
		out, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.Equal(t, `{"z":1,"a":2}`, string(out))
	})
}

func TestDocumentYAML(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"paths":{"/pets":{"get":{"x-flag":"true"}}}}`))
	require.NoError(t, err)

	op, err := doc.Operation("/pets", "get")
	require.NoError(t, err)
	_, err = op.InitCodeSamples()
	require.NoError(t, err)
	_, err = op.PutSample(0, Sample{Lang: "shell_curl", Source: "curl \\\n  http://x"})
	require.NoError(t, err)

	out, err := doc.YAML()
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	get := back["paths"].(map[string]any)["/pets"].(map[string]any)["get"].(map[string]any)
	assert.Equal(t, "true", get["x-flag"], "string scalars stay strings")
	samples := get[CodeSamplesKey].([]any)
	require.Len(t, samples, 1)
	assert.Equal(t, "curl \\\n  http://x", samples[0].(map[string]any)["source"])
}

func TestDocumentFingerprint(t *testing.T) {
	a1 := mustParseYAML(t, "paths: {/a: {}}\ninfo: {title: T}\n")
	a2, err := ParseJSON([]byte(`{"paths":{"/a":{}},"info":{"title":"T"}}`))
	require.NoError(t, err)
	reordered := mustParseYAML(t, "info: {title: T}\npaths: {/a: {}}\n")
	other := mustParseYAML(t, "paths: {/b: {}}\ninfo: {title: T}\n")

	f1, err := a1.Fingerprint()
	require.NoError(t, err)
	f2, err := a2.Fingerprint()
	require.NoError(t, err)
	f3, err := reordered.Fingerprint()
	require.NoError(t, err)
	f4, err := other.Fingerprint()
	require.NoError(t, err)

	assert.Len(t, f1, 64)
	assert.Equal(t, f1, f2, "same content and order, different source format")
	assert.NotEqual(t, f1, f3, "key order matters")
	assert.NotEqual(t, f1, f4)
}
