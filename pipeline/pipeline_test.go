package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/logger"
	"github.com/vitalvas/oasamples/openapi"
	"github.com/vitalvas/oasamples/snippet"
)

const petsYAML = `openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
    post:
      requestBody:
        content:
          application/json:
            example: {name: rex}
  /pets/{id}:
    parameters:
      - {name: id, in: path, required: true, schema: {type: integer, example: 7}}
    delete: {}
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readSamples(t *testing.T, path string) map[string][]openapi.Sample {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]struct {
			Samples []openapi.Sample `json:"x-code-samples"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	out := make(map[string][]openapi.Sample)
	for path, item := range doc.Paths {
		for method, op := range item {
			out[method+" "+path] = op.Samples
		}
	}
	return out
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("yaml input with default targets", func(t *testing.T) {
		input := writeInput(t, "pets.yaml", petsYAML)
		out := filepath.Join(t.TempDir(), "pets.json")

		res, err := Run(ctx, Options{Input: input, Output: out})
		require.NoError(t, err)

		assert.Equal(t, out, res.Output)
		assert.Equal(t, 3, res.Report.Operations)
		assert.Equal(t, 21, res.Report.SamplesAdded)

		samples := readSamples(t, out)
		require.Len(t, samples["post /pets"], 7)
		assert.Equal(t, "c_libcurl", samples["post /pets"][0].Lang)
		assert.Equal(t, "shell_curl", samples["post /pets"][6].Lang)
		assert.Contains(t, samples["post /pets"][6].Source, "--data ")
		assert.Contains(t, samples["post /pets"][4].Source, `req.write("{\"name\":\"rex\"}")`)
		assert.Contains(t, samples["delete /pets/{id}"][6].Source, "http://localhost/pets/7")
	})

	t.Run("output keeps document order", func(t *testing.T) {
		input := writeInput(t, "order.json", `{"paths":{"/z":{"get":{}}},"info":{"title":"T"},"openapi":"3.0.0"}`)
		out := filepath.Join(t.TempDir(), "order.json")

		_, err := Run(ctx, Options{Input: input, Output: out, Targets: []string{"shell_curl"}})
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Regexp(t, `(?s)^\{\s*"paths".*"info".*"openapi"`, string(data))
	})

	t.Run("rerun on own output is a no-op", func(t *testing.T) {
		input := writeInput(t, "pets.yml", petsYAML)
		dir := t.TempDir()
		first := filepath.Join(dir, "first.json")
		second := filepath.Join(dir, "second.json")
		targets := []string{"shell_curl", "python_requests"}

		_, err := Run(ctx, Options{Input: input, Output: first, Targets: targets})
		require.NoError(t, err)
		res, err := Run(ctx, Options{Input: first, Output: second, Targets: targets})
		require.NoError(t, err)

		assert.Zero(t, res.Report.SamplesAdded)
		assert.Equal(t, 6, res.Report.SamplesSkipped)

		a, err := os.ReadFile(first)
		require.NoError(t, err)
		b, err := os.ReadFile(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	})

	t.Run("hash token", func(t *testing.T) {
		input := writeInput(t, "pets.yaml", petsYAML)
		dir := t.TempDir()

		res, err := Run(ctx, Options{Input: input, Output: filepath.Join(dir, "pets-{hash}.json"), Targets: []string{"shell_curl"}})
		require.NoError(t, err)

		sum, err := res.Document.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "pets-"+sum+".json"), res.Output)
		assert.FileExists(t, res.Output)
	})

	t.Run("custom generator", func(t *testing.T) {
		input := writeInput(t, "min.json", `{"paths":{"/pets":{"get":{}}}}`)
		out := filepath.Join(t.TempDir(), "min.json")
		gen := snippet.GeneratorFunc(func(_ *openapi.Document, _, _ string, _ snippet.TargetSet) ([]snippet.Snippet, error) {
			return []snippet.Snippet{{Title: "shell_curl", Content: "curl ..."}}, nil
		})

		_, err := Run(ctx, Options{Input: input, Output: out, Targets: []string{"shell_curl"}, Generator: gen})
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.JSONEq(t, `{"paths":{"/pets":{"get":{"x-code-samples":[{"lang":"shell_curl","source":"curl ..."}]}}}}`, string(data))
	})
}

func TestRunFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("yaml output is rejected before reading", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "result.yaml")
		_, err := Run(ctx, Options{Input: "/does/not/exist.json", Output: out})
		require.Error(t, err)
		assert.True(t, errors.IsConfig(err))
		assert.NoFileExists(t, out)
	})

	t.Run("unknown target is rejected before reading", func(t *testing.T) {
		_, err := Run(ctx, Options{Input: "/does/not/exist.json", Output: "out.json", Targets: []string{"cobol_native"}})
		require.Error(t, err)
		assert.True(t, errors.IsConfig(err))
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := Run(ctx, Options{Input: filepath.Join(t.TempDir(), "nope.json"), Output: "out.json"})
		require.Error(t, err)
		assert.True(t, errors.IsIO(err))
	})

	t.Run("malformed input", func(t *testing.T) {
		input := writeInput(t, "bad.json", `{"paths":`)
		_, err := Run(ctx, Options{Input: input, Output: filepath.Join(t.TempDir(), "out.json")})
		require.Error(t, err)
		assert.True(t, errors.IsStructure(err))
	})

	t.Run("missing paths writes nothing", func(t *testing.T) {
		input := writeInput(t, "nopaths.json", `{"info":{"title":"T"}}`)
		out := filepath.Join(t.TempDir(), "out.json")

		_, err := Run(ctx, Options{Input: input, Output: out})
		require.Error(t, err)
		assert.True(t, errors.IsStructure(err))
		assert.Equal(t, 1, errors.ExitCode(err))
		assert.NoFileExists(t, out)
	})
}

func TestRunLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	input := writeInput(t, "min.json", `{"paths":{"/pets":{"get":{}}}}`)
	out := filepath.Join(t.TempDir(), "min.json")

	_, err := Run(context.Background(), Options{Input: input, Output: out, Logger: log})
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("no targets given, using the default set").Len())

	written := logs.FilterMessage("document written").All()
	require.Len(t, written, 1)
	assert.Equal(t, "success", written[0].ContextMap()["outcome"])
	assert.Equal(t, out, written[0].ContextMap()["output"])
}
