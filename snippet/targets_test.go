package snippet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/logger"
)

func TestTargets(t *testing.T) {
	targets := Targets()
	assert.Len(t, targets, 22)

	targets[0].ID = "mutated"
	assert.Equal(t, "c_libcurl", Targets()[0].ID, "callers get a copy")

	for _, id := range defaultIDs {
		_, ok := Lookup(id)
		assert.True(t, ok, id)
		assert.True(t, IsDefault(id), id)
	}
	assert.False(t, IsDefault("shell_wget"))
}

func TestTargetLabel(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"python_requests", "Python (requests)"},
		{"csharp_restsharp", "C# (restsharp)"},
		{"objc_nsurlsession", "Objective-C (nsurlsession)"},
		{"shell_curl", "Shell (curl)"},
		{"node_native", "Node.js (native)"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			target, ok := Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.expected, target.Label())
		})
	}
}

func TestParseTargets(t *testing.T) {
	defaults := []string{
		"c_libcurl", "csharp_restsharp", "go_native", "java_okhttp",
		"node_native", "python_requests", "shell_curl",
	}

	t.Run("explicit list keeps order", func(t *testing.T) {
		set, implicit, err := ParseTargets([]string{"shell_curl", "python_requests"})
		require.NoError(t, err)
		assert.False(t, implicit)
		assert.Equal(t, []string{"shell_curl", "python_requests"}, set.IDs())
		assert.Equal(t, "shell_curl,python_requests", set.String())
	})

	t.Run("duplicates collapse to first position", func(t *testing.T) {
		set, _, err := ParseTargets([]string{"shell_curl", "go_native", "shell_curl"})
		require.NoError(t, err)
		assert.Equal(t, []string{"shell_curl", "go_native"}, set.IDs())
	})

	t.Run("default token", func(t *testing.T) {
		set, implicit, err := ParseTargets([]string{DefaultToken})
		require.NoError(t, err)
		assert.False(t, implicit)
		assert.Equal(t, defaults, set.IDs())
	})

	t.Run("default token skips validation of other tokens", func(t *testing.T) {
		set, _, err := ParseTargets([]string{"cobol_native", "default"})
		require.NoError(t, err)
		assert.Equal(t, defaults, set.IDs())
	})

	t.Run("empty list selects defaults implicitly", func(t *testing.T) {
		set, implicit, err := ParseTargets(nil)
		require.NoError(t, err)
		assert.True(t, implicit)
		assert.Equal(t, 7, set.Len())
	})

	t.Run("unknown target", func(t *testing.T) {
		_, _, err := ParseTargets([]string{"shell_curl", "cobol_native"})
		require.Error(t, err)
		assert.ErrorContains(t, err, `unknown target "cobol_native"`)
		assert.True(t, errors.IsConfig(err))
		assert.NotEmpty(t, errors.GetAllHints(err))
	})

	t.Run("set is immutable", func(t *testing.T) {
		set := DefaultSet()
		ids := set.IDs()
		ids[0] = "mutated"
		assert.Equal(t, "c_libcurl", set.IDs()[0])
	})
}

func TestResolve(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	t.Run("warns on implicit defaults", func(t *testing.T) {
		set, err := Resolve(nil, log)
		require.NoError(t, err)
		assert.Equal(t, 7, set.Len())

		entries := logs.FilterLevelExact(zapcore.WarnLevel).TakeAll()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Message, "default set")
	})

	t.Run("silent for explicit targets", func(t *testing.T) {
		_, err := Resolve([]string{"shell_wget"}, log)
		require.NoError(t, err)
		assert.Zero(t, logs.Len())
	})
}
