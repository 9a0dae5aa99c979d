package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		err := Config(New(`unknown target "cobol_punchcard"`))
		assert.True(t, IsConfig(err))
		assert.False(t, IsIO(err))
		assert.Equal(t, "config", Kind(err))
		assert.Contains(t, err.Error(), "cobol_punchcard")
	})

	t.Run("io survives wrapping", func(t *testing.T) {
		err := Wrap(IO(New("permission denied")), "write result.json")
		assert.True(t, IsIO(err))
		assert.Equal(t, "io", Kind(err))
	})

	t.Run("structure via fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("enrich: %w", Mark(New("missing paths"), ErrStructure))
		assert.True(t, IsStructure(err))
		assert.Equal(t, "structure", Kind(err))
	})

	t.Run("unclassified", func(t *testing.T) {
		assert.Equal(t, "internal", Kind(New("boom")))
		assert.Equal(t, "", Kind(nil))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Config(nil))
		assert.NoError(t, IO(nil))
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(New("fatal")))
	assert.Equal(t, 1, ExitCode(Config(New("bad target"))))
}

func TestHints(t *testing.T) {
	err := WithHint(Config(New("wrong output type")), "use a .json filename")
	assert.True(t, IsConfig(err))
	assert.Equal(t, []string{"use a .json filename"}, GetAllHints(err))
}
