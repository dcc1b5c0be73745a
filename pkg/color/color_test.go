package color_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sealog-project/sealog/pkg/color"
)

func TestDisabledPassthrough(t *testing.T) {
	color.Disable()

	assert.Equal(t, "ok", color.Success("ok"))
	assert.Equal(t, "bad", color.Error("bad"))
	assert.Equal(t, "warn", color.Warning("warn"))
	assert.Equal(t, "dim", color.Dim("dim"))
	assert.Equal(t, "head", color.Header("head"))
	assert.Equal(t, "abc123", color.Hash("abc123"))
}

func TestFormatVariants(t *testing.T) {
	color.Disable()

	assert.Equal(t, "entry 7 sealed", color.Successf("entry %d sealed", 7))
	assert.Equal(t, "broken at 3", color.Errorf("broken at %d", 3))
}

func TestEnabledAfterDisable(t *testing.T) {
	color.Disable()
	assert.False(t, color.Enabled())
	assert.False(t, strings.Contains(color.Success("ok"), "\033"))
}
