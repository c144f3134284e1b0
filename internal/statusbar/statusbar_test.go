package statusbar

import (
	"testing"

	"github.com/kiro-editor/kiro/internal/language"
	"github.com/stretchr/testify/assert"
)

func TestRedrawLatch(t *testing.T) {
	var s StatusBar
	assert.False(t, s.Redraw())
	s.SetFilename("main.go")
	assert.True(t, s.Redraw())
	s.Clear()
	assert.False(t, s.Redraw())
	s.SetFilename("main.go")
	assert.False(t, s.Redraw(), "setting the same value should not re-latch")
}

func TestUpdateFrom(t *testing.T) {
	var s StatusBar
	s.UpdateFrom(true, language.Go, "main.go", 3, 1, 10)
	assert.Contains(t, s.Left(), "main.go")
	assert.Contains(t, s.Left(), "(modified)")
	assert.Contains(t, s.Right(), "go")
}
