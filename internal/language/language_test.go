package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	assert.Equal(t, Rust, Detect("main.rs"))
	assert.Equal(t, Go, Detect("editor.go"))
	assert.Equal(t, Cpp, Detect("widget.hpp"))
	assert.Equal(t, Plain, Detect("README"))
	assert.Equal(t, Plain, Detect("no.ext."))
	assert.Equal(t, Plain, Detect("dir.with.dot/file"))
}

func TestIndentFor(t *testing.T) {
	assert.True(t, IndentFor(Go).AsIs)
	assert.True(t, IndentFor(Plain).AsIs)
	assert.Equal(t, "    ", IndentFor(Rust).Text)
	assert.Equal(t, "  ", IndentFor(JavaScript).Text)
}
