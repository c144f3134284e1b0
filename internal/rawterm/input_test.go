package rawterm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCtrlKey(t *testing.T) {
	r := NewInputReader(strings.NewReader("\x11")) // Ctrl-Q
	seq, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, KeyByte, seq.Kind)
	assert.True(t, seq.Ctrl)
	assert.Equal(t, byte('q'), seq.Byte)
}

func TestDecodePlainKey(t *testing.T) {
	r := NewInputReader(strings.NewReader("a"))
	seq, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, KeyByte, seq.Kind)
	assert.False(t, seq.Ctrl)
	assert.Equal(t, byte('a'), seq.Byte)
}

func TestDecodeArrowKeys(t *testing.T) {
	cases := map[string]KeyKind{
		"\x1b[A": UpKey,
		"\x1b[B": DownKey,
		"\x1b[C": RightKey,
		"\x1b[D": LeftKey,
	}
	for input, want := range cases {
		r := NewInputReader(strings.NewReader(input))
		seq, err := r.Next()
		assert.NoError(t, err)
		assert.Equal(t, want, seq.Kind, "input=%q", input)
	}
}

func TestDecodeTildeKeys(t *testing.T) {
	cases := map[string]KeyKind{
		"\x1b[5~": PageUpKey,
		"\x1b[6~": PageDownKey,
		"\x1b[3~": DeleteKey,
		"\x1b[1~": HomeKey,
	}
	for input, want := range cases {
		r := NewInputReader(strings.NewReader(input))
		seq, err := r.Next()
		assert.NoError(t, err)
		assert.Equal(t, want, seq.Kind, "input=%q", input)
	}
}

func TestDecodeAltKey(t *testing.T) {
	r := NewInputReader(strings.NewReader("\x1bx"))
	seq, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, KeyByte, seq.Kind)
	assert.True(t, seq.Alt)
	assert.Equal(t, byte('x'), seq.Byte)
}

func TestDecodeCursorReport(t *testing.T) {
	r := NewInputReader(strings.NewReader("\x1b[24;80R"))
	seq, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, CursorKey, seq.Kind)
	assert.Equal(t, 24, seq.Row)
	assert.Equal(t, 80, seq.Col)
}

func TestDecodeEmptyYieldsUnidentified(t *testing.T) {
	r := NewInputReader(strings.NewReader(""))
	seq, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, Unidentified, seq.Kind)
}
