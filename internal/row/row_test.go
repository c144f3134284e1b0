package row

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRxFromCxTabExpansion(t *testing.T) {
	r := New("a\tbc")
	assert.Equal(t, 0, r.RxFromCx(0))
	assert.Equal(t, 1, r.RxFromCx(1))
	assert.Equal(t, TabStop, r.RxFromCx(2))
	assert.Equal(t, TabStop+1, r.RxFromCx(3))
}

func TestCxFromRxRoundTrip(t *testing.T) {
	r := New("hello\tworld")
	for cx := 0; cx <= r.Len(); cx++ {
		rx := r.RxFromCx(cx)
		assert.Equal(t, cx, r.CxFromRx(rx), "cx=%d rx=%d", cx, rx)
	}
}

func TestRxFromCxMonotonic(t *testing.T) {
	r := New("a\tb\tcdef")
	prev := -1
	for cx := 0; cx <= r.Len(); cx++ {
		rx := r.RxFromCx(cx)
		assert.GreaterOrEqual(t, rx, prev)
		prev = rx
	}
}

func TestInsertDeleteChar(t *testing.T) {
	r := New("ac")
	r.InsertChar(1, 'b')
	assert.Equal(t, "abc", r.Buffer())
	r.DeleteChar(1)
	assert.Equal(t, "ac", r.Buffer())
}

func TestAppendTruncateRemove(t *testing.T) {
	r := New("abc")
	r.Append("def")
	assert.Equal(t, "abcdef", r.Buffer())
	r.Truncate(3)
	assert.Equal(t, "abc", r.Buffer())
	r.Remove(0, 1)
	assert.Equal(t, "bc", r.Buffer())
}

func TestInsertCharAppendsPastEnd(t *testing.T) {
	r := New("ab")
	r.InsertChar(5, 'c')
	assert.Equal(t, "abc", r.Buffer())
}

func TestJoin(t *testing.T) {
	rows := []*Row{New("a"), New("b"), New("")}
	assert.Equal(t, "a\nb\n", Join(rows))
}
