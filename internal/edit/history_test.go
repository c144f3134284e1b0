package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryEmptyChangeDiscarded(t *testing.T) {
	var h History
	h.StartNewChange()
	h.EndNewChange()
	_, ok := h.Undo()
	assert.False(t, ok)
}

func TestHistoryUndoRedo(t *testing.T) {
	var h History
	h.StartNewChange()
	h.Push(Diff{Kind: InsertChar, X: 0, Y: 0, Char: 'a'})
	h.EndNewChange()

	c, ok := h.Undo()
	assert.True(t, ok)
	assert.Len(t, c, 1)

	_, ok = h.Undo()
	assert.False(t, ok)

	c, ok = h.Redo()
	assert.True(t, ok)
	assert.Len(t, c, 1)

	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistoryTruncatesRedoTailOnNewChange(t *testing.T) {
	var h History
	h.StartNewChange()
	h.Push(Diff{Kind: InsertChar, Char: 'a'})
	h.EndNewChange()

	h.StartNewChange()
	h.Push(Diff{Kind: InsertChar, Char: 'b'})
	h.EndNewChange()

	h.Undo()
	h.Undo()

	h.StartNewChange()
	h.Push(Diff{Kind: InsertChar, Char: 'c'})
	h.EndNewChange()

	_, ok := h.Redo()
	assert.False(t, ok, "redo tail should have been truncated by the new change")
}

func TestHistoryCapacityEviction(t *testing.T) {
	var h History
	for i := 0; i < MaxEntries+10; i++ {
		h.StartNewChange()
		h.Push(Diff{Kind: InsertChar, Char: rune('a' + i%26)})
		h.EndNewChange()
	}
	assert.Len(t, h.entries, MaxEntries)
	count := 0
	for {
		if _, ok := h.Undo(); !ok {
			break
		}
		count++
	}
	assert.Equal(t, MaxEntries, count)
}
