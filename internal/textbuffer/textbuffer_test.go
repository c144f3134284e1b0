package textbuffer

import (
	"testing"

	"github.com/kiro-editor/kiro/internal/edit"
	"github.com/stretchr/testify/assert"
)

func invariant(t *testing.T, tb *TextBuffer) {
	t.Helper()
	assert.GreaterOrEqual(t, tb.Cy(), 0)
	assert.LessOrEqual(t, tb.Cy(), len(tb.Rows()))
	if tb.Cy() < len(tb.Rows()) {
		assert.LessOrEqual(t, tb.Cx(), tb.Rows()[tb.Cy()].Len())
	} else {
		assert.Equal(t, 0, tb.Cx())
	}
}

func TestInsertCharAndInsertLineMaintainInvariant(t *testing.T) {
	tb := New()
	for _, c := range "abc" {
		tb.InsertChar(c)
		invariant(t, tb)
	}
	tb.InsertLine()
	invariant(t, tb)
	for _, c := range "def" {
		tb.InsertChar(c)
		invariant(t, tb)
	}
	assert.Equal(t, "abc", tb.Rows()[0].Buffer())
	assert.Equal(t, "def", tb.Rows()[1].Buffer())
}

func TestDeleteCharSquashesLines(t *testing.T) {
	tb := New()
	tb.InsertChar('a')
	tb.InsertLine()
	tb.InsertChar('b')
	invariant(t, tb)

	tb.DeleteChar() // removes 'b'
	tb.DeleteChar() // at col 0, squashes into previous line
	invariant(t, tb)
	assert.Len(t, tb.Rows(), 1)
	assert.Equal(t, "a", tb.Rows()[0].Buffer())
}

func TestUndoRedoIsIdentity(t *testing.T) {
	tb := New()
	h := tb.History()

	h.StartNewChange()
	tb.InsertChar('a')
	tb.InsertChar('b')
	h.EndNewChange()

	before := tb.Rows()[0].Buffer()
	beforeCx, beforeCy := tb.Cx(), tb.Cy()

	change, ok := h.Undo()
	assert.True(t, ok)
	tb.ApplyChange(change, edit.Undo)
	assert.Equal(t, "", tb.Rows()[0].Buffer())

	redoChange, ok := h.Redo()
	assert.True(t, ok)
	tb.ApplyChange(redoChange, edit.Redo)

	assert.Equal(t, before, tb.Rows()[0].Buffer())
	assert.Equal(t, beforeCx, tb.Cx())
	assert.Equal(t, beforeCy, tb.Cy())
}

func TestDeleteUntilHeadOfLine(t *testing.T) {
	tb := New()
	for _, c := range "hello" {
		tb.InsertChar(c)
	}
	tb.SetCursor(3, 0)
	tb.DeleteUntilHeadOfLine()
	assert.Equal(t, "lo", tb.Rows()[0].Buffer())
	assert.Equal(t, 0, tb.Cx())
}

func TestDeleteUntilEndOfLine(t *testing.T) {
	tb := New()
	for _, c := range "hello" {
		tb.InsertChar(c)
	}
	tb.SetCursor(2, 0)
	tb.DeleteUntilEndOfLine()
	assert.Equal(t, "he", tb.Rows()[0].Buffer())
}

func TestMoveCursorByWord(t *testing.T) {
	tb := New()
	for _, c := range "foo bar baz" {
		tb.InsertChar(c)
	}
	tb.SetCursor(0, 0)
	tb.MoveCursorByWord(Right)
	assert.Equal(t, 4, tb.Cx())
	tb.MoveCursorByWord(Right)
	assert.Equal(t, 8, tb.Cx())
	tb.MoveCursorByWord(Left)
	assert.Equal(t, 4, tb.Cx())
}

func TestDeleteWord(t *testing.T) {
	tb := New()
	for _, c := range "foo bar" {
		tb.InsertChar(c)
	}
	tb.DeleteWord()
	assert.Equal(t, "foo ", tb.Rows()[0].Buffer())
}
