// Package textbuffer implements the ordered sequence of Rows, cursor, file
// binding, and edit operations that record EditDiffs into a History.
package textbuffer

import (
	"bufio"
	"os"
	"strings"

	"github.com/kiro-editor/kiro/internal/edit"
	"github.com/kiro-editor/kiro/internal/language"
	"github.com/kiro-editor/kiro/internal/row"
	"github.com/pkg/errors"
)

// CursorDir names a cardinal direction used by cursor-motion operations.
type CursorDir int

const (
	Left CursorDir = iota
	Right
	Up
	Down
)

// TextBuffer is an ordered sequence of Rows plus cursor, file binding, and
// modification state. Edits mutate rows and emit edit.Diffs into history.
type TextBuffer struct {
	rows     []*row.Row
	cx, cy   int
	filename string
	named    bool
	modified bool
	dirty    bool
	lang     language.Language
	history  *edit.History
}

// New builds an empty, unnamed TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		rows:    []*row.Row{row.Empty()},
		history: &edit.History{},
	}
}

// Open loads path line by line. A nonexistent path yields an empty,
// modified, addressed buffer rather than an error, per the file-format
// contract.
func Open(path string) (*TextBuffer, error) {
	tb := &TextBuffer{
		filename: path,
		named:    true,
		lang:     language.Detect(path),
		history:  &edit.History{},
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			tb.rows = []*row.Row{row.Empty()}
			tb.modified = true
			return tb, nil
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		tb.rows = append(tb.rows, row.New(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(tb.rows) == 0 {
		tb.rows = append(tb.rows, row.Empty())
	}
	return tb, nil
}

// Rows returns the buffer's rows.
func (tb *TextBuffer) Rows() []*row.Row { return tb.rows }

// Cx, Cy are the current cursor character index and row index.
func (tb *TextBuffer) Cx() int { return tb.cx }
func (tb *TextBuffer) Cy() int { return tb.cy }

// SetCursor directly repositions the cursor, used to restore state after a
// canceled prompt.
func (tb *TextBuffer) SetCursor(x, y int) { tb.cx, tb.cy = x, y }

// HasFile reports whether the buffer is addressed to a path (even if that
// path doesn't exist on disk yet).
func (tb *TextBuffer) HasFile() bool { return tb.named }

// Filename is the display name, or "" for an unnamed buffer.
func (tb *TextBuffer) Filename() string { return tb.filename }

// Modified reports whether the buffer has unsaved edits.
func (tb *TextBuffer) Modified() bool { return tb.modified }

// Dirty reports whether the buffer was mutated since the flag was last
// cleared. It is transient: set by any edit operation within a tick, and
// meant to be cleared by the dispatch layer once it has propagated the
// change to Screen and Highlighting.
func (tb *TextBuffer) Dirty() bool { return tb.dirty }

// ClearDirty resets the transient dirty flag, ending the current tick.
func (tb *TextBuffer) ClearDirty() { tb.dirty = false }

// Lang is the detected/assigned language of the buffer.
func (tb *TextBuffer) Lang() language.Language { return tb.lang }

// History exposes the buffer's undo/redo ring for the Editor dispatch layer
// to bracket edit-initiating keypresses.
func (tb *TextBuffer) History() *edit.History { return tb.history }

// SetFile rebinds the buffer to path (used by save-as) and redetects its
// language.
func (tb *TextBuffer) SetFile(path string) {
	tb.filename = path
	tb.named = true
	tb.lang = language.Detect(path)
}

// SetUnnamed rolls back a failed save-as so the buffer remains unnamed.
func (tb *TextBuffer) SetUnnamed() {
	tb.filename = ""
	tb.named = false
}

// Save writes the buffer to its bound file, trailing every row with '\n'.
func (tb *TextBuffer) Save() (int, error) {
	if !tb.named {
		return 0, errors.New("buffer has no file bound")
	}
	content := tb.rowsToString()
	if err := os.WriteFile(tb.filename, []byte(content), 0644); err != nil {
		return 0, errors.Wrapf(err, "writing %s", tb.filename)
	}
	tb.modified = false
	return len(content), nil
}

func (tb *TextBuffer) rowsToString() string {
	var b strings.Builder
	for _, r := range tb.rows {
		b.WriteString(r.Buffer())
		b.WriteByte('\n')
	}
	return b.String()
}

func (tb *TextBuffer) pushDiff(d edit.Diff) { tb.history.Push(d) }

func (tb *TextBuffer) rowLen(y int) int {
	if y < 0 || y >= len(tb.rows) {
		return 0
	}
	return tb.rows[y].Len()
}

func (tb *TextBuffer) clampCx() {
	if tb.cy >= len(tb.rows) {
		tb.cx = 0
		return
	}
	if tb.cx > tb.rowLen(tb.cy) {
		tb.cx = tb.rowLen(tb.cy)
	}
}

// MoveCursorOne moves the cursor one step in dir, wrapping at line
// boundaries for Left/Right, then snaps cx to the new line's length.
func (tb *TextBuffer) MoveCursorOne(dir CursorDir) {
	switch dir {
	case Up:
		if tb.cy > 0 {
			tb.cy--
		}
	case Down:
		if tb.cy < len(tb.rows) {
			tb.cy++
		}
	case Left:
		if tb.cx > 0 {
			tb.cx--
		} else if tb.cy > 0 {
			tb.cy--
			tb.cx = tb.rowLen(tb.cy)
		}
	case Right:
		if tb.cy < len(tb.rows) && tb.cx < tb.rowLen(tb.cy) {
			tb.cx++
		} else if tb.cy < len(tb.rows) && tb.cx == tb.rowLen(tb.cy) {
			tb.cy++
			tb.cx = 0
		}
	}
	tb.clampCx()
}

// MoveCursorPage jumps to the top (Up) or bottom (Down) of the visible
// window, then steps nrows times in that direction.
func (tb *TextBuffer) MoveCursorPage(dir CursorDir, rowoff, nrows int) {
	if dir == Up {
		tb.cy = rowoff
	} else {
		tb.cy = rowoff + nrows - 1
		if tb.cy > len(tb.rows) {
			tb.cy = len(tb.rows)
		}
	}
	for i := 0; i < nrows; i++ {
		if dir == Up {
			tb.MoveCursorOne(Up)
		} else {
			tb.MoveCursorOne(Down)
		}
	}
}

// MoveCursorToBufferEdge jumps to the start/end of the current line (Left/
// Right) or the first/last row (Up/Down).
func (tb *TextBuffer) MoveCursorToBufferEdge(dir CursorDir) {
	switch dir {
	case Left:
		tb.cx = 0
	case Right:
		tb.cx = tb.rowLen(tb.cy)
	case Up:
		tb.cy = 0
		tb.clampCx()
	case Down:
		tb.cy = len(tb.rows)
		tb.clampCx()
	}
}

type charKind int

const (
	kindSpace charKind = iota
	kindIdent
	kindPunc
)

func classifyChar(c rune, ok bool) charKind {
	if !ok {
		return kindSpace
	}
	if c == ' ' || c == '\t' {
		return kindSpace
	}
	if c == '_' || isAlnum(c) {
		return kindIdent
	}
	return kindPunc
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (tb *TextBuffer) charKindAt(x, y int) charKind {
	if y < 0 || y >= len(tb.rows) {
		return kindSpace
	}
	c, ok := tb.rows[y].CharAt(x)
	return classifyChar(c, ok)
}

// MoveCursorByWord steps one character at a time until a word-boundary
// transition is detected in the direction of travel, landing on the first
// character of the next (or previous) word.
func (tb *TextBuffer) MoveCursorByWord(dir CursorDir) {
	prev := tb.charKindAt(tb.cx-1, tb.cy)
	if dir == Right {
		prev = tb.charKindAt(tb.cx, tb.cy)
	}
	for {
		if dir == Right {
			if tb.cy >= len(tb.rows) {
				return
			}
			tb.MoveCursorOne(Right)
		} else {
			if tb.cx == 0 && tb.cy == 0 {
				return
			}
			tb.MoveCursorOne(Left)
		}
		cur := tb.charKindAt(tb.cx, tb.cy)
		// Transitions are read left to right: (prev, cur) when moving right,
		// (cur, prev) when moving left.
		if dir == Right && transition(prev, cur) || dir == Left && transition(cur, prev) {
			break
		}
		prev = cur
		if tb.cy >= len(tb.rows) && dir == Right {
			return
		}
	}
	if dir == Left {
		tb.MoveCursorOne(Right)
	}
}

func transition(prev, cur charKind) bool {
	switch {
	case prev == kindSpace && cur == kindIdent:
		return true
	case prev == kindSpace && cur == kindPunc:
		return true
	case prev == kindPunc && cur == kindIdent:
		return true
	case prev == kindIdent && cur == kindPunc:
		return true
	default:
		return false
	}
}

// MoveCursorParagraph steps one row at a time until reaching a buffer edge
// or an empty-to-nonempty line transition.
func (tb *TextBuffer) MoveCursorParagraph(dir CursorDir) {
	wasEmpty := tb.cy >= len(tb.rows) || tb.rowLen(tb.cy) == 0
	for {
		if dir == Up {
			if tb.cy == 0 {
				return
			}
			tb.cy--
		} else {
			if tb.cy >= len(tb.rows) {
				return
			}
			tb.cy++
		}
		empty := tb.cy >= len(tb.rows) || tb.rowLen(tb.cy) == 0
		if wasEmpty && !empty {
			tb.clampCx()
			return
		}
		wasEmpty = empty
	}
}

// InsertChar inserts c at the cursor, extending the buffer with a new row
// first if the cursor sits on the virtual trailing position.
func (tb *TextBuffer) InsertChar(c rune) {
	if tb.cy == len(tb.rows) {
		tb.rows = append(tb.rows, row.Empty())
		tb.pushDiff(edit.Diff{Kind: edit.Newline})
	}
	tb.rows[tb.cy].InsertChar(tb.cx, c)
	tb.pushDiff(edit.Diff{Kind: edit.InsertChar, X: tb.cx, Y: tb.cy, Char: c})
	tb.cx++
	tb.modified = true
	tb.dirty = true
}

// InsertTab inserts this buffer's language-appropriate indent unit.
func (tb *TextBuffer) InsertTab() {
	ind := language.IndentFor(tb.lang)
	if ind.AsIs {
		tb.InsertChar('\t')
		return
	}
	for _, c := range ind.Text {
		tb.InsertChar(c)
	}
}

// InsertLine splits the current row at the cursor (Enter).
func (tb *TextBuffer) InsertLine() {
	if tb.cy >= len(tb.rows) {
		tb.rows = append(tb.rows, row.Empty())
		tb.pushDiff(edit.Diff{Kind: edit.InsertLine, Y: tb.cy, Str: ""})
	} else if tb.cx == tb.rows[tb.cy].Len() {
		tb.insertRowAt(tb.cy+1, "")
	} else {
		buf := tb.rows[tb.cy].Buffer()
		runes := []rune(buf)
		tailStr := string(runes[tb.cx:])
		tb.insertRowAt(tb.cy+1, tailStr)
		tb.rows[tb.cy].Truncate(tb.cx)
		tb.pushDiff(edit.Diff{Kind: edit.Truncate, Y: tb.cy, Str: tailStr})
	}
	tb.cy++
	tb.cx = 0
	tb.modified = true
	tb.dirty = true
}

func (tb *TextBuffer) insertRowAt(y int, content string) {
	nr := row.New(content)
	tb.rows = append(tb.rows, nil)
	copy(tb.rows[y+1:], tb.rows[y:])
	tb.rows[y] = nr
	tb.pushDiff(edit.Diff{Kind: edit.InsertLine, Y: y, Str: content})
}

// DeleteChar is backspace: deletes the character left of the cursor, or
// squashes the current row into the previous one at column 0.
func (tb *TextBuffer) DeleteChar() {
	if tb.cx == 0 && tb.cy == 0 {
		return
	}
	if tb.cy >= len(tb.rows) {
		return
	}
	if tb.cx > 0 {
		c, _ := tb.rows[tb.cy].CharAt(tb.cx - 1)
		tb.rows[tb.cy].DeleteChar(tb.cx - 1)
		tb.pushDiff(edit.Diff{Kind: edit.DeleteChar, X: tb.cx, Y: tb.cy, Char: c})
		tb.cx--
	} else {
		tb.squashToPreviousLine()
	}
	tb.modified = true
	tb.dirty = true
}

func (tb *TextBuffer) squashToPreviousLine() {
	cur := tb.rows[tb.cy]
	tail := cur.Buffer()
	prevLen := tb.rows[tb.cy-1].Len()
	tb.rows[tb.cy-1].Append(tail)
	tb.pushDiff(edit.Diff{Kind: edit.Append, Y: tb.cy - 1, Str: tail})
	tb.removeRowAt(tb.cy, tail)
	tb.cy--
	tb.cx = prevLen
}

func (tb *TextBuffer) removeRowAt(y int, content string) {
	tb.rows = append(tb.rows[:y], tb.rows[y+1:]...)
	tb.pushDiff(edit.Diff{Kind: edit.DeleteLine, Y: y, Str: content})
}

// DeleteRightChar is Delete/Ctrl-D: moves right then deletes left. At the
// end of the last line this advances the cursor onto the virtual trailing
// position and leaves it there, since DeleteChar no-ops once cy is past the
// last row.
func (tb *TextBuffer) DeleteRightChar() {
	tb.MoveCursorOne(Right)
	tb.DeleteChar()
}

// DeleteUntilEndOfLine is Ctrl-K: merges the next row in at end of a
// non-last row, else truncates the row at the cursor.
func (tb *TextBuffer) DeleteUntilEndOfLine() {
	if tb.cy >= len(tb.rows) {
		return
	}
	if tb.cx == tb.rowLen(tb.cy) {
		if tb.cy == len(tb.rows)-1 {
			return
		}
		next := tb.rows[tb.cy+1]
		tail := next.Buffer()
		tb.rows[tb.cy].Append(tail)
		tb.pushDiff(edit.Diff{Kind: edit.Append, Y: tb.cy, Str: tail})
		tb.removeRowAt(tb.cy+1, tail)
	} else {
		removed := string([]rune(tb.rows[tb.cy].Buffer())[tb.cx:])
		tb.rows[tb.cy].Truncate(tb.cx)
		tb.pushDiff(edit.Diff{Kind: edit.Truncate, Y: tb.cy, Str: removed})
	}
	tb.modified = true
	tb.dirty = true
}

// DeleteUntilHeadOfLine is Ctrl-J: squashes into the previous row at
// column 0, else removes [0, cx).
func (tb *TextBuffer) DeleteUntilHeadOfLine() {
	if tb.cy >= len(tb.rows) {
		return
	}
	if tb.cx == 0 {
		if tb.cy > 0 {
			tb.squashToPreviousLine()
			tb.modified = true
			tb.dirty = true
		}
		return
	}
	removed := string([]rune(tb.rows[tb.cy].Buffer())[:tb.cx])
	tb.rows[tb.cy].Remove(0, tb.cx)
	tb.pushDiff(edit.Diff{Kind: edit.Remove, X: tb.cx, Y: tb.cy, Str: removed})
	tb.cx = 0
	tb.modified = true
	tb.dirty = true
}

// DeleteWord is Ctrl-W: from cx-1 walks left over whitespace then over
// non-whitespace, removing [x, cx).
func (tb *TextBuffer) DeleteWord() {
	if tb.cy >= len(tb.rows) || tb.cx == 0 {
		return
	}
	buf := []rune(tb.rows[tb.cy].Buffer())
	x := tb.cx
	for x > 0 && isBlank(buf[x-1]) {
		x--
	}
	for x > 0 && !isBlank(buf[x-1]) {
		x--
	}
	if x == tb.cx {
		return
	}
	removed := string(buf[x:tb.cx])
	tb.rows[tb.cy].Remove(x, tb.cx)
	tb.pushDiff(edit.Diff{Kind: edit.Remove, X: tb.cx, Y: tb.cy, Str: removed})
	tb.cx = x
	tb.modified = true
	tb.dirty = true
}

func isBlank(c rune) bool { return c == ' ' || c == '\t' }

// ApplyChange replays a recorded Change in dir against the buffer's rows,
// leaving the cursor at the position the last diff reports. Used by Undo
// and Redo at the Editor dispatch layer.
func (tb *TextBuffer) ApplyChange(change edit.Change, dir edit.Direction) {
	order := make([]edit.Diff, len(change))
	copy(order, change)
	if dir == edit.Undo {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	var x, y int
	for _, d := range order {
		tb.rows, x, y = edit.Apply(tb.rows, d, dir)
	}
	tb.cx, tb.cy = x, y
	tb.modified = true
	tb.dirty = true
}
