// Package row implements a single line of editor text: its raw character
// buffer and the derived, tab-expanded render form used for screen drawing.
package row

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slices"
)

// TabStop is the display column width tabs expand to the next multiple of.
const TabStop = 8

// Row holds one line of text. Buf is the authoritative content; Render and
// Width are recomputed by every mutator so they always stay consistent with
// Buf, per the component's invariant.
type Row struct {
	buf    []rune
	render []rune
	width  int
	Dirty  bool
}

// New builds a Row from a string, computing its initial render form.
func New(line string) *Row {
	r := &Row{buf: []rune(line)}
	r.updateRender()
	return r
}

// Empty builds a zero-length Row.
func Empty() *Row { return New("") }

// Buffer returns the raw line content.
func (r *Row) Buffer() string { return string(r.buf) }

// Render returns the tab-expanded display form.
func (r *Row) Render() []rune { return r.render }

// Len is the number of code points in the raw buffer.
func (r *Row) Len() int { return len(r.buf) }

// CharAt returns the code point at character index at, or false if out of range.
func (r *Row) CharAt(at int) (rune, bool) {
	if at < 0 || at >= len(r.buf) {
		return 0, false
	}
	return r.buf[at], true
}

// RuneDisplayWidth is the East-Asian-width-aware column width of a single
// non-tab rune, exported so the highlighter can keep its tag stream aligned
// one-for-one with Render's expansion.
func RuneDisplayWidth(c rune) int { return runeWidth(c) }

func runeWidth(c rune) int {
	if c == 0 {
		return 0
	}
	w := runewidth.RuneWidth(c)
	if w == 0 {
		return 1
	}
	return w
}

func (r *Row) updateRender() {
	r.render = r.render[:0]
	col := 0
	for _, c := range r.buf {
		if c == '\t' {
			r.render = append(r.render, ' ')
			col++
			for col%TabStop != 0 {
				r.render = append(r.render, ' ')
				col++
			}
		} else {
			r.render = append(r.render, c)
			col += runeWidth(c)
		}
	}
	r.width = col
	r.Dirty = true
}

// RxFromCx converts a character index into a rendered column: tabs advance
// to the next multiple of TabStop, other characters advance by their
// East-Asian display width.
func (r *Row) RxFromCx(cx int) int {
	if cx > len(r.buf) {
		cx = len(r.buf)
	}
	rx := 0
	for _, c := range r.buf[:cx] {
		if c == '\t' {
			rx += TabStop - (rx % TabStop)
		} else {
			rx += runeWidth(c)
		}
	}
	return rx
}

// CxFromRx is the inverse of RxFromCx: on a non-exact hit it rounds up to
// the first character index whose rendered column exceeds rx, falling back
// to the row length.
func (r *Row) CxFromRx(rx int) int {
	currentRx := 0
	for cx, c := range r.buf {
		if c == '\t' {
			currentRx += TabStop - (currentRx % TabStop)
		} else {
			currentRx += runeWidth(c)
		}
		if currentRx > rx {
			return cx
		}
	}
	return len(r.buf)
}

// InsertChar inserts c at character index at, appending when at is at or
// past the end of the row.
func (r *Row) InsertChar(at int, c rune) {
	if at < 0 || at >= len(r.buf) {
		r.buf = append(r.buf, c)
	} else {
		r.buf = slices.Insert(r.buf, at, c)
	}
	r.updateRender()
}

// InsertStr splices s into the row at character index at.
func (r *Row) InsertStr(at int, s string) {
	rs := []rune(s)
	if len(rs) == 0 {
		return
	}
	if at < 0 || at >= len(r.buf) {
		r.buf = append(r.buf, rs...)
	} else {
		r.buf = slices.Insert(r.buf, at, rs...)
	}
	r.updateRender()
}

// DeleteChar removes the code point at character index at, if in range.
func (r *Row) DeleteChar(at int) {
	if at < 0 || at >= len(r.buf) {
		return
	}
	r.buf = slices.Delete(r.buf, at, at+1)
	r.updateRender()
}

// Append concatenates s onto the tail of the row.
func (r *Row) Append(s string) {
	if s == "" {
		return
	}
	r.buf = append(r.buf, []rune(s)...)
	r.updateRender()
}

// Truncate drops code points from character index at onward.
func (r *Row) Truncate(at int) {
	if at < 0 || at >= len(r.buf) {
		return
	}
	r.buf = r.buf[:at]
	r.updateRender()
}

// Remove drops code points in [start, end).
func (r *Row) Remove(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(r.buf) {
		end = len(r.buf)
	}
	if start >= end {
		return
	}
	r.buf = slices.Delete(r.buf, start, end)
	r.updateRender()
}

// Join concatenates the raw content of a slice of Rows with '\n' between
// them; no separator follows the last row.
func Join(rows []*Row) string {
	var b strings.Builder
	for i, rr := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(rr.Buffer())
	}
	return b.String()
}
