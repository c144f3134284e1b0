package prompt

import (
	"sort"
	"strings"

	"github.com/kiro-editor/kiro/internal/highlight"
	"github.com/kiro-editor/kiro/internal/rawterm"
	"github.com/kiro-editor/kiro/internal/row"
)

type findDir int

const (
	forward findDir = iota
	backward
)

// TextSearch implements Ctrl-G incremental search: the buffer is flattened
// to one '\n'-joined string with a line-start table so every match can be
// mapped back to a (cx, cy) position without re-scanning rows.
type TextSearch struct {
	savedCx, savedCy         int
	savedRowoff, savedColoff int

	dir            findDir
	matched        bool
	text           string
	lineStarts     []int
	currentOffset  int
}

// NewTextSearch captures the buffer's current cursor and scroll position
// (restored on cancel) and flattens the buffer for substring search.
func NewTextSearch(p *Prompt) *TextSearch {
	rows := p.Buf.Rows()
	ts := &TextSearch{
		savedCx:     p.Buf.Cx(),
		savedCy:     p.Buf.Cy(),
		savedRowoff: p.Screen.RowOff(),
		savedColoff: p.Screen.ColOff(),
		dir:         forward,
	}

	var b strings.Builder
	ts.lineStarts = make([]int, len(rows))
	pos := 0
	for i, r := range rows {
		ts.lineStarts[i] = pos
		b.WriteString(r.Buffer())
		b.WriteByte('\n')
		pos += len(r.Buffer()) + 1
	}
	ts.text = b.String()

	cx, cy := p.Buf.Cx(), p.Buf.Cy()
	if cy >= len(rows) {
		cx, cy = 0, 0
	}
	ts.currentOffset = ts.posToOffset(cx, cy, rows)
	return ts
}

func (ts *TextSearch) nearestLine(byteOffset int) int {
	return sort.Search(len(ts.lineStarts), func(i int) bool {
		return ts.lineStarts[i] > byteOffset
	}) - 1
}

func (ts *TextSearch) offsetToPos(byteOffset int, rows []*row.Row) (cx, cy int) {
	y := ts.nearestLine(byteOffset)
	if y < 0 {
		y = 0
	}
	xOffset := byteOffset - ts.lineStarts[y]
	cx = len([]rune(rows[y].Buffer()[:xOffset]))
	return cx, y
}

func (ts *TextSearch) posToOffset(cx, cy int, rows []*row.Row) int {
	if cy >= len(rows) {
		return len(ts.text)
	}
	rs := []rune(rows[cy].Buffer())
	if cx > len(rs) {
		cx = len(rs)
	}
	byteIdx := len(string(rs[:cx]))
	return ts.lineStarts[cy] + byteIdx
}

func (ts *TextSearch) findAt(query string, off int) (int, bool) {
	switch ts.dir {
	case forward:
		if idx := strings.Index(ts.text[off:], query); idx >= 0 {
			return off + idx, true
		}
		if idx := strings.Index(ts.text[:off], query); idx >= 0 {
			return idx, true
		}
	case backward:
		if idx := strings.LastIndex(ts.text[:off], query); idx >= 0 {
			return idx, true
		}
		if idx := strings.LastIndex(ts.text[off:], query); idx >= 0 {
			return off + idx, true
		}
	}
	return 0, false
}

func (ts *TextSearch) rejectMatchToCurrent() {
	switch ts.dir {
	case forward:
		rs := []rune(ts.text[ts.currentOffset:])
		if len(rs) > 1 {
			ts.currentOffset += len(string(rs[0]))
		} else {
			ts.currentOffset = 0
		}
	case backward:
		rs := []rune(ts.text[:ts.currentOffset])
		if len(rs) > 0 {
			ts.currentOffset -= len(string(rs[len(rs)-1]))
		} else {
			ts.currentOffset = len(ts.text)
		}
	}
}

func (ts *TextSearch) cleanupMatchHighlight(p *Prompt) {
	if !ts.matched {
		return
	}
	if y, ok := p.Hl.ClearPreviousMatch(); ok {
		p.Hl.NeedsUpdate()
		p.Screen.SetDirtyStart(y)
	}
}

func (ts *TextSearch) handleSeq(seq rawterm.InputSeq) {
	switch {
	case seq.Kind == rawterm.RightKey, seq.Kind == rawterm.DownKey,
		seq.Kind == rawterm.KeyByte && seq.Ctrl && (seq.Byte == 'f' || seq.Byte == 'n'):
		ts.dir = forward
	case seq.Kind == rawterm.LeftKey, seq.Kind == rawterm.UpKey,
		seq.Kind == rawterm.KeyByte && seq.Ctrl && (seq.Byte == 'b' || seq.Byte == 'p'):
		ts.dir = backward
	default:
		ts.matched = false
	}
}

// visibleByteRange maps the screen's current row window to a byte range in
// the flattened text, so the sliding match scan only looks at what's on
// screen.
func (ts *TextSearch) visibleByteRange(p *Prompt, rows []*row.Row) (lo, hi int) {
	top := p.Screen.RowOff()
	if top >= len(rows) {
		return len(ts.text), len(ts.text)
	}
	bottom := top + p.Screen.Rows()
	if bottom >= len(rows) {
		return ts.lineStarts[top], len(ts.text)
	}
	return ts.lineStarts[top], ts.lineStarts[bottom]
}

// visibleMatches slides query across the visible byte range, collecting an
// overlay for every occurrence other than currentOff (the current match,
// which the caller appends last so it paints over any overlap).
func (ts *TextSearch) visibleMatches(query string, p *Prompt, rows []*row.Row, currentOff int) []highlight.Region {
	if query == "" {
		return nil
	}
	lo, hi := ts.visibleByteRange(p, rows)
	if lo >= hi {
		return nil
	}

	var regions []highlight.Region
	seg := ts.text[lo:hi]
	for off := 0; ; {
		idx := strings.Index(seg[off:], query)
		if idx < 0 {
			break
		}
		matchOff := lo + off + idx
		if matchOff != currentOff {
			startCx, startCy := ts.offsetToPos(matchOff, rows)
			endCx, _ := ts.offsetToPos(matchOff+len(query), rows)
			r := rows[startCy]
			regions = append(regions, highlight.Region{Y: startCy, StartCol: r.RxFromCx(startCx), EndCol: r.RxFromCx(endCx), HasMatch: true})
		}
		off += idx + len(query)
		if off >= len(seg) {
			break
		}
	}
	return regions
}

func (ts *TextSearch) search(query string, p *Prompt) {
	off, ok := ts.findAt(query, ts.currentOffset)
	if !ok {
		return
	}
	ts.currentOffset = off

	rows := p.Buf.Rows()
	startCx, startCy := ts.offsetToPos(off, rows)
	endCx, _ := ts.offsetToPos(off+len(query), rows)
	p.Buf.SetCursor(startCx, startCy)

	screenRows := p.Screen.Rows()
	rowoff := startCy - screenRows/2
	if rowoff < 0 {
		rowoff = 0
	}
	p.Screen.SetScroll(rowoff, 0)

	regions := ts.visibleMatches(query, p, rows, off)
	r := rows[startCy]
	regions = append(regions, highlight.Region{Y: startCy, StartCol: r.RxFromCx(startCx), EndCol: r.RxFromCx(endCx), HasMatch: true})
	p.Hl.SetMatches(regions)
	p.Hl.NeedsUpdate()
	p.Screen.SetDirtyStart(p.Screen.RowOff())

	ts.matched = true
}

// OnSeq implements Action: tracks search direction, clears the previous
// match highlight, and re-searches for the (possibly unchanged) query.
func (ts *TextSearch) OnSeq(p *Prompt, input string, seq rawterm.InputSeq) (bool, error) {
	ts.cleanupMatchHighlight(p)
	ts.handleSeq(seq)

	if input == "" {
		return false, nil
	}
	if ts.matched {
		ts.rejectMatchToCurrent()
	}
	ts.search(input, p)
	return true, nil
}

// OnEnd implements Action: reports Found/Not found, or restores the saved
// cursor and scroll position if the search was canceled or empty.
func (ts *TextSearch) OnEnd(p *Prompt, result Result) (Result, error) {
	ts.cleanupMatchHighlight(p)

	out := result
	switch {
	case result.Canceled:
	case result.Input == "":
		out = Result{Canceled: true}
	case ts.matched:
		p.Screen.SetInfoMessage("Found")
	default:
		p.Screen.SetInfoMessage("Not found")
	}

	if out.Canceled {
		p.Buf.SetCursor(ts.savedCx, ts.savedCy)
		p.Screen.SetScroll(ts.savedRowoff, ts.savedColoff)
		p.Screen.SetDirtyStart(p.Screen.RowOff())
	}

	return out, nil
}

var _ Action = (*TextSearch)(nil)
