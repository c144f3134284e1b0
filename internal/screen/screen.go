// Package screen implements the incremental terminal renderer: window
// dimensions, scroll offsets, dirty-line tracking, the message bar's
// Open/Close/Update/DoNothing fold, palette-aware color emission, and the
// single coalesced write-per-frame draw routine.
package screen

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kiro-editor/kiro/internal/highlight"
	"github.com/kiro-editor/kiro/internal/kiroerr"
	"github.com/kiro-editor/kiro/internal/rawterm"
	"github.com/kiro-editor/kiro/internal/row"
	"github.com/kiro-editor/kiro/internal/statusbar"
	"github.com/kiro-editor/kiro/internal/termcolor"
)

const version = "0.1.0"
const messageTimeout = 5 * time.Second

// MessageKind distinguishes plain status text from error text, which is
// drawn with a red background.
type MessageKind int

const (
	Info MessageKind = iota
	Error
)

type message struct {
	text string
	kind MessageKind
	at   time.Time
}

// Screen owns the terminal window: its dimensions, scroll position, dirty
// tracking, message bar, and color palette.
type Screen struct {
	out     *os.File
	in      *os.File
	numCols int
	numRows int

	rx      int
	rowoff  int
	coloff  int

	msg *message
	ctx renderContext

	sig     *sigwinchWatcher
	palette termcolor.Palette

	buf strings.Builder
}

// New acquires the terminal window, validates it meets the minimum usable
// size, enters the alternate screen buffer, and returns a ready Screen.
func New(in, out *os.File) (*Screen, error) {
	rows, cols, err := rawterm.WindowSize(in, out)
	if err != nil {
		return nil, err
	}
	if cols == 0 || rows < 3 {
		return nil, kiroerr.TooSmallWindow(cols, rows)
	}

	s := &Screen{
		out:     out,
		in:      in,
		numCols: cols,
		numRows: rows - 2,
		sig:     newSigwinchWatcher(),
		palette: termcolor.NewPalette(termcolor.DetectProfile()),
	}
	s.ctx = rerenderContext()
	fmt.Fprint(out, "\x1b[?47h")
	s.setMessage(Info, "Ctrl-? for help")
	return s, nil
}

// Close exits the alternate screen buffer, restoring the terminal contents
// that were visible before the editor started.
func (s *Screen) Close() {
	fmt.Fprint(s.out, "\x1b[?47l\x1b[H")
	s.sig.close()
}

// Rows is the number of content rows available this tick: numRows when a
// message is shown (the message line is reserved), numRows+1 when it is
// not (that line is reclaimed for text).
func (s *Screen) Rows() int {
	if s.msg != nil {
		return s.numRows
	}
	return s.numRows + 1
}

// Cols is the window's column count.
func (s *Screen) Cols() int { return s.numCols }

// SetInfoMessage sets a plain status message shown for 5 seconds.
func (s *Screen) SetInfoMessage(format string, args ...interface{}) {
	s.setMessage(Info, fmt.Sprintf(format, args...))
}

// SetErrorMessage sets an error message, drawn with a red background, shown
// for 5 seconds.
func (s *Screen) SetErrorMessage(format string, args ...interface{}) {
	s.setMessage(Error, fmt.Sprintf(format, args...))
}

// MessageText returns the currently displayed message text, or "".
func (s *Screen) MessageText() string {
	if s.msg == nil {
		return ""
	}
	return s.msg.text
}

func (s *Screen) setMessage(kind MessageKind, text string) {
	event := Update
	if s.msg == nil {
		event = Open
	}
	s.msg = &message{text: text, kind: kind, at: nowFunc()}
	s.ctx.drawMessage = foldDrawMessage(s.ctx.drawMessage, event)
}

// UnsetMessage clears any message immediately.
func (s *Screen) UnsetMessage() {
	if s.msg == nil {
		return
	}
	s.msg = nil
	s.ctx.drawMessage = foldDrawMessage(s.ctx.drawMessage, Close)
}

// nowFunc is indirected only so tests could substitute it; production uses
// wall-clock time.
var nowFunc = time.Now

func (s *Screen) updateMessageBar() {
	if s.msg == nil || nowFunc().Sub(s.msg.at) <= messageTimeout {
		return
	}
	s.UnsetMessage()
	s.ctx.setDirtyStart(s.numRows)
}

// SetDirtyFromCursor marks row cy (and everything below it, per the min
// semantics of setDirtyStart) for redraw. Called by the Editor after any
// edit that dirtied the buffer.
func (s *Screen) SetDirtyFromCursor(cy int) { s.ctx.setDirtyStart(cy) }

// SetDirtyStart marks row line (and everything below it, per the min
// semantics of setDirtyStart) for redraw. Exported for Prompt's search
// highlighting, which recomputes scroll offsets directly.
func (s *Screen) SetDirtyStart(line int) { s.ctx.setDirtyStart(line) }

// RowOff, ColOff report the current scroll position.
func (s *Screen) RowOff() int { return s.rowoff }
func (s *Screen) ColOff() int { return s.coloff }

// SetScroll directly repositions the scroll offsets, used by TextSearch to
// center a match and by Prompt cancellation to restore the saved position.
func (s *Screen) SetScroll(rowoff, coloff int) {
	s.rowoff = rowoff
	s.coloff = coloff
}

// ForceFullRedraw marks the whole screen dirty, used after a resize, a
// buffer switch or open, and the help overlay.
func (s *Screen) ForceFullRedraw() { s.ctx.setDirtyStart(0) }

// MarkCursorMoved flags that the cursor needs repositioning even on the
// fast redraw path.
func (s *Screen) MarkCursorMoved() { s.ctx.cursorMoved = true }

// MaybeResize polls the SIGWINCH flag; if it fired, re-queries the window
// size and forces a full redraw.
func (s *Screen) MaybeResize() error {
	if !s.sig.notified() {
		return nil
	}
	rows, cols, err := rawterm.WindowSize(s.in, s.out)
	if err != nil {
		return err
	}
	s.numCols = cols
	s.numRows = rows - 2
	s.ForceFullRedraw()
	return nil
}

// doScroll recomputes rowoff/coloff so the cursor stays inside the visible
// window, choosing a character-boundary-safe coloff when scrolling right.
func (s *Screen) doScroll(rows []*row.Row, cx, cy int) {
	prevRowoff, prevColoff := s.rowoff, s.coloff

	s.rx = 0
	if cy < len(rows) {
		s.rx = rows[cy].RxFromCx(cx)
	}

	if cy < s.rowoff {
		s.rowoff = cy
	}
	if cy >= s.rowoff+s.Rows() {
		s.rowoff = cy - s.Rows() + 1
	}
	if s.rx < s.coloff {
		s.coloff = s.rx
	}
	if s.rx >= s.coloff+s.numCols {
		s.coloff = s.nextColoff(rows, cy, s.rx)
	}

	if s.rowoff != prevRowoff || s.coloff != prevColoff {
		s.ctx.setDirtyStart(s.rowoff)
	}
}

// nextColoff picks the smallest coloff with rendered width >= rx-cols+1
// that lands on a character boundary, so a double-width glyph is never
// split across the left edge of the window.
func (s *Screen) nextColoff(rows []*row.Row, cy, rx int) int {
	if cy >= len(rows) {
		return rx - s.numCols + 1
	}
	render := rows[cy].Render()
	target := rx - s.numCols + 1
	col := 0
	for _, c := range render {
		if col >= target {
			return col
		}
		col += widthOf(c)
	}
	return target
}

func widthOf(c rune) int {
	w := row.RuneDisplayWidth(c)
	if w <= 0 {
		return 1
	}
	return w
}

// Render performs the full per-tick pipeline: scroll, message-bar aging,
// highlight refresh, and the single coalesced draw + flush.
func (s *Screen) Render(rows []*row.Row, cx, cy int, hl *highlight.Highlighting, sb *statusbar.StatusBar) error {
	s.doScroll(rows, cx, cy)
	s.updateMessageBar()
	hl.Update(rows, s.rowoff+s.Rows())

	if err := s.redraw(rows, cx, cy, hl, sb); err != nil {
		return err
	}
	s.ctx.clear()
	return nil
}

func (s *Screen) redraw(rows []*row.Row, cx, cy int, hl *highlight.Highlighting, sb *statusbar.StatusBar) error {
	fastPath := s.ctx.dirtyStart == nil && !sb.Redraw() && s.ctx.drawMessage == DoNothing
	s.buf.Reset()

	if fastPath {
		if s.ctx.cursorMoved {
			s.writeCursorPos(cx, cy)
		}
		return s.flush()
	}

	s.buf.WriteString("\x1b[?25l")
	s.drawRows(rows, hl)
	s.drawStatusBar(sb)
	s.drawMessageBar()
	s.writeCursorPos(cx, cy)
	s.buf.WriteString("\x1b[?25h")
	sb.Clear()
	return s.flush()
}

func (s *Screen) writeCursorPos(cx, cy int) {
	screenY := cy - s.rowoff + 1
	screenX := s.rx - s.coloff + 1
	fmt.Fprintf(&s.buf, "\x1b[%d;%dH", screenY, screenX)
}

func (s *Screen) flush() error {
	_, err := s.out.WriteString(s.buf.String())
	s.buf.Reset()
	if err != nil {
		return kiroerr.IO(err)
	}
	return nil
}

func (s *Screen) drawRows(rows []*row.Row, hl *highlight.Highlighting) {
	dirtyStart := 0
	if s.ctx.dirtyStart != nil {
		dirtyStart = *s.ctx.dirtyStart
	} else {
		return
	}

	for y := 0; y < s.Rows(); y++ {
		fileRow := y + s.rowoff
		if fileRow < dirtyStart {
			continue
		}
		fmt.Fprintf(&s.buf, "\x1b[%d;1H", y+1)

		switch {
		case fileRow < len(rows):
			s.drawTextRow(rows[fileRow], hl.Lines(fileRow))
		case bufIsEmpty(rows) && y == s.Rows()/3:
			s.drawWelcome()
		default:
			s.buf.WriteString(string(s.palette.Sequence(termcolor.Gray)))
			s.buf.WriteByte('~')
			s.buf.WriteString(string(s.palette.Sequence(termcolor.Reset)))
		}

		s.buf.WriteString("\x1b[K")
		s.buf.WriteString("\r\n")
	}
}

// bufIsEmpty reports whether the buffer has no content at all: no rows, or
// a single empty row.
func bufIsEmpty(rows []*row.Row) bool {
	return len(rows) == 0 || (len(rows) == 1 && rows[0].Len() == 0)
}

func (s *Screen) drawTextRow(r *row.Row, tags []highlight.Tag) {
	render := r.Render()
	col := 0
	currentColor := termcolor.Reset
	wroteAny := false
	for i, c := range render {
		w := widthOf(c)
		if col+w <= s.coloff {
			col += w
			continue
		}
		if col >= s.coloff+s.numCols {
			break
		}
		var tag highlight.Tag
		if i < len(tags) {
			tag = tags[i]
		}
		color := tag.Color()
		if color != currentColor {
			s.buf.Write(s.palette.Sequence(color))
			currentColor = color
		}
		s.buf.WriteRune(c)
		wroteAny = true
		col += w
	}
	if wroteAny || currentColor != termcolor.Reset {
		s.buf.Write(s.palette.Sequence(termcolor.Reset))
	}
}

func (s *Screen) drawWelcome() {
	msg := fmt.Sprintf("kiro editor -- version %s", version)
	if len(msg) > s.numCols {
		msg = msg[:s.numCols]
	}
	padding := (s.numCols - len(msg)) / 2
	if padding > 0 {
		s.buf.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		s.buf.WriteByte(' ')
	}
	s.buf.WriteString(msg)
}

func (s *Screen) drawStatusBar(sb *statusbar.StatusBar) {
	fmt.Fprintf(&s.buf, "\x1b[%d;1H", s.numRows+1)
	s.buf.Write(s.palette.Sequence(termcolor.Invert))

	left := sb.Left()
	if len(left) > s.numCols {
		left = left[:s.numCols]
	}
	s.buf.WriteString(left)

	right := sb.Right()
	written := len(left)
	for written < s.numCols {
		remaining := s.numCols - written
		if remaining == len(right) {
			s.buf.WriteString(right)
			break
		}
		s.buf.WriteByte(' ')
		written++
	}

	s.buf.Write(s.palette.Sequence(termcolor.Reset))
	s.buf.WriteString("\r\n")
}

func (s *Screen) drawMessageBar() {
	fmt.Fprintf(&s.buf, "\x1b[%d;1H", s.numRows+2)
	s.buf.WriteString("\x1b[K")
	if s.msg == nil {
		return
	}
	text := s.msg.text
	if len(text) > s.numCols {
		text = text[:s.numCols]
	}
	if s.msg.kind == Error {
		s.buf.Write(s.palette.Sequence(termcolor.RedBG))
		s.buf.WriteString(text)
		s.buf.Write(s.palette.Sequence(termcolor.Reset))
	} else {
		s.buf.WriteString(text)
	}
}

// ForceSetCursor positions the terminal cursor immediately, bypassing the
// normal frame cadence; used by Prompt to park the cursor at the message
// bar column just past the live input buffer.
func (s *Screen) ForceSetCursor(row, col int) {
	fmt.Fprintf(s.out, "\x1b[%d;%dH", row, col)
}

// MessageBarRow is the 1-based terminal row the message bar is drawn on.
func (s *Screen) MessageBarRow() int { return s.numRows + 2 }

// DrawHelp renders the fixed help table as a full-screen overlay, centered
// both horizontally and vertically, with the key column colored Cyan.
func (s *Screen) DrawHelp() error {
	var b strings.Builder
	b.WriteString("\x1b[?25l\x1b[2J\x1b[H")

	totalRows := s.numRows + 2
	keyWidth := longestKeyColumn()
	top := (totalRows - len(helpLines)) / 2
	if top < 0 {
		top = 0
	}
	for i := 0; i < top; i++ {
		b.WriteString("\r\n")
	}
	for _, l := range helpLines {
		line := padKey(l.key, keyWidth) + ": " + l.desc
		pad := (s.numCols - len(line)) / 2
		if pad < 0 {
			pad = 0
		}
		b.WriteString(strings.Repeat(" ", pad))
		b.Write(s.palette.Sequence(termcolor.Cyan))
		b.WriteString(padKey(l.key, keyWidth))
		b.Write(s.palette.Sequence(termcolor.Reset))
		b.WriteString(": ")
		b.WriteString(l.desc)
		b.WriteString("\x1b[K\r\n")
	}
	b.WriteString("\x1b[?25h")
	_, err := s.out.WriteString(b.String())
	if err != nil {
		return kiroerr.IO(err)
	}
	s.ForceFullRedraw()
	return nil
}
