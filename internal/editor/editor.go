// Package editor ties together Screen, TextBuffer, Highlighting, StatusBar
// and Prompt into the key-dispatch loop: it owns a stack of open buffers,
// bracketed undo history, and the quit confirmation latch.
package editor

import (
	"github.com/kiro-editor/kiro/internal/edit"
	"github.com/kiro-editor/kiro/internal/highlight"
	"github.com/kiro-editor/kiro/internal/prompt"
	"github.com/kiro-editor/kiro/internal/rawterm"
	"github.com/kiro-editor/kiro/internal/screen"
	"github.com/kiro-editor/kiro/internal/statusbar"
	"github.com/kiro-editor/kiro/internal/textbuffer"
)

// openBuffer pairs a TextBuffer with the Highlighting that tracks it; kept
// together so switching buffers is a single slice index change.
type openBuffer struct {
	buf *textbuffer.TextBuffer
	hl  *highlight.Highlighting
}

// Editor drives the main input loop: decode a key, dispatch it against the
// current buffer, then redraw.
type Editor struct {
	in       *rawterm.InputReader
	screen   *screen.Screen
	sb       *statusbar.StatusBar
	buffers  []*openBuffer
	current  int
	quitting bool
}

// New constructs an Editor around an already-entered alternate-screen
// Screen, starting with one empty, unnamed buffer.
func New(in *rawterm.InputReader, scr *screen.Screen) *Editor {
	tb := textbuffer.New()
	e := &Editor{
		in:      in,
		screen:  scr,
		sb:      &statusbar.StatusBar{},
		buffers: []*openBuffer{{buf: tb, hl: highlight.New(tb.Lang())}},
	}
	return e
}

// OpenFile replaces the current buffer slot's content by loading path,
// falling back to an empty named buffer if it doesn't exist yet.
func (e *Editor) OpenFile(path string) error {
	tb, err := textbuffer.Open(path)
	if err != nil {
		return err
	}
	e.cur().buf = tb
	e.cur().hl = highlight.New(tb.Lang())
	e.screen.ForceFullRedraw()
	return nil
}

// OpenFiles loads one buffer per path, following §6's CLI contract: the
// first path replaces the initial empty buffer and becomes active, every
// subsequent path is appended to the buffer stack without switching to it.
func (e *Editor) OpenFiles(paths []string) error {
	for i, path := range paths {
		if i == 0 {
			if err := e.OpenFile(path); err != nil {
				return err
			}
			continue
		}
		tb, err := textbuffer.Open(path)
		if err != nil {
			return err
		}
		e.buffers = append(e.buffers, &openBuffer{buf: tb, hl: highlight.New(tb.Lang())})
	}
	return nil
}

func (e *Editor) cur() *openBuffer { return e.buffers[e.current] }

func (e *Editor) refreshScreen() error {
	cur := e.cur()
	e.sb.UpdateFrom(cur.buf.Modified(), cur.buf.Lang(), cur.buf.Filename(), cur.buf.Cx(), cur.buf.Cy(), len(cur.buf.Rows()))
	return e.screen.Render(cur.buf.Rows(), cur.buf.Cx(), cur.buf.Cy(), cur.hl, e.sb)
}

// Run paints the first frame and then loops: decode, dispatch, redraw,
// until a confirmed quit.
func (e *Editor) Run() error {
	if err := e.refreshScreen(); err != nil {
		return err
	}

	for {
		seq, err := e.in.Next()
		if err != nil {
			return err
		}

		if seq.Kind == rawterm.Unidentified {
			if rerr := e.screen.MaybeResize(); rerr != nil {
				return rerr
			}
			if rerr := e.refreshScreen(); rerr != nil {
				return rerr
			}
			continue
		}

		after, err := e.processKeypress(seq)
		if err != nil {
			return err
		}
		switch after {
		case quit:
			e.screen.Close()
			return nil
		case refresh:
			if rerr := e.refreshScreen(); rerr != nil {
				return rerr
			}
		case doNothing:
		}
	}
}

type afterKeyPress int

const (
	doNothing afterKeyPress = iota
	refresh
	quit
)

func (e *Editor) nextBuffer() {
	e.current = (e.current + 1) % len(e.buffers)
	e.screen.ForceFullRedraw()
}

func (e *Editor) prevBuffer() {
	e.current = (e.current - 1 + len(e.buffers)) % len(e.buffers)
	e.screen.ForceFullRedraw()
}

func (e *Editor) openBufferPrompt() error {
	cur := e.cur()
	p := &prompt.Prompt{Screen: e.screen, Buf: cur.buf, Hl: cur.hl, Sb: e.sb, EmptyIsCancel: true}
	result, err := p.Run("Open file: {} (^G or ESC to cancel)", prompt.NoAction{}, e.in)
	if err != nil {
		return err
	}
	if result.Canceled {
		return nil
	}
	tb, err := textbuffer.Open(result.Input)
	if err != nil {
		e.screen.SetErrorMessage("%s", err.Error())
		return nil
	}
	e.buffers = append(e.buffers, &openBuffer{buf: tb, hl: highlight.New(tb.Lang())})
	e.current = len(e.buffers) - 1
	e.screen.ForceFullRedraw()
	return nil
}

func (e *Editor) save() error {
	cur := e.cur()
	created := false
	if !cur.buf.HasFile() {
		p := &prompt.Prompt{Screen: e.screen, Buf: cur.buf, Hl: cur.hl, Sb: e.sb, EmptyIsCancel: true}
		result, err := p.Run("Save as: {} (^G or ESC to cancel)", prompt.NoAction{}, e.in)
		if err != nil {
			return err
		}
		if result.Canceled {
			return nil
		}
		prevLang := cur.buf.Lang()
		cur.buf.SetFile(result.Input)
		cur.hl.LangChanged(cur.buf.Lang())
		if prevLang != cur.buf.Lang() {
			e.screen.SetDirtyStart(e.screen.RowOff())
		}
		created = true
	}

	n, err := cur.buf.Save()
	if err != nil {
		e.screen.SetErrorMessage("Could not save: %s", err.Error())
		if created {
			cur.buf.SetUnnamed()
		}
		return nil
	}
	e.screen.SetInfoMessage("%d bytes written to %s", n, cur.buf.Filename())
	return nil
}

func (e *Editor) find() error {
	cur := e.cur()
	p := &prompt.Prompt{Screen: e.screen, Buf: cur.buf, Hl: cur.hl, Sb: e.sb, EmptyIsCancel: false}
	ts := prompt.NewTextSearch(p)
	_, err := p.Run("Search: {} (^F/RIGHT forward, ^B/LEFT back, ^G or ESC to cancel)", ts, e.in)
	return err
}

func (e *Editor) showHelp() error {
	if err := e.screen.DrawHelp(); err != nil {
		return err
	}
	for {
		seq, err := e.in.Next()
		if err != nil {
			return err
		}
		if seq.Kind == rawterm.Unidentified {
			if rerr := e.screen.MaybeResize(); rerr != nil {
				return rerr
			}
			if rerr := e.screen.DrawHelp(); rerr != nil {
				return rerr
			}
			continue
		}
		break
	}
	e.screen.SetDirtyStart(e.screen.RowOff())
	return nil
}

func (e *Editor) handleQuit() afterKeyPress {
	if !e.cur().buf.Modified() || e.quitting {
		return quit
	}
	e.quitting = true
	e.screen.SetErrorMessage("File has unsaved changes! Press ^Q again to quit or ^S to save")
	return refresh
}

func (e *Editor) undo() {
	cur := e.cur()
	change, ok := cur.buf.History().Undo()
	if !ok {
		e.screen.SetInfoMessage("Nothing to undo")
		return
	}
	cur.buf.ApplyChange(change, edit.Undo)
	cur.hl.NeedsUpdate()
	e.screen.SetDirtyStart(cur.buf.Cy())
}

func (e *Editor) redo() {
	cur := e.cur()
	change, ok := cur.buf.History().Redo()
	if !ok {
		e.screen.SetInfoMessage("Nothing to redo")
		return
	}
	cur.buf.ApplyChange(change, edit.Redo)
	cur.hl.NeedsUpdate()
	e.screen.SetDirtyStart(cur.buf.Cy())
}
