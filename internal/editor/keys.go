package editor

import (
	"github.com/kiro-editor/kiro/internal/rawterm"
	"github.com/kiro-editor/kiro/internal/textbuffer"
)

// processKeypress dispatches one decoded key against the current buffer.
// The mapping follows the later design iteration: Ctrl-U/Ctrl-R are
// Undo/Redo, Ctrl-J deletes to the head of the line (Ctrl-K already owned
// delete-to-end), and Ctrl-O/Ctrl-X/Alt-X manage the buffer stack.
func (e *Editor) processKeypress(s rawterm.InputSeq) (afterKeyPress, error) {
	cur := e.cur()
	rowoff := e.screen.RowOff()
	rows := e.screen.Rows()

	if editing(s) {
		cur.buf.History().StartNewChange()
	}

	var err error
	switch {
	case s.Kind == rawterm.Unidentified:
		return doNothing, nil

	case ctrl(s, 'p'):
		cur.buf.MoveCursorOne(textbuffer.Up)
	case ctrl(s, 'b'):
		cur.buf.MoveCursorOne(textbuffer.Left)
	case ctrl(s, 'n'):
		cur.buf.MoveCursorOne(textbuffer.Down)
	case ctrl(s, 'f'):
		cur.buf.MoveCursorOne(textbuffer.Right)
	case ctrl(s, 'v'):
		cur.buf.MoveCursorPage(textbuffer.Down, rowoff, rows)
	case ctrl(s, 'a'):
		cur.buf.MoveCursorToBufferEdge(textbuffer.Left)
	case ctrl(s, 'e'):
		cur.buf.MoveCursorToBufferEdge(textbuffer.Right)
	case ctrl(s, 'd'):
		cur.buf.DeleteRightChar()
	case ctrl(s, 'g'):
		err = e.find()
	case ctrl(s, 'h'):
		cur.buf.DeleteChar()
	case ctrl(s, 'k'):
		cur.buf.DeleteUntilEndOfLine()
	case ctrl(s, 'j'):
		cur.buf.DeleteUntilHeadOfLine()
	case ctrl(s, 'w'):
		cur.buf.DeleteWord()
	case ctrl(s, 'u'):
		e.undo()
	case ctrl(s, 'r'):
		e.redo()
	case ctrl(s, 'l'):
		e.screen.SetDirtyStart(rowoff)
	case ctrl(s, 's'):
		err = e.save()
	case ctrl(s, 'i'):
		cur.buf.InsertTab()
	case ctrl(s, 'm'):
		cur.buf.InsertLine()
	case ctrl(s, '?'):
		err = e.showHelp()
	case ctrl(s, 'o'):
		err = e.openBufferPrompt()
	case ctrl(s, 'x'):
		e.nextBuffer()
	case alt(s, 'x'):
		e.prevBuffer()
	case plainEsc(s):
		cur.buf.MoveCursorPage(textbuffer.Up, rowoff, rows)
	case ctrl(s, ']'):
		cur.buf.MoveCursorPage(textbuffer.Down, rowoff, rows)
	case alt(s, 'v'):
		cur.buf.MoveCursorPage(textbuffer.Up, rowoff, rows)
	case alt(s, 'f'):
		cur.buf.MoveCursorByWord(textbuffer.Right)
	case alt(s, 'b'):
		cur.buf.MoveCursorByWord(textbuffer.Left)
	case alt(s, 'n'):
		cur.buf.MoveCursorParagraph(textbuffer.Down)
	case alt(s, 'p'):
		cur.buf.MoveCursorParagraph(textbuffer.Up)
	case alt(s, '<'):
		cur.buf.MoveCursorToBufferEdge(textbuffer.Up)
	case alt(s, '>'):
		cur.buf.MoveCursorToBufferEdge(textbuffer.Down)
	case plainByte(s, 0x08):
		cur.buf.DeleteChar()
	case plainByte(s, 0x7f):
		cur.buf.DeleteChar()
	case plainByte(s, '\r'):
		cur.buf.InsertLine()
	case s.Kind == rawterm.KeyByte && !s.Ctrl && !s.Alt && s.Byte >= 0x20 && s.Byte < 0x7f:
		cur.buf.InsertChar(rune(s.Byte))
	case ctrl(s, 'q'):
		return e.handleQuit(), nil
	case s.Kind == rawterm.UpKey && !s.Ctrl && !s.Alt:
		cur.buf.MoveCursorOne(textbuffer.Up)
	case s.Kind == rawterm.LeftKey && !s.Ctrl && !s.Alt:
		cur.buf.MoveCursorOne(textbuffer.Left)
	case s.Kind == rawterm.DownKey && !s.Ctrl && !s.Alt:
		cur.buf.MoveCursorOne(textbuffer.Down)
	case s.Kind == rawterm.RightKey && !s.Ctrl && !s.Alt:
		cur.buf.MoveCursorOne(textbuffer.Right)
	case s.Kind == rawterm.PageUpKey:
		cur.buf.MoveCursorPage(textbuffer.Up, rowoff, rows)
	case s.Kind == rawterm.PageDownKey:
		cur.buf.MoveCursorPage(textbuffer.Down, rowoff, rows)
	case s.Kind == rawterm.HomeKey:
		cur.buf.MoveCursorToBufferEdge(textbuffer.Left)
	case s.Kind == rawterm.EndKey:
		cur.buf.MoveCursorToBufferEdge(textbuffer.Right)
	case s.Kind == rawterm.DeleteKey:
		cur.buf.DeleteRightChar()
	case s.Kind == rawterm.LeftKey && s.Ctrl:
		cur.buf.MoveCursorByWord(textbuffer.Left)
	case s.Kind == rawterm.RightKey && s.Ctrl:
		cur.buf.MoveCursorByWord(textbuffer.Right)
	case s.Kind == rawterm.DownKey && s.Ctrl:
		cur.buf.MoveCursorParagraph(textbuffer.Down)
	case s.Kind == rawterm.UpKey && s.Ctrl:
		cur.buf.MoveCursorParagraph(textbuffer.Up)
	case s.Kind == rawterm.LeftKey && s.Alt:
		cur.buf.MoveCursorToBufferEdge(textbuffer.Left)
	case s.Kind == rawterm.RightKey && s.Alt:
		cur.buf.MoveCursorToBufferEdge(textbuffer.Right)
	case s.Kind == rawterm.Utf8Key:
		cur.buf.InsertChar(s.Rune)
	default:
		e.screen.SetErrorMessage("Key '%s' not mapped", s.String())
	}

	if err != nil {
		return doNothing, err
	}

	if editing(s) {
		cur.buf.History().EndNewChange()
	}

	if !ctrl(s, 'q') {
		e.quitting = false
	}

	if cur.buf.Dirty() {
		e.screen.SetDirtyFromCursor(cur.buf.Cy())
		cur.hl.NeedsUpdate()
	}
	cur.buf.ClearDirty()
	return refresh, nil
}

func ctrl(s rawterm.InputSeq, b byte) bool {
	return s.Kind == rawterm.KeyByte && s.Ctrl && !s.Alt && s.Byte == b
}

func alt(s rawterm.InputSeq, b byte) bool {
	return s.Kind == rawterm.KeyByte && s.Alt && !s.Ctrl && s.Byte == b
}

func plainByte(s rawterm.InputSeq, b byte) bool {
	return s.Kind == rawterm.KeyByte && !s.Ctrl && !s.Alt && s.Byte == b
}

func plainEsc(s rawterm.InputSeq) bool {
	return s.Kind == rawterm.KeyByte && !s.Ctrl && !s.Alt && s.Byte == 0x1b
}

// editing reports whether s is a key that mutates the buffer and should be
// bracketed into one undo-history Change.
func editing(s rawterm.InputSeq) bool {
	switch {
	case ctrl(s, 'd'), ctrl(s, 'h'), ctrl(s, 'k'), ctrl(s, 'j'), ctrl(s, 'w'),
		ctrl(s, 'i'), ctrl(s, 'm'), plainByte(s, 0x08), plainByte(s, 0x7f), plainByte(s, '\r'):
		return true
	case s.Kind == rawterm.DeleteKey:
		return true
	case s.Kind == rawterm.Utf8Key:
		return true
	case s.Kind == rawterm.KeyByte && !s.Ctrl && !s.Alt && s.Byte >= 0x20 && s.Byte < 0x7f:
		return true
	}
	return false
}
