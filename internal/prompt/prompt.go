// Package prompt implements the modal mini-loop used for save-as and
// incremental search: a single message-bar line of input collected a
// keystroke at a time, parameterized by an Action that can react to each
// keystroke and to how the prompt ended.
package prompt

import (
	"strings"

	"github.com/kiro-editor/kiro/internal/highlight"
	"github.com/kiro-editor/kiro/internal/rawterm"
	"github.com/kiro-editor/kiro/internal/screen"
	"github.com/kiro-editor/kiro/internal/statusbar"
	"github.com/kiro-editor/kiro/internal/textbuffer"
)

// Result is the outcome of a prompt run: either the user canceled, or
// typed some (possibly empty) input and confirmed it.
type Result struct {
	Canceled bool
	Input    string
}

// Action customizes prompt behavior beyond plain text collection: OnSeq is
// called after every keystroke that does not end the prompt (heartbeats
// excluded), and OnEnd once the loop exits, with a chance to rewrite the
// final Result.
type Action interface {
	OnSeq(p *Prompt, input string, seq rawterm.InputSeq) (redraw bool, err error)
	OnEnd(p *Prompt, result Result) (Result, error)
}

// NoAction is the trivial Action used by save-as: it never reacts to
// keystrokes and never rewrites the result.
type NoAction struct{}

func (NoAction) OnSeq(*Prompt, string, rawterm.InputSeq) (bool, error) { return false, nil }
func (NoAction) OnEnd(_ *Prompt, result Result) (Result, error)       { return result, nil }

// Prompt drives one modal input line, rendering through the owning
// Screen/TextBuffer/Highlighting/StatusBar so the rest of the window stays
// live underneath the prompt.
type Prompt struct {
	Screen        *screen.Screen
	Buf           *textbuffer.TextBuffer
	Hl            *highlight.Highlighting
	Sb            *statusbar.StatusBar
	EmptyIsCancel bool
}

type template struct {
	prefix, suffix string
	prefixChars    int
}

func newTemplate(prompt string) template {
	parts := strings.SplitN(prompt, "{}", 2)
	prefix, suffix := parts[0], ""
	if len(parts) == 2 {
		suffix = parts[1]
	}
	return template{prefix: prefix, suffix: suffix, prefixChars: len([]rune(prefix))}
}

func (t template) build(input string) string { return t.prefix + input + t.suffix }

func (t template) cursorCol(input string) int { return t.prefixChars + len([]rune(input)) + 1 }

func (p *Prompt) renderScreen(input string, tpl template) error {
	p.Screen.SetInfoMessage(tpl.build(input))
	p.Sb.UpdateFrom(p.Buf.Modified(), p.Buf.Lang(), p.Buf.Filename(), p.Buf.Cx(), p.Buf.Cy(), len(p.Buf.Rows()))
	if err := p.Screen.Render(p.Buf.Rows(), p.Buf.Cx(), p.Buf.Cy(), p.Hl, p.Sb); err != nil {
		return err
	}
	p.Screen.ForceSetCursor(p.Screen.MessageBarRow(), tpl.cursorCol(input))
	p.Sb.Clear()
	return nil
}

// Run collects one line of input. promptText is a template containing one
// "{}" placeholder for the live input. action customizes per-keystroke and
// end-of-prompt behavior; use NoAction{} for plain collection.
func (p *Prompt) Run(promptText string, action Action, in *rawterm.InputReader) (Result, error) {
	tpl := newTemplate(promptText)
	var buf strings.Builder
	canceled := false

	if err := p.renderScreen("", tpl); err != nil {
		return Result{}, err
	}

	for {
		seq, err := in.Next()
		if err != nil {
			return Result{}, err
		}

		if seq.Kind == rawterm.Unidentified {
			if rerr := p.Screen.MaybeResize(); rerr != nil {
				return Result{}, rerr
			}
			if rerr := p.renderScreen(buf.String(), tpl); rerr != nil {
				return Result{}, rerr
			}
			continue
		}

		prevLen := buf.Len()
		done := false

		switch {
		case seq.Kind == rawterm.DeleteKey, seq.Kind == rawterm.KeyByte && seq.Ctrl && seq.Byte == 'h', seq.Kind == rawterm.KeyByte && !seq.Ctrl && seq.Byte == 0x7f:
			s := buf.String()
			if s != "" {
				rs := []rune(s)
				buf.Reset()
				buf.WriteString(string(rs[:len(rs)-1]))
			}
		case seq.Kind == rawterm.KeyByte && seq.Ctrl && (seq.Byte == 'g' || seq.Byte == 'q'), seq.Kind == rawterm.KeyByte && !seq.Ctrl && seq.Byte == 0x1b:
			canceled = true
			done = true
		case seq.Kind == rawterm.KeyByte && !seq.Ctrl && seq.Byte == '\r', seq.Kind == rawterm.KeyByte && seq.Ctrl && seq.Byte == 'm':
			done = true
		case seq.Kind == rawterm.KeyByte && seq.Ctrl && seq.Byte == 'u':
			buf.Reset()
		case seq.Kind == rawterm.KeyByte && seq.Ctrl && seq.Byte == 'w':
			deleteWordFromPrompt(&buf)
		case seq.Kind == rawterm.KeyByte && !seq.Ctrl:
			buf.WriteByte(seq.Byte)
		case seq.Kind == rawterm.Utf8Key:
			buf.WriteRune(seq.Rune)
		}

		if done {
			break
		}

		shouldRender, err := action.OnSeq(p, buf.String(), seq)
		if err != nil {
			return Result{}, err
		}
		if shouldRender || prevLen != buf.Len() {
			if err := p.renderScreen(buf.String(), tpl); err != nil {
				return Result{}, err
			}
		}
	}

	var result Result
	if canceled || (p.EmptyIsCancel && buf.Len() == 0) {
		p.Screen.SetInfoMessage("Canceled")
		result = Result{Canceled: true}
	} else {
		p.Screen.UnsetMessage()
		result = Result{Input: buf.String()}
	}

	return action.OnEnd(p, result)
}

func deleteWordFromPrompt(buf *strings.Builder) {
	s := []rune(buf.String())
	for len(s) > 0 {
		current := s[len(s)-1]
		s = s[:len(s)-1]
		if len(s) > 0 {
			next := s[len(s)-1]
			nextIsNotChar := isPunctOrSpace(next)
			currentIsChar := !isPunctOrSpace(current)
			if currentIsChar && nextIsNotChar {
				break
			}
		}
	}
	buf.Reset()
	buf.WriteString(string(s))
}

func isPunctOrSpace(r rune) bool {
	if r == ' ' || r == '\t' {
		return true
	}
	switch r {
	case '.', ',', ';', ':', '!', '?', '(', ')', '[', ']', '{', '}', '"', '\'', '-', '_', '/', '\\', '+', '=', '*', '&', '|', '<', '>', '@', '#', '$', '%', '^', '~', '`':
		return true
	}
	return false
}
