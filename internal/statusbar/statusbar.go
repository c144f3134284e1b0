// Package statusbar caches the left/right status strings with a
// redraw-needed latch set whenever any field's setter observes a change.
package statusbar

import (
	"fmt"

	"github.com/kiro-editor/kiro/internal/language"
)

// StatusBar tracks the fields shown in the bottom status line.
type StatusBar struct {
	modified bool
	filename string
	lang     language.Language
	bufPosX  int
	bufPosY  int
	lineY    int
	lineLen  int
	redraw   bool
}

// Redraw reports whether any field has changed since the last Clear.
func (s *StatusBar) Redraw() bool { return s.redraw }

// Clear resets the redraw latch after the status bar has been drawn.
func (s *StatusBar) Clear() { s.redraw = false }

// SetModified updates the modified flag, latching redraw on change.
func (s *StatusBar) SetModified(m bool) {
	if s.modified != m {
		s.modified = m
		s.redraw = true
	}
}

// SetFilename updates the displayed filename, latching redraw on change.
func (s *StatusBar) SetFilename(name string) {
	if s.filename != name {
		s.filename = name
		s.redraw = true
	}
}

// SetLang updates the displayed language, latching redraw on change.
func (s *StatusBar) SetLang(l language.Language) {
	if s.lang != l {
		s.lang = l
		s.redraw = true
	}
}

// SetBufPos updates the (cx,cy) position, latching redraw on change.
func (s *StatusBar) SetBufPos(x, y int) {
	if s.bufPosX != x || s.bufPosY != y {
		s.bufPosX, s.bufPosY = x, y
		s.redraw = true
	}
}

// SetLinePos updates the (current line, total lines) position, latching
// redraw on change.
func (s *StatusBar) SetLinePos(y, length int) {
	if s.lineY != y || s.lineLen != length {
		s.lineY, s.lineLen = y, length
		s.redraw = true
	}
}

// Left renders the left-aligned status text: filename, position, modified marker.
func (s *StatusBar) Left() string {
	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	mod := ""
	if s.modified {
		mod = "(modified) "
	}
	return fmt.Sprintf("%-20s - %d/%d %s", name, s.bufPosX, s.bufPosY, mod)
}

// Right renders the right-aligned status text: language and line position.
func (s *StatusBar) Right() string {
	return fmt.Sprintf("%s %d/%d", s.lang.Name(), s.lineY, s.lineLen)
}

// UpdateFrom refreshes every field from a buffer's current state in one call.
func (s *StatusBar) UpdateFrom(modified bool, lang language.Language, filename string, cx, cy, numRows int) {
	s.SetModified(modified)
	s.SetLang(lang)
	s.SetFilename(filename)
	s.SetBufPos(cx, cy)
	s.SetLinePos(cy+1, numRows)
}
