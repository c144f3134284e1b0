package highlight

import (
	"github.com/kiro-editor/kiro/internal/language"
	"github.com/kiro-editor/kiro/internal/row"
)

// Region is a rectangular, line-bounded overlay used to paint search
// matches over the syntax highlight of one row.
type Region struct {
	Y          int
	StartCol   int
	EndCol     int
	HasMatch   bool
}

// Highlighting holds one tag-per-rendered-character vector per row of a
// TextBuffer, plus the active search-match overlays painted over it. The
// current match is always last in the slice so it paints over any other
// visible occurrence it overlaps.
type Highlighting struct {
	lang     language.Language
	table    Table
	lines    [][]Tag
	states   []LineState
	matched  []Region
	needsUpdate bool
	prevBottom  int
}

// New builds an empty Highlighting for lang.
func New(lang language.Language) *Highlighting {
	return &Highlighting{
		lang:        lang,
		table:       TableFor(lang),
		needsUpdate: true,
	}
}

// LangChanged rebuilds the table when the owning buffer's language changes
// (e.g. after save-as to a new extension) and forces a full re-highlight.
func (h *Highlighting) LangChanged(lang language.Language) {
	if lang == h.lang {
		return
	}
	h.lang = lang
	h.table = TableFor(lang)
	h.lines = nil
	h.states = nil
	h.needsUpdate = true
	h.prevBottom = 0
}

// Lines returns the tag vector for row y, or nil if it hasn't been computed.
func (h *Highlighting) Lines(y int) []Tag {
	if y < 0 || y >= len(h.lines) {
		return nil
	}
	return h.lines[y]
}

// NeedsUpdate marks the highlighting as stale, forcing the next Update to
// recompute rather than skip.
func (h *Highlighting) NeedsUpdate() { h.needsUpdate = true }

// SetMatches installs the active search-match overlays: every other visible
// occurrence of the query, plus the current match last so it paints over
// them where they coincide.
func (h *Highlighting) SetMatches(regions []Region) {
	h.matched = regions
	h.needsUpdate = true
}

// ClearPreviousMatch drops the active match overlays and returns the lowest
// row they affected so the caller can mark that row dirty, and whether any
// overlay existed.
func (h *Highlighting) ClearPreviousMatch() (int, bool) {
	if len(h.matched) == 0 {
		return 0, false
	}
	y := h.matched[0].Y
	for _, r := range h.matched[1:] {
		if r.Y < y {
			y = r.Y
		}
	}
	h.matched = nil
	h.needsUpdate = true
	return y, true
}

// Update recomputes tags for rows [0, bottom) when needsUpdate is set or
// bottom exceeds the previously-computed watermark, then paints the match
// overlay over the result last.
func (h *Highlighting) Update(rows []*row.Row, bottom int) {
	if !h.needsUpdate && bottom <= h.prevBottom {
		return
	}
	if bottom > len(rows) {
		bottom = len(rows)
	}
	for len(h.lines) < bottom {
		h.lines = append(h.lines, nil)
		h.states = append(h.states, LineState{})
	}

	var carry bool
	for y := 0; y < bottom; y++ {
		state := LineState{InBlockComment: carry}
		h.lines[y] = HighlightLine(rows[y], h.table, &state)
		h.states[y] = state
		carry = state.InBlockComment
	}

	for _, m := range h.matched {
		if m.Y >= len(h.lines) {
			continue
		}
		tags := h.lines[m.Y]
		for col := m.StartCol; col < m.EndCol && col < len(tags); col++ {
			tags[col] = Match
		}
	}

	h.needsUpdate = false
	h.prevBottom = bottom
}
