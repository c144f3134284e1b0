package highlight

import (
	"testing"

	"github.com/kiro-editor/kiro/internal/language"
	"github.com/kiro-editor/kiro/internal/row"
	"github.com/stretchr/testify/assert"
)

func TestHighlightLineOneTagPerRenderedChar(t *testing.T) {
	cases := []string{
		"",
		"let x = 42;",
		"\tindented\ttabs",
		"// a comment",
		"\"a string\" after",
		"'a' 'b'",
	}
	table := TableFor(language.Rust)
	for _, c := range cases {
		r := row.New(c)
		var state LineState
		tags := HighlightLine(r, table, &state)
		assert.Equal(t, len(r.Render()), len(tags), "input=%q", c)
	}
}

func TestHighlightLineKeyword(t *testing.T) {
	table := TableFor(language.Go)
	r := row.New("func main")
	var state LineState
	tags := HighlightLine(r, table, &state)
	assert.Equal(t, Keyword, tags[0])
}

func TestHighlightLineBlockCommentPersists(t *testing.T) {
	table := TableFor(language.Go)
	r1 := row.New("/* start")
	r2 := row.New("still comment */")
	var state LineState
	HighlightLine(r1, table, &state)
	assert.True(t, state.InBlockComment)
	tags2 := HighlightLine(r2, table, &state)
	assert.Equal(t, Comment, tags2[0])
	assert.False(t, state.InBlockComment)
}

func TestHighlightingUpdateMatchesOverlayPaintedLast(t *testing.T) {
	h := New(language.Plain)
	rows := []*row.Row{row.New("hello world")}
	h.SetMatches([]Region{{Y: 0, StartCol: 0, EndCol: 5, HasMatch: true}})
	h.Update(rows, 1)
	tags := h.Lines(0)
	for i := 0; i < 5; i++ {
		assert.Equal(t, Match, tags[i])
	}
}
