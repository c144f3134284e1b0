package prompt

import (
	"strings"
	"testing"
)

func TestTemplateBuildAndCursorCol(t *testing.T) {
	tpl := newTemplate("Search: {} (ESC to cancel)")
	if got := tpl.build("abc"); got != "Search: abc (ESC to cancel)" {
		t.Fatalf("build: %q", got)
	}
	if got := tpl.cursorCol("abc"); got != len("Search: ")+3+1 {
		t.Fatalf("cursorCol: %d", got)
	}
}

func TestTemplateWithoutPlaceholderSuffix(t *testing.T) {
	tpl := newTemplate("Save as: {}")
	if got := tpl.build("x.go"); got != "Save as: x.go" {
		t.Fatalf("build: %q", got)
	}
}

func TestDeleteWordFromPrompt(t *testing.T) {
	var b strings.Builder
	b.WriteString("hello world")
	deleteWordFromPrompt(&b)
	if b.String() != "hello " {
		t.Fatalf("got %q", b.String())
	}
}

func TestDeleteWordFromPromptTrailingSpace(t *testing.T) {
	var b strings.Builder
	b.WriteString("hello   ")
	deleteWordFromPrompt(&b)
	if b.String() != "" {
		t.Fatalf("got %q", b.String())
	}
}
