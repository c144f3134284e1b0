package screen

import "strings"

// helpLines is the fixed help table shown as a transient full-screen
// overlay on Ctrl-?. Each entry's key column is colored separately from its
// description.
var helpLines = []struct{ key, desc string }{
	{"Ctrl-Q", "Quit"},
	{"Ctrl-S", "Save"},
	{"Ctrl-O", "Open buffer"},
	{"Ctrl-X", "Next buffer"},
	{"Alt-X", "Previous buffer"},
	{"Ctrl-P, Up", "Move cursor up"},
	{"Ctrl-N, Down", "Move cursor down"},
	{"Ctrl-F, Right", "Move cursor right"},
	{"Ctrl-B, Left", "Move cursor left"},
	{"Ctrl-A, Alt-Left, Home", "Move cursor to line start"},
	{"Ctrl-E, Alt-Right, End", "Move cursor to line end"},
	{"Ctrl-V, Ctrl-], PageDown", "Page down"},
	{"Alt-V, Ctrl-[, PageUp", "Page up"},
	{"Alt-F, Ctrl-Right", "Move cursor one word right"},
	{"Alt-B, Ctrl-Left", "Move cursor one word left"},
	{"Alt-N, Ctrl-Down", "Move cursor one paragraph down"},
	{"Alt-P, Ctrl-Up", "Move cursor one paragraph up"},
	{"Alt-<", "Move cursor to top of buffer"},
	{"Alt->", "Move cursor to bottom of buffer"},
	{"Ctrl-H, Backspace", "Delete the previous character"},
	{"Ctrl-D, Delete", "Delete the next character"},
	{"Ctrl-W", "Delete previous word"},
	{"Ctrl-J", "Delete until head of line"},
	{"Ctrl-K", "Delete until end of line"},
	{"Ctrl-U", "Undo last change"},
	{"Ctrl-R", "Redo last undone change"},
	{"Ctrl-G", "Search"},
	{"Ctrl-M, Enter", "Insert new line"},
	{"Ctrl-L", "Refresh screen"},
	{"Ctrl-?", "Show this help"},
}

func longestKeyColumn() int {
	max := 0
	for _, l := range helpLines {
		if len(l.key) > max {
			max = len(l.key)
		}
	}
	return max
}

func padKey(key string, width int) string {
	return key + strings.Repeat(" ", width-len(key))
}
