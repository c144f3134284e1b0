// Package language detects a buffer's source language from its filename
// and supplies the indent policy used by insert-tab.
package language

import "strings"

// Language tags which SyntaxTable and indent policy a buffer uses.
type Language int

const (
	Plain Language = iota
	C
	Rust
	JavaScript
	Go
	Cpp
)

// Name is the human-readable language name shown in the status bar.
func (l Language) Name() string {
	switch l {
	case C:
		return "c"
	case Rust:
		return "rust"
	case JavaScript:
		return "javascript"
	case Go:
		return "go"
	case Cpp:
		return "c++"
	default:
		return "plain"
	}
}

var fileExts = map[Language][]string{
	C:          {"c", "h"},
	Rust:       {"rs"},
	JavaScript: {"js"},
	Go:         {"go"},
	Cpp:        {"cpp", "hpp", "cxx", "hxx", "cc", "hh"},
}

// detectOrder controls which language wins when extensions collide (none do
// currently, but this matches the original's explicit priority list).
var detectOrder = []Language{C, Rust, JavaScript, Go, Cpp}

// Detect maps a filename's extension to a Language, defaulting to Plain.
func Detect(filename string) Language {
	ext := fileExt(filename)
	if ext == "" {
		return Plain
	}
	for _, lang := range detectOrder {
		for _, e := range fileExts[lang] {
			if e == ext {
				return lang
			}
		}
	}
	return Plain
}

func fileExt(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	slash := strings.LastIndexByte(filename, '/')
	if idx < slash {
		return ""
	}
	return filename[idx+1:]
}

// Indent describes how a language expects Tab to be expanded.
type Indent struct {
	AsIs bool
	Text string
}

// IndentFor returns the indent policy for l: AsIs for Plain and Go, a fixed
// 4-space string for C/Rust/Cpp, 2 spaces for JavaScript.
func IndentFor(l Language) Indent {
	switch l {
	case C, Rust, Cpp:
		return Indent{Text: "    "}
	case JavaScript:
		return Indent{Text: "  "}
	default:
		return Indent{AsIs: true}
	}
}
