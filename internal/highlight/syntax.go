// Package highlight implements the stateful per-line syntax highlighter,
// its per-language lexical tables, and the search-match overlay.
package highlight

import (
	"github.com/kiro-editor/kiro/internal/language"
	"github.com/kiro-editor/kiro/internal/termcolor"
)

// Tag classifies one rendered character for coloring.
type Tag int

const (
	Normal Tag = iota
	Number
	String
	Comment
	Keyword
	Type
	Definition
	Char
	Statement
	SpecialVar
	Match
)

// Color maps a Tag to the palette entry used to draw it.
func (t Tag) Color() termcolor.Color {
	switch t {
	case Number:
		return termcolor.Purple
	case String:
		return termcolor.Green
	case Comment:
		return termcolor.Gray
	case Keyword:
		return termcolor.Blue
	case Type:
		return termcolor.Orange
	case Definition:
		return termcolor.Yellow
	case Char:
		return termcolor.Green
	case Statement:
		return termcolor.Red
	case SpecialVar:
		return termcolor.Cyan
	case Match:
		return termcolor.YellowBG
	default:
		return termcolor.Reset
	}
}

// Table declares one language's lexical rules: quoting, numeric literal
// support, comment delimiters, and the keyword classes used by the
// identifier rule.
type Table struct {
	StringQuotes      []rune
	Numbers           bool
	NumberSep         rune
	HasNumberSep      bool
	Chars             bool
	LineComment       string
	BlockCommentStart string
	BlockCommentEnd   string

	Keywords          map[string]bool
	ControlStatements map[string]bool
	BuiltinTypes      map[string]bool
	SpecialVars       map[string]bool
	DefinitionKeys    map[string]bool
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// TableFor returns the Table for a detected language.
func TableFor(lang language.Language) Table {
	switch lang {
	case language.C:
		return cTable
	case language.Rust:
		return rustTable
	case language.JavaScript:
		return jsTable
	case language.Go:
		return goTable
	case language.Cpp:
		return cppTable
	default:
		return plainTable
	}
}

var plainTable = Table{}

var cTable = Table{
	StringQuotes:      []rune{'"'},
	Numbers:           true,
	Chars:             true,
	LineComment:       "//",
	BlockCommentStart: "/*",
	BlockCommentEnd:   "*/",
	ControlStatements: wordSet("if", "else", "switch", "case", "default", "for", "while", "do", "break", "continue", "return", "goto"),
	Keywords:          wordSet("sizeof", "typedef", "static", "extern", "const", "volatile", "register", "inline", "restrict", "struct", "union", "enum", "void"),
	BuiltinTypes:      wordSet("int", "long", "short", "char", "unsigned", "signed", "float", "double", "_Bool", "size_t", "ssize_t", "int8_t", "int16_t", "int32_t", "int64_t", "uint8_t", "uint16_t", "uint32_t", "uint64_t"),
	SpecialVars:       wordSet("NULL", "true", "false"),
	DefinitionKeys:    wordSet("struct", "union", "enum", "typedef"),
}

var cppTable = Table{
	StringQuotes:      []rune{'"'},
	Numbers:           true,
	Chars:             true,
	LineComment:       "//",
	BlockCommentStart: "/*",
	BlockCommentEnd:   "*/",
	ControlStatements: wordSet("if", "else", "switch", "case", "default", "for", "while", "do", "break", "continue", "return", "goto", "try", "catch", "throw"),
	Keywords:          wordSet("sizeof", "typedef", "static", "extern", "const", "volatile", "class", "struct", "union", "enum", "namespace", "using", "template", "typename", "public", "private", "protected", "virtual", "override", "friend", "new", "delete", "operator", "explicit", "constexpr", "noexcept"),
	BuiltinTypes:      wordSet("int", "long", "short", "char", "unsigned", "signed", "float", "double", "bool", "void", "auto", "size_t", "wchar_t"),
	SpecialVars:       wordSet("nullptr", "true", "false", "this"),
	DefinitionKeys:    wordSet("class", "struct", "union", "enum", "namespace", "typedef"),
}

var rustTable = Table{
	StringQuotes:      []rune{'"'},
	Numbers:           true,
	HasNumberSep:      true,
	NumberSep:         '_',
	Chars:             true,
	LineComment:       "//",
	BlockCommentStart: "/*",
	BlockCommentEnd:   "*/",
	ControlStatements: wordSet("if", "else", "match", "for", "while", "loop", "break", "continue", "return"),
	Keywords: wordSet(
		"fn", "let", "mut", "const", "static", "struct", "enum", "trait", "impl", "pub", "use",
		"mod", "crate", "where", "move", "ref", "dyn", "unsafe", "async", "await", "as", "in", "type",
	),
	BuiltinTypes:   wordSet("i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128", "usize", "f32", "f64", "bool", "char", "str", "String", "Vec", "Option", "Result", "Box"),
	SpecialVars:    wordSet("self", "Self", "true", "false", "None", "Some", "Ok", "Err"),
	DefinitionKeys: wordSet("fn", "struct", "enum", "trait", "mod", "type"),
}

var jsTable = Table{
	StringQuotes:      []rune{'"', '\''},
	Numbers:           true,
	Chars:             false,
	LineComment:       "//",
	BlockCommentStart: "/*",
	BlockCommentEnd:   "*/",
	ControlStatements: wordSet("if", "else", "switch", "case", "default", "for", "while", "do", "break", "continue", "return", "throw", "try", "catch", "finally"),
	Keywords:          wordSet("function", "var", "let", "const", "class", "extends", "new", "delete", "typeof", "instanceof", "in", "of", "yield", "async", "await", "import", "export", "from", "as", "static", "get", "set"),
	BuiltinTypes:      wordSet("Object", "Array", "String", "Number", "Boolean", "Symbol", "Map", "Set", "Promise"),
	SpecialVars:       wordSet("this", "super", "true", "false", "null", "undefined", "NaN", "Infinity"),
	DefinitionKeys:    wordSet("function", "class"),
}

var goTable = Table{
	StringQuotes:      []rune{'"'},
	Numbers:           true,
	Chars:             true,
	LineComment:       "//",
	BlockCommentStart: "/*",
	BlockCommentEnd:   "*/",
	ControlStatements: wordSet("if", "else", "switch", "case", "default", "for", "range", "break", "continue", "return", "goto", "fallthrough", "select"),
	Keywords:          wordSet("func", "var", "const", "type", "struct", "interface", "map", "chan", "go", "defer", "package", "import", "const"),
	BuiltinTypes:      wordSet("int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "float32", "float64", "complex64", "complex128", "bool", "string", "byte", "rune", "error", "any"),
	SpecialVars:       wordSet("nil", "true", "false", "iota"),
	DefinitionKeys:    wordSet("func", "type", "struct", "interface"),
}
