package highlight

import "github.com/kiro-editor/kiro/internal/row"

// numMode tracks which numeric literal lexer is currently active.
type numMode int

const (
	numNone numMode = iota
	numDigit
	numHex
	numBin
)

// LineState carries the highlighter's single cross-line carry bit
// (InBlockComment); all other lexer state is local to one HighlightLine
// call. Callers keep one LineState per Row and pass it to HighlightLine.
type LineState struct {
	InBlockComment bool
}

func isSep(c rune) bool {
	if c == 0 {
		return true
	}
	if c == '_' {
		return false
	}
	if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
		return true
	}
	return isASCIIPunct(c)
}

func isASCIIPunct(c rune) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	default:
		return false
	}
}

func hasPrefix(buf []rune, at int, pat string) bool {
	pr := []rune(pat)
	if at+len(pr) > len(buf) {
		return false
	}
	for i, c := range pr {
		if buf[at+i] != c {
			return false
		}
	}
	return true
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// HighlightLine tags every rendered character of one line according to
// table's lexical rules, in the priority order: block comment, line
// comment, char literal, string, identifier/keyword, hex number, binary
// number, decimal number, normal. state.InBlockComment is the only field
// that persists across lines; it is read and written in place.
func HighlightLine(r *row.Row, table Table, state *LineState) []Tag {
	buf := []rune(r.Buffer())
	n := len(buf)
	tags := make([]Tag, 0, n)

	col := 0
	emit := func(c rune, tag Tag) {
		if c == '\t' {
			width := row.TabStop - col%row.TabStop
			for k := 0; k < width; k++ {
				tags = append(tags, tag)
			}
			col += width
			return
		}
		width := row.RuneDisplayWidth(c)
		for k := 0; k < width; k++ {
			tags = append(tags, tag)
		}
		col += width
	}

	prevTag := Normal
	prevChar := rune(0)
	inString := false
	var quote rune
	mode := numNone
	afterDefKeyword := false

	i := 0
	for i < n {
		c := buf[i]

		// after_def_keyword clears at the next separator that is not
		// whitespace, before any rule below dispatches on it.
		if afterDefKeyword && isASCIIPunct(c) {
			afterDefKeyword = false
		}

		// 1: block comment
		if state.InBlockComment {
			if table.BlockCommentEnd != "" && hasPrefix(buf, i, table.BlockCommentEnd) {
				end := []rune(table.BlockCommentEnd)
				for _, ec := range end {
					emit(ec, Comment)
				}
				i += len(end)
				state.InBlockComment = false
				prevTag, prevChar = Comment, end[len(end)-1]
				continue
			}
			emit(c, Comment)
			prevTag, prevChar = Comment, c
			i++
			continue
		}
		if !inString && table.BlockCommentStart != "" && hasPrefix(buf, i, table.BlockCommentStart) {
			start := []rune(table.BlockCommentStart)
			for _, sc := range start {
				emit(sc, Comment)
			}
			i += len(start)
			state.InBlockComment = true
			prevTag, prevChar = Comment, start[len(start)-1]
			continue
		}

		// 2: line comment
		if !inString && table.LineComment != "" && hasPrefix(buf, i, table.LineComment) {
			for ; i < n; i++ {
				emit(buf[i], Comment)
			}
			prevTag = Comment
			break
		}

		// 3: char literal '\?.' (3 or 4 code points)
		if table.Chars && !inString && c == '\'' {
			suppressed := prevTag == Number && table.HasNumberSep && table.NumberSep == '\''
			if !suppressed {
				if length, ok := matchCharLiteral(buf, i); ok {
					for k := 0; k < length; k++ {
						emit(buf[i+k], Char)
					}
					prevChar = buf[i+length-1]
					prevTag = Char
					i += length
					continue
				}
			}
		}

		// 4: string
		if inString {
			emit(c, String)
			if c == quote && prevChar != '\\' {
				inString = false
			}
			prevChar, prevTag = c, String
			i++
			continue
		}
		if isQuote(table, c) {
			inString = true
			quote = c
			emit(c, String)
			prevChar, prevTag = c, String
			i++
			continue
		}

		atBoundary := isSep(prevChar) || isSep(c)

		// 5: identifier / keyword
		if atBoundary && !isDigit(c) && !isSep(c) {
			start := i
			for i < n && !isSep(buf[i]) {
				i++
			}
			word := string(buf[start:i])
			tag, isDef := classify(table, word)
			if tag == Normal && afterDefKeyword {
				tag = Definition
			}
			for _, wc := range buf[start:i] {
				emit(wc, tag)
			}
			prevChar = buf[i-1]
			prevTag = tag
			afterDefKeyword = isDef
			continue
		}

		// 6: hex number
		if table.Numbers && atBoundary && mode != numHex && hasPrefix(buf, i, "0x") && i+2 < n && isHexDigit(buf[i+2]) {
			emit(buf[i], Number)
			emit(buf[i+1], Number)
			i += 2
			mode = numHex
			prevTag, prevChar = Number, buf[i-1]
			continue
		}
		if mode == numHex && (isHexDigit(c) || isNumberSep(table, c)) {
			emit(c, Number)
			prevTag, prevChar = Number, c
			i++
			continue
		} else if mode == numHex {
			mode = numNone
		}

		// 7: binary number
		if table.Numbers && atBoundary && mode != numBin && hasPrefix(buf, i, "0b") && i+2 < n && (buf[i+2] == '0' || buf[i+2] == '1') {
			emit(buf[i], Number)
			emit(buf[i+1], Number)
			i += 2
			mode = numBin
			prevTag, prevChar = Number, buf[i-1]
			continue
		}
		if mode == numBin && (c == '0' || c == '1' || isNumberSep(table, c)) {
			emit(c, Number)
			prevTag, prevChar = Number, c
			i++
			continue
		} else if mode == numBin {
			mode = numNone
		}

		// 8: decimal number
		if table.Numbers && atBoundary && isDigit(c) {
			mode = numDigit
			emit(c, Number)
			prevTag, prevChar = Number, c
			i++
			continue
		}
		if mode == numDigit && (isDigit(c) || isNumberSep(table, c) || (c == '.' && prevTag == Number)) {
			emit(c, Number)
			prevTag, prevChar = Number, c
			i++
			continue
		} else if mode == numDigit && !isDigit(c) {
			mode = numNone
		}

		// 9: normal
		emit(c, Normal)
		prevTag, prevChar = Normal, c
		i++
	}

	return tags
}

func isQuote(table Table, c rune) bool {
	for _, q := range table.StringQuotes {
		if q == c {
			return true
		}
	}
	return false
}

func isNumberSep(table Table, c rune) bool {
	return table.HasNumberSep && c == table.NumberSep
}

// matchCharLiteral recognizes 'x' (3 code points) or '\x' (4 code points)
// starting at i, returning the total length consumed.
func matchCharLiteral(buf []rune, i int) (int, bool) {
	n := len(buf)
	if i+2 < n && buf[i+1] == '\\' && i+3 < n && buf[i+3] == '\'' {
		return 4, true
	}
	if i+2 < n && buf[i+1] != '\\' && buf[i+2] == '\'' {
		return 3, true
	}
	return 0, false
}

// classify looks up word in table's keyword classes, returning its Tag and
// whether it is a definition-introducing keyword.
func classify(table Table, word string) (Tag, bool) {
	if table.ControlStatements[word] {
		return Statement, false
	}
	if table.Keywords[word] {
		return Keyword, table.DefinitionKeys[word]
	}
	if table.BuiltinTypes[word] {
		return Type, false
	}
	if table.SpecialVars[word] {
		return SpecialVar, false
	}
	return Normal, false
}
