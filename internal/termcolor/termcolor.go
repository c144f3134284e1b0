// Package termcolor maps the editor's fixed gruvbox-derived palette onto
// whichever color depth the terminal actually supports.
package termcolor

import (
	"os"

	"github.com/muesli/termenv"
)

// Color names a palette entry independent of terminal color depth.
type Color int

const (
	Reset Color = iota
	Red
	Green
	Gray
	Yellow
	Orange
	Blue
	Purple
	Cyan
	RedBG
	YellowBG
	Invert
)

// Profile is the detected terminal color depth, mirroring the three-way
// split the original editor made between truecolor, 256-color and 16-color
// terminals.
type Profile int

const (
	Only16 Profile = iota
	Extended256
	TrueColor
)

// DetectProfile follows COLORTERM first, then falls back to termenv's own
// terminfo-derived color-count probe, exactly as the editor's Rust original
// consulted COLORTERM before terminfo.
func DetectProfile() Profile {
	if os.Getenv("COLORTERM") == "truecolor" {
		return TrueColor
	}
	switch termenv.ColorProfile() {
	case termenv.TrueColor:
		return TrueColor
	case termenv.ANSI256:
		return Extended256
	default:
		return Only16
	}
}

// Palette renders Color values to the raw escape sequence bytes for one
// detected Profile.
type Palette struct {
	profile Profile
}

// NewPalette builds a Palette for the given detected Profile.
func NewPalette(p Profile) Palette { return Palette{profile: p} }

// Profile reports which depth this palette was built for.
func (p Palette) Profile() Profile { return p.profile }

// Sequence returns the raw SGR bytes that select color c under this
// palette's profile. The gruvbox hex triples (truecolor), the 256-color
// codes, and the 16-color codes below are carried over from the palette
// table of the editor this was distilled from.
func (p Palette) Sequence(c Color) []byte {
	switch p.profile {
	case TrueColor:
		return trueColorSeq(c)
	case Extended256:
		return extended256Seq(c)
	default:
		return only16Seq(c)
	}
}

func trueColorSeq(c Color) []byte {
	switch c {
	case Reset:
		return []byte("\x1b[39;0m\x1b[38;2;251;241;199m\x1b[48;2;40;40;40m")
	case Red:
		return []byte("\x1b[38;2;251;73;52m")
	case Green:
		return []byte("\x1b[38;2;184;187;38m")
	case Gray:
		return []byte("\x1b[38;2;168;153;132m")
	case Yellow:
		return []byte("\x1b[38;2;250;189;47m")
	case Orange:
		return []byte("\x1b[38;2;254;128;25m")
	case Blue:
		return []byte("\x1b[38;2;131;165;152m")
	case Purple:
		return []byte("\x1b[38;2;211;134;155m")
	case Cyan:
		return []byte("\x1b[38;2;142;192;124m")
	case RedBG:
		return []byte("\x1b[48;2;204;36;29m")
	case YellowBG:
		return []byte("\x1b[38;2;40;40;40m\x1b[48;2;215;153;33m")
	case Invert:
		return []byte("\x1b[7m")
	default:
		return []byte("\x1b[39;0m")
	}
}

func extended256Seq(c Color) []byte {
	switch c {
	case Reset:
		return []byte("\x1b[39;0m\x1b[38;5;230m\x1b[48;5;235m")
	case Red:
		return []byte("\x1b[38;5;167m")
	case Green:
		return []byte("\x1b[38;5;142m")
	case Gray:
		return []byte("\x1b[38;5;246m")
	case Yellow:
		return []byte("\x1b[38;5;214m")
	case Orange:
		return []byte("\x1b[38;5;208m")
	case Blue:
		return []byte("\x1b[38;5;109m")
	case Purple:
		return []byte("\x1b[38;5;175m")
	case Cyan:
		return []byte("\x1b[38;5;108m")
	case RedBG:
		return []byte("\x1b[48;5;124m")
	case YellowBG:
		return []byte("\x1b[38;5;235m\x1b[48;5;214m")
	case Invert:
		return []byte("\x1b[7m")
	default:
		return []byte("\x1b[39;0m")
	}
}

func only16Seq(c Color) []byte {
	switch c {
	case Reset:
		return []byte("\x1b[39;0m")
	case Red:
		return []byte("\x1b[91m")
	case Green:
		return []byte("\x1b[32m")
	case Gray:
		return []byte("\x1b[90m")
	case Yellow:
		return []byte("\x1b[93m")
	case Orange:
		// No orange in 16 colors; use darker yellow instead.
		return []byte("\x1b[33m")
	case Blue:
		return []byte("\x1b[94m")
	case Purple:
		return []byte("\x1b[95m")
	case Cyan:
		return []byte("\x1b[96m")
	case RedBG:
		return []byte("\x1b[41m")
	case YellowBG:
		return []byte("\x1b[103m\x1b[30m")
	case Invert:
		return []byte("\x1b[7m")
	default:
		return []byte("\x1b[39;0m")
	}
}
