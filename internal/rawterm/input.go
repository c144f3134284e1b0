package rawterm

import (
	"io"

	"github.com/kiro-editor/kiro/internal/kiroerr"
)

func invalidUTF8(raw []byte) error { return kiroerr.InvalidUTF8Input(raw) }

// InputReader decodes a raw stdin byte stream into InputSeq values,
// following the escape-sequence grammar of the terminal's raw-mode
// collaborator: bytes 0x00-0x1f are Ctrl-modified ASCII, ESC starts either
// an Alt-modified key (if the next byte arrives within the same read) or a
// CSI escape sequence mapping to the named special keys and cursor-position
// reports.
type InputReader struct {
	stdin io.Reader
}

// NewInputReader wraps stdin for key decoding. stdin must already be in raw
// mode (see Enable) so reads time out at ~100ms instead of blocking forever.
func NewInputReader(stdin io.Reader) *InputReader { return &InputReader{stdin: stdin} }

// Next blocks until the next input event. On the raw-mode 100ms read
// timeout with no bytes available, it returns an Unidentified InputSeq
// rather than an error, giving the caller a heartbeat for resize polling
// and message-bar expiry.
func (r *InputReader) Next() (InputSeq, error) {
	b, ok, err := r.readByte()
	if err != nil {
		return InputSeq{}, err
	}
	if !ok {
		return plain(Unidentified), nil
	}
	return r.decode(b)
}

func (r *InputReader) readByte() (byte, bool, error) {
	var buf [1]byte
	n, err := r.stdin.Read(buf[:])
	if err != nil {
		if err == io.EOF {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}

func (r *InputReader) decode(b byte) (InputSeq, error) {
	switch {
	case b == 0x1b:
		return r.decodeEscape()
	case b == 0x1f:
		return ctrlKey(b | 0b0100000), nil
	case b <= 0x1f:
		return ctrlKey(b | 0b1100000), nil
	case b < 0x80:
		return key(b), nil
	default:
		return r.decodeUTF8(b)
	}
}

// decodeUTF8 reassembles a multi-byte UTF-8 sequence starting with lead
// byte b, reading the continuation bytes its leading-byte pattern implies.
func (r *InputReader) decodeUTF8(b byte) (InputSeq, error) {
	var want int
	switch {
	case b&0b11100000 == 0b11000000:
		want = 1
	case b&0b11110000 == 0b11100000:
		want = 2
	case b&0b11111000 == 0b11110000:
		want = 3
	default:
		return plain(Unidentified), nil
	}
	raw := []byte{b}
	for i := 0; i < want; i++ {
		nb, ok, err := r.readByte()
		if err != nil {
			return InputSeq{}, err
		}
		if !ok {
			return InputSeq{}, invalidUTF8(raw)
		}
		raw = append(raw, nb)
	}
	rs := []rune(string(raw))
	if len(rs) != 1 || rs[0] == 0xfffd {
		return InputSeq{}, invalidUTF8(raw)
	}
	return InputSeq{Kind: Utf8Key, Rune: rs[0]}, nil
}

func (r *InputReader) decodeEscape() (InputSeq, error) {
	b, ok, err := r.readByte()
	if err != nil {
		return InputSeq{}, err
	}
	if !ok {
		return key(0x1b), nil
	}
	if b == '[' {
		return r.decodeCSI()
	}
	if b < 0x20 {
		return key(0x1b), nil
	}
	seq, err := r.decode(b)
	if err != nil {
		return InputSeq{}, err
	}
	seq.Alt = true
	return seq, nil
}

func (r *InputReader) decodeCSI() (InputSeq, error) {
	var buf []byte
	var cmd byte
	for {
		b, ok, err := r.readByte()
		if err != nil {
			return InputSeq{}, err
		}
		if !ok {
			return plain(Unidentified), nil
		}
		switch b {
		case 'A', 'B', 'C', 'D', 'F', 'H', 'K', 'J', 'R', 'c', 'f', 'g', 'h', 'l', 'm', 'n', 'q', 'y', '~':
			cmd = b
		default:
			buf = append(buf, b)
			continue
		}
		break
	}

	args := splitArgs(buf)
	switch cmd {
	case 'R':
		if len(args) >= 2 {
			row, rok := atoiOK(args[0])
			col, cok := atoiOK(args[1])
			if rok && cok {
				return InputSeq{Kind: CursorKey, Row: row, Col: col}, nil
			}
		}
		return plain(Unidentified), nil
	case 'A', 'B', 'C', 'D':
		var k KeyKind
		switch cmd {
		case 'A':
			k = UpKey
		case 'B':
			k = DownKey
		case 'C':
			k = RightKey
		case 'D':
			k = LeftKey
		}
		ctrl := len(args) >= 2 && string(args[0]) == "1" && string(args[1]) == "5"
		return InputSeq{Kind: k, Ctrl: ctrl}, nil
	case '~':
		if len(args) == 0 {
			return plain(Unidentified), nil
		}
		switch string(args[0]) {
		case "5":
			return plain(PageUpKey), nil
		case "6":
			return plain(PageDownKey), nil
		case "1", "7":
			return plain(HomeKey), nil
		case "4", "8":
			return plain(EndKey), nil
		case "3":
			return plain(DeleteKey), nil
		}
		return plain(Unidentified), nil
	case 'H', 'F':
		k := HomeKey
		if cmd == 'F' {
			k = EndKey
		}
		ctrl := len(args) >= 2 && string(args[0]) == "1" && string(args[1]) == "5"
		return InputSeq{Kind: k, Ctrl: ctrl}, nil
	default:
		return plain(Unidentified), nil
	}
}

func splitArgs(buf []byte) [][]byte {
	if len(buf) == 0 {
		return nil
	}
	var out [][]byte
	start := 0
	for i := 0; i <= len(buf); i++ {
		if i == len(buf) || buf[i] == ';' {
			out = append(out, buf[start:i])
			start = i + 1
		}
	}
	return out
}

func atoiOK(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
