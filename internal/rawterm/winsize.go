package rawterm

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kiro-editor/kiro/internal/kiroerr"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// WindowSize returns the terminal's (rows, cols). It tries x/term's ioctl
// wrapper first, then the raw TIOCGWINSZ ioctl, and finally falls back to
// pushing the cursor to the bottom-right corner and reading back its
// reported position, matching the original editor's three-tier probe.
func WindowSize(stdin, stdout *os.File) (rows, cols int, err error) {
	if w, h, ierr := term.GetSize(int(stdout.Fd())); ierr == nil && w > 0 && h > 0 {
		return h, w, nil
	}

	if ws, ierr := unix.IoctlGetWinsize(int(stdin.Fd()), unix.TIOCGWINSZ); ierr == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}

	fmt.Fprint(stdout, "\x1b[999C\x1b[999B\x1b[6n")
	r, c, cerr := readCursorPosition(stdin)
	if cerr != nil {
		return 0, 0, kiroerr.UnknownWindowSize()
	}
	return r, c, nil
}

func readCursorPosition(stdin *os.File) (row, col int, err error) {
	reader := bufio.NewReader(stdin)
	var buf [32]byte
	n := 0
	for n < len(buf) {
		b, rerr := reader.ReadByte()
		if rerr != nil {
			return 0, 0, rerr
		}
		buf[n] = b
		n++
		if b == 'R' {
			break
		}
	}
	if n < 2 || buf[0] != 0x1b || buf[1] != '[' {
		return 0, 0, fmt.Errorf("improper cursor position response")
	}
	_, err = fmt.Sscanf(string(buf[2:n-1]), "%d;%d", &row, &col)
	return row, col, err
}
