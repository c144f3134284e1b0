// Package rawterm owns raw-mode terminal acquisition, window-size
// detection, and the low-level key-decoding contract the rest of the
// editor consumes as a stream of InputSeq values.
package rawterm

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// RawMode holds the terminal's original settings so they can be restored.
type RawMode struct {
	fd   int
	orig *unix.Termios
}

// Enable switches stdin into raw mode: no echo, no canonical buffering, no
// signal-generating keys, 100ms read timeout. Returns a handle whose
// Restore puts the terminal back exactly as found.
func Enable() (*RawMode, error) {
	fd := int(os.Stdin.Fd())
	orig, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, errors.Wrap(err, "reading terminal settings")
	}
	raw := *orig

	// Disable flow control, CR-to-NL translation, break-as-SIGINT, parity
	// checking, and stripping of the eighth input bit.
	raw.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP
	// Disable output postprocessing (e.g. \n -> \r\n translation).
	raw.Oflag &^= unix.OPOST
	// Force 8-bit characters.
	raw.Cflag |= unix.CS8
	// Disable echo, canonical mode, signal-generating keys, and extended input.
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	// Non-blocking reads with a 100ms timeout; 0-byte reads are expected.
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, errors.Wrap(err, "setting raw mode")
	}
	return &RawMode{fd: fd, orig: orig}, nil
}

// Restore puts the terminal back in its original mode.
func (r *RawMode) Restore() error {
	if err := unix.IoctlSetTermios(r.fd, unix.TCSETS, r.orig); err != nil {
		return errors.Wrap(err, "restoring terminal settings")
	}
	return nil
}
