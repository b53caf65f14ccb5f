// Package prompt reads single-keystroke confirmations from a terminal.
package prompt

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ConfirmKeystroke prints the prompt and reads exactly one keystroke from
// in without waiting for a newline. When in is a terminal it is switched to
// raw mode for the read and restored afterwards, including on error paths.
// Only 'y' or 'Y' confirms.
func ConfirmKeystroke(in *os.File, out io.Writer, promptText string) (bool, error) {
	fmt.Fprintln(out, promptText)

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return false, fmt.Errorf("enter raw mode: %w", err)
		}
		defer term.Restore(fd, state)
		return readOne(in)
	}

	// Not a terminal (piped stdin, tests): still one byte, no newline needed.
	return readOne(in)
}

func readOne(in io.Reader) (bool, error) {
	buf := make([]byte, 1)
	n, err := in.Read(buf)
	if n == 0 && err != nil {
		return false, fmt.Errorf("read keystroke: %w", err)
	}
	return buf[0] == 'y' || buf[0] == 'Y', nil
}
