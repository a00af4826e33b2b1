package enquire

import (
	"io"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"go.uber.org/multierr"
	"golang.org/x/term"
)

// device is the terminal a TerminalUI reads keys from and draws on.
//
// Implementations:
//   - ttyDevice: the controlling terminal, opened with go-tty
//   - mockTerminal: scripted input for tests and NewScriptedUI
type device interface {
	SetRaw() error                        // Switch to unbuffered, unechoed input
	Restore() error                       // Return to the mode saved by SetRaw
	Size() (width, height int, err error) // Columns and rows, 80x24 when unknown
	ReadRune() (rune, int, error)         // Next input rune; blocks
	Output() io.Writer                    // Where prompts are drawn
	Close() error
}

// ttyDevice is the controlling terminal.
//
// Input and output both go through the tty device rather than stdin and
// stdout, so the answer can be piped or captured by a shell while the
// question stays visible. On Windows the output is wrapped with
// go-colorable to translate escape sequences.
type ttyDevice struct {
	tty    *tty.TTY
	fd     int         // tty input descriptor, the one raw mode applies to
	saved  *term.State // mode before SetRaw; nil outside raw mode
	output io.Writer
	closed bool // go-tty panics on a second Close on Windows
}

func openTTY() (*ttyDevice, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	d := &ttyDevice{
		tty:    t,
		fd:     int(t.Input().Fd()),
		output: t.Output(),
	}
	if runtime.GOOS == "windows" {
		d.output = colorable.NewColorable(t.Output())
	}
	return d, nil
}

func (d *ttyDevice) SetRaw() error {
	if d.saved != nil || !term.IsTerminal(d.fd) {
		return nil
	}
	state, err := term.MakeRaw(d.fd)
	if err != nil {
		return err
	}
	d.saved = state
	return nil
}

func (d *ttyDevice) Restore() error {
	if d.saved == nil {
		return nil
	}
	state := d.saved
	d.saved = nil
	return term.Restore(d.fd, state)
}

func (d *ttyDevice) Size() (width, height int, err error) {
	w, h, err := d.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24, err
	}
	return w, h, nil
}

func (d *ttyDevice) ReadRune() (rune, int, error) {
	r, err := d.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (d *ttyDevice) Output() io.Writer {
	return d.output
}

func (d *ttyDevice) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return multierr.Append(d.Restore(), d.tty.Close())
}

// maxSequence bounds how many runes an escape sequence may span.
const maxSequence = 10

// readEscapeSequence reads the rest of an escape sequence after ESC:
// CSI ("[" params final) and SS3 ("O" final) sequences, or a single rune
// for Meta+key.
func readEscapeSequence(d device) (string, error) {
	seq := make([]rune, 0, maxSequence)
	for len(seq) < maxSequence {
		r, _, err := d.ReadRune()
		if err != nil {
			return "", err
		}
		seq = append(seq, r)

		switch {
		case len(seq) == 1:
			if r != '[' && r != 'O' {
				return string(seq), nil
			}
		case seq[0] == 'O':
			return string(seq), nil
		case r == '~' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			return string(seq), nil
		}
	}
	return string(seq), nil
}
