package enquire

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/multierr"
)

// UI is the input/output collaborator a prompt drives.
//
// Next delivers queued events one at a time in arrival order. The line
// buffer belongs to the UI: printable keys are appended, and enter queues
// a keypress followed by a line event carrying the buffer, then resets it.
type UI interface {
	Next(ctx context.Context) (Event, error) // Next queued event; io.EOF once input is exhausted
	Line() string                            // Current line buffer
	SetLine(line string)                     // Replace the line buffer
	ClearLine()                              // Reset the line buffer
	Render(screen, annotation string) error  // Redraw the prompt block
	HideCursor() error
	ShowCursor() error
	Pause() error  // Stop raw input between questions
	Resume() error // Start or restart raw input
	Mute() func()  // Suppress output until the returned func is called
	End() error    // Finish the current block and show the cursor
	Close() error  // Release the terminal
}

// TerminalUI is the UI backed by a terminal device.
//
// A reader goroutine started by the first Resume decodes runes and escape
// sequences into key events and queues them. Keypress, EmitLine and
// EmitError queue events directly, which is how tests and nested prompts
// script input.
type TerminalUI struct {
	terminal device
	stream   *stream
	renderer *renderer
	reading  sync.Once
	closed   bool
}

// NewTerminalUI opens the controlling terminal. A nil keyMap uses
// NewDefaultKeyMap.
func NewTerminalUI(keyMap *KeyMap) (*TerminalUI, error) {
	t, err := openTTY()
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return newTerminalUI(t, keyMap), nil
}

func newTerminalUI(t device, keyMap *KeyMap) *TerminalUI {
	return &TerminalUI{
		terminal: t,
		stream:   newStream(keyMap),
		renderer: newRenderer(t.Output(), func() int {
			w, _, _ := t.Size()
			return w
		}),
	}
}

// Next implements UI.
func (u *TerminalUI) Next(ctx context.Context) (Event, error) {
	return u.stream.next(ctx)
}

// Line implements UI.
func (u *TerminalUI) Line() string {
	return u.stream.getLine()
}

// SetLine implements UI.
func (u *TerminalUI) SetLine(line string) {
	u.stream.setLine(line)
}

// ClearLine implements UI.
func (u *TerminalUI) ClearLine() {
	u.stream.setLine("")
}

// Render implements UI.
func (u *TerminalUI) Render(screen, annotation string) error {
	return u.renderer.render(screen, annotation)
}

// HideCursor implements UI.
func (u *TerminalUI) HideCursor() error {
	return u.renderer.write("\x1b[?25l")
}

// ShowCursor implements UI.
func (u *TerminalUI) ShowCursor() error {
	return u.renderer.write("\x1b[?25h")
}

// Pause restores the terminal mode that was active before Resume.
func (u *TerminalUI) Pause() error {
	return u.terminal.Restore()
}

// Resume enters raw mode and starts reading input.
func (u *TerminalUI) Resume() error {
	if err := u.terminal.SetRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	u.reading.Do(func() {
		go u.read()
	})
	return nil
}

// Mute implements UI.
func (u *TerminalUI) Mute() func() {
	output := u.renderer.output
	u.renderer.output = io.Discard
	return func() {
		u.renderer.output = output
	}
}

// End implements UI.
func (u *TerminalUI) End() error {
	return multierr.Append(u.renderer.finish(), u.ShowCursor())
}

// Close restores the terminal and releases it. It is safe to call twice.
func (u *TerminalUI) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	return multierr.Combine(
		u.ShowCursor(),
		u.terminal.Restore(),
		u.terminal.Close(),
	)
}

// Keypress queues value as key input. With a nil key every rune of value
// is decoded separately; with a key descriptor value is a single key whose
// missing name is decoded from value.
func (u *TerminalUI) Keypress(value string, key *KeyEvent) {
	u.stream.keypress(value, key)
}

// EmitLine queues a submitted line without touching the line buffer.
func (u *TerminalUI) EmitLine(line string) {
	u.stream.push(Event{Kind: EventLine, Line: line})
}

// EmitError queues an input error.
func (u *TerminalUI) EmitError(err error) {
	u.stream.push(Event{Kind: EventError, Err: err})
}

// Write draws s directly on the output, outside the tracked block.
func (u *TerminalUI) Write(s string) error {
	return u.renderer.write(s)
}

// Pending returns the number of queued events.
func (u *TerminalUI) Pending() int {
	return u.stream.pending()
}

func (u *TerminalUI) read() {
	for {
		r, _, err := u.terminal.ReadRune()
		if err != nil {
			u.stream.close(err)
			return
		}
		if r == '\x1b' {
			seq, err := readEscapeSequence(u.terminal)
			if err != nil {
				u.stream.close(err)
				return
			}
			u.stream.feed(u.stream.keyMap.DecodeSequence(seq))
			continue
		}
		u.stream.feed(u.stream.keyMap.Decode(r))
	}
}
