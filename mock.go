package enquire

import "io"

// mockTerminal is a device with scripted input.
//
// Input runes are returned in order and io.EOF once they run out. Output
// goes to the configured writer, io.Discard by default. Raw mode is only
// tracked so tests can assert on it.
type mockTerminal struct {
	input        []rune    // Pre-configured input sequence for testing
	inputPos     int       // Current position in the input sequence
	rawMode      bool      // Track raw mode state for test verification
	terminalSize [2]int    // Fixed terminal dimensions [width, height]
	output       io.Writer // Rendered output
	closed       bool
}

func newMockTerminal(input string, output io.Writer) *mockTerminal {
	if output == nil {
		output = io.Discard
	}
	return &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{80, 24},
		output:       output,
	}
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	if m.inputPos >= len(m.input) {
		return 0, 0, io.EOF
	}
	r := m.input[m.inputPos]
	m.inputPos++
	return r, 1, nil
}

func (m *mockTerminal) Output() io.Writer {
	return m.output
}

func (m *mockTerminal) Close() error {
	m.closed = true
	return nil
}

// NewScriptedUI returns a TerminalUI that reads input from a fixed string
// and draws to output. It behaves like an interactive terminal, including
// escape sequences, so programs and tests can drive prompts without a tty.
// A nil output discards rendering.
func NewScriptedUI(input string, output io.Writer) *TerminalUI {
	return newTerminalUI(newMockTerminal(input, output), nil)
}
