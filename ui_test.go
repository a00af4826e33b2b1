package enquire

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain collects events until the stream reports an error.
func drain(t *testing.T, ui UI) ([]Event, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	var events []Event
	for {
		ev, err := ui.Next(ctx)
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

func keyNames(events []Event) []string {
	names := make([]string, 0, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case EventKeypress:
			names = append(names, ev.Key.String())
		case EventLine:
			names = append(names, "line:"+ev.Line)
		case EventError:
			names = append(names, "error:"+ev.Err.Error())
		}
	}
	return names
}

func TestEventKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "keypress", EventKeypress.String())
	assert.Equal(t, "line", EventLine.String())
	assert.Equal(t, "error", EventError.String())
	assert.Equal(t, "unknown", EventKind(9).String())
}

func TestScriptedUIInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "typed line",
			input:    "hi\r",
			expected: []string{"h", "i", "return", "line:hi"},
		},
		{
			name:     "newline submits too",
			input:    "a\n",
			expected: []string{"a", "enter", "line:a"},
		},
		{
			name:     "backspace",
			input:    "ab\x7f\r",
			expected: []string{"a", "b", "backspace", "return", "line:a"},
		},
		{
			name:     "arrow keys",
			input:    "\x1b[A\x1b[B\x1bOA",
			expected: []string{"up", "down", "up"},
		},
		{
			name:     "shifted arrows",
			input:    "\x1b[1;2A\x1b[1;2B",
			expected: []string{"shift+up", "shift+down"},
		},
		{
			name:     "ctrl+c",
			input:    "x\x03",
			expected: []string{"x", "ctrl+c", "error:interrupted"},
		},
		{
			name:     "unknown sequence",
			input:    "\x1b[99~",
			expected: []string{"\x1b[99~"},
		},
		{
			name:     "two lines",
			input:    "a\rb\r",
			expected: []string{"a", "return", "line:a", "b", "return", "line:b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ui := NewScriptedUI(tt.input, nil)
			require.NoError(t, ui.Resume())

			events, err := drain(t, ui)
			assert.ErrorIs(t, err, io.EOF, "input should end with EOF after the queue drains")
			assert.Equal(t, tt.expected, keyNames(events))
		})
	}
}

func TestScriptedUILineSnapshots(t *testing.T) {
	t.Parallel()

	ui := NewScriptedUI("ab\x7fc\r", nil)
	require.NoError(t, ui.Resume())

	events, err := drain(t, ui)
	require.ErrorIs(t, err, io.EOF)

	var lines []string
	for _, ev := range events {
		lines = append(lines, ev.Line)
	}
	assert.Equal(t, []string{"a", "ab", "a", "ac", "ac", "ac"}, lines)
	assert.Empty(t, ui.Line())
}

func TestKeypress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		key      *KeyEvent
		expected []KeyEvent
		line     string
	}{
		{
			name:  "runes are decoded one by one",
			value: "foo\n",
			expected: []KeyEvent{
				{Name: "f", Value: "f"},
				{Name: "o", Value: "o"},
				{Name: "o", Value: "o"},
				{Name: "enter", Value: "\n"},
			},
		},
		{
			name:     "named key without value",
			key:      &KeyEvent{Name: "down"},
			expected: []KeyEvent{{Name: "down"}},
		},
		{
			name:     "name decoded from value",
			value:    "n",
			key:      &KeyEvent{Ctrl: true},
			expected: []KeyEvent{{Name: "n", Value: "n", Ctrl: true}},
		},
		{
			name:     "value with explicit name is inserted",
			value:    "x",
			key:      &KeyEvent{Name: "x"},
			expected: []KeyEvent{{Name: "x", Value: "x"}},
			line:     "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ui := newTerminalUI(newMockTerminal("", nil), nil)
			ui.Keypress(tt.value, tt.key)

			var keys []KeyEvent
			for ui.Pending() > 0 {
				ev, err := ui.Next(context.Background())
				require.NoError(t, err)
				if ev.Kind == EventKeypress {
					keys = append(keys, *ev.Key)
				}
			}
			assert.Equal(t, tt.expected, keys)
			assert.Equal(t, tt.line, ui.Line())
		})
	}
}

func TestEmitters(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ui := newTerminalUI(newMockTerminal("", nil), nil)
	ui.SetLine("draft")
	ui.EmitLine("submitted")
	ui.EmitError(boom)

	assert.Equal(t, 2, ui.Pending())
	assert.Equal(t, "draft", ui.Line(), "EmitLine should not touch the line buffer")

	ev, err := ui.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Event{Kind: EventLine, Line: "submitted"}, ev)

	ev, err = ui.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EventError, ev.Kind)
	assert.ErrorIs(t, ev.Err, boom)

	ui.ClearLine()
	assert.Empty(t, ui.Line())
}

func TestNextHonorsContext(t *testing.T) {
	t.Parallel()

	// Without Resume no reader is running, so Next waits for the context
	ui := newTerminalUI(newMockTerminal("ignored", nil), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ui.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNextWakesOnPush(t *testing.T) {
	t.Parallel()

	ui := newTerminalUI(newMockTerminal("", nil), nil)

	go func() {
		time.Sleep(10 * time.Millisecond)
		ui.EmitLine("late")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	ev, err := ui.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "late", ev.Line)
}

func TestTerminalUILifecycle(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	mock := newMockTerminal("", &output)
	ui := newTerminalUI(mock, nil)

	require.NoError(t, ui.Resume())
	assert.True(t, mock.rawMode)
	require.NoError(t, ui.Pause())
	assert.False(t, mock.rawMode)
	require.NoError(t, ui.Resume(), "Resume should be repeatable")
	assert.True(t, mock.rawMode)

	require.NoError(t, ui.HideCursor())
	require.NoError(t, ui.Render("? q ", ""))
	require.NoError(t, ui.End())
	assert.Equal(t, "\x1b[?25l"+"? q "+"\r\x1b[4C"+"\r\n"+"\x1b[?25h", output.String())

	require.NoError(t, ui.Close())
	assert.True(t, mock.closed)
	assert.False(t, mock.rawMode)

	output.Reset()
	require.NoError(t, ui.Close(), "Close should be safe to call twice")
	assert.Empty(t, output.String())
}

func TestTerminalUIMute(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	ui := NewScriptedUI("", &output)

	unmute := ui.Mute()
	require.NoError(t, ui.Render("hidden", ""))
	require.NoError(t, ui.Write("hidden"))
	assert.Empty(t, output.String())

	unmute()
	require.NoError(t, ui.Write("shown"))
	assert.Equal(t, "shown", output.String())
}

func TestMockTerminal(t *testing.T) {
	t.Parallel()

	mock := newMockTerminal("aé", nil)

	w, h, err := mock.Size()
	require.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
	assert.Equal(t, io.Discard, mock.Output())

	r, _, err := mock.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)
	r, _, err = mock.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)
	_, _, err = mock.ReadRune()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadEscapeSequence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		rest     string
		wantErr  bool
	}{
		{name: "arrow", input: "[Arest", expected: "[A", rest: "rest"},
		{name: "ss3 arrow", input: "OB", expected: "OB"},
		{name: "modified arrow", input: "[1;2Bx", expected: "[1;2B", rest: "x"},
		{name: "tilde key", input: "[3~", expected: "[3~"},
		{name: "meta key", input: "xy", expected: "x", rest: "y"},
		{name: "truncated", input: "[1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMockTerminal(tt.input, nil)
			seq, err := readEscapeSequence(mock)
			if tt.wantErr {
				assert.ErrorIs(t, err, io.EOF)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, seq)
			assert.Equal(t, tt.rest, string(mock.input[mock.inputPos:]))
		})
	}
}
