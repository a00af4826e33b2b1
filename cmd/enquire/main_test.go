package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/enquire"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	cmd := newRootCmd(func() (enquire.UI, error) {
		return enquire.NewScriptedUI(input, nil), nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		args     []string
		expected string
	}{
		{
			name:     "text answer",
			input:    "blue\r",
			args:     []string{"--message", "Favorite color?"},
			expected: "blue\n",
		},
		{
			name:     "text default",
			input:    "\r",
			args:     []string{"-m", "Favorite color?", "-d", "red"},
			expected: "red\n",
		},
		{
			name:     "json",
			input:    "blue\r",
			args:     []string{"-m", "Favorite color?", "-n", "color", "--json"},
			expected: "{\"color\":\"blue\"}\n",
		},
		{
			name:     "checkbox",
			input:    "\x1b[B \x1b[B \r",
			args:     []string{"-n", "colors", "-m", "Colors?", "-c", "red", "-c", "green", "-c", "blue"},
			expected: "green\nblue\n",
		},
		{
			name:     "checkbox json",
			input:    "\x1b[B \r",
			args:     []string{"-n", "colors", "-m", "Colors?", "-c", "red", "-c", "green", "-c", "blue", "--json"},
			expected: "{\"colors\":[\"green\"]}\n",
		},
		{
			name:     "radio with default index",
			input:    "\r",
			args:     []string{"-m", "Size?", "-c", "s", "-c", "m", "-c", "l", "--radio", "--default-index", "2"},
			expected: "l\n",
		},
		{
			name:     "radio with default name",
			input:    "\x1b[A\r",
			args:     []string{"-m", "Size?", "-c", "s", "-c", "m", "-c", "l", "--radio", "-d", "m"},
			expected: "s\n",
		},
		{
			name:     "required retries",
			input:    "\rx\r",
			args:     []string{"-m", "Name?", "--required"},
			expected: "x\n",
		},
		{
			name:     "pattern",
			input:    "42\r",
			args:     []string{"-m", "Age?", "--pattern", `^\d+$`},
			expected: "42\n",
		},
		{
			name:     "masked",
			input:    "hunter2\r",
			args:     []string{"-m", "Password?", "--mask", "*"},
			expected: "hunter2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tt.input, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRootCmdErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		args    []string
		target  error
		message string
	}{
		{
			name:    "no question",
			message: "a question is required",
		},
		{
			name:    "invalid pattern",
			args:    []string{"-m", "Q?", "--pattern", "("},
			message: "invalid --pattern",
		},
		{
			name:   "interrupted",
			input:  "ab\x03",
			args:   []string{"-m", "Q?"},
			target: enquire.ErrInterrupted,
		},
		{
			name:   "input ends",
			input:  "ab\r",
			args:   []string{"-m", "Q?", "--pattern", `^\d+$`},
			target: enquire.ErrEOF,
		},
		{
			name:    "missing file",
			args:    []string{"--file", filepath.Join(t.TempDir(), "missing.yaml")},
			target:  os.ErrNotExist,
			message: "failed to read question file",
		},
		{
			name:    "unknown theme",
			args:    []string{"-m", "Q?", "--theme", "neon"},
			message: `unknown theme "neon"`,
		},
		{
			name:    "positional arguments",
			args:    []string{"-m", "Q?", "extra"},
			message: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tt.input, tt.args...)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestRootCmdFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "question.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: size
message: Pizza size?
radio: true
default: 1
choices:
  - small
  - medium
  - separator: ""
  - large
`), 0o600))

	tests := []struct {
		name     string
		input    string
		args     []string
		expected string
	}{
		{
			name:     "file default",
			input:    "\r",
			args:     []string{"--file", path, "--json"},
			expected: "{\"size\":\"medium\"}\n",
		},
		{
			name:     "separator is skipped",
			input:    "j\r",
			args:     []string{"--file", path},
			expected: "large\n",
		},
		{
			name:     "flags override the file",
			input:    "\r",
			args:     []string{"--file", path, "--name", "choice", "--default-index", "0", "--json"},
			expected: "{\"choice\":\"small\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tt.input, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestSelectTheme(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	theme, err := selectTheme("")
	require.NoError(t, err)
	assert.Equal(t, enquire.ThemePlain, theme, "NO_COLOR selects the plain theme")

	theme, err = selectTheme("Dark")
	require.NoError(t, err)
	assert.Equal(t, enquire.ThemeDark, theme)

	_, err = selectTheme("neon")
	assert.Error(t, err)
}

func TestPrintAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		answer   any
		asJSON   bool
		expected string
	}{
		{name: "string", answer: "blue", expected: "blue\n"},
		{name: "list", answer: []string{"a", "b"}, expected: "a\nb\n"},
		{name: "empty list", answer: []string{}, expected: ""},
		{name: "nil", answer: nil, expected: ""},
		{name: "number", answer: 42, expected: "42\n"},
		{name: "json nil", answer: nil, asJSON: true, expected: "{\"q\":null}\n"},
		{name: "json empty list", answer: []string{}, asJSON: true, expected: "{\"q\":[]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			require.NoError(t, printAnswer(&out, "q", tt.answer, tt.asJSON))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}
