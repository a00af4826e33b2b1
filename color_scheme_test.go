package enquire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorToANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		color    Color
		expected string
	}{
		{name: "rgb", color: Color{R: 1, G: 2, B: 3}, expected: "\x1b[38;2;1;2;3m"},
		{name: "bold rgb", color: Color{R: 0, G: 255, B: 0, Bold: true}, expected: "\x1b[1;38;2;0;255;0m"},
		{name: "dim without color", color: Color{Dim: true, NoColor: true}, expected: "\x1b[2m"},
		{name: "bold and dim", color: Color{Bold: true, Dim: true, NoColor: true}, expected: "\x1b[1;2m"},
		{name: "no codes", color: Color{NoColor: true}, expected: ""},
		{name: "plain", color: Color{R: 255, Bold: true, Plain: true}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.color.ToANSI())
		})
	}
}

func TestColorPaint(t *testing.T) {
	t.Parallel()

	red := Color{R: 255}
	assert.Equal(t, "\x1b[38;2;255;0;0mhi\x1b[0m", red.Paint("hi"))
	assert.Equal(t, "", red.Paint(""), "empty text gets no escape codes")
	assert.Equal(t, "hi", Color{Plain: true}.Paint("hi"))
}

func TestThemes(t *testing.T) {
	t.Parallel()

	for _, theme := range []*ColorScheme{ThemeDefault, ThemeDark, ThemeAccessible} {
		assert.NotEmpty(t, theme.Name)
		assert.NotEmpty(t, theme.Prefix.ToANSI(), "%s prefix should be colored", theme.Name)
		assert.NotEmpty(t, theme.Error.ToANSI(), "%s error should be colored", theme.Name)
	}

	plainParts := []Color{
		ThemePlain.Prefix, ThemePlain.Message, ThemePlain.Default, ThemePlain.Answer, ThemePlain.Error,
		ThemePlain.Pointer, ThemePlain.Checked, ThemePlain.Disabled, ThemePlain.Hint,
	}
	for _, c := range plainParts {
		assert.Empty(t, c.ToANSI())
	}
}

func TestSetTheme(t *testing.T) {
	t.Parallel()

	p, _ := newForTesting(t, Question{Name: "first", Message: "First name?"})
	assert.Equal(t, "? x ", p.Format("x"))

	p.SetTheme(ThemeDark)
	assert.Contains(t, p.Format("x"), ThemeDark.Prefix.ToANSI())

	p.SetTheme(nil)
	assert.Contains(t, p.Format("x"), ThemeDark.Prefix.ToANSI(), "nil keeps the current theme")

	q, _ := newForTesting(t, Question{Name: "first", Message: "First name?"}, WithTheme(ThemeAccessible))
	assert.Contains(t, q.Format("x"), ThemeAccessible.Message.ToANSI())
}
