package enquire

import (
	"fmt"
	"strings"
)

// ColorScheme defines the colors of every part of a rendered prompt.
type ColorScheme struct {
	Name     string `json:"name"`
	Prefix   Color  `json:"prefix"`   // "?" in front of the message
	Message  Color  `json:"message"`  // Question text
	Default  Color  `json:"default"`  // "(default)" hint
	Answer   Color  `json:"answer"`   // Submitted answer
	Error    Color  `json:"error"`    // ">>" validation annotation
	Pointer  Color  `json:"pointer"`  // Cursor row of a choice list
	Checked  Color  `json:"checked"`  // Checked marker
	Disabled Color  `json:"disabled"` // Disabled items and separators
	Hint     Color  `json:"hint"`     // Key help shown before the first interaction
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
	Dim  bool  `json:"dim"`
	// NoColor keeps the terminal foreground and applies only Bold/Dim.
	NoColor bool `json:"noColor"`
	// Plain disables every escape sequence.
	Plain bool `json:"plain"`
}

var plain = Color{Plain: true}

// ThemeDefault is the default color scheme: green prefix, bold message, dimmed hints
var ThemeDefault = &ColorScheme{
	Name:     "default",
	Prefix:   Color{R: 0, G: 255, B: 0, Bold: true},
	Message:  Color{Bold: true, NoColor: true},
	Default:  Color{Dim: true, NoColor: true},
	Answer:   Color{R: 0, G: 255, B: 255},
	Error:    Color{R: 255, G: 85, B: 85},
	Pointer:  Color{R: 0, G: 255, B: 255, Bold: true},
	Checked:  Color{R: 0, G: 255, B: 0},
	Disabled: Color{R: 128, G: 128, B: 128},
	Hint:     Color{Dim: true, NoColor: true},
}

// ThemeDark is a dark theme with light blue prefix and off-white text
var ThemeDark = &ColorScheme{
	Name:     "Dark",
	Prefix:   Color{R: 102, G: 217, B: 239, Bold: true},
	Message:  Color{R: 248, G: 248, B: 242, Bold: true},
	Default:  Color{R: 98, G: 114, B: 164},
	Answer:   Color{R: 189, G: 147, B: 249},
	Error:    Color{R: 255, G: 85, B: 85, Bold: true},
	Pointer:  Color{R: 80, G: 250, B: 123, Bold: true},
	Checked:  Color{R: 80, G: 250, B: 123},
	Disabled: Color{R: 98, G: 114, B: 164},
	Hint:     Color{R: 98, G: 114, B: 164},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &ColorScheme{
	Name:     "Accessible",
	Prefix:   Color{R: 0, G: 114, B: 178, Bold: true},
	Message:  Color{R: 255, G: 255, B: 255, Bold: true},
	Default:  Color{R: 204, G: 204, B: 204},
	Answer:   Color{R: 86, G: 180, B: 233},
	Error:    Color{R: 230, G: 159, B: 0, Bold: true},
	Pointer:  Color{R: 240, G: 228, B: 66, Bold: true},
	Checked:  Color{R: 0, G: 158, B: 115, Bold: true},
	Disabled: Color{R: 153, G: 153, B: 153},
	Hint:     Color{R: 204, G: 204, B: 204},
}

// ThemePlain writes no escape sequences, for logs and dumb terminals
var ThemePlain = &ColorScheme{
	Name:     "Plain",
	Prefix:   plain,
	Message:  plain,
	Default:  plain,
	Answer:   plain,
	Error:    plain,
	Pointer:  plain,
	Checked:  plain,
	Disabled: plain,
	Hint:     plain,
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	if c.Plain {
		return ""
	}

	var codes []string
	if c.Bold {
		codes = append(codes, "1")
	}
	if c.Dim {
		codes = append(codes, "2")
	}
	if !c.NoColor {
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))
	}
	if len(codes) == 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Paint wraps s in the color and a reset.
func (c Color) Paint(s string) string {
	code := c.ToANSI()
	if code == "" || s == "" {
		return s
	}
	return code + s + Reset()
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
