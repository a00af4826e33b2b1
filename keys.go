package enquire

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// KeyEvent is a normalized keypress descriptor.
type KeyEvent struct {
	Name   string // Key name ("a", "up", "space", "number", ...); empty for unnamed input
	Value  string // Raw input that produced the key
	Number int    // Numeric value when Name is "number"
	Ctrl   bool
	Shift  bool
	Meta   bool
}

// String returns the key in "ctrl+shift+name" form.
func (k KeyEvent) String() string {
	var parts []string
	if k.Ctrl {
		parts = append(parts, "ctrl")
	}
	if k.Meta {
		parts = append(parts, "meta")
	}
	if k.Shift {
		parts = append(parts, "shift")
	}
	name := k.Name
	if name == "" {
		name = k.Value
	}
	return strings.Join(append(parts, name), "+")
}

// ParseKey parses a key descriptor such as "ctrl+n", "shift+up" or "space".
func ParseKey(desc string) KeyEvent {
	var k KeyEvent
	parts := strings.Split(strings.ToLower(desc), "+")
	for _, part := range parts[:len(parts)-1] {
		switch part {
		case "ctrl":
			k.Ctrl = true
		case "shift":
			k.Shift = true
		case "meta", "alt":
			k.Meta = true
		}
	}
	k.Name = parts[len(parts)-1]
	return k
}

// KeyMap holds the rune and escape sequence bindings used to decode raw
// terminal input into key events.
type KeyMap struct {
	bindings  map[rune]KeyEvent
	sequences map[string]KeyEvent
}

// NewDefaultKeyMap creates the default key bindings.
//
// Runes:
//   - '\r': return, '\n': enter
//   - '\t': tab, ' ': space
//   - Backspace ('\x7f', '\b'): backspace
//   - Ctrl+letter: the letter with Ctrl set (Ctrl+N is "ctrl+n")
//
// Escape sequences (without the leading ESC):
//   - "[A" / "OA": up, "[B" / "OB": down, "[C": right, "[D": left
//   - "[1;2A": shift+up, "[1;2B": shift+down, "[Z": shift+tab
//   - "[H": home, "[F": end, "[3~": delete, "[5~": pageup, "[6~": pagedown
//
// Example:
//
//	keyMap := enquire.NewDefaultKeyMap()
//	// Treat Ctrl+J as "down" even on terminals that send it as newline
//	keyMap.Bind('\x0A', "down")
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]KeyEvent),
		sequences: make(map[string]KeyEvent),
	}

	km.Bind('\r', "return")
	km.Bind('\n', "enter")
	km.Bind('\t', "tab")
	km.Bind(' ', "space")
	km.Bind('\x7f', "backspace")
	km.Bind('\b', "backspace")

	km.BindSequence("[A", "up")
	km.BindSequence("OA", "up")
	km.BindSequence("[B", "down")
	km.BindSequence("OB", "down")
	km.BindSequence("[C", "right")
	km.BindSequence("[D", "left")
	km.BindSequence("[1;2A", "shift+up")
	km.BindSequence("[1;2B", "shift+down")
	km.BindSequence("[Z", "shift+tab")
	km.BindSequence("[H", "home")
	km.BindSequence("[F", "end")
	km.BindSequence("[3~", "delete")
	km.BindSequence("[5~", "pageup")
	km.BindSequence("[6~", "pagedown")

	return km
}

// Bind adds or updates the key descriptor for a single rune.
func (km *KeyMap) Bind(key rune, desc string) {
	km.bindings[key] = ParseKey(desc)
}

// BindSequence adds or updates the key descriptor for an escape sequence.
// The sequence should not include the initial ESC character.
func (km *KeyMap) BindSequence(seq, desc string) {
	km.sequences[seq] = ParseKey(desc)
}

// Decode returns the key event for a single rune.
func (km *KeyMap) Decode(r rune) KeyEvent {
	if km != nil {
		if k, ok := km.bindings[r]; ok {
			k.Value = string(r)
			return k
		}
	}

	k := KeyEvent{Value: string(r)}
	switch {
	case r == '\x1b':
		k.Name = "escape"
	case r >= 1 && r <= 26:
		k.Name = string('a' + r - 1)
		k.Ctrl = true
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		k.Name = string(r)
	case r >= 'A' && r <= 'Z':
		k.Name = string(unicode.ToLower(r))
		k.Shift = true
	}
	return k
}

// DecodeSequence returns the key event for an escape sequence read after ESC.
// Unknown sequences decode to an unnamed key.
func (km *KeyMap) DecodeSequence(seq string) KeyEvent {
	if km != nil {
		if k, ok := km.sequences[seq]; ok {
			k.Value = "\x1b" + seq
			return k
		}
	}
	return KeyEvent{Value: "\x1b" + seq}
}

// isSubmitKey reports whether the key submits the current line.
func isSubmitKey(k KeyEvent) bool {
	return k.Name == "enter" || k.Name == "return"
}

// normalize reclassifies a decoded key before dispatch: vi and emacs style
// aliases become "up"/"down" and numeric input becomes "number".
func normalize(k KeyEvent) KeyEvent {
	if isSubmitKey(k) {
		return k
	}
	if k.Name == "up" || k.Name == "k" || (k.Name == "p" && k.Ctrl) {
		k.Name = "up"
	}
	if k.Name == "down" || k.Name == "j" || (k.Name == "n" && k.Ctrl) {
		k.Name = "down"
	}
	if n, ok := parseNumber(k.Value); ok {
		k.Name = "number"
		k.Number = n
	}
	return k
}

// parseNumber reports whether value is numeric and not pure whitespace.
func parseNumber(value string) (int, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int(f), true
}

// insertable reports whether the key should be inserted into the line buffer.
func insertable(k KeyEvent) bool {
	if k.Ctrl || k.Meta || k.Value == "" || strings.HasPrefix(k.Value, "\x1b") {
		return false
	}
	switch k.Name {
	case "tab", "backspace", "delete", "escape", "up", "down", "left", "right",
		"home", "end", "pageup", "pagedown":
		return false
	}
	for _, r := range k.Value {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
