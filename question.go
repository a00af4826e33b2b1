package enquire

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
)

// Answers accumulates answers keyed by question name across runs.
type Answers map[string]any

// Verdict is the outcome of validation.
type Verdict struct {
	Valid   bool
	Message string // Shown below the prompt when Valid is false
}

// Accept is the verdict of valid input.
var Accept = Verdict{Valid: true}

// Reject returns an invalid verdict with message. An empty message falls
// back to the question's ErrorMessage.
func Reject(message string) Verdict {
	return Verdict{Message: message}
}

// ValidateFunc checks input. It runs for every keypress with the current
// line and key, and once on submit with the answer and a nil key.
type ValidateFunc func(ctx context.Context, input any, key *KeyEvent) (Verdict, error)

// TransformFunc maps the submitted answer to the value stored in Answers.
// Returning nil leaves the answer unset.
type TransformFunc func(ctx context.Context, answer any) (any, error)

// WhenFunc decides whether the question is asked at all.
type WhenFunc func(ctx context.Context, answers Answers) (bool, error)

// Listener observes a prompt event.
type Listener func(payload any)

// Question describes a single question.
type Question struct {
	Name         string                                  // Key in Answers (required)
	Message      string                                  // Text shown to the user (required)
	Default      any                                     // Default answer; an index or name when Choices are set
	Choices      []Choice                                // Makes the question a choice list
	ChoicesFunc  func(answers Answers) ([]Choice, error) // Loads Choices from earlier answers on each run
	Validate     ValidateFunc                            // Optional validation
	Filter       TransformFunc                           // Runs before Transform
	Transform    TransformFunc                           // Maps the answer before it is stored
	When         WhenFunc                                // Skips the question when it returns false
	ErrorMessage string                                  // Shown when validation fails without a message
	Prefix       string                                  // Replaces the "?" prefix
	Limit        int                                     // Visible rows of a choice list (default 7)
	Radio        bool                                    // Single selection
	Expandable   bool                                    // Shift+Up/Down resize the visible rows
	Mask         func(input string) string               // Masks typed text, e.g. for passwords
	On           map[string]Listener                     // Listeners registered on every ask
}

func (q *Question) check() error {
	if strings.TrimSpace(q.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidQuestion)
	}
	if q.Message == "" {
		return fmt.Errorf("%w: message is required for %q", ErrInvalidQuestion, q.Name)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative (got %d)", ErrInvalidQuestion, q.Limit)
	}
	return nil
}

// Required rejects empty answers on submit. An empty message uses the
// question's ErrorMessage.
func Required(message string) ValidateFunc {
	return func(_ context.Context, input any, key *KeyEvent) (Verdict, error) {
		if key != nil || !isEmpty(input) {
			return Accept, nil
		}
		return Reject(message), nil
	}
}

// MatchPattern rejects submitted answers that do not match re.
func MatchPattern(re *regexp.Regexp, message string) ValidateFunc {
	return func(_ context.Context, input any, key *KeyEvent) (Verdict, error) {
		if key != nil || re.MatchString(displayAnswer(input)) {
			return Accept, nil
		}
		return Reject(message), nil
	}
}

// All chains validators; the first rejection or error wins.
// It returns nil when no validators are given.
func All(validators ...ValidateFunc) ValidateFunc {
	if len(validators) == 0 {
		return nil
	}
	return func(ctx context.Context, input any, key *KeyEvent) (Verdict, error) {
		for _, validate := range validators {
			v, err := validate(ctx, input, key)
			if err != nil || !v.Valid {
				return v, err
			}
		}
		return Accept, nil
	}
}

// MaskWith returns a Mask that replaces every rune with mask.
func MaskWith(mask string) func(string) string {
	return func(input string) string {
		return strings.Repeat(mask, len([]rune(input)))
	}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

// asIndex reports whether v is an integral number usable as a position.
func asIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatIndex(float64(n))
	case float64:
		return floatIndex(n)
	}
	return 0, false
}

func floatIndex(f float64) (int, bool) {
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// resolveDefault returns the effective default and the position it selects.
// A numeric default indexes the choice list and resolves to the choice
// name; a string default selects the choice of the same name.
func resolveDefault(def any, choices *ChoiceList) (any, int) {
	if def == nil || choices.Len() == 0 {
		return def, -1
	}
	if idx, ok := asIndex(def); ok {
		if c, ok := choices.At(idx); ok {
			return c.Name, idx
		}
		return def, -1
	}
	if name, ok := def.(string); ok {
		return name, choices.IndexOf(name)
	}
	return def, -1
}

// displayAnswer renders an answer as plain text.
func displayAnswer(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}
