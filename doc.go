// Package enquire provides interactive terminal questions: free text,
// checkbox lists and radio lists, with validation, conditional asking and
// answer transforms.
//
// A Prompt asks one Question. Its session is driven by a single event loop
// that consumes key and line events from a UI in arrival order, so a
// validator that emits more input sees that input processed only after it
// returns.
//
// Key Features:
//
//   - Text, checkbox and radio questions with defaults
//   - Inline validation on every keypress, and on submit
//   - Conditional questions (When) and answer transforms (Filter, Transform)
//   - Overridable per-prompt key actions
//   - Observers for ask, answer, error, keypress, line and key names
//   - Questions loaded from YAML
//   - Cross-platform terminal handling and color schemes
//
// Quick Start:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/nao1215/enquire"
//	)
//
//	func main() {
//		p, err := enquire.New(enquire.Question{
//			Name:    "first",
//			Message: "What is your first name?",
//			Default: "Brian",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer p.Close()
//
//		answer, err := p.Run(context.Background(), nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(answer)
//	}
//
// Chained Questions:
//
// Several prompts can share one terminal and one answers map. A question
// whose When returns false is skipped and answers its existing value or
// default.
//
//	ui, err := enquire.NewTerminalUI(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ui.Close()
//
//	name, _ := enquire.New(enquire.Question{Name: "name", Message: "Name?"}, enquire.WithUI(ui))
//	pizza, _ := enquire.New(enquire.Question{
//		Name:    "toppings",
//		Message: "Toppings?",
//		Choices: enquire.Options("cheese", "olives", "basil"),
//		When: func(_ context.Context, a enquire.Answers) (bool, error) {
//			return a["name"] != "", nil
//		},
//	}, enquire.WithUI(ui))
//
//	answers, err := enquire.RunAll(ctx, nil, name, pizza)
//
// Key Bindings:
//
//   - Enter: submit the answer
//   - Ctrl+C: end the prompt with ErrInterrupted
//   - Up / k / Ctrl+P, Down / j / Ctrl+N: move in a choice list (wraps)
//   - Space: toggle the choice under the cursor
//   - 1-9: jump to the choice with that number
//   - a: toggle all, i: invert selection
//   - Shift+Up / Shift+Down: shrink or grow an Expandable list
//
// Custom behavior can be set per prompt:
//
//	p.Actions().Set("tab", func(p *enquire.Prompt, pos int, _ *enquire.KeyEvent) int {
//		return p.Choices().Move(pos, 1)
//	})
//
// Errors:
//
// Validation errors, transform errors and input errors are delivered to
// "error" listeners when any are registered, and the session keeps going.
// Otherwise the session ends, the error is written to the error output
// (stderr by default) and returned by Ask or Run.
package enquire
