// Package main demonstrates checkbox and radio questions.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/nao1215/enquire"
)

func main() {
	ui, err := enquire.NewTerminalUI(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer ui.Close()

	toppings, err := enquire.New(enquire.Question{
		Name:    "toppings",
		Message: "Which toppings do you want?",
		Choices: []enquire.Choice{
			{Name: "cheese", Checked: true},
			{Name: "olives"},
			{Name: "basil"},
			enquire.Separator(""),
			{Name: "pineapple", Disabled: true},
			{Name: "mushrooms"},
			{Name: "onions"},
			{Name: "peppers"},
			{Name: "tomatoes"},
		},
		Expandable: true,
		Validate: func(_ context.Context, input any, key *enquire.KeyEvent) (enquire.Verdict, error) {
			if key == nil && len(input.([]string)) == 0 {
				return enquire.Reject("Pick at least one topping"), nil
			}
			return enquire.Accept, nil
		},
	}, enquire.WithUI(ui))
	if err != nil {
		log.Fatal(err)
	}

	size, err := enquire.New(enquire.Question{
		Name:    "size",
		Message: "What size?",
		Choices: []enquire.Choice{
			{Name: "small", Short: "S"},
			{Name: "medium", Short: "M"},
			{Name: "large", Short: "L"},
		},
		Default: 1,
		Radio:   true,
	}, enquire.WithUI(ui))
	if err != nil {
		log.Fatal(err)
	}

	answers, err := enquire.RunAll(context.Background(), nil, toppings, size)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s pizza with %v\n", answers["size"], answers["toppings"])
}
