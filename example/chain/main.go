// Package main demonstrates conditional questions and answer transforms.
package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/nao1215/enquire"
)

func main() {
	ui, err := enquire.NewTerminalUI(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer ui.Close()

	questions := []enquire.Question{
		{
			Name:    "name",
			Message: "What is your name?",
			Transform: func(_ context.Context, answer any) (any, error) {
				return strings.TrimSpace(answer.(string)), nil
			},
			Validate: enquire.Required("Please enter a name"),
		},
		{
			Name:    "age",
			Message: "How old are you?",
			Validate: func(_ context.Context, input any, key *enquire.KeyEvent) (enquire.Verdict, error) {
				if key != nil {
					return enquire.Accept, nil
				}
				if _, err := strconv.Atoi(input.(string)); err != nil {
					return enquire.Reject("Age must be a number"), nil
				}
				return enquire.Accept, nil
			},
			Transform: func(_ context.Context, answer any) (any, error) {
				return strconv.Atoi(answer.(string))
			},
		},
		{
			Name:    "drink",
			Message: "What would you like to drink?",
			Choices: enquire.Options("beer", "wine", "whisky"),
			Radio:   true,
			When: func(_ context.Context, answers enquire.Answers) (bool, error) {
				age, _ := answers["age"].(int)
				return age >= 21, nil
			},
		},
	}

	var prompts []*enquire.Prompt
	for _, q := range questions {
		p, err := enquire.New(q, enquire.WithUI(ui))
		if err != nil {
			log.Fatal(err)
		}
		prompts = append(prompts, p)
	}

	answers, err := enquire.RunAll(context.Background(), nil, prompts...)
	if err != nil {
		log.Fatal(err)
	}
	for _, q := range questions {
		fmt.Printf("%s: %v\n", q.Name, answers[q.Name])
	}
}
