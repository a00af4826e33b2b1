// Package main demonstrates basic usage of the enquire library.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/enquire"
)

func main() {
	p, err := enquire.New(enquire.Question{
		Name:    "first",
		Message: "What is your first name?",
		Default: "Brian",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	answer, err := p.Run(context.Background(), nil)
	if err != nil {
		if errors.Is(err, enquire.ErrInterrupted) || errors.Is(err, enquire.ErrEOF) {
			fmt.Println("Goodbye!")
			return
		}
		log.Fatal(err)
	}
	fmt.Printf("Hello, %s!\n", answer)
}
