// Package main demonstrates masked input with a strength check on every keypress.
package main

import (
	"context"
	"fmt"
	"log"
	"unicode"

	"github.com/nao1215/enquire"
)

func strength(password string) string {
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}
	score := 0
	for _, ok := range []bool{lower, upper, digit, other, len(password) >= 12} {
		if ok {
			score++
		}
	}
	switch {
	case score >= 4:
		return "strong"
	case score >= 2:
		return "medium"
	default:
		return "weak"
	}
}

func main() {
	p, err := enquire.New(enquire.Question{
		Name:    "password",
		Message: "Choose a password",
		Mask:    enquire.MaskWith("*"),
		Validate: func(_ context.Context, input any, key *enquire.KeyEvent) (enquire.Verdict, error) {
			s := strength(input.(string))
			if key != nil {
				return enquire.Reject("strength: " + s), nil
			}
			if s == "weak" {
				return enquire.Reject("Password is too weak"), nil
			}
			return enquire.Accept, nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	answer, err := p.Run(context.Background(), nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Password has %d characters\n", len(answer.(string)))
}
