package enquire

import (
	"context"
	"fmt"
)

// Run asks the question unless When declines it, transforms the answer and
// stores it in answers under the question name. A nil answers uses the
// accumulator given by WithAnswers.
//
// When the question is skipped, Run returns the answer already present in
// answers or else the default, without reading input. A transform that
// returns nil leaves answers untouched and Run returns nil.
func (p *Prompt) Run(ctx context.Context, answers Answers) (any, error) {
	if answers == nil {
		answers = p.answers
	}
	if p.question.ChoicesFunc != nil {
		if err := p.loadChoices(answers); err != nil {
			return nil, p.report(err)
		}
	}

	ok, err := p.When(ctx, answers)
	if err != nil {
		return nil, p.report(err)
	}
	if !ok {
		return p.skip(answers), nil
	}

	var answer any
	if err := p.Ask(ctx, func(v any) { answer = v }); err != nil {
		return nil, err
	}

	value, err := p.Transform(ctx, answer)
	if err != nil {
		return nil, p.report(err)
	}
	if value != nil {
		answers[p.question.Name] = value
		p.answer = value
	}
	return value, nil
}

func (p *Prompt) skip(answers Answers) any {
	p.End(false)
	value, ok := answers[p.question.Name]
	if !ok {
		value, _ = resolveDefault(p.question.Default, p.choices)
	}
	p.emit(OnAnswer, value)
	return value
}

// report hands errors raised outside a session to the error listeners, or
// writes them to the error output.
func (p *Prompt) report(err error) error {
	if p.hasListeners(OnError) {
		p.emit(OnError, err)
	} else {
		fmt.Fprintf(p.errOut, "Error: %v\n", err)
	}
	return err
}

// RunAll runs prompts in order against a shared accumulator and stops at
// the first error.
func RunAll(ctx context.Context, answers Answers, prompts ...*Prompt) (Answers, error) {
	if answers == nil {
		answers = Answers{}
	}
	for _, p := range prompts {
		if _, err := p.Run(ctx, answers); err != nil {
			return answers, err
		}
	}
	return answers, nil
}
