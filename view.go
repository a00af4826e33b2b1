package enquire

import "strings"

const (
	pointerMark   = "❯"
	checkedMark   = "◉"
	uncheckedMark = "◯"
	separatorRule = "──────────────"
)

// render redraws the prompt with the annotation of the last verdict.
func (p *Prompt) render() {
	if p.status == StatusInitialized {
		if p.hasHint() {
			p.status = StatusHelp
		} else {
			p.status = StatusInteracted
		}
	}

	annotation := ""
	if p.state != nil && !p.state.Valid {
		annotation = p.colorScheme.Error.Paint(">>") + " " + p.errorMessage(*p.state)
	}
	p.warn("failed to render prompt", p.ui.Render(p.screen(), annotation))
}

func (p *Prompt) hasHint() bool {
	if p.choices.Len() > 0 {
		return true
	}
	def, _ := resolveDefault(p.question.Default, p.choices)
	return def != nil
}

func (p *Prompt) errorMessage(v Verdict) string {
	switch {
	case v.Message != "":
		return v.Message
	case p.question.ErrorMessage != "":
		return p.question.ErrorMessage
	default:
		return defaultErrorMessage
	}
}

func (p *Prompt) screen() string {
	message := p.Message()
	switch {
	case p.status == StatusAnswered:
		return message + p.colorScheme.Answer.Paint(p.answerText())
	case p.choices.Len() > 0:
		return message + "\n" + p.renderChoices()
	default:
		return message + p.mask(p.ui.Line())
	}
}

func (p *Prompt) mask(s string) string {
	if p.question.Mask == nil {
		return s
	}
	return p.question.Mask(s)
}

// answerText is the answer as echoed after submission. Choices with a
// short name are echoed by it.
func (p *Prompt) answerText() string {
	switch v := p.answer.(type) {
	case string:
		if p.choices.Len() > 0 {
			return p.shortName(v)
		}
		return p.mask(v)
	case []string:
		names := make([]string, len(v))
		for i, name := range v {
			names[i] = p.shortName(name)
		}
		return strings.Join(names, ", ")
	}
	return displayAnswer(p.answer)
}

func (p *Prompt) shortName(name string) string {
	if c, ok := p.choices.At(p.choices.IndexOf(name)); ok && c.Short != "" {
		return c.Short
	}
	return name
}

func (p *Prompt) helpText() string {
	if p.question.Radio {
		return "(Use arrow keys, <space> to select)"
	}
	return "(Press <space> to select, <a> to toggle all, <i> to invert selection)"
}

// renderChoices draws the visible window of the choice list.
func (p *Prompt) renderChoices() string {
	items := p.choices.Items()
	cursor := p.choices.ItemIndex(p.position)
	start, end := p.window(len(items), cursor)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, p.renderChoice(items[i], i == cursor))
	}
	return strings.Join(lines, "\n")
}

// window scrolls the visible rows so the cursor stays inside them.
func (p *Prompt) window(total, cursor int) (start, end int) {
	limit := p.limit
	if limit <= 0 || limit > total {
		limit = total
	}
	if cursor < p.offset {
		p.offset = cursor
	}
	if cursor >= p.offset+limit {
		p.offset = cursor - limit + 1
	}
	p.offset = max(0, min(p.offset, total-limit))
	return p.offset, p.offset + limit
}

func (p *Prompt) renderChoice(c Choice, active bool) string {
	if c.IsSeparator() {
		line := c.Name
		if line == "" {
			line = separatorRule
		}
		return "  " + p.colorScheme.Disabled.Paint(line)
	}

	pointer := " "
	if active {
		pointer = p.colorScheme.Pointer.Paint(pointerMark)
	}
	mark := uncheckedMark
	if c.Checked {
		mark = p.colorScheme.Checked.Paint(checkedMark)
	}

	name := c.Name
	switch {
	case c.Disabled:
		name = p.colorScheme.Disabled.Paint(name + " (disabled)")
	case active:
		name = p.colorScheme.Pointer.Paint(name)
	}
	return pointer + " " + mark + " " + name
}
