package enquire

// ActionFunc handles a named key and returns the new cursor position.
type ActionFunc func(p *Prompt, pos int, key *KeyEvent) int

// Actions is the dispatch table from normalized key names to handlers.
// Every prompt owns its table, so overriding an entry on one prompt never
// affects another.
type Actions struct {
	handlers map[string]ActionFunc
}

// NewActions returns a table with the built-in actions:
//
//   - up / down: move the cursor, wrapping at both ends
//   - space: toggle the item under the cursor (single select when radio)
//   - number: jump to item n (1-based) when it exists
//   - tab: reserved, does nothing
//   - a: check every item, or uncheck them all when all are checked
//   - i: invert every item
func NewActions() *Actions {
	return &Actions{handlers: map[string]ActionFunc{
		"up":     actionUp,
		"down":   actionDown,
		"space":  actionSpace,
		"number": actionNumber,
		"tab":    actionTab,
		"a":      actionAll,
		"i":      actionInvert,
	}}
}

// Set replaces the handler for name.
func (a *Actions) Set(name string, fn ActionFunc) *Actions {
	a.handlers[name] = fn
	return a
}

// Remove drops the handler for name; the key then becomes a no-op.
func (a *Actions) Remove(name string) *Actions {
	delete(a.handlers, name)
	return a
}

// Get returns the handler for name.
func (a *Actions) Get(name string) (ActionFunc, bool) {
	fn, ok := a.handlers[name]
	return fn, ok
}

// Dispatch runs the handler for key. Unknown keys leave pos unchanged.
func (a *Actions) Dispatch(p *Prompt, pos int, key *KeyEvent) int {
	if key == nil {
		return pos
	}
	fn, ok := a.handlers[key.Name]
	if !ok || fn == nil {
		return pos
	}
	return fn(p, pos, key)
}

func (a *Actions) clone() *Actions {
	c := &Actions{handlers: make(map[string]ActionFunc, len(a.handlers))}
	for name, fn := range a.handlers {
		c.handlers[name] = fn
	}
	return c
}

func actionUp(p *Prompt, pos int, _ *KeyEvent) int {
	return p.choices.Move(pos, -1)
}

func actionDown(p *Prompt, pos int, _ *KeyEvent) int {
	return p.choices.Move(pos, 1)
}

func actionSpace(p *Prompt, pos int, _ *KeyEvent) int {
	if p.question.Radio {
		p.choices.Radio(pos)
	} else {
		p.choices.Toggle(pos)
	}
	return pos
}

func actionNumber(p *Prompt, pos int, key *KeyEvent) int {
	n := key.Number - 1
	if n >= 0 && n < p.choices.Len() {
		return n
	}
	return pos
}

func actionTab(_ *Prompt, pos int, _ *KeyEvent) int {
	return pos
}

func actionAll(p *Prompt, pos int, _ *KeyEvent) int {
	if p.choices.AllChecked() {
		p.choices.UncheckAll()
	} else {
		p.choices.CheckAll()
	}
	return pos
}

func actionInvert(p *Prompt, pos int, _ *KeyEvent) int {
	p.choices.Invert()
	return pos
}
