package enquire

// Choice is a single entry of a choice list.
type Choice struct {
	Name     string // Display name, also the answer value for checkbox prompts
	Value    any    // Associated value; defaults to Name
	Short    string // Short name echoed after the answer is submitted
	Checked  bool
	Disabled bool

	separator bool
}

// Separator returns a non-selectable line between choices.
// An empty line renders as a rule.
func Separator(line string) Choice {
	return Choice{Name: line, separator: true, Disabled: true}
}

// Options builds a plain choice for every name.
func Options(names ...string) []Choice {
	choices := make([]Choice, len(names))
	for i, name := range names {
		choices[i] = Choice{Name: name}
	}
	return choices
}

// IsSeparator reports whether the choice is a separator line.
func (c Choice) IsSeparator() bool {
	return c.separator
}

// ChoiceList is an ordered set of choices with a checked flag per item.
// Positions index selectable items only; separators are skipped.
type ChoiceList struct {
	items      []Choice
	selectable []int
}

// NewChoiceList copies choices into a new list.
func NewChoiceList(choices []Choice) *ChoiceList {
	cl := &ChoiceList{items: make([]Choice, len(choices))}
	for i, c := range choices {
		if c.Value == nil && !c.separator {
			c.Value = c.Name
		}
		cl.items[i] = c
		if !c.separator {
			cl.selectable = append(cl.selectable, i)
		}
	}
	return cl
}

// Len returns the number of selectable positions.
func (cl *ChoiceList) Len() int {
	if cl == nil {
		return 0
	}
	return len(cl.selectable)
}

// Items returns a copy of every item, separators included.
func (cl *ChoiceList) Items() []Choice {
	if cl == nil {
		return nil
	}
	items := make([]Choice, len(cl.items))
	copy(items, cl.items)
	return items
}

// At returns the choice at pos.
func (cl *ChoiceList) At(pos int) (Choice, bool) {
	if !cl.valid(pos) {
		return Choice{}, false
	}
	return cl.items[cl.selectable[pos]], true
}

// ItemIndex maps a position to its index in Items, or -1.
func (cl *ChoiceList) ItemIndex(pos int) int {
	if !cl.valid(pos) {
		return -1
	}
	return cl.selectable[pos]
}

// IndexOf returns the position of the choice with the given name, or -1.
func (cl *ChoiceList) IndexOf(name string) int {
	for pos := 0; pos < cl.Len(); pos++ {
		if cl.items[cl.selectable[pos]].Name == name {
			return pos
		}
	}
	return -1
}

// Move returns pos shifted by delta, wrapping around both ends.
func (cl *ChoiceList) Move(pos, delta int) int {
	n := cl.Len()
	if n == 0 {
		return pos
	}
	return ((pos+delta)%n + n) % n
}

// Toggle flips the checked flag at pos. Disabled items are left alone.
func (cl *ChoiceList) Toggle(pos int) {
	if c := cl.item(pos); c != nil && !c.Disabled {
		c.Checked = !c.Checked
	}
}

// Check sets the checked flag at pos.
func (cl *ChoiceList) Check(pos int, checked bool) {
	if c := cl.item(pos); c != nil && !c.Disabled {
		c.Checked = checked
	}
}

// Radio checks pos and unchecks every other item.
func (cl *ChoiceList) Radio(pos int) {
	if c := cl.item(pos); c == nil || c.Disabled {
		return
	}
	for i := 0; i < cl.Len(); i++ {
		cl.items[cl.selectable[i]].Checked = i == pos
	}
}

// CheckAll checks every enabled item.
func (cl *ChoiceList) CheckAll() {
	cl.each(func(c *Choice) { c.Checked = true })
}

// UncheckAll unchecks every enabled item.
func (cl *ChoiceList) UncheckAll() {
	cl.each(func(c *Choice) { c.Checked = false })
}

// Invert flips every enabled item.
func (cl *ChoiceList) Invert() {
	cl.each(func(c *Choice) { c.Checked = !c.Checked })
}

// AllChecked reports whether every enabled item is checked.
// An empty list is never all checked.
func (cl *ChoiceList) AllChecked() bool {
	enabled := 0
	for _, i := range cl.indexes() {
		c := cl.items[i]
		if c.Disabled {
			continue
		}
		enabled++
		if !c.Checked {
			return false
		}
	}
	return enabled > 0
}

// Checked returns the names of checked items in list order.
func (cl *ChoiceList) Checked() []string {
	names := []string{}
	for _, i := range cl.indexes() {
		if cl.items[i].Checked {
			names = append(names, cl.items[i].Name)
		}
	}
	return names
}

// CheckedValues returns the values of checked items in list order.
func (cl *ChoiceList) CheckedValues() []any {
	values := []any{}
	for _, i := range cl.indexes() {
		if cl.items[i].Checked {
			values = append(values, cl.items[i].Value)
		}
	}
	return values
}

func (cl *ChoiceList) valid(pos int) bool {
	return pos >= 0 && pos < cl.Len()
}

func (cl *ChoiceList) item(pos int) *Choice {
	if !cl.valid(pos) {
		return nil
	}
	return &cl.items[cl.selectable[pos]]
}

func (cl *ChoiceList) indexes() []int {
	if cl == nil {
		return nil
	}
	return cl.selectable
}

func (cl *ChoiceList) each(fn func(c *Choice)) {
	for _, i := range cl.indexes() {
		if !cl.items[i].Disabled {
			fn(&cl.items[i])
		}
	}
}
