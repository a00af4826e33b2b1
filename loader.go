package enquire

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// questionFile is the on-disk form of a Question.
type questionFile struct {
	Name         string   `yaml:"name"`
	Message      string   `yaml:"message"`
	Default      any      `yaml:"default"`
	Choices      []Choice `yaml:"choices"`
	ErrorMessage string   `yaml:"errorMessage"`
	Prefix       string   `yaml:"prefix"`
	Limit        int      `yaml:"limit"`
	Radio        bool     `yaml:"radio"`
	Expandable   bool     `yaml:"expandable"`
	Mask         string   `yaml:"mask"`
	Required     bool     `yaml:"required"`
	Pattern      string   `yaml:"pattern"`
}

// DecodeQuestion parses a YAML question document.
//
//	name: color
//	message: Favorite color?
//	default: 1
//	radio: true
//	choices:
//	  - red
//	  - name: green
//	    checked: true
//	  - separator: ""
//	  - name: blue
//	    disabled: true
//
// "required" and "pattern" become validators; "mask" is the rune shown
// in place of each typed character.
func DecodeQuestion(data []byte) (Question, error) {
	var f questionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Question{}, fmt.Errorf("failed to decode question: %w", err)
	}

	q := Question{
		Name:         f.Name,
		Message:      f.Message,
		Default:      f.Default,
		Choices:      f.Choices,
		ErrorMessage: f.ErrorMessage,
		Prefix:       f.Prefix,
		Limit:        f.Limit,
		Radio:        f.Radio,
		Expandable:   f.Expandable,
	}
	if f.Mask != "" {
		q.Mask = MaskWith(f.Mask)
	}

	var validators []ValidateFunc
	if f.Required {
		validators = append(validators, Required(""))
	}
	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return Question{}, fmt.Errorf("%w: invalid pattern %q: %v", ErrInvalidQuestion, f.Pattern, err)
		}
		validators = append(validators, MatchPattern(re, ""))
	}
	q.Validate = All(validators...)

	if err := q.check(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// LoadQuestion reads a YAML question document from path.
func LoadQuestion(path string) (Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Question{}, fmt.Errorf("failed to read question file: %w", err)
	}
	return DecodeQuestion(data)
}

// UnmarshalYAML accepts either a bare name or a mapping. A mapping with a
// "separator" key decodes to a separator line.
func (c *Choice) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*c = Choice{Name: node.Value}
		return nil
	}

	var raw struct {
		Name      string  `yaml:"name"`
		Value     any     `yaml:"value"`
		Short     string  `yaml:"short"`
		Checked   bool    `yaml:"checked"`
		Disabled  bool    `yaml:"disabled"`
		Separator *string `yaml:"separator"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Separator != nil {
		*c = Separator(*raw.Separator)
		return nil
	}
	*c = Choice{
		Name:     raw.Name,
		Value:    raw.Value,
		Short:    raw.Short,
		Checked:  raw.Checked,
		Disabled: raw.Disabled,
	}
	return nil
}
