// Package prompt runs declarative question lists against an Asker.
//
// Tools describe their questions as data: kind, message, default and an
// optional visibility predicate over earlier answers. Run walks the list in
// order; Defaults resolves the same list without asking anyone.
package prompt

import (
	"errors"
	"fmt"
)

// Kind is the shape of a question.
type Kind int

// Question kinds.
const (
	Confirm Kind = iota
	Select
	MultiSelect
)

func (k Kind) String() string {
	switch k {
	case Confirm:
		return "confirm"
	case Select:
		return "select"
	case MultiSelect:
		return "multi-select"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Choice is one option of a Select or MultiSelect question.
type Choice struct {
	Label string
	Value string
	// Checked marks the default: the preselected entries of a MultiSelect,
	// or the initial option of a Select.
	Checked bool
}

// Question is one prompt.
type Question struct {
	Kind    Kind
	Name    string
	Message string
	// Default is the answer to a Confirm question when nobody is asked.
	Default bool
	Choices []Choice
	// When hides the question unless it returns true for the answers so far.
	// A hidden question has no answer.
	When func(Answers) bool
}

// DefaultValue returns the default of a Select: the first checked choice,
// else the first choice.
func (q Question) DefaultValue() string {
	for _, c := range q.Choices {
		if c.Checked {
			return c.Value
		}
	}
	if len(q.Choices) > 0 {
		return q.Choices[0].Value
	}
	return ""
}

// DefaultValues returns the checked choices of a MultiSelect in order.
func (q Question) DefaultValues() []string {
	var values []string
	for _, c := range q.Choices {
		if c.Checked {
			values = append(values, c.Value)
		}
	}
	return values
}

// Answers holds the results of Run keyed by question name.
type Answers struct {
	bools  map[string]bool
	values map[string]string
	lists  map[string][]string
}

// NewAnswers returns an empty answer set.
func NewAnswers() Answers {
	return Answers{
		bools:  make(map[string]bool),
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

// Bool returns a Confirm answer; false when the question was hidden.
func (a Answers) Bool(name string) bool { return a.bools[name] }

// Value returns a Select answer; "" when the question was hidden.
func (a Answers) Value(name string) string { return a.values[name] }

// Values returns a MultiSelect answer; nil when the question was hidden.
func (a Answers) Values(name string) []string { return a.lists[name] }

// Has reports whether name was answered.
func (a Answers) Has(name string) bool {
	if _, ok := a.bools[name]; ok {
		return true
	}
	if _, ok := a.values[name]; ok {
		return true
	}
	_, ok := a.lists[name]
	return ok
}

// SetBool records a Confirm answer.
func (a Answers) SetBool(name string, v bool) { a.bools[name] = v }

// SetValue records a Select answer.
func (a Answers) SetValue(name, v string) { a.values[name] = v }

// SetValues records a MultiSelect answer.
func (a Answers) SetValues(name string, v []string) { a.lists[name] = v }

// Asker answers one question at a time.
type Asker interface {
	Confirm(q Question) (bool, error)
	Select(q Question) (string, error)
	MultiSelect(q Question) ([]string, error)
}

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Run asks each visible question in order.
func Run(asker Asker, questions []Question) (Answers, error) {
	answers := NewAnswers()
	for _, q := range questions {
		if q.When != nil && !q.When(answers) {
			continue
		}
		switch q.Kind {
		case Confirm:
			v, err := asker.Confirm(q)
			if err != nil {
				return answers, err
			}
			answers.SetBool(q.Name, v)
		case Select:
			v, err := asker.Select(q)
			if err != nil {
				return answers, err
			}
			answers.SetValue(q.Name, v)
		case MultiSelect:
			v, err := asker.MultiSelect(q)
			if err != nil {
				return answers, err
			}
			answers.SetValues(q.Name, v)
		default:
			return answers, fmt.Errorf("question %q: unsupported kind %s", q.Name, q.Kind)
		}
	}
	return answers, nil
}

// Auto answers every question with its default.
type Auto struct{}

// Confirm returns q.Default.
func (Auto) Confirm(q Question) (bool, error) { return q.Default, nil }

// Select returns q.DefaultValue().
func (Auto) Select(q Question) (string, error) { return q.DefaultValue(), nil }

// MultiSelect returns q.DefaultValues().
func (Auto) MultiSelect(q Question) ([]string, error) { return q.DefaultValues(), nil }

var _ Asker = Auto{}
