package prompt

import (
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// Terminal asks questions interactively with huh forms.
type Terminal struct {
	// Input and Output default to the process terminal when nil.
	Input  io.Reader
	Output io.Writer
	// Accessible switches to plain line prompts for screen readers and
	// terminals without cursor control.
	Accessible bool
}

// Confirm asks a yes/no question.
func (t Terminal) Confirm(q Question) (bool, error) {
	v := q.Default
	field := huh.NewConfirm().
		Title(q.Message).
		Affirmative("Yes").
		Negative("No").
		Value(&v)
	return v, t.run(field)
}

// Select asks for one of q.Choices.
func (t Terminal) Select(q Question) (string, error) {
	v := q.DefaultValue()
	field := huh.NewSelect[string]().
		Title(q.Message).
		Options(options(q.Choices)...).
		Value(&v)
	return v, t.run(field)
}

// MultiSelect asks for any subset of q.Choices, in choice order.
func (t Terminal) MultiSelect(q Question) ([]string, error) {
	v := q.DefaultValues()
	field := huh.NewMultiSelect[string]().
		Title(q.Message).
		Options(options(q.Choices)...).
		Height(len(q.Choices) + 2).
		Value(&v)
	return v, t.run(field)
}

func (t Terminal) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(t.Accessible).
		WithShowHelp(false)
	if t.Input != nil {
		form = form.WithInput(t.Input)
	}
	if t.Output != nil {
		form = form.WithOutput(t.Output)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func options(choices []Choice) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		label := c.Label
		if label == "" {
			label = c.Value
		}
		opts = append(opts, huh.NewOption(label, c.Value).Selected(c.Checked))
	}
	return opts
}

var _ Asker = Terminal{}
