// Package prompttest provides a scripted prompt.Asker for tests.
package prompttest

import "github.com/tracericochet/sampy/internal/prompt"

// Scripted answers from fixed tables and falls back to defaults. It records
// every question it was asked.
type Scripted struct {
	Bools  map[string]bool
	Values map[string]string
	Lists  map[string][]string
	// Err, when set, is returned for every question.
	Err error

	Asked []string
}

// Confirm returns the scripted answer or q.Default.
func (s *Scripted) Confirm(q prompt.Question) (bool, error) {
	s.Asked = append(s.Asked, q.Name)
	if s.Err != nil {
		return false, s.Err
	}
	if v, ok := s.Bools[q.Name]; ok {
		return v, nil
	}
	return q.Default, nil
}

// Select returns the scripted answer or q.DefaultValue().
func (s *Scripted) Select(q prompt.Question) (string, error) {
	s.Asked = append(s.Asked, q.Name)
	if s.Err != nil {
		return "", s.Err
	}
	if v, ok := s.Values[q.Name]; ok {
		return v, nil
	}
	return q.DefaultValue(), nil
}

// MultiSelect returns the scripted answer or q.DefaultValues().
func (s *Scripted) MultiSelect(q prompt.Question) ([]string, error) {
	s.Asked = append(s.Asked, q.Name)
	if s.Err != nil {
		return nil, s.Err
	}
	if v, ok := s.Lists[q.Name]; ok {
		return v, nil
	}
	return q.DefaultValues(), nil
}

var _ prompt.Asker = (*Scripted)(nil)
