package testutil

import (
	"github.com/arthur-debert/dotgen/pkg/confirm"
	"github.com/arthur-debert/dotgen/pkg/errors"
)

// ScriptedPrompter answers prompts from queues and records every prompt.
// An exhausted queue declines confirmations and cancels selections.
type ScriptedPrompter struct {
	Answers []bool
	Choices []int
	Prompts []string
}

var _ confirm.Prompter = (*ScriptedPrompter)(nil)

func (s *ScriptedPrompter) Confirm(prompt string) (bool, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Answers) == 0 {
		return false, nil
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

func (s *ScriptedPrompter) Select(prompt string, options []string) (int, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Choices) == 0 {
		return -1, errors.New(errors.ErrCancelled, "selection aborted")
	}
	c := s.Choices[0]
	s.Choices = s.Choices[1:]
	return c, nil
}
