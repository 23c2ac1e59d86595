// Package confirm asks the user before destructive steps.
//
// Interactive prompts are rendered with pterm. Without a terminal on stdin
// every question is answered "no" unless --yes was given, so scripted runs
// never block and never destroy anything implicitly.
package confirm

import (
	"os"

	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/arthur-debert/dotgen/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Selector picks one of several options and returns its index.
type Selector interface {
	Select(prompt string, options []string) (int, error)
}

// Prompter is both.
type Prompter interface {
	Confirmer
	Selector
}

// Always answers every question with answer.
func Always(answer bool) Confirmer {
	return static(answer)
}

type static bool

func (s static) Confirm(prompt string) (bool, error) {
	logger := logging.GetLogger("confirm")
	logger.Debug().Str("prompt", prompt).Bool("answer", bool(s)).Msg("Auto-answered")
	return bool(s), nil
}

// New returns the prompter for this process. On a terminal selections are
// always interactive and assumeYes only skips the yes/no questions. Without
// one, questions get assumeYes and selections fail.
func New(assumeYes bool) Prompter {
	interactive := IsInteractive()
	switch {
	case assumeYes && interactive:
		return &AssumeYes{Selector: &Console{}}
	case interactive:
		return &Console{}
	default:
		return &nonInteractive{answer: assumeYes}
	}
}

// AssumeYes accepts every confirmation and hands selections to Selector.
type AssumeYes struct {
	Selector Selector
}

func (a *AssumeYes) Confirm(prompt string) (bool, error) {
	logger := logging.GetLogger("confirm")
	logger.Debug().Str("prompt", prompt).Msg("Accepted by --yes")
	return true, nil
}

func (a *AssumeYes) Select(prompt string, options []string) (int, error) {
	return a.Selector.Select(prompt, options)
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Console prompts on the terminal.
type Console struct{}

func (c *Console) Confirm(prompt string) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(prompt)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCancelled, "prompt aborted")
	}
	return ok, nil
}

func (c *Console) Select(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, errors.New(errors.ErrInvalidInput, "nothing to select")
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithMaxHeight(15).
		Show(prompt)
	if err != nil {
		return -1, errors.Wrap(err, errors.ErrCancelled, "selection aborted")
	}
	for i, o := range options {
		if o == choice {
			return i, nil
		}
	}
	return -1, errors.Newf(errors.ErrInternal, "selection %q is not an option", choice)
}

type nonInteractive struct {
	answer bool
}

func (n *nonInteractive) Confirm(prompt string) (bool, error) {
	logger := logging.GetLogger("confirm")
	if !n.answer {
		logger.Warn().Str("prompt", prompt).Msg("No terminal to confirm on, declining (use --yes to accept)")
	} else {
		logger.Debug().Str("prompt", prompt).Msg("Accepted by --yes")
	}
	return n.answer, nil
}

func (n *nonInteractive) Select(prompt string, options []string) (int, error) {
	return -1, errors.Newf(errors.ErrInvalidInput, "%s: interactive selection needs a terminal", prompt)
}
