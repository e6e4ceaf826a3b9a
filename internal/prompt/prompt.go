package prompt

import "errors"

// ErrNonInteractive is returned when prompting in non-interactive mode.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// Validator checks a typed answer before it is accepted.
type Validator func(string) error

// Prompter defines the interface for interactive user prompts.
type Prompter interface {
	// Select presents options and returns the selected value.
	Select(title string, options []string, defaultValue string) (string, error)

	// Input prompts for text input. validate may be nil.
	Input(title string, defaultValue string, validate Validator) (string, error)

	// Confirm prompts for yes/no.
	Confirm(title string, defaultValue bool) (bool, error)
}

// NoopPrompter returns errors for all prompts (non-interactive mode).
type NoopPrompter struct{}

func (p *NoopPrompter) Select(title string, options []string, defaultValue string) (string, error) {
	return "", ErrNonInteractive
}

func (p *NoopPrompter) Input(title string, defaultValue string, validate Validator) (string, error) {
	return "", ErrNonInteractive
}

func (p *NoopPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	return false, ErrNonInteractive
}

// DefaultsPrompter answers every prompt with its default value.
type DefaultsPrompter struct{}

func (p *DefaultsPrompter) Select(title string, options []string, defaultValue string) (string, error) {
	if defaultValue == "" && len(options) > 0 {
		return options[0], nil
	}
	return defaultValue, nil
}

func (p *DefaultsPrompter) Input(title string, defaultValue string, validate Validator) (string, error) {
	if validate != nil {
		if err := validate(defaultValue); err != nil {
			return "", err
		}
	}
	return defaultValue, nil
}

func (p *DefaultsPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}
