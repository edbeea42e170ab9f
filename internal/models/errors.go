package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrUnknownTone   = errors.New("unknown tone")
	ErrUnknownLength = errors.New("unknown length")

	ErrEmptyInput      = errors.New("please enter some text to summarize")
	ErrModelLoad       = errors.New("model load failed")
	ErrModelInvocation = errors.New("model invocation failed")
)

// ModelLoadError is fatal for the session: the model could not be located or initialized.
type ModelLoadError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load %s model %q: %v", e.Provider, e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() []error { return []error{ErrModelLoad, e.Err} }

// ModelInvocationError wraps a failed summarize call. Message is shown to the user verbatim.
type ModelInvocationError struct {
	Err error
}

func (e *ModelInvocationError) Error() string {
	return e.Err.Error()
}

func (e *ModelInvocationError) Unwrap() []error { return []error{ErrModelInvocation, e.Err} }
