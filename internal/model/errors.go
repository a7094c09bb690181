package model

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by a pipeline stage wraps exactly one.
var (
	ErrInput              = errors.New("input error")
	ErrEmptyCorpus        = errors.New("empty corpus")
	ErrExternalCapability = errors.New("external capability error")
	ErrIO                 = errors.New("io error")
)

// StageError identifies the stage and kind of a terminal failure
type StageError struct {
	Stage string
	Kind  error
	Err   error
}

// NewStageError builds a StageError; err may be nil when the kind says it all
func NewStageError(stage string, kind error, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	if errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
