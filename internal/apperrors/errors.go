// Package apperrors defines the exit codes and the sampling error taxonomy
// shared by the samplers and the pipeline that consumes them.
package apperrors

import (
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess      = 0 // Normal completion, including non-fatal sampling failures.
	ExitErrorGeneric = 1 // A collector could not be built or the output could not be written.
	ExitErrorConfig  = 2 // Invalid flags.
)

// Kind classifies why a sampler could not produce a value.
type Kind int

const (
	// KindConstructionFailed means the provider handle could not be created.
	KindConstructionFailed Kind = iota + 1
	// KindReadFailed means a handle existed but reading from it failed.
	KindReadFailed
	// KindNotFound means the device being sampled does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindConstructionFailed:
		return "construction_failed"
	case KindReadFailed:
		return "read_failed"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Source names the subsystem a SampleError came from.
type Source string

const (
	SourceCPU     Source = "cpu"
	SourceMemory  Source = "memory"
	SourceBattery Source = "battery"
)

// SampleError carries the source and kind of a sampling failure while
// preserving the provider error.
type SampleError struct {
	Source Source
	Kind   Kind
	Msg    string
	Err    error
}

func (e *SampleError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Msg, e.Err)
}

func (e *SampleError) Unwrap() error { return e.Err }

// New returns a SampleError for src and kind wrapping err.
func New(src Source, kind Kind, msg string, err error) error {
	return &SampleError{Source: src, Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the Kind of err. Errors that are not SampleErrors are read
// failures.
func KindOf(err error) Kind {
	var se *SampleError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindReadFailed
}

// IsFatal reports whether a sampling error must abort the run. Only a CPU
// collector that cannot be built is fatal: without it no line can be drawn.
func IsFatal(err error) bool {
	var se *SampleError
	if !errors.As(err, &se) {
		return false
	}
	return se.Source == SourceCPU && se.Kind == KindConstructionFailed
}

// WriteError wraps a failure to emit the output line.
type WriteError struct {
	Cause error
}

func (e WriteError) Error() string { return "write output: " + e.Cause.Error() }

func (e WriteError) Unwrap() error { return e.Cause }

// ConfigError represents invalid flags or arguments.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}
