package toss

import (
	"errors"
	"fmt"
	"strings"

	"github.com/untillpro/goutils/logger"
)

// CallbackKind identifies which extension point failed.
type CallbackKind int

const (
	InterpreterCallback CallbackKind = iota
	ConverterCallback
	ValidatorCallback
	RuleCallback
	FillCallback
)

func (k CallbackKind) String() string {
	switch k {
	case InterpreterCallback:
		return "interpreter"
	case ConverterCallback:
		return "converter"
	case ValidatorCallback:
		return "validator"
	case RuleCallback:
		return "rule"
	case FillCallback:
		return "fill"
	default:
		return "unknown"
	}
}

// CallbackError reports a failed extension invocation. It is never returned
// by the engine, only handed to a Sink.
type CallbackError struct {
	Kind  CallbackKind
	Name  string
	Field string
	Err   error
}

func (ce *CallbackError) Error() string {
	return fmt.Sprintf("%s %q failed for field %q: %v", ce.Kind, ce.Name, ce.Field, ce.Err)
}

func (ce *CallbackError) Unwrap() error {
	return ce.Err
}

// ErrCallbackPanicked wraps a value recovered from a panicking callback.
var ErrCallbackPanicked = errors.New("callback panicked")

// Sink receives diagnostics about failed extensions.
type Sink interface {
	Log(err error, args ...any)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(err error, args ...any)

func (f SinkFunc) Log(err error, args ...any) {
	f(err, args...)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Log(error, ...any) {}

// LoggerSink writes diagnostics through goutils/logger at error level.
type LoggerSink struct{}

func (LoggerSink) Log(err error, args ...any) {
	logger.Error(append([]any{"toss:", err}, args...)...)
}

// trace logs a verbose line about a field evaluation.
func trace(format string, args ...any) {
	if logger.IsVerbose() {
		logger.Verbose("toss: " + strings.TrimSpace(fmt.Sprintf(format, args...)))
	}
}

// guard runs fn, turning a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCallbackPanicked, r)
		}
	}()
	return fn()
}
