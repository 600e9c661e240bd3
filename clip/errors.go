package clip

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which check rejected a cut.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindArgCount
	KindInputNotFound
	KindBadOutputExtension
	KindOutputDirCreateFailed
	KindInvalidTime
	KindNegativeStart
	KindEndNotAfterStart
	KindMediaEngineFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindArgCount:
		return "ArgCount"
	case KindInputNotFound:
		return "InputNotFound"
	case KindBadOutputExtension:
		return "BadOutputExtension"
	case KindOutputDirCreateFailed:
		return "OutputDirCreateFailed"
	case KindInvalidTime:
		return "InvalidTime"
	case KindNegativeStart:
		return "NegativeStart"
	case KindEndNotAfterStart:
		return "EndNotAfterStart"
	case KindMediaEngineFailure:
		return "MediaEngineFailure"
	default:
		return "Unknown"
	}
}

// ValidationError is returned for every rejected cut. Value holds the
// offending raw input where there is one.
type ValidationError struct {
	Kind  ErrorKind
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindArgCount:
		return "incorrect number of arguments"
	case KindInputNotFound:
		if e.Err != nil {
			return fmt.Sprintf("input file %q does not exist: %v", e.Value, e.Err)
		}
		return fmt.Sprintf("input file %q does not exist", e.Value)
	case KindBadOutputExtension:
		return fmt.Sprintf("output file must have %s extension: %s", OutputExtension, e.Value)
	case KindOutputDirCreateFailed:
		return fmt.Sprintf("failed to create output directory %s: %v", e.Value, e.Err)
	case KindInvalidTime:
		return fmt.Sprintf("invalid time format: %s", e.Value)
	case KindNegativeStart:
		return "times must be positive"
	case KindEndNotAfterStart:
		return "end time must be greater than start time"
	case KindMediaEngineFailure:
		return fmt.Sprintf("error during processing: %s", e.Value)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "invalid cut request"
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first ValidationError in err's chain,
// or KindUnknown.
func KindOf(err error) ErrorKind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return KindUnknown
}

// EngineFailure wraps a message reported by the media engine.
func EngineFailure(message string) error {
	return &ValidationError{Kind: KindMediaEngineFailure, Value: message}
}
