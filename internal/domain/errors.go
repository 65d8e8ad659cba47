package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a log line was rejected.
type ErrorKind uint8

const (
	InvalidFormat ErrorKind = iota + 1
	InvalidFrequency
	InvalidCategory
	InvalidExchange
	InvalidMode
	InvalidTimestamp
)

// Sentinels matched by errors.Is against a *ParseError of the same kind.
var (
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidExchange  = errors.New("invalid exchange")
	ErrInvalidMode      = errors.New("invalid mode")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFormat:
		return "InvalidFormat"
	case InvalidFrequency:
		return "InvalidFrequency"
	case InvalidCategory:
		return "InvalidCategory"
	case InvalidExchange:
		return "InvalidExchange"
	case InvalidMode:
		return "InvalidMode"
	case InvalidTimestamp:
		return "InvalidTimestamp"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case InvalidFormat:
		return ErrInvalidFormat
	case InvalidFrequency:
		return ErrInvalidFrequency
	case InvalidCategory:
		return ErrInvalidCategory
	case InvalidExchange:
		return ErrInvalidExchange
	case InvalidMode:
		return ErrInvalidMode
	case InvalidTimestamp:
		return ErrInvalidTimestamp
	default:
		return nil
	}
}

// ParseError reports a log line (or one of its fields) that could not be interpreted.
type ParseError struct {
	Kind  ErrorKind
	Field string // offending field, e.g. "mode"
	Value string // offending raw value
	Err   error  // underlying cause, may be nil
}

func newParseError(kind ErrorKind, field, value string, cause error) *ParseError {
	return &ParseError{Kind: kind, Field: field, Value: value, Err: cause}
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", e.Kind.sentinel(), e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches the sentinel error of the same kind.
func (e *ParseError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the ErrorKind carried by err, or 0 if err is not a parse error.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
