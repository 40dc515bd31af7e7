package dates

import (
	"errors"
	"fmt"
)

var (
	ErrParse             = errors.New("malformed date text")
	ErrInvalidField      = errors.New("calendar field out of range")
	ErrFrequencyMismatch = errors.New("frequency mismatch")
	ErrEmptyRange        = errors.New("empty date range")
)

// Error wraps a calendar failure with the offending input.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func parsef(format string, args ...any) error {
	return &Error{Kind: ErrParse, Msg: fmt.Sprintf(format, args...)}
}

func fieldf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidField, Msg: fmt.Sprintf(format, args...)}
}

func mismatchf(format string, args ...any) error {
	return &Error{Kind: ErrFrequencyMismatch, Msg: fmt.Sprintf(format, args...)}
}
