package sexp

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnexpectedChar    = errors.New("unexpected character")
	ErrUnexpectedEOF     = io.ErrUnexpectedEOF
	ErrInvalidTokenChar  = errors.New("invalid token character")
	ErrDecimalTooLong    = errors.New("decimal length too long")
	ErrNoLength          = errors.New("verbatim string has no declared length")
	ErrLengthMismatch    = errors.New("length does not match declared length")
	ErrBadEscape         = errors.New("malformed escape sequence")
	ErrBadDigit          = errors.New("illegal character in coding region")
	ErrIllegalWidth      = errors.New("illegal channel width change")
	ErrRestrictedChannel = errors.New("cannot print advanced form on a restricted channel")
	ErrNestingTooDeep    = errors.New("nesting too deep")
)

// Code is a stable identifier for a fatal error or a warning. Branch on Code
// (or on the sentinel via errors.Is), not on message text.
type Code string

const (
	CodeSyntax     Code = "syntax"
	CodeEOF        Code = "eof"
	CodeLength     Code = "length"
	CodeEscape     Code = "escape"
	CodeChannel    Code = "channel"
	CodeDepth      Code = "depth"
	CodeRestricted Code = "restricted"
	CodeIO         Code = "io"

	CodeUnusedBits     Code = "unused-bits"
	CodeLengthMismatch Code = "length-mismatch"
	CodeUnknownEscape  Code = "unknown-escape"
	CodeZeroLength     Code = "zero-length"
)

// Error is a fatal decode or encode error. Offset is the number of raw input
// bytes consumed when the error was detected, or -1 when not applicable.
type Error struct {
	Code    Code
	Offset  int64
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("sexp: at byte %d: %s", e.Offset, e.Message)
	}
	return "sexp: " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsCode reports whether err is (or wraps) an *Error with the given Code.
func IsCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// Offset returns the input offset recorded in err, or -1.
func Offset(err error) int64 {
	var e *Error
	if !errors.As(err, &e) {
		return -1
	}
	return e.Offset
}

// Warning is a non-fatal diagnostic. It never changes the parsed value.
type Warning struct {
	Code    Code
	Offset  int64
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("at byte %d: %s", w.Offset, w.Message)
}

// WarningHandler receives warnings as they are detected.
type WarningHandler func(Warning)
