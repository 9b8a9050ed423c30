package request

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ParseError. Callers match them with errors.Is.
var (
	ErrOddLength          = errors.New("odd-length hex string")
	ErrInvalidHex         = errors.New("invalid hex character")
	ErrWrongLength        = errors.New("wrong byte length")
	ErrInvalidNumber      = errors.New("not a decimal number")
	ErrOutOfRange         = errors.New("value out of range")
	ErrInvalidTransaction = errors.New("invalid transaction encoding")
	ErrInvalidScript      = errors.New("invalid script")
)

// maxValueLen bounds how much of the offending input is echoed back.
const maxValueLen = 72

// ParseError reports a raw argument that failed a parsing rule.
// No operation value is ever produced alongside it.
type ParseError struct {
	Param string // human name of the argument, e.g. "transaction id"
	Value string // raw input as supplied
	Err   error  // wraps one of the Err* sentinels
}

func (e *ParseError) Error() string {
	v := e.Value
	if len(v) > maxValueLen {
		v = v[:maxValueLen] + "..."
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Param, v, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError checks whether err is a ParseError and returns it.
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func newParseError(param, value string, err error) *ParseError {
	return &ParseError{Param: param, Value: value, Err: err}
}
