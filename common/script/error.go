package script

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of script codec error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrTruncatedInput is returned when a varint or a fixed-width field
	// would read past the end of the provided buffer.
	ErrTruncatedInput ErrorCode = iota

	// ErrScriptParse is returned when the declared body length of a script
	// does not match the bytes actually consumed by its commands, or when a
	// data push declares a length extending past the buffer.
	ErrScriptParse

	// ErrValueTooLarge is returned when attempting to encode an integer that
	// does not fit in 64 bits as a varint.
	ErrValueTooLarge

	// ErrPushTooLarge is returned when a data push exceeds the maximum
	// allowed script element size.
	ErrPushTooLarge

	// ErrNumberOverflow is returned when a script number does not fit in a
	// signed 64-bit integer.
	ErrNumberOverflow

	// ErrInvalidHex is returned when hexadecimal input has an odd length or
	// contains non-hex characters.
	ErrInvalidHex

	// numErrorCodes is the maximum error code number used in tests.  This
	// entry MUST be the last entry in the enum definition.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrTruncatedInput: "ErrTruncatedInput",
	ErrScriptParse:    "ErrScriptParse",
	ErrValueTooLarge:  "ErrValueTooLarge",
	ErrPushTooLarge:   "ErrPushTooLarge",
	ErrNumberOverflow: "ErrNumberOverflow",
	ErrInvalidHex:     "ErrInvalidHex",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error implements the error interface so a bare code can be used as a target
// for errors.Is.
func (e ErrorCode) Error() string {
	return e.String()
}

// Error identifies a script codec error.  The caller can use type assertions
// or errors.Is against an ErrorCode to determine the specific failure.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Is reports whether target is the same ErrorCode, or an Error carrying the
// same ErrorCode.
func (e Error) Is(target error) bool {
	switch t := target.(type) {
	case ErrorCode:
		return e.ErrorCode == t
	case Error:
		return e.ErrorCode == t.ErrorCode
	}
	return false
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script error with
// the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	return errors.As(err, &serr) && serr.ErrorCode == c
}
