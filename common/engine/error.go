package engine

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of machine error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrStackUnderflow is returned when popping from an empty stack.
	// Opcodes never return it; they push a sentinel item instead.
	ErrStackUnderflow ErrorCode = iota

	// ErrUnknownOpcode is returned when asked to execute an opcode the
	// machine does not implement.
	ErrUnknownOpcode

	// ErrNoPendingCheckSig is returned when resuming a signature check that
	// is not outstanding.
	ErrNoPendingCheckSig

	// ErrStaleCheckSig is returned when resuming a signature check after
	// the stack was mutated since the check was requested.
	ErrStaleCheckSig

	// ErrInvalidDigest is returned when the supplied message digest is not
	// exactly 32 bytes.
	ErrInvalidDigest

	// ErrDigestRequired is returned when a script reaches OP_CHECKSIG and
	// no message digest was provided for the execution.
	ErrDigestRequired

	// numErrorCodes is the maximum error code number used in tests.  This
	// entry MUST be the last entry in the enum definition.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrStackUnderflow:    "ErrStackUnderflow",
	ErrUnknownOpcode:     "ErrUnknownOpcode",
	ErrNoPendingCheckSig: "ErrNoPendingCheckSig",
	ErrStaleCheckSig:     "ErrStaleCheckSig",
	ErrInvalidDigest:     "ErrInvalidDigest",
	ErrDigestRequired:    "ErrDigestRequired",
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

// Error identifies a machine error.
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

// IsErrorCode returns whether or not the provided error is a machine error
// with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	return errors.As(err, &serr) && serr.ErrorCode == c
}
