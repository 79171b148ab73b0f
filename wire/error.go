// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ErrorCode identifies the kind of encoding or decoding failure carried by a
// MessageError. Codes are themselves errors so callers can match them with
// errors.Is.
type ErrorCode int

const (
	// ErrLimitExceeded indicates a length prefix or element count above the
	// maximum the caller allowed for that field.
	ErrLimitExceeded ErrorCode = iota + 1

	// ErrMalformedDiscriminant indicates an unrecognized tag value, such as
	// an unknown inventory type or a compact size prefix that does not
	// introduce a canonically sized integer.
	ErrMalformedDiscriminant

	// ErrMalformedData indicates a well framed field whose contents are not
	// acceptable, such as a string that is not valid UTF-8.
	ErrMalformedData

	// ErrDomainViolation indicates a value that has no valid encoding, such
	// as a block height lock time at or above the time threshold.
	ErrDomainViolation
)

var errorCodeStrings = map[ErrorCode]string{
	ErrLimitExceeded:         "ErrLimitExceeded",
	ErrMalformedDiscriminant: "ErrMalformedDiscriminant",
	ErrMalformedData:         "ErrMalformedData",
	ErrDomainViolation:       "ErrDomainViolation",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error satisfies the error interface so an ErrorCode can be used as an
// errors.Is target.
func (e ErrorCode) Error() string {
	return e.String()
}

// MessageError describes an issue with a message.
// An example of some potential issues are unknown commands or inventory
// types, non-canonical compact sizes, and counts exceeding their limits.
//
// This provides a mechanism for the caller to type assert the error to
// differentiate between general io errors such as io.EOF and issues that
// resulted from malformed messages.
type MessageError struct {
	Func        string    // Function name
	Code        ErrorCode // Kind of failure
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e *MessageError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: %s", e.Func, e.Description)
	}
	return e.Description
}

// Is reports whether target is the ErrorCode of e, or another MessageError
// with the same code.
func (e *MessageError) Is(target error) bool {
	switch target := target.(type) {
	case ErrorCode:
		return e.Code == target
	case *MessageError:
		return e.Code == target.Code
	}
	return false
}

// messageError creates an error for the given function, code and description.
func messageError(f string, code ErrorCode, desc string) *MessageError {
	return &MessageError{Func: f, Code: code, Description: desc}
}

// IsTruncated returns whether err was caused by input ending before a
// complete value could be read.
func IsTruncated(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
