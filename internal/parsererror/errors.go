// Package parsererror defines the error taxonomy of the statement pipeline.
// Hard errors (password, format) abort the current upload; soft per-row
// conditions are accumulated as warnings and never surface here.
package parsererror

import (
	"errors"
	"fmt"
)

// InvalidPasswordError indicates decryption was attempted and failed. The
// caller can recover by prompting for the password again.
type InvalidPasswordError struct {
	Err error
}

func (e *InvalidPasswordError) Error() string {
	return fmt.Sprintf("document is encrypted and the supplied password was rejected: %v", e.Err)
}

func (e *InvalidPasswordError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError indicates the document is readable but is not a
// recognizable mobile-money statement: no transaction row could be parsed.
type UnsupportedFormatError struct {
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("not a recognizable mobile-money statement: %s", e.Reason)
}

// ParseError represents a failure while parsing a specific field or stage.
type ParseError struct {
	Stage string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v", e.Stage, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractionError represents a failure to extract text from the document.
type ExtractionError struct {
	Msg string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("text extraction failed: %s: %v", e.Msg, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsInvalidPassword reports whether err is an InvalidPasswordError.
func IsInvalidPassword(err error) bool {
	var target *InvalidPasswordError
	return errors.As(err, &target)
}

// IsUnsupportedFormat reports whether err is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}
