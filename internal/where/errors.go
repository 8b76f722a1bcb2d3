package where

import (
	"errors"
	"fmt"
)

// Error is a compile-time failure of a filter expression.
//
// All codes are programmer or configuration errors: they are raised before
// any SQL text is emitted or any record is scanned, and none is retryable.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Property is the property involved, when there is one.
	Property string

	// Table is the table being compiled against, when there is one.
	Table string
}

// ErrorCode categorizes compile errors.
type ErrorCode string

const (
	// ErrCodeDomainValidation indicates an invalid algebra call, such as Or
	// with an empty operand or PropertyListEquals with no values.
	ErrCodeDomainValidation ErrorCode = "DOMAIN_VALIDATION"

	// ErrCodeColumnResolution indicates a property with no matching entity field.
	ErrCodeColumnResolution ErrorCode = "COLUMN_RESOLUTION"

	// ErrCodeUnsupportedConstruct indicates a condition/target combination
	// the compiler does not handle.
	ErrCodeUnsupportedConstruct ErrorCode = "UNSUPPORTED_CONSTRUCT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Property != "" && e.Table != "":
		return fmt.Sprintf("%s: %s (property=%s, table=%s)", e.Code, e.Message, e.Property, e.Table)
	case e.Property != "":
		return fmt.Sprintf("%s: %s (property=%s)", e.Code, e.Message, e.Property)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsDomainValidationError reports whether err is, or wraps, a domain
// validation error.
func IsDomainValidationError(err error) bool {
	return hasCode(err, ErrCodeDomainValidation)
}

// IsColumnResolutionError reports whether err is, or wraps, a column
// resolution error.
func IsColumnResolutionError(err error) bool {
	return hasCode(err, ErrCodeColumnResolution)
}

// IsUnsupportedConstructError reports whether err is, or wraps, an
// unsupported construct error.
func IsUnsupportedConstructError(err error) bool {
	return hasCode(err, ErrCodeUnsupportedConstruct)
}

func hasCode(err error, code ErrorCode) bool {
	var we *Error
	if errors.As(err, &we) {
		return we.Code == code
	}
	return false
}

// NewDomainValidationError creates an Error for an invalid algebra call.
func NewDomainValidationError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeDomainValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewColumnResolutionError creates an Error for a property that has no
// column in table.
func NewColumnResolutionError(property, table string) *Error {
	return &Error{
		Code:     ErrCodeColumnResolution,
		Message:  "no column found for property",
		Property: property,
		Table:    table,
	}
}

// NewUnsupportedConstructError creates an Error for a construct the
// compiler cannot handle.
func NewUnsupportedConstructError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedConstruct,
		Message: fmt.Sprintf(format, args...),
	}
}
