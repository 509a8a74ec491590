// Package shared holds the error vocabulary common to every domain package.
package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError for transport mapping.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindUnresolvable ErrorKind = "unresolvable"
	KindUnavailable  ErrorKind = "unavailable"
	KindInvalidState ErrorKind = "invalid_state"
)

// DomainError is an error whose Message is safe to show to the end user.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel the error was built from.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError reports bad input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NewFieldValidationError reports bad input with a message per offending field.
func NewFieldValidationError(message string, fields map[string]string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message, Fields: fields}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewInvalidStateError reports an operation that the current state forbids.
func NewInvalidStateError(message string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Message: message}
}

// KindOf returns the kind of the first DomainError in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
