package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownSchema is returned when a schema name is not registered.
var ErrUnknownSchema = errors.New("unknown schema")

// ErrSlotFull is returned when a bounded repeated slot already holds its maximum.
var ErrSlotFull = errors.New("slot is full")

// DomainError reports a code that is not part of a value domain.
// The field it was submitted to keeps its previous value.
type DomainError struct {
	Domain string
	Code   string
	Reason string
}

func (e *DomainError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid value for domain %s::%s: %s", e.Domain, e.Code, e.Reason)
	}
	return fmt.Sprintf("invalid value for domain %s::%s", e.Domain, e.Code)
}

// UnionDispatchError reports a selector value with no registered variant.
// A validated schema never produces it; seeing one means the schema is broken.
type UnionDispatchError struct {
	Union string
	Code  string
}

func (e *UnionDispatchError) Error() string {
	return fmt.Sprintf("union %s has no variant for selector %q", e.Union, e.Code)
}

// StaleTargetError reports a submission for a field other than the pending target.
// Pending is empty when the last pass exposed nothing.
type StaleTargetError struct {
	Pending string
	Field   string
}

func (e *StaleTargetError) Error() string {
	if e.Pending == "" {
		return fmt.Sprintf("field %q is not awaiting input: nothing is pending", e.Field)
	}
	return fmt.Sprintf("field %q is not awaiting input: pending is %q", e.Field, e.Pending)
}

// NotSetError reports a read of a field that has no value yet.
type NotSetError struct {
	Field string
}

func (e *NotSetError) Error() string {
	return fmt.Sprintf("field %q is not set", e.Field)
}

// IsRejection reports whether err is a field-level error that should be shown to the
// user as a rejected input rather than aborting the session.
func IsRejection(err error) bool {
	var de *DomainError
	var se *StaleTargetError
	return errors.As(err, &de) || errors.As(err, &se)
}
