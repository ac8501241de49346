package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input: bad dates, missing required
// fields, unknown statuses.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an unknown entity id.
type NotFoundError struct {
	Entity string
	ID     int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id int32) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IllegalTransitionError reports an operation invoked from a state
// other than its precondition state. It also covers a lost optimistic
// concurrency race: if another actor moved the entity between read and
// write, the write fails with this error and the entity is unchanged.
type IllegalTransitionError struct {
	Entity string
	ID     int32
	From   string
	Op     string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s %d in status %q", e.Op, e.Entity, e.ID, e.From)
}

// UnauthorizedError reports an actor not permitted to perform a
// transition, regardless of the entity's current state.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

func NewUnauthorizedError(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

// NetworkError wraps a transport failure surfaced by an external
// collaborator (email provider, storage backend).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

func IsIllegalTransition(err error) bool {
	var ite *IllegalTransitionError
	return errors.As(err, &ite)
}

func IsUnauthorized(err error) bool {
	var ue *UnauthorizedError
	return errors.As(err, &ue)
}
