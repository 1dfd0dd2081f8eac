package models

import (
	"errors"
	"fmt"
)

// ErrRequestInFlight is returned when an action is dispatched for a devis
// while a previous request for the same (devis, action) pair has not settled
var ErrRequestInFlight = errors.New("a request for this devis and action is already in flight")

// ValidationError represents a local input error caught before any remote call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidTransitionError represents a status or send action that is not
// legal for the current status of the devis. It is raised locally, before
// the remote call is issued.
type InvalidTransitionError struct {
	DevisID int64
	From    Statut
	Action  string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition for devis %d: action %s is not allowed in status %s", e.DevisID, e.Action, e.From)
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(devisID int64, from Statut, action string) *InvalidTransitionError {
	return &InvalidTransitionError{DevisID: devisID, From: from, Action: action}
}

// MissingContactInfoError represents a send attempt whose channel has no
// contact detail to send to (e.g. SMS without a phone number)
type MissingContactInfoError struct {
	DevisID int64
	Channel string
}

func (e *MissingContactInfoError) Error() string {
	return fmt.Sprintf("cannot send devis %d by %s: no contact information for this channel", e.DevisID, e.Channel)
}

// NewMissingContactInfoError creates a new MissingContactInfoError
func NewMissingContactInfoError(devisID int64, channel string) *MissingContactInfoError {
	return &MissingContactInfoError{DevisID: devisID, Channel: channel}
}

// RemoteError represents a failed round trip to the backend API: either a
// non-success HTTP response or a transport failure. The server-supplied
// message is carried verbatim when present so it can be surfaced to the
// user; local state is never mutated on a RemoteError.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("backend unreachable: %s (caused by: %v)", e.Message, e.Err)
	}
	return fmt.Sprintf("backend unreachable: %s", e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewRemoteError creates a new RemoteError
func NewRemoteError(statusCode int, message string, err error) *RemoteError {
	return &RemoteError{StatusCode: statusCode, Message: message, Err: err}
}
