package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceUnavailable is matched by every transport or non-success response from a collaborator.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrNoLevelsAvailable is returned when the level catalog is empty.
	ErrNoLevelsAvailable = errors.New("no levels available")
	// ErrNoQuestionsForLevel is returned when a level has no questions to play.
	ErrNoQuestionsForLevel = errors.New("no questions for level")
	// ErrInvalidSelection indicates an option that is not part of the current question.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidTransition is returned when an event is not accepted in the current game state.
	ErrInvalidTransition = errors.New("invalid game transition")
	// ErrNotFound indicates the collaborator reported the resource as missing.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates a missing or expired auth token.
	ErrUnauthorized = errors.New("session expired")
	// ErrInvalidCredentials is returned by login on rejected credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict indicates the resource already exists (e.g. a registered email).
	ErrConflict = errors.New("already exists")
	// ErrInvalidInput reports a request rejected before reaching any collaborator.
	ErrInvalidInput = errors.New("invalid input")
)

// ServiceError describes a failed call to an external collaborator.
type ServiceError struct {
	Service string
	Status  int
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Is makes every ServiceError match ErrServiceUnavailable.
func (e *ServiceError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

// Unavailable wraps err as a ServiceError for the named collaborator.
func Unavailable(service string, err error) error {
	return &ServiceError{Service: service, Err: err}
}

// UnavailableStatus reports a non-success HTTP status from the named collaborator.
func UnavailableStatus(service string, status int) error {
	return &ServiceError{Service: service, Status: status}
}
