package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id does not name a stored entity
var ErrNotFound = errors.New("not found")

// ConfigurationError means the workspace lacks what an operation needs.
// It is raised before any network request.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// CapabilityError means the configured provider cannot serve the operation
type CapabilityError struct {
	Operation string
	Provider  string
	Message   string
}

func (e *CapabilityError) Error() string {
	return e.Message
}

// TransitionError is an illegal status change
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}
