package hotkey

import (
	"errors"
	"fmt"

	"keyclaim/keys"
)

// ErrDuplicateRegistration is logged when an owner registers a second claim
// for a key it already holds. The new claim replaces the old one.
var ErrDuplicateRegistration = errors.New("duplicate hotkey registration")

// GuardEvaluationError records a guard that panicked. The claim is treated as
// not applicable and dispatch continues.
type GuardEvaluationError struct {
	Key     keys.LogicalKey
	ClaimID string
	OwnerID string
	Value   any
}

func (e *GuardEvaluationError) Error() string {
	return fmt.Sprintf("guard of claim %s (owner %s) for %s panicked: %v", e.ClaimID, e.OwnerID, e.Key, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *GuardEvaluationError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// ActionError records an action that panicked. The claim is treated as not
// having handled the key and dispatch continues with the next claim.
type ActionError struct {
	Key     keys.LogicalKey
	ClaimID string
	OwnerID string
	Value   any
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action of claim %s (owner %s) for %s panicked: %v", e.ClaimID, e.OwnerID, e.Key, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *ActionError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
