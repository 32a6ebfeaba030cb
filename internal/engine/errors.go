package engine

import (
	"errors"
	"fmt"

	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
)

// ErrPendingChanges rejects a reassignment while another one is still
// waiting for the store
var ErrPendingChanges = errors.New("resolve pending changes first")

// ValidationError is an action/control pairing the classification forbids
type ValidationError struct {
	Action  actions.ActionType
	Control mapping.Control
	// Swap is set when the reverse direction of a swap failed
	Swap bool
}

func (e *ValidationError) Error() string {
	shape := "note"
	if e.Control.IsCCShaped() {
		shape = "CC"
	}
	msg := fmt.Sprintf("action %q is not compatible with %s (%s control)", e.Action, e.Control.Name(), shape)
	if e.Swap {
		return "cannot swap: " + msg
	}
	return msg
}

// PersistenceError is a failed save. The document has been rolled back.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "save failed: " + e.Detail()
}

// Detail is the store's own description of the failure
func (e *PersistenceError) Detail() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
