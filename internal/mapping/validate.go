package mapping

import "github.com/j0KZ/K2-controller-design-sub000/internal/actions"

// IsCompatible reports whether an action type may be bound to a control.
// CC-only actions need a CC-shaped control and note-only actions a
// note-shaped one; anything else, including unknown types, fits both.
func IsCompatible(t actions.ActionType, c Control) bool {
	return actions.Allowed(t, c.IsCCShaped())
}
