package drag

import (
	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
)

// Event is one input to the session. The set is closed: only the types in
// this file implement it.
type Event interface {
	dragEvent()
}

// Element is a node of the surface the pointer moves over. ControlID is
// empty for nodes that belong to no control.
type Element interface {
	ControlID() string
	Parent() Element
}

// StartCatalog begins dragging an action type from the palette
type StartCatalog struct {
	Action actions.ActionType
}

// StartControl begins dragging the binding of Source. Bound must be true:
// a control with nothing bound has nothing to drag.
type StartControl struct {
	Source mapping.Control
	Bound  bool
}

// HoverEnter is sent when the pointer enters a control
type HoverEnter struct {
	Target mapping.Control
}

// HoverMove is sent while the pointer moves over a control
type HoverMove struct {
	Target mapping.Control
}

// HoverLeave is sent when the pointer leaves Target. Related is the element
// the pointer moved into, nil if none.
type HoverLeave struct {
	Target  mapping.Control
	Related Element
}

// Drop ends the gesture over a target
type Drop struct{}

// End cancels the gesture
type End struct{}

func (StartCatalog) dragEvent() {}
func (StartControl) dragEvent() {}
func (HoverEnter) dragEvent()   {}
func (HoverMove) dragEvent()    {}
func (HoverLeave) dragEvent()   {}
func (Drop) dragEvent()         {}
func (End) dragEvent()          {}
