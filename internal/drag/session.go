// Package drag tracks the single in-flight drag gesture of the editor.
//
// A Session is a small state machine: Idle until a palette item or a bound
// control starts a drag, Dragging while the pointer moves over targets, and
// back to Idle on drop or cancel. Every transition goes through Handle.
package drag

import (
	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
)

// Kind is what is being dragged
type Kind int

const (
	KindNone Kind = iota
	// KindCatalog drags an action type from the palette
	KindCatalog
	// KindControl drags the binding of one control onto another
	KindControl
)

func (k Kind) String() string {
	switch k {
	case KindCatalog:
		return "catalog"
	case KindControl:
		return "control"
	default:
		return "none"
	}
}

// Gesture is a read-only view of the session
type Gesture struct {
	Kind   Kind
	Action actions.ActionType // KindCatalog payload
	Source mapping.Control    // KindControl payload
	// HoverID is the control under the pointer, empty when none
	HoverID string
}

// Dragging reports whether the gesture is live
func (g Gesture) Dragging() bool {
	return g.Kind != KindNone
}

// Session holds at most one gesture. It is not safe for concurrent use;
// the owner serializes access.
type Session struct {
	g Gesture
}

// NewSession creates an idle session
func NewSession() *Session {
	return &Session{}
}

// Current returns the live gesture, or the zero Gesture when idle
func (s *Session) Current() Gesture {
	return s.g
}

// Dragging reports whether a gesture is live
func (s *Session) Dragging() bool {
	return s.g.Dragging()
}

// IsHoverTarget reports whether the control is under the pointer of a live drag
func (s *Session) IsHoverTarget(controlID string) bool {
	return s.g.Dragging() && controlID != "" && s.g.HoverID == controlID
}

// IsDragSource reports whether the control is the source of a live control drag
func (s *Session) IsDragSource(controlID string) bool {
	return s.g.Kind == KindControl && s.g.Source.ID == controlID
}

// Handle applies one event and reports whether it changed the session.
// Rejected starts leave the session untouched.
func (s *Session) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case StartCatalog:
		if ev.Action == "" {
			return false
		}
		// A stale gesture whose end was never delivered is replaced
		s.g = Gesture{Kind: KindCatalog, Action: ev.Action}
		return true

	case StartControl:
		if ev.Source.IsSpecial() || !ev.Bound {
			return false
		}
		s.g = Gesture{Kind: KindControl, Source: ev.Source}
		return true

	case HoverEnter:
		return s.hover(ev.Target)

	case HoverMove:
		return s.hover(ev.Target)

	case HoverLeave:
		if !s.g.Dragging() || s.g.HoverID != ev.Target.ID {
			return false
		}
		// Crossing into a child of the same target is not a leave
		if within(ev.Related, ev.Target.ID) {
			return false
		}
		s.g.HoverID = ""
		return true

	case Drop, End:
		changed := s.g != (Gesture{})
		s.g = Gesture{}
		return changed
	}
	panic("drag: unhandled event")
}

func (s *Session) hover(target mapping.Control) bool {
	if !s.g.Dragging() || target.IsSpecial() || s.g.HoverID == target.ID {
		return false
	}
	s.g.HoverID = target.ID
	return true
}

// within reports whether el is the element of controlID or a descendant of it
func within(el Element, controlID string) bool {
	for ; el != nil; el = el.Parent() {
		if el.ControlID() == controlID {
			return true
		}
	}
	return false
}
