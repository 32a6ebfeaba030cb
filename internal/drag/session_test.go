package drag

import (
	"testing"

	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	btnA  = mapping.Control{ID: "a", Type: mapping.ControlButton, Note: mapping.Num(36)}
	btnB  = mapping.Control{ID: "b", Type: mapping.ControlButton, Note: mapping.Num(37)}
	layer = mapping.Control{ID: "layer", Type: mapping.ControlButton, Note: mapping.Num(12), Special: "layer"}
)

// node is a test element tree
type node struct {
	control string
	parent  *node
}

func (n *node) ControlID() string { return n.control }
func (n *node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func TestStartsIdle(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Dragging())
	assert.Equal(t, KindNone, s.Current().Kind)
}

func TestCatalogDragLifecycle(t *testing.T) {
	s := NewSession()
	require.True(t, s.Handle(StartCatalog{Action: actions.ActionTypeHotkey}))
	assert.Equal(t, KindCatalog, s.Current().Kind)
	assert.Equal(t, actions.ActionTypeHotkey, s.Current().Action)

	assert.True(t, s.Handle(HoverEnter{Target: btnA}))
	assert.True(t, s.IsHoverTarget("a"))
	assert.False(t, s.Handle(HoverMove{Target: btnA}), "same target is not a change")

	assert.True(t, s.Handle(Drop{}))
	assert.False(t, s.Dragging())
	assert.Equal(t, Gesture{}, s.Current())
	assert.False(t, s.IsHoverTarget("a"))
}

func TestControlDragRejections(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Handle(StartControl{Source: layer, Bound: true}), "special controls never drag")
	assert.False(t, s.Handle(StartControl{Source: btnA, Bound: false}), "unbound controls never drag")
	assert.False(t, s.Dragging())

	require.True(t, s.Handle(StartControl{Source: btnA, Bound: true}))
	assert.True(t, s.IsDragSource("a"))
	assert.False(t, s.IsDragSource("b"))
}

func TestHoverIgnoredWhenIdleOrSpecial(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Handle(HoverEnter{Target: btnA}))
	assert.False(t, s.IsHoverTarget("a"))

	s.Handle(StartCatalog{Action: actions.ActionTypeMute})
	assert.False(t, s.Handle(HoverEnter{Target: layer}))
	assert.Empty(t, s.Current().HoverID)
}

func TestHoverLeaveContainment(t *testing.T) {
	s := NewSession()
	s.Handle(StartCatalog{Action: actions.ActionTypeMute})
	s.Handle(HoverEnter{Target: btnA})

	tile := &node{control: "a"}
	label := &node{parent: tile}

	assert.False(t, s.Handle(HoverLeave{Target: btnA, Related: label}), "moving onto a child keeps the hover")
	assert.True(t, s.IsHoverTarget("a"))

	other := &node{control: "b"}
	assert.True(t, s.Handle(HoverLeave{Target: btnA, Related: other}))
	assert.False(t, s.IsHoverTarget("a"))
}

func TestHoverLeaveOfOtherTarget(t *testing.T) {
	s := NewSession()
	s.Handle(StartCatalog{Action: actions.ActionTypeMute})
	s.Handle(HoverEnter{Target: btnB})
	assert.False(t, s.Handle(HoverLeave{Target: btnA}))
	assert.True(t, s.IsHoverTarget("b"))

	assert.True(t, s.Handle(HoverLeave{Target: btnB, Related: nil}))
}

func TestEndAlwaysResets(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Handle(End{}), "ending an idle session changes nothing")

	s.Handle(StartControl{Source: btnA, Bound: true})
	s.Handle(HoverEnter{Target: btnB})
	assert.True(t, s.Handle(End{}))
	assert.False(t, s.Dragging())
	assert.False(t, s.IsDragSource("a"))
}

func TestRestartReplacesStaleGesture(t *testing.T) {
	s := NewSession()
	s.Handle(StartControl{Source: btnA, Bound: true})
	s.Handle(StartCatalog{Action: actions.ActionTypeHotkey})
	assert.Equal(t, KindCatalog, s.Current().Kind)
	assert.False(t, s.IsDragSource("a"))
}
