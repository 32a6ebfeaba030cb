package live

import (
	"errors"
	"log"

	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
)

// Bindings looks up the entry stored at a slot
type Bindings interface {
	Lookup(coord mapping.Coordinates) (mapping.Entry, bool)
}

// Runner executes a fired binding
type Runner interface {
	Execute(inv actions.Invocation) (string, error)
}

// Dispatcher feeds live events into the state and runs the entries they
// trigger
type Dispatcher struct {
	bindings Bindings
	runner   Runner
	state    *State

	// Channel is the controller's MIDI channel, 1-16. Zero accepts every
	// channel.
	Channel int
}

// NewDispatcher creates a dispatcher. state may be nil.
func NewDispatcher(b Bindings, r Runner, state *State) *Dispatcher {
	return &Dispatcher{bindings: b, runner: r, state: state}
}

// Handle applies ev to the state and runs any bound entry in the background
func (d *Dispatcher) Handle(ev Event) {
	if d.state != nil {
		d.state.Apply(ev)
	}
	inv, ok := d.Resolve(ev)
	if !ok {
		return
	}
	go d.run(inv)
}

// Resolve finds the entry ev triggers and builds its invocation
func (d *Dispatcher) Resolve(ev Event) (actions.Invocation, bool) {
	var coords []mapping.Coordinates
	var value uint8
	var pressed bool

	switch ev := ev.(type) {
	case NoteOn:
		if !d.accepts(ev.Channel) {
			return actions.Invocation{}, false
		}
		coords = []mapping.Coordinates{{Partition: mapping.NoteOn, Key: int(ev.Note)}}
		value, pressed = ev.Velocity, ev.Velocity > 0
	case NoteOff:
		if !d.accepts(ev.Channel) {
			return actions.Invocation{}, false
		}
		coords = []mapping.Coordinates{{Partition: mapping.NoteOn, Key: int(ev.Note)}}
	case ControlChange:
		if !d.accepts(ev.Channel) {
			return actions.Invocation{}, false
		}
		// Same priority as the editor: absolute before relative
		coords = []mapping.Coordinates{
			{Partition: mapping.CCAbsolute, Key: int(ev.CC)},
			{Partition: mapping.CCRelative, Key: int(ev.CC)},
		}
		value, pressed = ev.Value, true
	default:
		return actions.Invocation{}, false
	}

	for _, c := range coords {
		if entry, ok := d.bindings.Lookup(c); ok {
			return actions.Invocation{
				Type:    entry.Action,
				Name:    entry.Name,
				Params:  entry.Params,
				Value:   value,
				Pressed: pressed,
			}, true
		}
	}
	return actions.Invocation{}, false
}

// accepts compares a zero-based wire channel with the configured one
func (d *Dispatcher) accepts(channel uint8) bool {
	return d.Channel == 0 || int(channel)+1 == d.Channel
}

func (d *Dispatcher) run(inv actions.Invocation) {
	out, err := d.runner.Execute(inv)
	switch {
	case errors.Is(err, actions.ErrNoHandler):
		log.Printf("No local handler for '%s' (%s)", inv.Name, inv.Type)
	case err != nil:
		log.Printf("Action '%s' failed: %v", inv.Name, err)
	case out != "":
		log.Printf("Action '%s': %s", inv.Name, out)
	}
}
