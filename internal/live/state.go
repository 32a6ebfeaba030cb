package live

import (
	"maps"
	"sync"
)

// Snapshot is a point-in-time copy of the live state
type Snapshot struct {
	Connected bool
	Port      string
	Layer     int
	Profile   string
	// Pressed holds the notes currently held down
	Pressed map[uint8]bool
	// Analog holds the latest value per CC number
	Analog map[uint8]uint8
	// LEDs holds the lit LEDs and their color
	LEDs map[uint8]string
}

// State accumulates live events. It is safe for concurrent use: the MIDI
// listener applies events while the UI reads snapshots.
type State struct {
	mu sync.RWMutex
	s  Snapshot
}

// NewState creates an empty, disconnected state
func NewState() *State {
	return &State{s: Snapshot{
		Pressed: map[uint8]bool{},
		Analog:  map[uint8]uint8{},
		LEDs:    map[uint8]string{},
	}}
}

// Apply folds one event into the state
func (st *State) Apply(ev Event) {
	st.mu.Lock()
	defer st.mu.Unlock()

	switch ev := ev.(type) {
	case NoteOn:
		if ev.Velocity == 0 {
			delete(st.s.Pressed, ev.Note)
		} else {
			st.s.Pressed[ev.Note] = true
		}
	case NoteOff:
		delete(st.s.Pressed, ev.Note)
	case ControlChange:
		st.s.Analog[ev.CC] = ev.Value
	case Connection:
		st.s.Connected = ev.Connected
		st.s.Port = ev.Port
		if !ev.Connected {
			// Nothing is held on a device that is gone
			clear(st.s.Pressed)
			clear(st.s.LEDs)
		}
	case Layer:
		st.s.Layer = ev.Layer
	case LEDState:
		if ev.On {
			st.s.LEDs[ev.Note] = ev.Color
		} else {
			delete(st.s.LEDs, ev.Note)
		}
	case Profile:
		st.s.Profile = ev.Name
	default:
		panic("live: unhandled event")
	}
}

// Snapshot returns a copy of the state
func (st *State) Snapshot() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := st.s
	out.Pressed = maps.Clone(st.s.Pressed)
	out.Analog = maps.Clone(st.s.Analog)
	out.LEDs = maps.Clone(st.s.LEDs)
	return out
}
