// Package live models what the hardware reports while the editor runs:
// MIDI input, connection changes, layer and LED state, profile switches.
package live

// Event is a closed set of live messages. Handlers switch over the concrete
// types; the unexported method keeps the set closed.
type Event interface {
	liveEvent()
}

// NoteOn is a key press. A velocity of zero is a release.
type NoteOn struct {
	Channel  uint8 `json:"channel"`
	Note     uint8 `json:"note"`
	Velocity uint8 `json:"velocity"`
}

// NoteOff is a key release
type NoteOff struct {
	Channel uint8 `json:"channel"`
	Note    uint8 `json:"note"`
}

// ControlChange is a continuous-controller value
type ControlChange struct {
	Channel uint8 `json:"channel"`
	CC      uint8 `json:"cc"`
	Value   uint8 `json:"value"`
}

// Connection reports the controller appearing or disappearing
type Connection struct {
	Connected bool   `json:"connected"`
	Port      string `json:"port,omitempty"`
}

// Layer reports the active hardware layer
type Layer struct {
	Layer int `json:"layer"`
}

// LEDState reports an LED of the controller being lit or turned off
type LEDState struct {
	Note  uint8  `json:"note"`
	On    bool   `json:"on"`
	Color string `json:"color,omitempty"`
}

// Profile reports the active mapping profile
type Profile struct {
	Name string `json:"name"`
}

func (NoteOn) liveEvent()        {}
func (NoteOff) liveEvent()       {}
func (ControlChange) liveEvent() {}
func (Connection) liveEvent()    {}
func (Layer) liveEvent()         {}
func (LEDState) liveEvent()      {}
func (Profile) liveEvent()       {}
