package midi

import (
	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"gitlab.com/gomidi/midi/v2"
)

// Device adapts the wire protocol of one kind of controller
type Device interface {
	// Reset turns every LED of the device off
	Reset(send func(midi.Message) error, channel uint8) error

	// SetLED lights or clears the LED behind a note
	SetLED(send func(midi.Message) error, channel uint8, led live.LEDState) error

	// HandleMessage turns a MIDI message into a live event.
	// Returns handled=false for messages the device does not report.
	HandleMessage(msg midi.Message) (ev live.Event, handled bool)
}

// decodeChannelMessage covers the note and controller messages every
// device sends
func decodeChannelMessage(msg midi.Message) (live.Event, bool) {
	var channel, key, velocity uint8

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return live.NoteOn{Channel: channel, Note: key, Velocity: velocity}, true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return live.NoteOff{Channel: channel, Note: key}, true
	case msg.GetControlChange(&channel, &key, &velocity):
		return live.ControlChange{Channel: channel, CC: key, Value: velocity}, true
	}
	return nil, false
}
