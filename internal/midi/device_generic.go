package midi

import (
	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"gitlab.com/gomidi/midi/v2"
)

// GenericDevice implements Device for plain MIDI controllers: one LED per
// note, lit by a full-velocity Note On
type GenericDevice struct{}

func (d *GenericDevice) Reset(send func(midi.Message) error, channel uint8) error {
	// All Notes Off
	return send(midi.ControlChange(channel, 123, 0))
}

func (d *GenericDevice) SetLED(send func(midi.Message) error, channel uint8, led live.LEDState) error {
	if led.On {
		return send(midi.NoteOn(channel, led.Note, 127))
	}
	return send(midi.NoteOff(channel, led.Note))
}

func (d *GenericDevice) HandleMessage(msg midi.Message) (live.Event, bool) {
	return decodeChannelMessage(msg)
}
