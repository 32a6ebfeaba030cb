package midi

import (
	"fmt"

	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"gitlab.com/gomidi/midi/v2"
)

// K2 button LEDs are addressed by note: the button's own note lights red,
// +36 lights amber and +72 lights green
const (
	k2ColorStride = 36
	k2FirstLED    = 36 // button matrix
	k2LastLED     = 55 // encoder push buttons
)

// K2Device implements Device for the Xone:K2
type K2Device struct{}

func (d *K2Device) Reset(send func(midi.Message) error, channel uint8) error {
	for note := k2FirstLED; note <= k2LastLED; note++ {
		for _, c := range []LEDColor{LEDRed, LEDAmber, LEDGreen} {
			if err := send(midi.NoteOff(channel, k2LEDNote(uint8(note), c))); err != nil {
				return fmt.Errorf("failed to reset K2 LED %d: %w", note, err)
			}
		}
	}
	return nil
}

func (d *K2Device) SetLED(send func(midi.Message) error, channel uint8, led live.LEDState) error {
	if led.Note < k2FirstLED || led.Note > k2LastLED {
		return nil // No LED behind this note
	}

	if !led.On {
		// Clear every colour so a previous one does not linger
		for _, c := range []LEDColor{LEDRed, LEDAmber, LEDGreen} {
			if err := send(midi.NoteOff(channel, k2LEDNote(led.Note, c))); err != nil {
				return err
			}
		}
		return nil
	}
	return send(midi.NoteOn(channel, k2LEDNote(led.Note, ParseLEDColor(led.Color)), 127))
}

func (d *K2Device) HandleMessage(msg midi.Message) (live.Event, bool) {
	return decodeChannelMessage(msg)
}

func k2LEDNote(note uint8, c LEDColor) uint8 {
	return note + uint8(c)*k2ColorStride
}
