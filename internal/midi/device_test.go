package midi

import (
	"testing"

	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

type wire struct{ sent []midi.Message }

func (w *wire) send(msg midi.Message) error {
	w.sent = append(w.sent, msg)
	return nil
}

func TestHandleMessage(t *testing.T) {
	for _, d := range []Device{&K2Device{}, &GenericDevice{}} {
		ev, ok := d.HandleMessage(midi.NoteOn(14, 36, 127))
		require.True(t, ok)
		assert.Equal(t, live.NoteOn{Channel: 14, Note: 36, Velocity: 127}, ev)

		ev, ok = d.HandleMessage(midi.NoteOff(14, 36))
		require.True(t, ok)
		assert.Equal(t, live.NoteOff{Channel: 14, Note: 36}, ev)

		ev, ok = d.HandleMessage(midi.ControlChange(14, 16, 64))
		require.True(t, ok)
		assert.Equal(t, live.ControlChange{Channel: 14, CC: 16, Value: 64}, ev)

		_, ok = d.HandleMessage(midi.ProgramChange(14, 3))
		assert.False(t, ok)
	}
}

func TestK2LEDColours(t *testing.T) {
	d := &K2Device{}
	w := &wire{}

	require.NoError(t, d.SetLED(w.send, 14, live.LEDState{Note: 36, On: true, Color: "green"}))
	require.Len(t, w.sent, 1)
	var ch, key, vel uint8
	require.True(t, w.sent[0].GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, uint8(14), ch)
	assert.Equal(t, uint8(36+72), key)
	assert.Equal(t, uint8(127), vel)

	w.sent = nil
	require.NoError(t, d.SetLED(w.send, 14, live.LEDState{Note: 37, On: false}))
	assert.Len(t, w.sent, 3)

	w.sent = nil
	require.NoError(t, d.SetLED(w.send, 14, live.LEDState{Note: 4, On: true}))
	assert.Empty(t, w.sent, "no LED behind a pot")
}

func TestK2Reset(t *testing.T) {
	w := &wire{}
	require.NoError(t, (&K2Device{}).Reset(w.send, 0))
	assert.Len(t, w.sent, (k2LastLED-k2FirstLED+1)*3)
}

func TestGenericLED(t *testing.T) {
	w := &wire{}
	d := &GenericDevice{}
	require.NoError(t, d.SetLED(w.send, 0, live.LEDState{Note: 60, On: true}))
	require.NoError(t, d.SetLED(w.send, 0, live.LEDState{Note: 60}))
	require.Len(t, w.sent, 2)
	var ch, key, vel uint8
	assert.True(t, w.sent[0].GetNoteOn(&ch, &key, &vel))
	assert.True(t, w.sent[1].GetNoteOff(&ch, &key, &vel))
}

func TestParseLEDColor(t *testing.T) {
	assert.Equal(t, LEDAmber, ParseLEDColor("Amber"))
	assert.Equal(t, LEDGreen, ParseLEDColor("green"))
	assert.Equal(t, LEDRed, ParseLEDColor(""))
	assert.Equal(t, "amber", LEDAmber.String())
}

func TestWireChannel(t *testing.T) {
	assert.Equal(t, uint8(14), wireChannel(15))
	assert.Equal(t, uint8(0), wireChannel(1))
	assert.Equal(t, uint8(0), wireChannel(0))
	assert.Equal(t, uint8(0), wireChannel(17))
}

func TestGetDevice(t *testing.T) {
	assert.IsType(t, &K2Device{}, GetDevice(DeviceTypeK2))
	assert.IsType(t, &GenericDevice{}, GetDevice(DeviceTypeGeneric))
	assert.IsType(t, &K2Device{}, GetDevice(""))
}
