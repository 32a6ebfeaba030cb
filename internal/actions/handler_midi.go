package actions

import (
	"encoding/json"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// Sender delivers a MIDI message to a named output port
type Sender interface {
	Send(port string, msg midi.Message) error
}

// MidiHandler forwards a control to another MIDI port. A note-shaped trigger
// sends note on/off; a CC-shaped trigger forwards its value.
type MidiHandler struct {
	sender Sender
}

// midiParams is the parameter layout of a midi_out binding
type midiParams struct {
	Port     string `json:"port"`
	MsgType  string `json:"msg_type"` // "note" or "cc"
	Channel  int    `json:"channel"`  // 1-16
	Number   int    `json:"number"`   // 0-127
	Velocity int    `json:"velocity"` // note-on velocity, 0 means pass through
}

func NewMidiHandler(sender Sender) *MidiHandler {
	return &MidiHandler{sender: sender}
}

func (h *MidiHandler) IsSupported() bool {
	return h.sender != nil
}

func (h *MidiHandler) Execute(inv Invocation) (string, error) {
	p, err := decodeMidiParams(inv.Params)
	if err != nil {
		return "", err
	}
	if h.sender == nil {
		return "", fmt.Errorf("no MIDI output available")
	}

	channel := uint8(p.Channel - 1)
	if channel > 15 {
		channel = 0
	}
	number := uint8(p.Number) & 0x7F

	var msg midi.Message
	switch p.MsgType {
	case "note":
		if !inv.Pressed {
			msg = midi.NoteOff(channel, number)
			break
		}
		velocity := inv.Value
		if p.Velocity > 0 {
			velocity = uint8(p.Velocity) & 0x7F
		}
		msg = midi.NoteOn(channel, number, velocity)
	case "cc":
		msg = midi.ControlChange(channel, number, inv.Value)
	default:
		return "", fmt.Errorf("unknown message type: %s", p.MsgType)
	}

	if err := h.sender.Send(p.Port, msg); err != nil {
		return "", fmt.Errorf("send failed: %w", err)
	}
	return fmt.Sprintf("Sent %s to %s", msg, p.Port), nil
}

func (h *MidiHandler) Validate(params map[string]json.RawMessage) error {
	p, err := decodeMidiParams(params)
	if err != nil {
		return err
	}
	if p.MsgType != "note" && p.MsgType != "cc" {
		return fmt.Errorf("unknown message type: %s", p.MsgType)
	}
	if p.Number < 0 || p.Number > 127 {
		return fmt.Errorf("number out of range: %d", p.Number)
	}
	return nil
}

func decodeMidiParams(params map[string]json.RawMessage) (midiParams, error) {
	p := midiParams{Channel: 1, MsgType: "note"}
	if len(params) == 0 {
		return p, fmt.Errorf("port required")
	}
	// Round-trip through JSON so the struct tags apply
	data, err := json.Marshal(params)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("invalid MIDI parameters: %w", err)
	}
	if p.Port == "" {
		return p, fmt.Errorf("port required")
	}
	return p, nil
}
