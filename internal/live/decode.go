package live

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire type tags
const (
	TypeNoteOn     = "note_on"
	TypeNoteOff    = "note_off"
	TypeCC         = "cc"
	TypeConnection = "connection"
	TypeLayer      = "layer"
	TypeLED        = "led"
	TypeProfile    = "profile"
)

// ErrUnknownType is returned by Decode for an unrecognized type tag
var ErrUnknownType = errors.New("unknown event type")

// Decode parses one JSON message of the form {"type": "...", ...}
func Decode(data []byte) (Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	var ev Event
	var err error
	switch head.Type {
	case TypeNoteOn:
		ev, err = decodeAs[NoteOn](data)
	case TypeNoteOff:
		ev, err = decodeAs[NoteOff](data)
	case TypeCC:
		ev, err = decodeAs[ControlChange](data)
	case TypeConnection:
		ev, err = decodeAs[Connection](data)
	case TypeLayer:
		ev, err = decodeAs[Layer](data)
	case TypeLED:
		ev, err = decodeAs[LEDState](data)
	case TypeProfile:
		ev, err = decodeAs[Profile](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, head.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s event: %w", head.Type, err)
	}
	return ev, nil
}

func decodeAs[T Event](data []byte) (Event, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode serializes an event with its type tag
func Encode(ev Event) ([]byte, error) {
	var tag string
	switch ev.(type) {
	case NoteOn:
		tag = TypeNoteOn
	case NoteOff:
		tag = TypeNoteOff
	case ControlChange:
		tag = TypeCC
	case Connection:
		tag = TypeConnection
	case Layer:
		tag = TypeLayer
	case LEDState:
		tag = TypeLED
	case Profile:
		tag = TypeProfile
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, ev)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"], _ = json.Marshal(tag)
	return json.Marshal(fields)
}
