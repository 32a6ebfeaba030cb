package actions

import (
	"encoding/json"
	"fmt"
)

// ActionHandler defines the interface for executing and validating actions
type ActionHandler interface {
	// Execute runs the bound action and returns output or error
	Execute(inv Invocation) (string, error)

	// Validate checks the action-specific parameters
	Validate(params map[string]json.RawMessage) error

	// IsSupported returns true if the handler can run on the current platform
	IsSupported() bool
}

// Invocation is one firing of a bound control
type Invocation struct {
	Type   ActionType
	Name   string
	Params map[string]json.RawMessage

	// Value is the CC value (0-127) or note velocity
	Value uint8
	// Pressed is false for note-off
	Pressed bool
}

// String decodes a string parameter
func (inv Invocation) String(key string) (string, error) {
	return paramString(inv.Params, key)
}

// Int decodes an integer parameter, returning def if absent
func (inv Invocation) Int(key string, def int) (int, error) {
	raw, ok := inv.Params[key]
	if !ok {
		return def, nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("parameter %q: %w", key, err)
	}
	return v, nil
}

func paramString(params map[string]json.RawMessage, key string) (string, error) {
	raw, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing parameter %q", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("parameter %q: %w", key, err)
	}
	return s, nil
}
