package actions

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoHandler is returned for action types that have no local executor.
// Those actions are handled by the host integration, not by this process.
var ErrNoHandler = errors.New("no handler for action type")

// Executor handles action execution with platform-specific logic
type Executor struct {
	handlers map[ActionType]ActionHandler
}

// NewExecutor creates a new action executor. sender may be nil, in which
// case midi_out bindings report an error when fired.
func NewExecutor(sender Sender) *Executor {
	return &Executor{
		handlers: map[ActionType]ActionHandler{
			ActionTypeShellCommand: &ShellHandler{},
			ActionTypeLaunchApp:    &LaunchHandler{Key: "app"},
			ActionTypeOpenURL:      &LaunchHandler{Key: "url"},
			ActionTypeMidi:         NewMidiHandler(sender),
		},
	}
}

// Execute runs an invocation based on its type
// Returns output and error (error if type not supported on current platform)
func (e *Executor) Execute(inv Invocation) (string, error) {
	handler, ok := e.handlers[inv.Type]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoHandler, inv.Type)
	}
	if !handler.IsSupported() {
		return "", fmt.Errorf("action type %s is not supported on this platform", inv.Type)
	}
	return handler.Execute(inv)
}

// Validate checks the parameters of a binding. Types without a local
// handler have no parameters to check.
func (e *Executor) Validate(t ActionType, params map[string]json.RawMessage) error {
	handler, ok := e.handlers[t]
	if !ok {
		return nil
	}
	return handler.Validate(params)
}
