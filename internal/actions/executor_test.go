package actions

import (
	"encoding/json"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

type fakeSender struct {
	port string
	msgs []midi.Message
	err  error
}

func (s *fakeSender) Send(port string, msg midi.Message) error {
	if s.err != nil {
		return s.err
	}
	s.port = port
	s.msgs = append(s.msgs, msg)
	return nil
}

func rawParams(t *testing.T, v map[string]any) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage, len(v))
	for k, val := range v {
		data, err := json.Marshal(val)
		require.NoError(t, err)
		out[k] = data
	}
	return out
}

func TestExecuteUnknownType(t *testing.T) {
	e := NewExecutor(nil)
	_, err := e.Execute(Invocation{Type: ActionTypeVolume, Pressed: true})
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestMidiHandlerNote(t *testing.T) {
	sender := &fakeSender{}
	e := NewExecutor(sender)
	params := rawParams(t, map[string]any{"port": "Loop", "msg_type": "note", "channel": 2, "number": 60})

	_, err := e.Execute(Invocation{Type: ActionTypeMidi, Params: params, Value: 100, Pressed: true})
	require.NoError(t, err)
	_, err = e.Execute(Invocation{Type: ActionTypeMidi, Params: params, Pressed: false})
	require.NoError(t, err)

	require.Len(t, sender.msgs, 2)
	assert.Equal(t, "Loop", sender.port)

	var ch, key, vel uint8
	require.True(t, sender.msgs[0].GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, uint8(1), ch)
	assert.Equal(t, uint8(60), key)
	assert.Equal(t, uint8(100), vel)
	assert.True(t, sender.msgs[1].GetNoteOff(&ch, &key, &vel))
}

func TestMidiHandlerCC(t *testing.T) {
	sender := &fakeSender{}
	e := NewExecutor(sender)
	params := rawParams(t, map[string]any{"port": "Loop", "msg_type": "cc", "number": 7})

	_, err := e.Execute(Invocation{Type: ActionTypeMidi, Params: params, Value: 42, Pressed: true})
	require.NoError(t, err)

	var ch, cc, val uint8
	require.True(t, sender.msgs[0].GetControlChange(&ch, &cc, &val))
	assert.Equal(t, uint8(7), cc)
	assert.Equal(t, uint8(42), val)
}

func TestMidiHandlerSendError(t *testing.T) {
	e := NewExecutor(&fakeSender{err: errors.New("port closed")})
	params := rawParams(t, map[string]any{"port": "Loop"})
	_, err := e.Execute(Invocation{Type: ActionTypeMidi, Params: params, Pressed: true})
	assert.ErrorContains(t, err, "port closed")
}

func TestValidate(t *testing.T) {
	e := NewExecutor(nil)

	assert.NoError(t, e.Validate(ActionTypeHotkey, nil))
	assert.Error(t, e.Validate(ActionTypeMidi, nil))
	assert.Error(t, e.Validate(ActionTypeMidi, rawParams(t, map[string]any{"port": "x", "msg_type": "sysex"})))
	assert.NoError(t, e.Validate(ActionTypeMidi, rawParams(t, map[string]any{"port": "x", "msg_type": "cc", "number": 1})))

	assert.Error(t, e.Validate(ActionTypeOpenURL, rawParams(t, map[string]any{"url": "not a url"})))
	assert.NoError(t, e.Validate(ActionTypeOpenURL, rawParams(t, map[string]any{"url": "https://example.com"})))
	assert.Error(t, e.Validate(ActionTypeLaunchApp, rawParams(t, map[string]any{"app": ""})))
}

func TestShellHandlerIgnoresRelease(t *testing.T) {
	h := &ShellHandler{}
	out, err := h.Execute(Invocation{Type: ActionTypeShellCommand, Pressed: false})
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestShellHandler(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("needs a POSIX shell")
	}
	h := &ShellHandler{}

	out, err := h.Execute(Invocation{Type: ActionTypeShellCommand, Pressed: true, Params: rawParams(t, map[string]any{"command": "echo ' k2 '"})})
	require.NoError(t, err)
	assert.Equal(t, "k2", out)

	_, err = h.Execute(Invocation{Type: ActionTypeShellCommand, Pressed: true, Params: rawParams(t, map[string]any{"command": "echo oops >&2; exit 3"})})
	assert.EqualError(t, err, "shell: oops")

	assert.NoError(t, h.Validate(rawParams(t, map[string]any{"command": "ls -la"})))
	assert.ErrorContains(t, h.Validate(rawParams(t, map[string]any{"command": "if then fi ("})), "syntax:")
	assert.EqualError(t, h.Validate(rawParams(t, map[string]any{"command": "  "})), "empty command")
	assert.Error(t, h.Validate(nil))
}
