package midi

import (
	"fmt"
	"log"
	"sync"

	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

// Manager handles MIDI port discovery, input and output
type Manager struct {
	mu         sync.RWMutex
	deviceType DeviceType
	device     Device
}

// NewManager creates a new MIDI manager for one kind of controller
func NewManager(deviceType DeviceType) *Manager {
	return &Manager{deviceType: deviceType, device: GetDevice(deviceType)}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// DeviceType returns the kind of controller the manager talks to
func (m *Manager) DeviceType() DeviceType {
	return m.deviceType
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetInPort returns an input port by name
func (m *Manager) GetInPort(name string) (drivers.In, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("input port not found: %s", name)
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if out := m.findOutPort(name); out != nil {
		return out, nil
	}
	return nil, fmt.Errorf("output port not found: %s", name)
}

// StartListening begins listening for MIDI input on the specified port.
// Every message the device reports is passed to callback as a live event,
// bracketed by Connection events when listening starts and stops.
func (m *Manager) StartListening(inPortName string, callback func(live.Event)) (func(), error) {
	if inPortName == "" {
		return func() {}, nil
	}

	inPort, err := m.GetInPort(inPortName)
	if err != nil {
		return nil, err
	}

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		if ev, ok := m.device.HandleMessage(msg); ok {
			callback(ev)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}

	log.Printf("Started listening on %s", inPortName)
	callback(live.Connection{Connected: true, Port: inPortName})

	var once sync.Once
	return func() {
		once.Do(func() {
			stop()
			callback(live.Connection{Connected: false, Port: inPortName})
		})
	}, nil
}

// Send writes one message to an output port
func (m *Manager) Send(outPortName string, msg midi.Message) error {
	return m.withSender(outPortName, func(send func(midi.Message) error) error {
		return send(msg)
	})
}

// SetLED lights or clears one LED of the controller. channel is 1-16.
func (m *Manager) SetLED(outPortName string, channel int, led live.LEDState) error {
	if outPortName == "" {
		return nil
	}
	return m.withSender(outPortName, func(send func(midi.Message) error) error {
		return m.device.SetLED(send, wireChannel(channel), led)
	})
}

// Reset turns every LED of the controller off. channel is 1-16.
func (m *Manager) Reset(outPortName string, channel int) error {
	if outPortName == "" {
		return nil
	}
	return m.withSender(outPortName, func(send func(midi.Message) error) error {
		return m.device.Reset(send, wireChannel(channel))
	})
}

func (m *Manager) withSender(outPortName string, fn func(send func(midi.Message) error) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	outPort := m.findOutPort(outPortName)
	if outPort == nil {
		return fmt.Errorf("output port not found: %s", outPortName)
	}

	send, err := midi.SendTo(outPort)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}
	return fn(send)
}

func (m *Manager) findOutPort(name string) drivers.Out {
	outs := midi.GetOutPorts()
	for _, out := range outs {
		if out.String() == name {
			return out
		}
	}
	return nil
}

// wireChannel converts a 1-16 channel to the zero-based wire value
func wireChannel(channel int) uint8 {
	if channel < 1 || channel > 16 {
		return 0
	}
	return uint8(channel - 1)
}
