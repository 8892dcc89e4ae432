package midi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrPortNotFound is returned when no MIDI port matches a configured name
var ErrPortNotFound = errors.New("midi port not found")

// Sender delivers one message to an output port
type Sender func(msg midi.Message) error

// Manager resolves MIDI ports by name and opens them for listening or sending.
// A driver must be registered (see main) before any method is used.
type Manager struct {
	mu sync.RWMutex
}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
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

	ins := midi.GetInPorts()
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	i := matchPort(names, name)
	if i < 0 {
		return nil, fmt.Errorf("%w: input %q", ErrPortNotFound, name)
	}
	return ins[i], nil
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	i := matchPort(names, name)
	if i < 0 {
		return nil, fmt.Errorf("%w: output %q", ErrPortNotFound, name)
	}
	return outs[i], nil
}

// matchPort prefers an exact name match and falls back to the first
// case-insensitive substring match. Returns -1 when nothing matches.
func matchPort(names []string, want string) int {
	if want == "" {
		return -1
	}
	for i, name := range names {
		if name == want {
			return i
		}
	}
	lower := strings.ToLower(want)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), lower) {
			return i
		}
	}
	return -1
}

// MessageCallback is called for every message received on an input port
type MessageCallback func(msg midi.Message)

// StartListening begins listening for MIDI input on the specified port.
// The returned function stops the listener.
func (m *Manager) StartListening(inPortName string, callback MessageCallback) (func(), error) {
	inPort, err := m.GetInPort(inPortName)
	if err != nil {
		return nil, err
	}

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		callback(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}

	return stop, nil
}

// Sender opens the named output port and returns a function sending to it
func (m *Manager) Sender(outPortName string) (Sender, error) {
	outPort, err := m.GetOutPort(outPortName)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	send, err := midi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender: %w", err)
	}
	return send, nil
}
