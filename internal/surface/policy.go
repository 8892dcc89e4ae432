package surface

import "fmt"

// SoloIsolation selects how the solo-isolate bit of a solo/mute
// notification is interpreted
type SoloIsolation string

const (
	// SoloIsolationTracked keeps isolation apart from solo, so an isolated
	// but unsoloed strip blinks its solo LED
	SoloIsolationTracked SoloIsolation = "tracked"
	// SoloIsolationFolded treats isolation as solo: the LED is simply lit
	SoloIsolationFolded SoloIsolation = "folded"
)

// Policy collects the behaviours that differ between controller revisions
type Policy struct {
	// PanDivisor normalizes a relative knob increment (-63..63), 63 or 64
	PanDivisor int

	SoloIsolation SoloIsolation

	// EagerStopLED lights Stop and darkens Play as soon as Stop is pressed
	// instead of waiting for the host's play-state notification
	EagerStopLED bool
}

// DefaultPolicy returns the behaviour of the latest controller revision
func DefaultPolicy() Policy {
	return Policy{
		PanDivisor:    63,
		SoloIsolation: SoloIsolationTracked,
	}
}

// Validate checks the policy values
func (p Policy) Validate() error {
	if p.PanDivisor != 63 && p.PanDivisor != 64 {
		return fmt.Errorf("pan divisor must be 63 or 64, got %d", p.PanDivisor)
	}
	switch p.SoloIsolation {
	case SoloIsolationTracked, SoloIsolationFolded:
	default:
		return fmt.Errorf("unknown solo isolation policy %q", p.SoloIsolation)
	}
	return nil
}
