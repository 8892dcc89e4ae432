package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Mask selects which components emit debug output
type Mask uint8

const (
	MIDI      Mask = 1 << iota // MIDI IN/OUT tracing
	Main                       // dispatcher lifecycle and notifications
	Strip                      // channel strips
	Bank                       // fader bank & loop
	Markers                    // marker buttons
	Transport                  // transport buttons

	None Mask = 0
	All  Mask = MIDI | Main | Strip | Bank | Markers | Transport
)

var maskNames = []struct {
	bit  Mask
	name string
}{
	{MIDI, "midi"},
	{Main, "main"},
	{Strip, "strip"},
	{Bank, "bank"},
	{Markers, "markers"},
	{Transport, "transport"},
}

// String returns the component names joined by "|"
func (m Mask) String() string {
	if m == None {
		return "none"
	}
	var parts []string
	for _, n := range maskNames {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseMask converts component names into a mask. "all" enables every component.
func ParseMask(names []string) (Mask, error) {
	var m Mask
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			m |= All
			continue
		}
		found := false
		for _, n := range maskNames {
			if n.name == name {
				m |= n.bit
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("unknown debug component %q", name)
		}
	}
	return m, nil
}

// Has reports whether every bit of c is enabled
func (m Mask) Has(c Mask) bool {
	return c != None && m&c == c
}

// For returns a child of base named after component. Debug entries are
// dropped unless the component is enabled in m.
func (m Mask) For(base *zap.Logger, component Mask) *zap.Logger {
	l := base.Named(component.String())
	if m.Has(component) {
		return l
	}
	return l.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))
}

// New builds a production zap logger at the given level. Debug level is
// enabled whenever the mask selects at least one component, since the mask
// does the per-component filtering.
func New(level string, mask Mask) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	if mask != None && lvl > zapcore.DebugLevel {
		lvl = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	return cfg.Build()
}
