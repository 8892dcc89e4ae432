package surface

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripButtonsToggle(t *testing.T) {
	tests := []struct {
		name   string
		base   uint8
		toggle string
		flag   func(StripState) bool
	}{
		{"solo", SoloButton, "ToggleSolo(3)", func(s StripState) bool { return s.Solo }},
		{"mute", MuteButton, "ToggleMute(3)", func(s StripState) bool { return s.Mute }},
		{"arm", ArmButton, "ToggleRecEnable(3, false)", func(s StripState) bool { return s.Armed }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			address := tt.base + 3

			require.True(t, r.in(0x90, address, 0x7F))
			assert.True(t, tt.flag(r.surface.Snapshot().Strips[3]))
			assert.Equal(t, [][]byte{led(address, true)}, r.leds.sent)
			assert.Equal(t, []string{tt.toggle, "SelectPluginInTrack(3)"}, r.host.Calls())

			r.reset()
			require.True(t, r.in(0x90, address, 0x7F))
			assert.False(t, tt.flag(r.surface.Snapshot().Strips[3]))
			assert.Equal(t, [][]byte{led(address, false)}, r.leds.sent)
		})
	}
}

func TestStripButtonReleaseIsIgnored(t *testing.T) {
	r := newRig(t)

	assert.False(t, r.in(0x90, SoloButton+1, 0x00))
	assert.False(t, r.surface.Snapshot().Strips[1].Solo)
	assert.Empty(t, r.leds.sent)
	assert.Empty(t, r.host.Calls())
}

func TestStripAnyNonZeroValuePresses(t *testing.T) {
	r := newRig(t)

	require.True(t, r.in(0x90, MuteButton+2, 0x01))
	assert.True(t, r.surface.Snapshot().Strips[2].Mute)
}

func TestSliderNormalization(t *testing.T) {
	tests := []struct {
		value uint8
		want  string
	}{
		{0, "SetFader(0, 0.0000, false)"},
		{96, "SetFader(0, 0.7559, false)"},
		{127, "SetFader(0, 1.0000, false)"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.value), func(t *testing.T) {
			r := newRig(t)
			require.True(t, r.in(0xE0, 0x00, tt.value))
			assert.Equal(t, []string{tt.want, "SelectPluginInTrack(0)"}, r.host.Calls())
			assert.Empty(t, r.leds.sent)
		})
	}
}

func TestSliderRoutesByStatusChannel(t *testing.T) {
	r := newRig(t)

	require.True(t, r.in(0xE5, 0x00, 127))
	assert.Equal(t, []string{"SetFader(5, 1.0000, false)", "SelectPluginInTrack(5)"}, r.host.Calls())
}

func TestDecodeRelative(t *testing.T) {
	tests := []struct {
		in   uint8
		want int
	}{
		{0x00, 0},
		{0x01, 1},
		{0x3F, 63},
		{0x40, 0},
		{0x41, -1},
		{0x7F, -63},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeRelative(tt.in), "0x%02x", tt.in)
	}
}

func TestKnobPanDivisors(t *testing.T) {
	tests := []struct {
		divisor int
		value   uint8
		want    string
	}{
		{63, 0x05, "SetPanPot(2, 0.0794, true)"},
		{63, 0x41, "SetPanPot(2, -0.0159, true)"},
		{63, 0x3F, "SetPanPot(2, 1.0000, true)"},
		{63, 0x7F, "SetPanPot(2, -1.0000, true)"},
		{64, 0x05, "SetPanPot(2, 0.0781, true)"},
		{64, 0x41, "SetPanPot(2, -0.0156, true)"},
		{64, 0x3F, "SetPanPot(2, 0.9844, true)"},
		{64, 0x7F, "SetPanPot(2, -0.9844, true)"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/0x%02x", tt.divisor, tt.value), func(t *testing.T) {
			policy := DefaultPolicy()
			policy.PanDivisor = tt.divisor
			r := newRig(t, WithPolicy(policy))

			require.True(t, r.in(0xB0, PanKnob+2, tt.value))
			assert.Equal(t, []string{tt.want, "SelectPluginInTrack(2)"}, r.host.Calls())
		})
	}
}

func TestKnobOutsidePanRangeIsIgnored(t *testing.T) {
	r := newRig(t)

	assert.False(t, r.in(0xB0, 0x00, 0x01))
	assert.False(t, r.in(0xB0, 0x20, 0x01))
	assert.Empty(t, r.host.Calls())
}

func TestSoloMuteChangedTracked(t *testing.T) {
	tests := []struct {
		name     string
		state    SoloMuteState
		solo     bool
		mute     bool
		isolated bool
	}{
		{"clear", 0, false, false, false},
		{"explicit solo", SoloLit, true, false, false},
		{"implicit solo", SoloFlashing, true, false, false},
		{"isolated only", SoloIsolate, false, false, true},
		{"explicit mute", MuteLit, false, true, false},
		{"implicit mute", MuteFlashing, false, true, false},
		{"everything", SoloLit | SoloIsolate | MuteLit, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			require.NoError(t, r.surface.OnSoloMuteChanged(4, tt.state, true))

			st := r.surface.Snapshot().Strips[4]
			assert.Equal(t, tt.solo, st.Solo)
			assert.Equal(t, tt.mute, st.Mute)
			assert.Equal(t, tt.isolated, st.SoloIsolated)
			assert.Equal(t, [][]byte{led(SoloButton+4, tt.solo), led(MuteButton+4, tt.mute)}, r.leds.sent)
			assert.Empty(t, r.host.Calls())
		})
	}
}

func TestSoloMuteChangedFolded(t *testing.T) {
	policy := DefaultPolicy()
	policy.SoloIsolation = SoloIsolationFolded
	r := newRig(t, WithPolicy(policy))

	require.NoError(t, r.surface.OnSoloMuteChanged(0, SoloIsolate, false))
	st := r.surface.Snapshot().Strips[0]
	assert.True(t, st.Solo)
	assert.False(t, st.SoloIsolated)
	assert.Equal(t, [][]byte{led(SoloButton, true), led(MuteButton, false)}, r.leds.sent)
}

func TestTrackRecordEnabled(t *testing.T) {
	r := newRig(t)

	require.NoError(t, r.surface.OnTrackRecordEnabled(7, true))
	assert.True(t, r.surface.Snapshot().Strips[7].Armed)
	assert.Equal(t, [][]byte{led(ArmButton+7, true)}, r.leds.sent)

	r.reset()
	require.NoError(t, r.surface.OnTrackRecordEnabled(7, false))
	assert.False(t, r.surface.Snapshot().Strips[7].Armed)
	assert.Equal(t, [][]byte{led(ArmButton+7, false)}, r.leds.sent)
}

func soloLEDs(sent [][]byte, channel uint8) [][]byte {
	var out [][]byte
	for _, m := range sent {
		if m[1] == SoloButton+channel {
			out = append(out, m)
		}
	}
	return out
}

func TestFlashIsolatedNotSoloed(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.surface.OnSoloMuteChanged(1, SoloIsolate, true))
	r.reset()

	phase := false
	for i := 0; i < 4; i++ {
		r.surface.OnTimer()
		phase = !phase
		assert.Equal(t, phase, r.surface.Snapshot().Strips[1].FlashPhase)
	}
	assert.Equal(t, [][]byte{
		led(SoloButton+1, true),
		led(SoloButton+1, false),
		led(SoloButton+1, true),
		led(SoloButton+1, false),
	}, soloLEDs(r.leds.sent, 1))
}

func TestFlashPinnedWhenSoloed(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.surface.OnSoloMuteChanged(1, SoloLit|SoloIsolate, true))
	r.reset()

	for i := 0; i < 3; i++ {
		r.surface.OnTimer()
	}
	assert.Equal(t, [][]byte{
		led(SoloButton+1, true),
		led(SoloButton+1, true),
		led(SoloButton+1, true),
	}, soloLEDs(r.leds.sent, 1))
	assert.False(t, r.surface.Snapshot().Strips[1].FlashPhase)
}

func TestTimerTickFansOutToEveryStrip(t *testing.T) {
	r := newRig(t)

	r.surface.OnTimer()
	require.Len(t, r.leds.sent, FaderChannels)
	for i, m := range r.leds.sent {
		assert.Equal(t, led(SoloButton+uint8(i), false), m)
	}
}
