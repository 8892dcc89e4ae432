package surface

import (
	"go.uber.org/zap"

	"github.com/PixPMusic/nanokontrol-bridge/internal/host"
	"github.com/PixPMusic/nanokontrol-bridge/internal/midi"
)

// Strip button bases; the channel (0-7) is added to get the note number
const (
	ArmButton  uint8 = 0x00
	SoloButton uint8 = 0x08
	MuteButton uint8 = 0x10
)

// PanKnob is the controller number base of the strip knobs
const PanKnob uint8 = 0x10

// SoloMuteState is the bit set a host sends with a solo/mute notification
type SoloMuteState uint8

const (
	SoloLit      SoloMuteState = 1 << iota // explicitly soloed
	SoloFlashing                           // implicitly soloed
	SoloIsolate                            // explicitly solo isolated
	MuteLit                                // explicitly muted
	MuteFlashing                           // implicitly muted

	// SoloMuteBits holds every defined bit
	SoloMuteBits = SoloLit | SoloFlashing | SoloIsolate | MuteLit | MuteFlashing
)

// StripState is the mirrored state of one channel strip
type StripState struct {
	Armed        bool
	Solo         bool
	Mute         bool
	SoloIsolated bool
	FlashPhase   bool
}

// ChannelStrip maps one physical strip (arm/solo/mute buttons, fader, pan
// knob) onto the track at channel + bank offset
type ChannelStrip struct {
	channel int
	state   StripState
	bank    *Bank
	mixer   host.Mixer
	light   lightFunc
	policy  Policy
	log     *zap.Logger
}

func newChannelStrip(channel int, bank *Bank, mixer host.Mixer, light lightFunc, policy Policy, log *zap.Logger) *ChannelStrip {
	log = log.With(zap.Int("channel", channel))
	log.Debug("creating channel strip")
	return &ChannelStrip{
		channel: channel,
		bank:    bank,
		mixer:   mixer,
		light:   light,
		policy:  policy,
		log:     log,
	}
}

// Track returns the absolute track index the strip currently controls
func (c *ChannelStrip) Track() int {
	return c.channel + c.bank.Offset()
}

// State returns a copy of the strip state
func (c *ChannelStrip) State() StripState {
	return c.state
}

// TryHandle claims button presses on this strip's arm/solo/mute notes,
// pitch bend on this strip's channel and this strip's pan knob
func (c *ChannelStrip) TryHandle(msg midi.Message) bool {
	switch msg.Element() {
	case midi.Button:
		return c.handleButton(msg)
	case midi.Slider:
		if int(msg.Channel()) != c.channel {
			return false
		}
		value := float64(msg.Value()) / 127
		c.log.Debug("moving slider", zap.Uint8("value", msg.Value()), zap.Int("track", c.Track()))
		c.mixer.SetFader(c.Track(), value, false)
		c.mixer.SelectPluginInTrack(c.Track())
		return true
	case midi.Knob:
		if msg.Data1()&0xF8 != PanKnob || int(msg.Data1()&0x07) != c.channel {
			return false
		}
		increment := DecodeRelative(msg.Value())
		c.log.Debug("turning knob", zap.Int("increment", increment), zap.Int("track", c.Track()))
		c.mixer.SetPanPot(c.Track(), float64(increment)/float64(c.policy.PanDivisor), true)
		c.mixer.SelectPluginInTrack(c.Track())
		return true
	}
	return false
}

func (c *ChannelStrip) handleButton(msg midi.Message) bool {
	if int(msg.Data1()&0x07) != c.channel || msg.Value() == 0 {
		return false
	}

	track := c.Track()
	switch msg.Data1() & 0xF8 {
	case SoloButton:
		c.log.Debug("pressed solo", zap.Int("track", track))
		c.state.Solo = !c.state.Solo
		c.light(SoloButton+uint8(c.channel), c.state.Solo)
		c.mixer.ToggleSolo(track)
	case MuteButton:
		c.log.Debug("pressed mute", zap.Int("track", track))
		c.state.Mute = !c.state.Mute
		c.light(MuteButton+uint8(c.channel), c.state.Mute)
		c.mixer.ToggleMute(track)
	case ArmButton:
		c.log.Debug("pressed arm", zap.Int("track", track))
		c.state.Armed = !c.state.Armed
		c.light(ArmButton+uint8(c.channel), c.state.Armed)
		c.mixer.ToggleRecEnable(track, false)
	default:
		return false
	}
	c.mixer.SelectPluginInTrack(track)
	return true
}

// DecodeRelative decodes a sign-magnitude relative knob value: bit 6 is the
// sign, bits 0-5 the magnitude. The result is in [-63, 63].
func DecodeRelative(b uint8) int {
	magnitude := int(b & 0x3F)
	if b&0x40 != 0 {
		return -magnitude
	}
	return magnitude
}

// OnSoloMuteChanged mirrors the host's solo/mute lights
func (c *ChannelStrip) OnSoloMuteChanged(state SoloMuteState, isBright bool) {
	c.state.Mute = state&(MuteLit|MuteFlashing) != 0
	if c.policy.SoloIsolation == SoloIsolationFolded {
		c.state.Solo = state&(SoloLit|SoloFlashing|SoloIsolate) != 0
		c.state.SoloIsolated = false
	} else {
		c.state.Solo = state&(SoloLit|SoloFlashing) != 0
		c.state.SoloIsolated = state&SoloIsolate != 0
	}
	c.log.Debug("solo/mute changed",
		zap.Bool("solo", c.state.Solo),
		zap.Bool("mute", c.state.Mute),
		zap.Bool("isolated", c.state.SoloIsolated),
		zap.Bool("bright", isBright))
	c.light(SoloButton+uint8(c.channel), c.state.Solo)
	c.light(MuteButton+uint8(c.channel), c.state.Mute)
}

// OnTrackRecordEnabled mirrors the host's arm state
func (c *ChannelStrip) OnTrackRecordEnabled(enabled bool) {
	c.state.Armed = enabled
	c.light(ArmButton+uint8(c.channel), enabled)
}

// FlashUpdate runs on every flash tick: an isolated, unsoloed strip blinks
// its solo LED, any other strip shows its solo flag
func (c *ChannelStrip) FlashUpdate() {
	if c.state.SoloIsolated && !c.state.Solo {
		c.state.FlashPhase = !c.state.FlashPhase
		c.light(SoloButton+uint8(c.channel), c.state.FlashPhase)
		return
	}
	c.light(SoloButton+uint8(c.channel), c.state.Solo)
}
