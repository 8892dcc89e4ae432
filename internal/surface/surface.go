package surface

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gomidi "gitlab.com/gomidi/midi/v2"
	"go.uber.org/zap"

	"github.com/PixPMusic/nanokontrol-bridge/internal/host"
	"github.com/PixPMusic/nanokontrol-bridge/internal/logging"
	"github.com/PixPMusic/nanokontrol-bridge/internal/midi"
)

var (
	// ErrChannelOutOfRange is returned for a notification addressing a strip
	// outside 0..FaderChannels-1
	ErrChannelOutOfRange = errors.New("channel out of range")
	// ErrInvalidBankOffset is returned for a negative bank start
	ErrInvalidBankOffset = errors.New("invalid bank offset")
)

const flashTimer = "flash"

// DefaultFlashPeriod is the solo LED blink period
const DefaultFlashPeriod = 500 * time.Millisecond

// Timers is the periodic timer service the surface arms its flash timer on
type Timers interface {
	Start(name string, period time.Duration, fn func())
	Stop(name string)
}

// State is a snapshot of everything the surface mirrors
type State struct {
	Strips     [FaderChannels]StripState
	BankOffset int
	Loop       bool
	Transport  TransportState
}

type options struct {
	logger      *zap.Logger
	mask        logging.Mask
	policy      Policy
	flashPeriod time.Duration
}

// Option configures a Surface
type Option func(*options)

// WithLogger sets the base logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDebugMask selects the components that log at debug level
func WithDebugMask(m logging.Mask) Option {
	return func(o *options) {
		o.mask = m
	}
}

// WithPolicy overrides DefaultPolicy
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithFlashPeriod overrides DefaultFlashPeriod
func WithFlashPeriod(d time.Duration) Option {
	return func(o *options) {
		o.flashPeriod = d
	}
}

// Surface is the main controller: it owns the handler chain, the LED
// output and the flash timer, and forwards host notifications to the
// sub-controller that owns them.
//
// Every entry point serializes on one mutex, so a bank change is applied
// before any later message is routed.
type Surface struct {
	mu sync.Mutex

	id          string
	desc        Description
	host        host.Host
	send        midi.Sender
	timers      Timers
	flashPeriod time.Duration

	log     *zap.Logger
	midiLog *zap.Logger

	bank      *Bank
	faderBank *FaderBankController
	markers   *MarkersController
	transport *TransportController
	strips    [FaderChannels]*ChannelStrip

	// evaluated in order, first claim wins
	handlers []Handler
}

// New builds a surface with its sub-controllers and eight channel strips.
// Nothing is sent and no timer runs until Initialize.
func New(h host.Host, send midi.Sender, timers Timers, opts ...Option) *Surface {
	o := options{
		policy:      DefaultPolicy(),
		flashPeriod: DefaultFlashPeriod,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	s := &Surface{
		id:          uuid.New().String(),
		desc:        NanoKontrol2,
		host:        h,
		send:        send,
		timers:      timers,
		flashPeriod: o.flashPeriod,
	}
	base := o.logger.With(zap.String("session", s.id))
	s.log = o.mask.For(base, logging.Main)
	s.midiLog = o.mask.For(base, logging.MIDI)

	s.bank = newBank(s.desc.NumberOfFaderChannels)
	s.faderBank = newFaderBankController(s.bank, h, s.lightUpButton, o.mask.For(base, logging.Bank))
	s.markers = newMarkersController(h, o.mask.For(base, logging.Markers))
	s.transport = newTransportController(h, s.lightUpButton, o.policy, o.mask.For(base, logging.Transport))
	s.handlers = []Handler{s.faderBank, s.markers, s.transport}

	stripLog := o.mask.For(base, logging.Strip)
	for i := range s.strips {
		s.strips[i] = newChannelStrip(i, s.bank, h, s.lightUpButton, o.policy, stripLog)
		s.handlers = append(s.handlers, s.strips[i])
	}
	return s
}

// ID returns the session id attached to every log entry
func (s *Surface) ID() string {
	return s.id
}

// Description returns the static device record
func (s *Surface) Description() Description {
	return s.desc
}

// Initialize announces the controller and (re)arms the flash timer.
// It may be called again after Shutdown.
func (s *Surface) Initialize() {
	s.mu.Lock()
	s.log.Info("controller initialized",
		zap.String("device", s.desc.Name),
		zap.String("version", Version),
		zap.Int("faders", s.desc.NumberOfFaderChannels),
		zap.String("notes", s.desc.Notes))
	s.mu.Unlock()

	// the timer callback takes s.mu, so the timer is managed unlocked
	s.timers.Stop(flashTimer)
	s.timers.Start(flashTimer, s.flashPeriod, s.OnTimer)
}

// InitializeDevice is called when the host talks to a (possibly new)
// physical device; the host re-pushes its state so the LEDs catch up.
func (s *Surface) InitializeDevice() {
	s.log.Debug("initializing device", zap.String("device", s.desc.Name))
	s.host.UpdateDeviceState()
}

// Shutdown cancels the flash timer. Calling it more than once is safe.
func (s *Surface) Shutdown() {
	s.log.Debug("shutting down", zap.String("device", s.desc.Name))
	s.timers.Stop(flashTimer)
}

// LightUpButton sends one LED message for the button at address
func (s *Surface) LightUpButton(address uint8, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightUpButton(address, on)
}

func (s *Surface) lightUpButton(address uint8, on bool) {
	out := midi.LED(address, on)
	s.midiLog.Debug("MIDI OUT", zap.Stringer("msg", out))
	if err := s.send(out); err != nil {
		s.log.Warn("failed to send LED update", zap.Uint8("address", address), zap.Error(err))
	}
}

// Dispatch routes one inbound message through the handler chain and
// reports whether a handler claimed it
func (s *Surface) Dispatch(raw gomidi.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := midi.Parse(raw)
	if !ok {
		s.midiLog.Debug("MIDI IN ignored", zap.Stringer("msg", raw))
		return false
	}

	for _, h := range s.handlers {
		if h.TryHandle(msg) {
			s.midiLog.Debug("MIDI IN handled", zap.Stringer("msg", msg))
			return true
		}
	}
	s.midiLog.Debug("MIDI IN ignored", zap.Stringer("msg", msg))
	return false
}

// OnTimer runs one flash tick on every strip
func (s *Surface) OnTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, strip := range s.strips {
		strip.FlashUpdate()
	}
}

// OnLoopChanged mirrors the host loop state
func (s *Surface) OnLoopChanged(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("loop changed", zap.Bool("on", on))
	s.faderBank.OnLoopChanged(on)
}

// OnFaderBankChanged adopts the host's bank start, correcting it down to a
// bank boundary if needed
func (s *Surface) OnFaderBankChanged(start int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("fader bank changed", zap.Int("start", start))
	if start < 0 {
		err := fmt.Errorf("%w: %d", ErrInvalidBankOffset, start)
		s.log.Error("rejected fader bank notification", zap.Error(err))
		return err
	}
	s.faderBank.OnFaderBankChanged(start)
	return nil
}

// OnSoloMuteChanged mirrors one strip's solo/mute lights
func (s *Surface) OnSoloMuteChanged(channel int, state SoloMuteState, isBright bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("solo/mute changed", zap.Int("channel", channel), zap.Uint8("state", uint8(state)), zap.Bool("bright", isBright))
	strip, err := s.strip(channel)
	if err != nil {
		return err
	}
	strip.OnSoloMuteChanged(state, isBright)
	return nil
}

// OnTrackRecordEnabled mirrors one strip's arm light
func (s *Surface) OnTrackRecordEnabled(channel int, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("track record enabled", zap.Int("channel", channel), zap.Bool("enabled", enabled))
	strip, err := s.strip(channel)
	if err != nil {
		return err
	}
	strip.OnTrackRecordEnabled(enabled)
	return nil
}

// OnPlayStateChanged lights Play or Stop
func (s *Surface) OnPlayStateChanged(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("play state changed", zap.Bool("playing", playing))
	s.transport.OnPlayStateChanged(playing)
}

// OnRecordStateChanged mirrors the record light
func (s *Surface) OnRecordStateChanged(recording bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("record state changed", zap.Bool("recording", recording))
	s.transport.OnRecordStateChanged(recording)
}

func (s *Surface) strip(channel int) (*ChannelStrip, error) {
	if channel < 0 || channel >= len(s.strips) {
		err := fmt.Errorf("%w: %d", ErrChannelOutOfRange, channel)
		s.log.Error("rejected strip notification", zap.Error(err))
		return nil, err
	}
	return s.strips[channel], nil
}

// Track returns the absolute track currently mapped onto a strip
func (s *Surface) Track(channel int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	strip, err := s.strip(channel)
	if err != nil {
		return 0, err
	}
	return strip.Track(), nil
}

// Snapshot returns the mirrored state
func (s *Surface) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		BankOffset: s.bank.Offset(),
		Loop:       s.faderBank.Loop(),
		Transport:  s.transport.State(),
	}
	for i, strip := range s.strips {
		st.Strips[i] = strip.State()
	}
	return st
}
