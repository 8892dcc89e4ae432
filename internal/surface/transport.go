package surface

import (
	"go.uber.org/zap"

	"github.com/PixPMusic/nanokontrol-bridge/internal/host"
	"github.com/PixPMusic/nanokontrol-bridge/internal/midi"
)

// Transport buttons
const (
	RewindButton      uint8 = 0x5B
	FastForwardButton uint8 = 0x5C
	StopButton        uint8 = 0x5D
	PlayButton        uint8 = 0x5E
	RecordButton      uint8 = 0x5F
)

// TransportState is the transport as last seen by the surface
type TransportState struct {
	Playing         bool
	Recording       bool
	RewindHeld      bool
	FastForwardHeld bool
}

// TransportController handles rewind, fast-forward, stop, play and record
type TransportController struct {
	state     TransportState
	transport host.Transport
	light     lightFunc
	eagerStop bool
	log       *zap.Logger
}

func newTransportController(transport host.Transport, light lightFunc, policy Policy, log *zap.Logger) *TransportController {
	log.Debug("creating transport controller")
	return &TransportController{
		transport: transport,
		light:     light,
		eagerStop: policy.EagerStopLED,
		log:       log,
	}
}

// State returns a copy of the transport state
func (t *TransportController) State() TransportState {
	return t.state
}

func (t *TransportController) TryHandle(msg midi.Message) bool {
	if msg.Element() != midi.Button {
		return false
	}

	pressed := msg.Pressed()
	switch msg.Data1() {
	// rewind and fast-forward follow the button level so holding scrubs
	case RewindButton:
		t.log.Debug("rewind", zap.Bool("pressed", pressed))
		t.state.RewindHeld = pressed
		t.transport.Rewind(pressed)
		t.light(RewindButton, pressed)
		return true
	case FastForwardButton:
		t.log.Debug("fast forward", zap.Bool("pressed", pressed))
		t.state.FastForwardHeld = pressed
		t.transport.FastForward(pressed)
		t.light(FastForwardButton, pressed)
		return true
	}

	if !pressed {
		return false
	}
	switch msg.Data1() {
	case StopButton:
		t.log.Debug("pressed stop")
		t.transport.Stop()
		if t.eagerStop {
			t.state.Playing = false
			t.light(StopButton, true)
			t.light(PlayButton, false)
		}
	case PlayButton:
		t.log.Debug("pressed play")
		t.transport.Play()
	case RecordButton:
		t.log.Debug("pressed record")
		t.transport.Record()
	default:
		return false
	}
	return true
}

// OnPlayStateChanged lights exactly one of Stop and Play
func (t *TransportController) OnPlayStateChanged(playing bool) {
	t.state.Playing = playing
	t.light(StopButton, !playing)
	t.light(PlayButton, playing)
}

// OnRecordStateChanged mirrors the record LED
func (t *TransportController) OnRecordStateChanged(recording bool) {
	t.state.Recording = recording
	t.light(RecordButton, recording)
}
