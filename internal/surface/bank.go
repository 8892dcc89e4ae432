package surface

import (
	"go.uber.org/zap"

	"github.com/PixPMusic/nanokontrol-bridge/internal/host"
	"github.com/PixPMusic/nanokontrol-bridge/internal/midi"
)

// Fader bank and loop buttons
const (
	TrackLeftButton  uint8 = 0x2E
	TrackRightButton uint8 = 0x2F
	CycleButton      uint8 = 0x56
)

// Bank is the window of tracks mapped onto the strips. Offset is always a
// multiple of Size.
type Bank struct {
	size   int
	offset int
}

func newBank(size int) *Bank {
	return &Bank{size: size}
}

// Offset returns the absolute track index mapped onto strip 0
func (b *Bank) Offset() int {
	return b.offset
}

// Size returns the number of strips in a bank
func (b *Bank) Size() int {
	return b.size
}

// FaderBankController handles the track left/right and cycle buttons
type FaderBankController struct {
	bank  *Bank
	nav   host.Navigator
	light lightFunc
	loop  bool
	log   *zap.Logger
}

func newFaderBankController(bank *Bank, nav host.Navigator, light lightFunc, log *zap.Logger) *FaderBankController {
	log.Debug("creating fader bank & loop controller", zap.Int("size", bank.Size()))
	return &FaderBankController{
		bank:  bank,
		nav:   nav,
		light: light,
		log:   log,
	}
}

// Loop reports the mirrored loop state
func (f *FaderBankController) Loop() bool {
	return f.loop
}

func (f *FaderBankController) TryHandle(msg midi.Message) bool {
	if msg.Element() != midi.Button || !msg.Pressed() {
		return false
	}

	switch msg.Data1() {
	case TrackLeftButton:
		f.log.Debug("pressed track left", zap.Int("offset", f.bank.offset))
		if f.bank.offset > 0 {
			f.shift(-f.bank.size)
		}
	case TrackRightButton:
		f.log.Debug("pressed track right", zap.Int("offset", f.bank.offset))
		if f.bank.offset%f.bank.size == 0 {
			f.shift(f.bank.size)
		}
	case CycleButton:
		f.log.Debug("pressed cycle")
		f.loop = !f.loop
		f.light(CycleButton, f.loop)
		f.nav.ToggleLoop()
	default:
		return false
	}
	return true
}

func (f *FaderBankController) shift(delta int) {
	f.bank.offset += delta
	f.log.Debug("changing fader banks", zap.Int("delta", delta), zap.Int("offset", f.bank.offset))
	f.nav.ChangeFaderBanks(delta)
}

// OnLoopChanged mirrors the host's loop state without echoing a toggle
func (f *FaderBankController) OnLoopChanged(on bool) {
	f.loop = on
	f.light(CycleButton, on)
}

// OnFaderBankChanged adopts a host-reported bank start. A start that is not
// on a bank boundary is lowered to the previous boundary, locally and on the
// host.
func (f *FaderBankController) OnFaderBankChanged(start int) {
	modulus := start % f.bank.size
	if modulus != 0 {
		f.log.Debug("lowering start track", zap.Int("start", start), zap.Int("by", modulus))
		f.nav.ChangeFaderBanks(-modulus)
	}
	f.bank.offset = start - modulus
}
