package surface

import (
	"go.uber.org/zap"

	"github.com/PixPMusic/nanokontrol-bridge/internal/host"
	"github.com/PixPMusic/nanokontrol-bridge/internal/midi"
)

// Marker buttons
const (
	MarkerPrevButton uint8 = 0x58
	MarkerSetButton  uint8 = 0x59
	MarkerNextButton uint8 = 0x5A
)

// MarkersController forwards the marker buttons; it keeps no state
type MarkersController struct {
	nav host.Navigator
	log *zap.Logger
}

func newMarkersController(nav host.Navigator, log *zap.Logger) *MarkersController {
	log.Debug("creating markers controller")
	return &MarkersController{nav: nav, log: log}
}

func (m *MarkersController) TryHandle(msg midi.Message) bool {
	if msg.Element() != midi.Button || !msg.Pressed() {
		return false
	}

	switch msg.Data1() {
	case MarkerPrevButton:
		m.log.Debug("pressed marker prev")
		m.nav.GotoPreviousMarker()
	case MarkerNextButton:
		m.log.Debug("pressed marker next")
		m.nav.GotoNextMarker()
	case MarkerSetButton:
		m.log.Debug("pressed marker set")
		m.nav.CreateMarker()
	default:
		return false
	}
	return true
}
