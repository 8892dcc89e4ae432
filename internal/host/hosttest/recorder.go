// Package hosttest provides a recording host.Host for tests.
package hosttest

import (
	"fmt"
	"sync"

	"github.com/PixPMusic/nanokontrol-bridge/internal/host"
)

var _ host.Host = (*Recorder)(nil)

// Recorder records every host call as a formatted string such as
// "ToggleSolo(8)" or "SetFader(0, 0.7559, false)". Floats are rendered
// with four decimals.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded calls in order
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset forgets every recorded call
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) ToggleSolo(track int) { r.record("ToggleSolo(%d)", track) }
func (r *Recorder) ToggleMute(track int) { r.record("ToggleMute(%d)", track) }
func (r *Recorder) ToggleRecEnable(track int, automatic bool) {
	r.record("ToggleRecEnable(%d, %t)", track, automatic)
}
func (r *Recorder) SelectPluginInTrack(track int) { r.record("SelectPluginInTrack(%d)", track) }
func (r *Recorder) SetFader(track int, value float64, automated bool) {
	r.record("SetFader(%d, %.4f, %t)", track, value, automated)
}
func (r *Recorder) SetPanPot(track int, delta float64, relative bool) {
	r.record("SetPanPot(%d, %.4f, %t)", track, delta, relative)
}

func (r *Recorder) Play()                    { r.record("Play()") }
func (r *Recorder) Stop()                    { r.record("Stop()") }
func (r *Recorder) Record()                  { r.record("Record()") }
func (r *Recorder) Rewind(pressed bool)      { r.record("Rewind(%t)", pressed) }
func (r *Recorder) FastForward(pressed bool) { r.record("FastForward(%t)", pressed) }

func (r *Recorder) ChangeFaderBanks(delta int) { r.record("ChangeFaderBanks(%d)", delta) }
func (r *Recorder) ToggleLoop()                { r.record("ToggleLoop()") }
func (r *Recorder) GotoPreviousMarker()        { r.record("GotoPreviousMarker()") }
func (r *Recorder) GotoNextMarker()            { r.record("GotoNextMarker()") }
func (r *Recorder) CreateMarker()              { r.record("CreateMarker()") }
func (r *Recorder) UpdateDeviceState()         { r.record("UpdateDeviceState()") }
