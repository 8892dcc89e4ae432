package surface

import (
	"errors"
	"testing"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/nanokontrol-bridge/internal/host/hosttest"
)

type fakeTimers struct {
	running map[string]func()
	periods map[string]time.Duration
	log     []string
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{
		running: make(map[string]func()),
		periods: make(map[string]time.Duration),
	}
}

func (f *fakeTimers) Start(name string, period time.Duration, fn func()) {
	f.log = append(f.log, "start "+name)
	f.running[name] = fn
	f.periods[name] = period
}

func (f *fakeTimers) Stop(name string) {
	f.log = append(f.log, "stop "+name)
	delete(f.running, name)
}

func (f *fakeTimers) tick(name string) {
	if fn, ok := f.running[name]; ok {
		fn()
	}
}

type ledRecorder struct {
	sent [][]byte
	err  error
}

func (l *ledRecorder) send(msg gomidi.Message) error {
	l.sent = append(l.sent, append([]byte(nil), msg...))
	return l.err
}

func (l *ledRecorder) reset() {
	l.sent = nil
}

type rig struct {
	surface *Surface
	host    *hosttest.Recorder
	leds    *ledRecorder
	timers  *fakeTimers
}

func newRig(t *testing.T, opts ...Option) *rig {
	t.Helper()
	r := &rig{
		host:   hosttest.NewRecorder(),
		leds:   &ledRecorder{},
		timers: newFakeTimers(),
	}
	r.surface = New(r.host, r.leds.send, r.timers, opts...)
	return r
}

func (r *rig) in(status, data1, data2 byte) bool {
	return r.surface.Dispatch(gomidi.Message{status, data1, data2})
}

func (r *rig) reset() {
	r.host.Reset()
	r.leds.reset()
}

func led(address uint8, on bool) []byte {
	if on {
		return []byte{0x90, address, 0x7F}
	}
	return []byte{0x90, address, 0x00}
}

var errSend = errors.New("port closed")
