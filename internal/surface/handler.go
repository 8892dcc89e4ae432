package surface

import "github.com/PixPMusic/nanokontrol-bridge/internal/midi"

// Handler owns one slice of the surface's message address space.
// TryHandle returns true when it claimed the message, which stops dispatch.
type Handler interface {
	TryHandle(msg midi.Message) bool
}

// lightFunc emits one LED update
type lightFunc func(address uint8, on bool)
