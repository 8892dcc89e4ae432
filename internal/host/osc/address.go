// Package osc connects the surface to a DAW over Open Sound Control: Client
// sends host commands, Server receives host notifications.
package osc

// Addresses the client sends to
const (
	AddrToggleSolo      = "/track/solo/toggle"
	AddrToggleMute      = "/track/mute/toggle"
	AddrToggleRecEnable = "/track/recenable/toggle"
	AddrSelectPlugin    = "/track/select"
	AddrFader           = "/track/fader"
	AddrPan             = "/track/pan"

	AddrPlay        = "/transport/play"
	AddrStop        = "/transport/stop"
	AddrRecord      = "/transport/record"
	AddrRewind      = "/transport/rewind"
	AddrFastForward = "/transport/forward"

	AddrBankShift    = "/bank/shift"
	AddrLoopToggle   = "/loop/toggle"
	AddrMarkerPrev   = "/marker/prev"
	AddrMarkerNext   = "/marker/next"
	AddrMarkerCreate = "/marker/create"
	AddrRefresh      = "/device/refresh"
)

// Addresses the server listens on
const (
	AddrBankChanged     = "/surface/bank"
	AddrSoloMuteChanged = "/surface/solomute"
	AddrRecEnabled      = "/surface/recenable"
	AddrPlayChanged     = "/surface/play"
	AddrRecordChanged   = "/surface/record"
	AddrLoopChanged     = "/surface/loop"
)
