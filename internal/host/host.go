// Package host describes the DAW operations a control surface drives.
//
// Every call is fire-and-forget: implementations log their own delivery
// failures and never report them back to the surface.
package host

// Mixer addresses tracks by absolute index (bank offset already applied)
type Mixer interface {
	ToggleSolo(track int)
	ToggleMute(track int)
	// ToggleRecEnable arms or disarms a track; automatic selects the host's
	// automatic input monitoring variant
	ToggleRecEnable(track int, automatic bool)
	SelectPluginInTrack(track int)
	// SetFader sets the track gain, value in [0, 1]
	SetFader(track int, value float64, automated bool)
	// SetPanPot adjusts the track pan, delta in [-1, 1] when relative
	SetPanPot(track int, delta float64, relative bool)
}

// Transport drives the host's play head
type Transport interface {
	Play()
	Stop()
	Record()
	// Rewind and FastForward are level sensitive: the host scrubs while
	// pressed is true
	Rewind(pressed bool)
	FastForward(pressed bool)
}

// Navigator covers banking, looping, markers and device refresh
type Navigator interface {
	// ChangeFaderBanks shifts the track range mapped onto the faders
	ChangeFaderBanks(delta int)
	ToggleLoop()
	GotoPreviousMarker()
	GotoNextMarker()
	CreateMarker()
	// UpdateDeviceState asks the host to push its current state again
	UpdateDeviceState()
}

// Host is the complete collaborator surface consumed by the controller
type Host interface {
	Mixer
	Transport
	Navigator
}
