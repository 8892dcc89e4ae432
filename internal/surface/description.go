package surface

// Version of the controller logic, reported at initialization
const Version = "1.1.0"

// FaderChannels is the number of physical strips on the surface
const FaderChannels = 8

// Description is the static device record a DAW host reads to learn the
// surface layout and capabilities
type Description struct {
	Name                            string
	NeedsMidiChannel                bool // controller -> DAW
	NeedsMidiBackChannel            bool // DAW -> controller
	MidiChannelName                 string
	MidiBackChannelName             string
	NumberOfFaderChannels           int
	WantsClock                      bool
	AllowBankingOffEnd              bool // show blank channels past the last track
	PickUpMode                      bool // non-motorized faders
	Notes                           string
	NeedsOSCSocket                  bool
	NumCharactersForTrackNames      int
	NumCharactersForAuxLabels       int
	NumParameterControls            int
	NumCharactersForParameterLabels int
	NumMarkers                      int
	NumCharactersForMarkerLabels    int
	WantsAuxBanks                   bool
	NumAuxes                        int
	FollowsTrackSelection           bool
}

// NanoKontrol2 describes a KORG nanoKONTROL2 in DAW mode
var NanoKontrol2 = Description{
	Name:                  "KORG nanoKONTROL 2",
	NeedsMidiChannel:      true,
	NeedsMidiBackChannel:  true,
	MidiChannelName:       "nanoKONTROL2 SLIDER/KNOB",
	MidiBackChannelName:   "nanoKONTROL2 CTRL",
	NumberOfFaderChannels: FaderChannels,
	AllowBankingOffEnd:    true,
	PickUpMode:            true,
	Notes:                 "Set 'LED Mode' = 'External' using Korg Kontrol Editor to enable light up buttons",
}
