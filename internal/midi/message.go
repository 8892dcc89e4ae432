package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// Element identifies the class of a surface control, carried in the high
// nibble of the status byte
type Element uint8

const (
	Button Element = 0x90 // Note messages: every push button
	Knob   Element = 0xB0 // Control change: relative pan knobs
	Slider Element = 0xE0 // Pitch bend: channel faders
)

func (e Element) String() string {
	switch e {
	case Button:
		return "button"
	case Knob:
		return "knob"
	case Slider:
		return "slider"
	default:
		return fmt.Sprintf("element(0x%02x)", uint8(e))
	}
}

const (
	// On is the value sent for a pressed button and for a lit LED
	On uint8 = 0x7F
	// Off is the value sent for a released button and for a dark LED
	Off uint8 = 0x00
)

// Message is a single 3-byte surface message: status, data1, data2
type Message [3]byte

// Parse converts a raw MIDI message into a surface message.
// Returns ok=false for anything that is not exactly three bytes long.
func Parse(msg midi.Message) (Message, bool) {
	if len(msg) != 3 {
		return Message{}, false
	}
	return Message{msg[0], msg[1], msg[2]}, true
}

// Element returns the element class of the message
func (m Message) Element() Element {
	return Element(m[0] & 0xF0)
}

// Channel returns the low nibble of the status byte
func (m Message) Channel() uint8 {
	return m[0] & 0x0F
}

// Data1 returns the note or controller number
func (m Message) Data1() uint8 {
	return m[1]
}

// Value returns the data2 byte
func (m Message) Value() uint8 {
	return m[2]
}

// Pressed reports whether the value is the full-on button value
func (m Message) Pressed() bool {
	return m[2] == On
}

func (m Message) String() string {
	return fmt.Sprintf("[0x%02x, 0x%02x, 0x%02x]", m[0], m[1], m[2])
}

// LED builds the button-class message that lights (or darkens) the LED
// behind the button at address
func LED(address uint8, on bool) midi.Message {
	value := Off
	if on {
		value = On
	}
	return midi.NoteOn(0, address, value)
}
