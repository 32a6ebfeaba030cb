package midi

import "strings"

// DeviceType represents the type of device
type DeviceType string

const (
	DeviceTypeK2      DeviceType = "k2"      // Xone:K2 - tri-colour button LEDs
	DeviceTypeGeneric DeviceType = "generic" // Generic MIDI, single-colour LEDs
)

// LEDColor is one of the colours a K2 button LED can show
type LEDColor uint8

const (
	LEDRed LEDColor = iota
	LEDAmber
	LEDGreen
)

func (c LEDColor) String() string {
	switch c {
	case LEDAmber:
		return "amber"
	case LEDGreen:
		return "green"
	default:
		return "red"
	}
}

// ParseLEDColor reads a colour name, defaulting to red
func ParseLEDColor(s string) LEDColor {
	switch strings.ToLower(s) {
	case "amber", "orange", "yellow":
		return LEDAmber
	case "green":
		return LEDGreen
	default:
		return LEDRed
	}
}
