package ecobee

import (
	"fmt"
	"strings"
)

// Mode is the HVAC mode of a thermostat, as reported by the ecobee API.
type Mode string

const (
	ModeHeat Mode = "heat"
	ModeCool Mode = "cool"
	ModeOff  Mode = "off"
	// ModeInconsistent is never reported by a thermostat. It is the aggregate mode of a set of thermostats
	// that don't agree on their mode.
	ModeInconsistent Mode = "inconsistent"
)

// ParseMode returns the Mode for a string. Only modes that can be set on a thermostat are accepted.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(s))
	if !m.Settable() {
		return "", fmt.Errorf("invalid mode %q: must be heat, cool or off", s)
	}
	return m, nil
}

// Settable returns true if the Mode can be sent to a thermostat.
func (m Mode) Settable() bool {
	return m == ModeHeat || m == ModeCool || m == ModeOff
}

func (m Mode) String() string {
	return string(m)
}
