package controller

import (
	"strconv"

	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/ecobee-controller/internal/settings"
)

// Decision is the outcome of evaluating the rules for one temperature reading.
type Decision struct {
	Target ecobee.Mode
	Reason string
}

type rule struct {
	name      string
	threshold func(settings.Weather) *float64
	above     bool
	target    ecobee.Mode
}

func (r rule) matches(w settings.Weather, temperature float64, current ecobee.Mode) (float64, bool) {
	limit := r.threshold(w)
	if limit == nil || current == r.target {
		return 0, false
	}
	if r.above {
		return *limit, temperature > *limit
	}
	return *limit, temperature < *limit
}

// rules are evaluated in order. Cooling & heating take priority over switching off in the same direction.
var rules = []rule{
	{name: "cool above", threshold: func(w settings.Weather) *float64 { return w.CoolAbove }, above: true, target: ecobee.ModeCool},
	{name: "off above", threshold: func(w settings.Weather) *float64 { return w.OffAbove }, above: true, target: ecobee.ModeOff},
	{name: "heat below", threshold: func(w settings.Weather) *float64 { return w.HeatBelow }, above: false, target: ecobee.ModeHeat},
	{name: "off below", threshold: func(w settings.Weather) *float64 { return w.OffBelow }, above: false, target: ecobee.ModeOff},
}

// Decide returns the mode the thermostats should switch to for the temperature. It returns false if the current
// mode should be kept. At most one rule applies: the first one that matches.
func Decide(w settings.Weather, temperature float64, current ecobee.Mode) (Decision, bool) {
	for _, r := range rules {
		if limit, ok := r.matches(w, temperature, current); ok {
			op := " < "
			if r.above {
				op = " > "
			}
			return Decision{
				Target: r.target,
				Reason: r.name + ": " + formatFloat(temperature) + op + formatFloat(limit),
			}, true
		}
	}
	return Decision{}, false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
