// Package notifier tells the operator what the weather controller is doing: when it starts and when it changes
// the mode of the thermostats.
package notifier

import (
	"fmt"
	"time"

	"github.com/clambin/ecobee-controller/internal/ecobee"
)

type Kind int

const (
	Started Kind = iota
	Changed
)

// Event describes a change in the controller's state.
type Event struct {
	Kind        Kind
	Mode        ecobee.Mode
	Previous    ecobee.Mode
	Temperature float64
	Interval    time.Duration
	Reason      string
	Time        time.Time
}

// Title returns a one-line description of the event.
func (e Event) Title() string {
	switch e.Kind {
	case Started:
		return fmt.Sprintf("weather mode started. checking every %s. current hvac mode is %s", e.Interval, e.Mode)
	case Changed:
		return fmt.Sprintf("switching hvac mode from %s to %s", e.Previous, e.Mode)
	default:
		return "unknown event"
	}
}

type Notifier interface {
	Notify(Event)
}

type Notifiers []Notifier

func (n Notifiers) Notify(e Event) {
	for _, l := range n {
		l.Notify(e)
	}
}
