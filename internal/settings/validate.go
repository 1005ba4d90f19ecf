package settings

import (
	"errors"
	"fmt"
	"strings"
)

var _ error = &ValidationError{}

// ValidationError lists all reasons why a set of Weather settings is invalid.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid settings: " + strings.Join(e.Violations, ", ")
}

func (e *ValidationError) Is(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// Validate checks the settings for missing values and conflicting thresholds. The thresholds must follow
//
//	cool above > off above > off below > heat below
//
// where each threshold, if set, must be greater than (and not equal to) the next one. This prevents switching
// off cooling at high temperatures, or switching off heating at low temperatures.
//
// Validate reports all violations, not just the first one.
func Validate(w Weather) error {
	var violations []string
	if w.APIKey == nil {
		violations = append(violations, "api key unset")
	}
	if w.Interval == nil {
		violations = append(violations, "interval unset")
	}
	if w.Query == nil {
		violations = append(violations, "query unset")
	}
	if w.CoolAbove == nil {
		violations = append(violations, "cool above unset")
	}
	if w.HeatBelow == nil {
		violations = append(violations, "heat below unset")
	}
	if w.Interval != nil && *w.Interval < 1 {
		violations = append(violations, "interval must be at least one minute")
	}
	if w.CoolAbove != nil && w.HeatBelow != nil {
		violations = append(violations, validateThresholds(*w.CoolAbove, *w.HeatBelow, w.OffAbove, w.OffBelow)...)
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func validateThresholds(coolAbove, heatBelow float64, offAbove, offBelow *float64) []string {
	var violations []string
	if coolAbove <= heatBelow {
		violations = append(violations, fmt.Sprintf("cool above (%v) must be greater than heat below (%v)", coolAbove, heatBelow))
	}
	switch {
	case offAbove != nil && offBelow != nil:
		if !(coolAbove > *offAbove && *offAbove > *offBelow && *offBelow > heatBelow) {
			violations = append(violations, fmt.Sprintf("cool above (%v) > off above (%v) > off below (%v) > heat below (%v) is not true", coolAbove, *offAbove, *offBelow, heatBelow))
		}
	case offAbove != nil:
		if !(coolAbove > *offAbove && *offAbove > heatBelow) {
			violations = append(violations, fmt.Sprintf("cool above (%v) > off above (%v) > heat below (%v) is not true", coolAbove, *offAbove, heatBelow))
		}
	case offBelow != nil:
		if !(coolAbove > *offBelow && *offBelow > heatBelow) {
			violations = append(violations, fmt.Sprintf("cool above (%v) > off below (%v) > heat below (%v) is not true", coolAbove, *offBelow, heatBelow))
		}
	}
	return violations
}
