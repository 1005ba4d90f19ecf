// Package settings holds the operator's weather mode settings: the weatherapi.com credentials, the temperature
// thresholds and the polling interval.
package settings

import (
	"log/slog"
	"strconv"
	"time"
)

// Weather holds the settings for weather mode. A nil field is not set.
type Weather struct {
	APIKey    *string  `yaml:"api_key"`
	Query     *string  `yaml:"query"`
	Metric    *bool    `yaml:"metric"`
	HeatBelow *float64 `yaml:"heat_below"`
	CoolAbove *float64 `yaml:"cool_above"`
	OffAbove  *float64 `yaml:"off_above"`
	OffBelow  *float64 `yaml:"off_below"`
	// Interval in minutes
	Interval *int `yaml:"interval"`
}

// IsMetric returns true if temperatures are in degrees Celsius.
func (w Weather) IsMetric() bool {
	return w.Metric != nil && *w.Metric
}

// PollInterval returns the interval as a time.Duration. It returns 0 if the interval is not set.
func (w Weather) PollInterval() time.Duration {
	if w.Interval == nil {
		return 0
	}
	return time.Duration(*w.Interval) * time.Minute
}

func (w Weather) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("query", stringValue(w.Query)),
		slog.String("metric", boolValue(w.Metric)),
		slog.String("cool_above", floatValue(w.CoolAbove)),
		slog.String("off_above", floatValue(w.OffAbove)),
		slog.String("off_below", floatValue(w.OffBelow)),
		slog.String("heat_below", floatValue(w.HeatBelow)),
		slog.String("interval", intValue(w.Interval)),
	)
}

const unset = "unset"

func stringValue(v *string) string {
	if v == nil {
		return unset
	}
	return *v
}

func boolValue(v *bool) string {
	if v == nil {
		return unset
	}
	return strconv.FormatBool(*v)
}

func floatValue(v *float64) string {
	if v == nil {
		return unset
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intValue(v *int) string {
	if v == nil {
		return unset
	}
	return strconv.Itoa(*v)
}
