package ecobee

import (
	"log/slog"

	"github.com/clambin/go-common/set"
)

// Thermostat holds the status of one registered thermostat.
type Thermostat struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Mode        Mode    `json:"mode" yaml:"mode"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Humidity    float64 `json:"humidity" yaml:"humidity"`
}

// Thermostats is the status of all registered thermostats.
type Thermostats []Thermostat

// Mode returns the aggregate mode of all thermostats. If all thermostats have the same mode, that mode is returned.
// Otherwise, Mode returns ModeInconsistent.
func (t Thermostats) Mode() Mode {
	modes := set.New[Mode]()
	for _, thermostat := range t {
		modes.Add(thermostat.Mode)
	}
	if len(modes) != 1 {
		return ModeInconsistent
	}
	return modes.List()[0]
}

// Meta returns the identifier and name of each thermostat.
func (t Thermostats) Meta() []DeviceMeta {
	meta := make([]DeviceMeta, len(t))
	for i, thermostat := range t {
		meta[i] = DeviceMeta{Identifier: thermostat.ID, Name: thermostat.Name}
	}
	return meta
}

func (t Thermostats) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(t))
	for _, thermostat := range t {
		attrs = append(attrs, slog.Group(thermostat.ID,
			slog.String("name", thermostat.Name),
			slog.String("mode", thermostat.Mode.String()),
			slog.Float64("temperature", thermostat.Temperature),
			slog.Float64("humidity", thermostat.Humidity),
		))
	}
	return slog.GroupValue(attrs...)
}

// DeviceMeta identifies a registered thermostat.
type DeviceMeta struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
}

// Tokens holds the access & refresh tokens for the ecobee API.
//
// Right after authorization, AccessToken holds the authorization code and RefreshToken is blank.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}
