package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clambin/ecobee-controller/internal/ecobee"
)

// A ModeUpdater sets the mode of one thermostat.
type ModeUpdater interface {
	UpdateMode(ctx context.Context, id string, mode ecobee.Mode) error
}

// A DeviceRegistry returns the registered thermostats.
type DeviceRegistry interface {
	Devices() ([]ecobee.DeviceMeta, error)
}

// Result reports the outcome of a Broadcast.
type Result struct {
	Updated []ecobee.DeviceMeta
	Failed  []ecobee.DeviceMeta
	Err     error
}

// Broadcast sets the mode of every registered thermostat, one thermostat at a time. A thermostat that fails to
// update does not stop the others from being updated: the failures are reported in the Result.
//
// Broadcast only returns an error if the registered thermostats can't be read.
func Broadcast(ctx context.Context, updater ModeUpdater, registry DeviceRegistry, mode ecobee.Mode, logger *slog.Logger) (Result, error) {
	var result Result
	devices, err := registry.Devices()
	if err != nil {
		return result, fmt.Errorf("registered thermostats: %w", err)
	}
	if len(devices) == 0 {
		return result, ecobee.ErrNoDevices
	}
	var errs []error
	for _, device := range devices {
		if err = updater.UpdateMode(ctx, device.Identifier, mode); err != nil {
			logger.Error("failed to update thermostat", "id", device.Identifier, "name", device.Name, "err", err)
			result.Failed = append(result.Failed, device)
			errs = append(errs, err)
			continue
		}
		logger.Debug("thermostat updated", "id", device.Identifier, "name", device.Name, "mode", mode)
		result.Updated = append(result.Updated, device)
	}
	result.Err = errors.Join(errs...)
	return result, nil
}
