// Package controller implements weather mode: it periodically reads the outdoor temperature and switches all
// registered thermostats to heat, cool or off when the temperature crosses one of the configured thresholds.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/clambin/ecobee-controller/internal/controller/notifier"
	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/ecobee-controller/internal/settings"
	"github.com/clambin/ecobee-controller/pkg/pubsub"
)

var ErrIntervalNotSet = errors.New("interval not set. run setup before starting weather mode")

// A ThermostatClient controls the thermostats.
type ThermostatClient interface {
	ModeUpdater
	RefreshTokens(ctx context.Context) error
	Status(ctx context.Context) (ecobee.Thermostats, error)
}

// A TemperatureSource returns the current outdoor temperature.
type TemperatureSource interface {
	Temperature(ctx context.Context) (float64, error)
}

// Update is published after every check of the outdoor temperature.
type Update struct {
	Mode        ecobee.Mode `json:"mode"`
	Temperature float64     `json:"temperature"`
	Time        time.Time   `json:"time"`
	Err         string      `json:"error,omitempty"`
}

// Controller runs weather mode.
//
// The controller assumes it is the only one changing the mode of the thermostats: the mode of the thermostats is only
// read at startup. After that, the controller tracks the mode it last set.
type Controller struct {
	*pubsub.Publisher[Update]
	thermostats ThermostatClient
	registry    DeviceRegistry
	weather     TemperatureSource
	settings    settings.Weather
	notifier    notifier.Notifier
	metrics     *Metrics
	logger      *slog.Logger
	lock        sync.RWMutex
	mode        ecobee.Mode
}

// New returns a Controller for the settings. The settings are expected to be valid. n and metrics are optional.
func New(
	thermostats ThermostatClient,
	registry DeviceRegistry,
	weather TemperatureSource,
	cfg settings.Weather,
	n notifier.Notifier,
	metrics *Metrics,
	logger *slog.Logger,
) (*Controller, error) {
	if cfg.PollInterval() <= 0 {
		return nil, ErrIntervalNotSet
	}
	if n == nil {
		n = notifier.Notifiers{}
	}
	return &Controller{
		Publisher:   pubsub.New[Update](logger.With("component", "publisher")),
		thermostats: thermostats,
		registry:    registry,
		weather:     weather,
		settings:    cfg,
		notifier:    n,
		metrics:     metrics,
		logger:      logger,
		mode:        ecobee.ModeInconsistent,
	}, nil
}

// Mode returns the mode the controller believes the thermostats are in.
func (c *Controller) Mode() ecobee.Mode {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.mode
}

func (c *Controller) setMode(mode ecobee.Mode) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.mode = mode
}

// Run checks the temperature immediately, and then every interval, until the context is canceled. Run only returns
// an error if the registered thermostats can't be read. An empty registry skips the mode change.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Debug("started")
	defer c.logger.Debug("stopped")

	interval := c.settings.PollInterval()
	mode := c.initialize(ctx)
	c.setMode(mode)
	c.metrics.setMode(mode)
	c.notifier.Notify(notifier.Event{Kind: notifier.Started, Mode: mode, Interval: interval, Time: time.Now()})

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			if err := c.tick(ctx); err != nil {
				return err
			}
			timer.Reset(interval)
		}
	}
}

func (c *Controller) initialize(ctx context.Context) ecobee.Mode {
	if err := c.thermostats.RefreshTokens(ctx); err != nil {
		c.logger.Warn("failed to refresh tokens", "err", err)
	}
	thermostats, err := c.thermostats.Status(ctx)
	if err != nil {
		c.logger.Error("failed to get thermostat status. assuming inconsistent mode", "err", err)
		return ecobee.ModeInconsistent
	}
	mode := thermostats.Mode()
	c.logger.Info("thermostats found", "mode", mode, "thermostats", thermostats)
	return mode
}

func (c *Controller) tick(ctx context.Context) error {
	// ecobee access tokens expire after an hour
	if err := c.thermostats.RefreshTokens(ctx); err != nil {
		c.logger.Warn("failed to refresh tokens", "err", err)
	}

	current := c.Mode()
	temperature, err := c.weather.Temperature(ctx)
	if err != nil {
		c.logger.Error("failed to get temperature", "err", err)
		c.metrics.temperatureFailed()
		c.Publish(Update{Mode: current, Time: time.Now(), Err: err.Error()})
		return nil
	}
	c.metrics.setTemperature(temperature)
	c.logger.Info("checking temperature", "temperature", temperature, "mode", current)

	if decision, ok := Decide(c.settings, temperature, current); ok {
		switch err = c.apply(ctx, decision, current, temperature); {
		case errors.Is(err, ecobee.ErrNoDevices):
			// ecobee may report no thermostats. try again on the next tick
			c.logger.Error("no registered thermostats. hvac mode not changed", "target", decision.Target)
			c.Publish(Update{Mode: current, Temperature: temperature, Time: time.Now(), Err: err.Error()})
			return nil
		case err != nil:
			return err
		}
	}
	c.Publish(Update{Mode: c.Mode(), Temperature: temperature, Time: time.Now()})
	return nil
}

func (c *Controller) apply(ctx context.Context, decision Decision, current ecobee.Mode, temperature float64) error {
	c.logger.Info("changing hvac mode", "temperature", temperature, "mode", current, "target", decision.Target, "reason", decision.Reason)
	if err := c.thermostats.RefreshTokens(ctx); err != nil {
		c.logger.Warn("failed to refresh tokens", "err", err)
	}
	result, err := Broadcast(ctx, c.thermostats, c.registry, decision.Target, c.logger)
	if err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}
	for range result.Failed {
		c.metrics.deviceFailed()
	}

	c.setMode(decision.Target)
	c.metrics.setMode(decision.Target)
	c.metrics.modeChanged(decision.Target)
	c.notifier.Notify(notifier.Event{
		Kind:        notifier.Changed,
		Mode:        decision.Target,
		Previous:    current,
		Temperature: temperature,
		Reason:      decision.Reason,
		Time:        time.Now(),
	})
	return nil
}
