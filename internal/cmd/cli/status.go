package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/clambin/ecobee-controller/internal/controller"
	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/go-common/charmer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	statusCmd = cobra.Command{
		Use:   "status",
		Short: "Show the status of all registered thermostats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(viper.GetViper(), slog.Default())
			if err != nil {
				return err
			}
			c := newEcobeeClient(viper.GetViper(), store, nil, slog.Default())
			if err = maybeRefresh(cmd.Context(), c, viper.GetBool("status.refresh")); err != nil {
				return err
			}
			thermostats, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}
			return writeStatus(cmd.OutOrStdout(), viper.GetString("status.output"), thermostats)
		},
	}
	statusArgs = charmer.Arguments{
		"status.refresh": {Default: false, Help: "Refresh the API tokens first"},
		"status.output":  {Default: "text", Help: "Output format (text, yaml or json)"},
	}

	setCmd = cobra.Command{
		Use:       "set heat|cool|off",
		Short:     "Set the hvac mode of all registered thermostats",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{ecobee.ModeHeat.String(), ecobee.ModeCool.String(), ecobee.ModeOff.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ecobee.ParseMode(args[0])
			if err != nil {
				return err
			}
			store, err := newStore(viper.GetViper(), slog.Default())
			if err != nil {
				return err
			}
			c := newEcobeeClient(viper.GetViper(), store, nil, slog.Default())
			if err = maybeRefresh(cmd.Context(), c, viper.GetBool("set.refresh")); err != nil {
				return err
			}
			return setMode(cmd.Context(), c, store, mode, cmd.OutOrStdout(), slog.Default())
		},
	}
	setArgs = charmer.Arguments{
		"set.refresh": {Default: false, Help: "Refresh the API tokens first"},
	}

	temperatureCmd = cobra.Command{
		Use:   "temperature",
		Short: "Show the current outdoor temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(viper.GetViper(), slog.Default())
			if err != nil {
				return err
			}
			w, err := store.Settings()
			if err != nil {
				return err
			}
			source, err := newWeatherClient(viper.GetViper(), w, nil)
			if err != nil {
				return err
			}
			return showTemperature(cmd.Context(), source, cmd.OutOrStdout(), time.Now())
		},
	}
)

func init() {
	_ = charmer.SetPersistentFlags(&statusCmd, viper.GetViper(), statusArgs)
	_ = charmer.SetPersistentFlags(&setCmd, viper.GetViper(), setArgs)
}

type tokenRefresher interface {
	RefreshTokens(ctx context.Context) error
}

func maybeRefresh(ctx context.Context, r tokenRefresher, refresh bool) error {
	if !refresh {
		return nil
	}
	if err := r.RefreshTokens(ctx); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return nil
}

type statusReport struct {
	Mode        ecobee.Mode        `json:"mode" yaml:"mode"`
	Thermostats ecobee.Thermostats `json:"thermostats" yaml:"thermostats"`
}

// Encoder encodes the status report, e.g. yaml.Encoder or json.Encoder.
type Encoder interface {
	Encode(any) error
}

func writeStatus(w io.Writer, format string, thermostats ecobee.Thermostats) error {
	r := statusReport{Mode: thermostats.Mode(), Thermostats: thermostats}
	var e Encoder
	switch format {
	case "yaml":
		e = yaml.NewEncoder(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		e = enc
	case "", "text":
		return writeStatusText(w, r)
	default:
		return fmt.Errorf("invalid output format %q", format)
	}
	return e.Encode(r)
}

func writeStatusText(w io.Writer, r statusReport) error {
	for _, t := range r.Thermostats {
		_, _ = fmt.Fprintf(w, "%s (%s): mode: %s, temperature: %.1fº, humidity: %.0f%%\n", t.Name, t.ID, t.Mode, t.Temperature, t.Humidity)
	}
	_, err := fmt.Fprintf(w, "hvac mode: %s\n", r.Mode)
	return err
}

func setMode(ctx context.Context, updater controller.ModeUpdater, registry controller.DeviceRegistry, mode ecobee.Mode, w io.Writer, logger *slog.Logger) error {
	result, err := controller.Broadcast(ctx, updater, registry, mode, logger)
	if err != nil {
		return err
	}
	for _, device := range result.Updated {
		_, _ = fmt.Fprintf(w, "%s (%s): %s\n", device.Name, device.Identifier, mode)
	}
	for _, device := range result.Failed {
		_, _ = fmt.Fprintf(w, "%s (%s): failed\n", device.Name, device.Identifier)
	}
	if result.Err != nil {
		return fmt.Errorf("failed to update %d thermostat(s): %w", len(result.Failed), result.Err)
	}
	return nil
}

func showTemperature(ctx context.Context, source controller.TemperatureSource, w io.Writer, now time.Time) error {
	temperature, err := source.Temperature(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Current temperature is %v as of %s\n", temperature, now.Format(time.RFC1123Z))
	return err
}
