package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/clambin/ecobee-controller/internal/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var setupCmd = cobra.Command{
	Use:   "setup",
	Short: "Configure weather mode",
	Long:  "Configure weather mode: the weatherapi.com key & location, the temperature thresholds and the polling interval.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := newStore(viper.GetViper(), slog.Default())
		if err != nil {
			return err
		}
		return runSetup(store, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

type settingsStore interface {
	Settings() (settings.Weather, error)
	SetSettings(settings.Weather) error
}

// runSetup prompts for new settings and saves them. Invalid settings are not saved.
func runSetup(store settingsStore, r io.Reader, w io.Writer) error {
	current, err := store.Settings()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	next, err := settings.Setup(r, w, current)
	if err != nil {
		return err
	}
	if err = settings.Validate(next); err != nil {
		var validationErr *settings.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintln(w, "Settings are invalid. Nothing was saved:")
			for _, violation := range validationErr.Violations {
				_, _ = fmt.Fprintln(w, "  - "+violation)
			}
		}
		return err
	}
	if err = store.SetSettings(next); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "Settings saved.")
	return nil
}
