package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/ecobee-controller/internal/storage"
	"github.com/clambin/ecobee-controller/internal/weather"
	"github.com/clambin/go-common/charmer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFilename string
	RootCmd        = cobra.Command{
		Use:   "ecobee",
		Short: "Controls all registered ecobee thermostats at once",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(newLogger(viper.GetViper(), cmd.ErrOrStderr()))
		},
		SilenceUsage: true,
	}
)

var args = charmer.Arguments{
	"debug":       {Default: false, Help: "Log debug messages"},
	"verbose":     {Default: false, Help: "Log informational messages"},
	"storage.dir": {Default: "", Help: "Storage directory (default: $HOME/.bulk_ecobee_thermostat_control)"},
	"ecobee.url":  {Default: ecobee.DefaultURL, Help: "ecobee API URL"},
	"ecobee.rate": {Default: time.Second, Help: "Minimum time between two ecobee API calls"},
	"weather.url": {Default: weather.DefaultURL, Help: "weatherapi.com API URL"},
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&configFilename, "config", "", "Configuration file")
	_ = charmer.SetPersistentFlags(&RootCmd, viper.GetViper(), args)

	RootCmd.AddCommand(
		&keyCmd,
		&pinCmd,
		&authCmd,
		&refreshCmd,
		&statusCmd,
		&setCmd,
		&temperatureCmd,
		&setupCmd,
		&weatherCmd,
	)
}

func initConfig() {
	if err := readConfig(viper.GetViper(), configFilename); err != nil {
		slog.Error("failed to read config file", "err", err)
		os.Exit(1)
	}
}

// readConfig reads the configuration file. If filename is blank, readConfig looks for an optional config.yaml in
// the storage directory and the current directory. The environment overrides the file, with the prefix ECOBEE_.
func readConfig(v *viper.Viper, filename string) error {
	// the environment may set the storage directory, so set it up first
	v.SetEnvPrefix("ECOBEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		v.SetConfigFile(filename)
	} else {
		if dir, err := storageDir(v); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if filename == "" && errors.As(err, &notFound) {
		return nil
	}
	return err
}

// newLogger only logs errors, unless verbose or debug logging was requested.
func newLogger(v *viper.Viper, w io.Writer) *slog.Logger {
	level := slog.LevelError
	switch {
	case v.GetBool("debug"):
		level = slog.LevelDebug
	case v.GetBool("verbose"):
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func storageDir(v *viper.Viper) (string, error) {
	if dir := v.GetString("storage.dir"); dir != "" {
		return dir, nil
	}
	return storage.DefaultDir()
}
