package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/clambin/ecobee-controller/internal/controller"
	"github.com/clambin/ecobee-controller/internal/controller/bot"
	"github.com/clambin/ecobee-controller/internal/controller/notifier"
	"github.com/clambin/ecobee-controller/internal/health"
	"github.com/clambin/ecobee-controller/internal/settings"
	"github.com/clambin/go-common/charmer"
	"github.com/clambin/go-common/slackbot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	weatherCmd = cobra.Command{
		Use:   "weather",
		Short: "Run weather mode",
		Long:  "Run weather mode: check the outdoor temperature at a regular interval and set all registered thermostats to heat, cool or off.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWeather(cmd.Context(), viper.GetViper(), cmd.OutOrStdout(), prometheus.DefaultRegisterer, slog.Default())
		},
	}
	weatherArgs = charmer.Arguments{
		"exporter.addr": {Default: "", Help: "Prometheus metrics listener address (blank: disabled)"},
		"health.addr":   {Default: "", Help: "Health endpoint listener address (blank: disabled)"},
		"slack.token":   {Default: "", Help: "Slack bot token (blank: disabled)"},
		"slack.channel": {Default: "", Help: "Slack channel to post mode changes to (blank: all channels the bot is in)"},
	}
)

func init() {
	_ = charmer.SetPersistentFlags(&weatherCmd, viper.GetViper(), weatherArgs)
}

const shutdownTimeout = 5 * time.Second

func runWeather(ctx context.Context, v *viper.Viper, out io.Writer, registry prometheus.Registerer, logger *slog.Logger) error {
	store, err := newStore(v, logger)
	if err != nil {
		return err
	}
	cfg, err := store.Settings()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err = settings.Validate(cfg); err != nil {
		return fmt.Errorf("%w. run setup first", err)
	}
	logger.Info("weather mode starting", "settings", cfg)

	thermostats := newEcobeeClient(v, store, registry, logger)
	source, err := newWeatherClient(v, cfg, registry)
	if err != nil {
		return err
	}

	notifiers := notifier.Notifiers{
		notifier.SLogNotifier{Logger: logger.With("component", "notifier")},
		notifier.WriterNotifier{W: out},
	}
	var slackBot *slackbot.SlackBot
	if token := v.GetString("slack.token"); token != "" {
		slackBot = slackbot.New(
			token,
			slackbot.WithName("ecobee "+RootCmd.Version),
			slackbot.WithLogger(logger.With("component", "slackbot")),
		)
		notifiers = append(notifiers, &notifier.SlackNotifier{
			Slack:   slackBot,
			Channel: v.GetString("slack.channel"),
			Logger:  logger.With("component", "notifier"),
		})
	}

	m := controller.NewMetrics("ecobee", "weather", nil)
	if registry != nil {
		registry.MustRegister(m)
	}
	c, err := controller.New(thermostats, store, source, cfg, notifiers, m, logger.With("component", "controller"))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Run(ctx) })
	if addr := v.GetString("exporter.addr"); addr != "" {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		g.Go(func() error { return serve(ctx, addr, r) })
	}
	if addr := v.GetString("health.addr"); addr != "" {
		h := health.New(c, cfg.PollInterval(), logger.With("component", "health"))
		g.Go(func() error { return h.Run(ctx) })
		r := http.NewServeMux()
		r.Handle("/health", h)
		g.Go(func() error { return serve(ctx, addr, r) })
	}
	if slackBot != nil {
		b := bot.New(slackBot, c, thermostats, logger.With("component", "bot"))
		g.Go(func() error { return slackBot.Run(ctx) })
		g.Go(func() error { return b.Run(ctx) })
	}
	return g.Wait()
}

// serve runs an HTTP server until the context is canceled.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	s := http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
