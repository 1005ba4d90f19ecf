package cli

import (
	"errors"
	"log/slog"
	"time"

	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/ecobee-controller/internal/httpclient"
	"github.com/clambin/ecobee-controller/internal/settings"
	"github.com/clambin/ecobee-controller/internal/storage"
	"github.com/clambin/ecobee-controller/internal/weather"
	"github.com/clambin/go-common/http/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

const httpTimeout = 30 * time.Second

var errWeatherSettings = errors.New("weather api key and query must be set. run setup first")

func newStore(v *viper.Viper, logger *slog.Logger) (*storage.Store, error) {
	dir, err := storageDir(v)
	if err != nil {
		return nil, err
	}
	s := storage.New(dir, logger.With("component", "storage"))
	return s, s.Init()
}

// newEcobeeClient returns an ecobee client that stores its credentials & thermostats in store. If r is not nil,
// the client's requests are measured and the metrics are registered with r.
func newEcobeeClient(v *viper.Viper, store *storage.Store, r prometheus.Registerer, logger *slog.Logger) *ecobee.Client {
	var m metrics.RequestMetrics
	if r != nil {
		m = httpclient.NewRequestMetrics("ecobee", "thermostat_api", nil)
		r.MustRegister(m)
	}
	httpClient := httpclient.New(m, httpclient.NewLimiter(v.GetDuration("ecobee.rate")), httpTimeout)
	return ecobee.New(v.GetString("ecobee.url"), httpClient, store, store, logger.With("component", "ecobee"))
}

func newWeatherClient(v *viper.Viper, w settings.Weather, r prometheus.Registerer) (*weather.Client, error) {
	if w.APIKey == nil || w.Query == nil {
		return nil, errWeatherSettings
	}
	var m metrics.RequestMetrics
	if r != nil {
		m = httpclient.NewRequestMetrics("ecobee", "weather_api", nil)
		r.MustRegister(m)
	}
	httpClient := httpclient.New(m, nil, httpTimeout)
	return weather.New(v.GetString("weather.url"), httpClient, *w.APIKey, *w.Query, w.IsMetric()), nil
}
