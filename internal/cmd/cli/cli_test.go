package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/ecobee-controller/internal/settings"
	"github.com/clambin/ecobee-controller/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		flag  string
		level slog.Level
	}{
		{name: "default", level: slog.LevelError},
		{name: "verbose", flag: "verbose", level: slog.LevelInfo},
		{name: "debug", flag: "debug", level: slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			if tt.flag != "" {
				v.Set(tt.flag, true)
			}
			l := newLogger(v, io.Discard)
			assert.True(t, l.Enabled(context.Background(), tt.level))
			assert.False(t, l.Enabled(context.Background(), tt.level-1))
		})
	}
}

var testThermostats = ecobee.Thermostats{
	{ID: "1", Name: "upstairs", Mode: ecobee.ModeHeat, Temperature: 21.5, Humidity: 40},
	{ID: "2", Name: "downstairs", Mode: ecobee.ModeHeat, Temperature: 20, Humidity: 45},
}

func TestWriteStatus(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr assert.ErrorAssertionFunc
		want    string
	}{
		{
			name:    "text",
			format:  "text",
			wantErr: assert.NoError,
			want: `upstairs (1): mode: heat, temperature: 21.5º, humidity: 40%
downstairs (2): mode: heat, temperature: 20.0º, humidity: 45%
hvac mode: heat
`,
		},
		{
			name:    "json",
			format:  "json",
			wantErr: assert.NoError,
			want: `{
  "mode": "heat",
  "thermostats": [
    {
      "id": "1",
      "name": "upstairs",
      "mode": "heat",
      "temperature": 21.5,
      "humidity": 40
    },
    {
      "id": "2",
      "name": "downstairs",
      "mode": "heat",
      "temperature": 20,
      "humidity": 45
    }
  ]
}
`,
		},
		{
			name:    "invalid",
			format:  "xml",
			wantErr: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			tt.wantErr(t, writeStatus(&out, tt.format, testThermostats))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestWriteStatus_YAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeStatus(&out, "yaml", testThermostats))

	var r statusReport
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &r))
	assert.Equal(t, statusReport{Mode: ecobee.ModeHeat, Thermostats: testThermostats}, r)
}

type fakeUpdater struct {
	failing string
	updated []string
}

func (f *fakeUpdater) UpdateMode(_ context.Context, id string, _ ecobee.Mode) error {
	if id == f.failing {
		return errors.New("fail")
	}
	f.updated = append(f.updated, id)
	return nil
}

type fakeRegistry struct {
	devices []ecobee.DeviceMeta
	err     error
}

func (f fakeRegistry) Devices() ([]ecobee.DeviceMeta, error) {
	return f.devices, f.err
}

func TestSetMode(t *testing.T) {
	devices := []ecobee.DeviceMeta{{Identifier: "1", Name: "upstairs"}, {Identifier: "2", Name: "downstairs"}}
	tests := []struct {
		name     string
		failing  string
		registry fakeRegistry
		wantErr  assert.ErrorAssertionFunc
		want     string
	}{
		{
			name:     "success",
			registry: fakeRegistry{devices: devices},
			wantErr:  assert.NoError,
			want:     "upstairs (1): cool\ndownstairs (2): cool\n",
		},
		{
			name:     "partial failure",
			failing:  "2",
			registry: fakeRegistry{devices: devices},
			wantErr:  assert.Error,
			want:     "upstairs (1): cool\ndownstairs (2): failed\n",
		},
		{
			name:     "no devices",
			registry: fakeRegistry{err: ecobee.ErrNoDevices},
			wantErr:  assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := setMode(t.Context(), &fakeUpdater{failing: tt.failing}, tt.registry, ecobee.ModeCool, &out, slog.New(slog.DiscardHandler))
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

type fakeSource struct {
	temperature float64
	err         error
}

func (f fakeSource) Temperature(_ context.Context) (float64, error) {
	return f.temperature, f.err
}

func TestShowTemperature(t *testing.T) {
	now := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	var out bytes.Buffer
	require.NoError(t, showTemperature(t.Context(), fakeSource{temperature: 72.5}, &out, now))
	assert.Equal(t, "Current temperature is 72.5 as of Mon, 01 Jan 2024 08:00:00 +0000\n", out.String())

	out.Reset()
	assert.Error(t, showTemperature(t.Context(), fakeSource{err: errors.New("fail")}, &out, now))
	assert.Empty(t, out.String())
}

func TestMaybeRefresh(t *testing.T) {
	r := fakeRefresher{err: errors.New("fail")}
	assert.NoError(t, maybeRefresh(t.Context(), &r, false))
	assert.Zero(t, r.calls)
	assert.Error(t, maybeRefresh(t.Context(), &r, true))
	assert.Equal(t, 1, r.calls)
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RefreshTokens(_ context.Context) error {
	f.calls++
	return f.err
}

func TestRunSetup(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   assert.ErrorAssertionFunc
		wantSaved bool
	}{
		{
			name:      "valid",
			input:     "key\nBoston\nfalse\n80\n65\n\n\n15\n",
			wantErr:   assert.NoError,
			wantSaved: true,
		},
		{
			name:    "invalid",
			input:   "key\nBoston\nfalse\n60\n65\n\n\n15\n",
			wantErr: assert.Error,
		},
		{
			name:    "aborted",
			input:   "key\nBoston\n",
			wantErr: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.New(t.TempDir(), slog.New(slog.DiscardHandler))
			var out bytes.Buffer
			tt.wantErr(t, runSetup(store, strings.NewReader(tt.input), &out))

			saved, err := store.Settings()
			require.NoError(t, err)
			if !tt.wantSaved {
				assert.Equal(t, settings.Weather{}, saved)
				return
			}
			assert.Contains(t, out.String(), "Settings saved.")
			require.NotNil(t, saved.CoolAbove)
			assert.Equal(t, 80.0, *saved.CoolAbove)
			assert.Equal(t, 15*time.Minute, saved.PollInterval())
		})
	}
}

func TestRunSetup_Violations(t *testing.T) {
	store := storage.New(t.TempDir(), slog.New(slog.DiscardHandler))
	var out bytes.Buffer
	err := runSetup(store, strings.NewReader("key\nBoston\nfalse\n60\n65\n\n\n15\n"), &out)
	assert.ErrorIs(t, err, &settings.ValidationError{})
	assert.Contains(t, out.String(), "Settings are invalid. Nothing was saved:\n  - cool above (60) must be greater than heat below (65)\n")
}

func TestReadKey(t *testing.T) {
	var out bytes.Buffer
	key, err := readKey(strings.NewReader("  my-key \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "my-key", key)
	assert.Equal(t, "Enter your ecobee application key: ", out.String())

	_, err = readKey(strings.NewReader("\n"), io.Discard)
	assert.Error(t, err)
	_, err = readKey(strings.NewReader(""), io.Discard)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type fakeAuthorizer struct {
	tokensErr error
}

func (f fakeAuthorizer) Authorize(_ context.Context) (ecobee.Authorization, error) {
	return ecobee.Authorization{PIN: "ABCD", ExpiresIn: 9}, nil
}

func (f fakeAuthorizer) RequestTokens(_ context.Context) error {
	return f.tokensErr
}

func (f fakeAuthorizer) Status(_ context.Context) (ecobee.Thermostats, error) {
	return testThermostats, nil
}

func TestRequestPIN(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, requestPIN(t.Context(), fakeAuthorizer{}, &out))
	assert.Contains(t, out.String(), "PIN: ABCD\n")
	assert.Contains(t, out.String(), "The PIN expires in 9 minutes.")
}

func TestAuthorize(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, authorize(t.Context(), fakeAuthorizer{}, &out))
	assert.Contains(t, out.String(), "authorized. 2 thermostat(s) registered\n")
	assert.Contains(t, out.String(), "hvac mode: heat\n")

	out.Reset()
	assert.Error(t, authorize(t.Context(), fakeAuthorizer{tokensErr: errors.New("fail")}, &out))
	assert.Empty(t, out.String())
}

func TestRunWeather_InvalidSettings(t *testing.T) {
	v := viper.New()
	v.Set("storage.dir", t.TempDir())
	err := runWeather(t.Context(), v, io.Discard, prometheus.NewPedanticRegistry(), slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, &settings.ValidationError{})
}
