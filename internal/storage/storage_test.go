package storage_test

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/ecobee-controller/internal/settings"
	"github.com/clambin/ecobee-controller/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	s := storage.New(filepath.Join(t.TempDir(), "ecobee"), slog.New(slog.DiscardHandler))
	require.NoError(t, s.Init())
	return s
}

func TestStore_APIKey(t *testing.T) {
	s := newStore(t)

	_, err := s.APIKey()
	assert.ErrorIs(t, err, storage.ErrNoAPIKey)

	require.NoError(t, s.SetAPIKey("  my-key\n"))
	key, err := s.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "my-key", key)

	info, err := os.Stat(filepath.Join(s.Dir(), "api_key"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())
}

func TestStore_Tokens(t *testing.T) {
	s := newStore(t)

	_, err := s.Tokens()
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, s.SetTokens(ecobee.Tokens{AccessToken: "code"}))
	tokens, err := s.Tokens()
	require.NoError(t, err)
	assert.Equal(t, ecobee.Tokens{AccessToken: "code"}, tokens)

	require.NoError(t, s.SetTokens(ecobee.Tokens{AccessToken: "access", RefreshToken: "refresh"}))
	content, err := os.ReadFile(filepath.Join(s.Dir(), "api_tokens"))
	require.NoError(t, err)
	assert.Equal(t, "access\nrefresh", string(content))

	tokens, err = s.Tokens()
	require.NoError(t, err)
	assert.Equal(t, ecobee.Tokens{AccessToken: "access", RefreshToken: "refresh"}, tokens)
}

func TestStore_Devices(t *testing.T) {
	s := newStore(t)

	_, err := s.Devices()
	assert.ErrorIs(t, err, ecobee.ErrNoDevices)

	devices := []ecobee.DeviceMeta{
		{Identifier: "1", Name: "Downstairs"},
		{Identifier: "2", Name: "Upstairs"},
	}
	require.NoError(t, s.SetDevices(devices))
	got, err := s.Devices()
	require.NoError(t, err)
	assert.Equal(t, devices, got)

	content, err := os.ReadFile(filepath.Join(s.Dir(), "thermostats.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `identifier: "1"`)

	// an empty registry overwrites the previous one
	require.NoError(t, s.SetDevices(nil))
	got, err = s.Devices()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Devices_Corrupt(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "thermostats.yaml"), []byte("{{"), 0o600))
	_, err := s.Devices()
	assert.Error(t, err)
}

func TestStore_Settings(t *testing.T) {
	s := newStore(t)

	w, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, settings.Weather{}, w)

	key, query, metric, coolAbove, heatBelow, interval := "key", "Boston", true, 27.0, 18.5, 10
	w = settings.Weather{
		APIKey:    &key,
		Query:     &query,
		Metric:    &metric,
		CoolAbove: &coolAbove,
		HeatBelow: &heatBelow,
		Interval:  &interval,
	}
	require.NoError(t, s.SetSettings(w))

	got, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestStore_Write_MissingDirectory(t *testing.T) {
	s := storage.New(filepath.Join(t.TempDir(), "missing"), slog.New(slog.DiscardHandler))
	assert.Error(t, s.SetAPIKey("key"))
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	dir, err := storage.DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.bulk_ecobee_thermostat_control", dir)
}
