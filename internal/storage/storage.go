// Package storage keeps the application's state in a local directory: the ecobee application key, the API tokens,
// the registered thermostats and the weather settings.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/clambin/ecobee-controller/internal/ecobee"
	"github.com/clambin/ecobee-controller/internal/settings"
	"gopkg.in/yaml.v3"
)

const (
	directoryName    = ".bulk_ecobee_thermostat_control"
	apiKeyFilename   = "api_key"
	tokensFilename   = "api_tokens"
	devicesFilename  = "thermostats.yaml"
	settingsFilename = "weather.yaml"
)

var ErrNoAPIKey = errors.New("ecobee api key not set")

var (
	_ ecobee.CredentialStore = &Store{}
	_ ecobee.DeviceRegistry  = &Store{}
)

// Store reads and writes the application state in a directory. Files are replaced atomically and are only
// readable by the current user.
type Store struct {
	dir    string
	logger *slog.Logger
}

// DefaultDir returns the default storage directory in the user's home directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, directoryName), nil
}

func New(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Init creates the storage directory, if it doesn't exist yet.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}
	return nil
}

func (s *Store) Dir() string {
	return s.dir
}

// APIKey returns the ecobee application key. If no key was stored, it returns ErrNoAPIKey.
func (s *Store) APIKey() (string, error) {
	content, err := s.read(apiKeyFilename)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoAPIKey
	}
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(string(content))
	if key == "" {
		return "", ErrNoAPIKey
	}
	return key, nil
}

func (s *Store) SetAPIKey(key string) error {
	return s.write(apiKeyFilename, []byte(strings.TrimSpace(key)))
}

// Tokens returns the stored access & refresh tokens. The file holds the access token on the first line and the
// refresh token on the second.
func (s *Store) Tokens() (ecobee.Tokens, error) {
	content, err := s.read(tokensFilename)
	if err != nil {
		return ecobee.Tokens{}, err
	}
	access, refresh, _ := strings.Cut(string(content), "\n")
	return ecobee.Tokens{
		AccessToken:  strings.TrimSpace(access),
		RefreshToken: strings.TrimSpace(refresh),
	}, nil
}

func (s *Store) SetTokens(tokens ecobee.Tokens) error {
	return s.write(tokensFilename, []byte(tokens.AccessToken+"\n"+tokens.RefreshToken))
}

// Devices returns the registered thermostats, as last recorded by SetDevices. If no thermostats were recorded,
// it returns ecobee.ErrNoDevices.
func (s *Store) Devices() ([]ecobee.DeviceMeta, error) {
	content, err := s.read(devicesFilename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ecobee.ErrNoDevices
	}
	if err != nil {
		return nil, err
	}
	var devices []ecobee.DeviceMeta
	if err = yaml.Unmarshal(content, &devices); err != nil {
		return nil, fmt.Errorf("%s: %w", devicesFilename, err)
	}
	return devices, nil
}

// SetDevices replaces the registered thermostats.
func (s *Store) SetDevices(devices []ecobee.DeviceMeta) error {
	if devices == nil {
		devices = []ecobee.DeviceMeta{}
	}
	content, err := encodeYAML(devices)
	if err != nil {
		return fmt.Errorf("encode devices: %w", err)
	}
	s.logger.Debug("storing devices", "count", len(devices))
	return s.write(devicesFilename, content)
}

// Settings returns the stored weather settings. If no settings were stored, it returns empty settings.
func (s *Store) Settings() (settings.Weather, error) {
	var w settings.Weather
	content, err := s.read(settingsFilename)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("no weather settings found. run setup to create them", "dir", s.dir)
		return w, nil
	}
	if err != nil {
		return w, err
	}
	if err = yaml.Unmarshal(content, &w); err != nil {
		return w, fmt.Errorf("%s: %w", settingsFilename, err)
	}
	return w, nil
}

// SetSettings stores the weather settings. It does not validate them: that's up to the caller.
func (s *Store) SetSettings(w settings.Weather) error {
	content, err := encodeYAML(w)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return s.write(settingsFilename, content)
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) read(filename string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return content, nil
}

func (s *Store) write(filename string, content []byte) error {
	f, err := os.CreateTemp(s.dir, "."+filename+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if _, err = f.Write(content); err == nil {
		err = f.Chmod(0o600)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(f.Name(), filepath.Join(s.dir, filename))
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
