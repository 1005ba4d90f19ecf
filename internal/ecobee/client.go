// Package ecobee provides a client for the ecobee thermostat API.
//
// The client keeps no credentials in memory: every call reads the API key and tokens from a CredentialStore,
// and every successful authorization or refresh writes the new tokens back. Querying the status of the thermostats
// replaces the devices in the DeviceRegistry.
//
// See https://www.ecobee.com/home/developer/api/documentation/v1/index.shtml
package ecobee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const DefaultURL = "https://api.ecobee.com"

// A CredentialStore holds the application key and the tokens for the ecobee API.
type CredentialStore interface {
	APIKey() (string, error)
	Tokens() (Tokens, error)
	SetTokens(Tokens) error
}

// A DeviceRegistry records the registered thermostats.
type DeviceRegistry interface {
	SetDevices([]DeviceMeta) error
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	credentials CredentialStore
	registry    DeviceRegistry
	logger      *slog.Logger
}

func New(baseURL string, httpClient *http.Client, credentials CredentialStore, registry DeviceRegistry, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		credentials: credentials,
		registry:    registry,
		logger:      logger,
	}
}

// Authorization is the response to a PIN authorization request.
type Authorization struct {
	PIN string `json:"ecobeePin"`
	// ExpiresIn is the number of minutes until the PIN expires
	ExpiresIn int    `json:"expires_in"`
	Code      string `json:"code"`
	Scope     string `json:"scope"`
	// Interval is the minimum number of seconds between polling attempts for a token
	Interval int `json:"interval"`
}

// Authorize requests a PIN, which the user registers in the ecobee portal. The authorization code is stored
// as the access token, for use by RequestTokens.
//
// https://www.ecobee.com/home/developer/api/documentation/v1/auth/pin-api-authorization.shtml
func (c *Client) Authorize(ctx context.Context) (Authorization, error) {
	var auth Authorization
	key, err := c.credentials.APIKey()
	if err != nil {
		return auth, err
	}
	q := url.Values{
		"response_type": {"ecobeePin"},
		"client_id":     {key},
		"scope":         {"smartWrite"},
	}
	if err = c.call(ctx, http.MethodGet, "/authorize", q, nil, false, &auth); err != nil {
		return auth, fmt.Errorf("authorize: %w", err)
	}
	if err = c.credentials.SetTokens(Tokens{AccessToken: auth.Code}); err != nil {
		return auth, fmt.Errorf("store authorization code: %w", err)
	}
	return auth, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// RequestTokens exchanges the authorization code for an access & refresh token. This needs to be called
// shortly after the PIN has been registered.
//
// https://www.ecobee.com/home/developer/api/documentation/v1/auth/auth-req-resp.shtml
func (c *Client) RequestTokens(ctx context.Context) error {
	tokens, err := c.credentials.Tokens()
	if err != nil {
		return err
	}
	return c.fetchTokens(ctx, "ecobeePin", "code", tokens.AccessToken)
}

// RefreshTokens replaces the stored tokens with new ones, using the refresh token.
//
// https://www.ecobee.com/home/developer/api/documentation/v1/auth/token-refresh.shtml
func (c *Client) RefreshTokens(ctx context.Context) error {
	tokens, err := c.credentials.Tokens()
	if err != nil {
		return err
	}
	return c.fetchTokens(ctx, "refresh_token", "refresh_token", tokens.RefreshToken)
}

func (c *Client) fetchTokens(ctx context.Context, grantType, param, credential string) error {
	key, err := c.credentials.APIKey()
	if err != nil {
		return err
	}
	q := url.Values{
		"grant_type": {grantType},
		"client_id":  {key},
		param:        {credential},
	}
	var resp tokenResponse
	if err = c.call(ctx, http.MethodPost, "/token", q, nil, false, &resp); err != nil {
		return fmt.Errorf("tokens: %w", err)
	}
	if err = c.credentials.SetTokens(Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}
	c.logger.Debug("tokens retrieved", "grant_type", grantType, "expires_in", resp.ExpiresIn)
	return nil
}

const statusSelection = `{"selection":{"selectionType":"registered","selectionMatch":"","includeSettings":true,"includeRuntime":true}}`

type thermostatsResponse struct {
	ThermostatList []struct {
		Identifier string `json:"identifier"`
		Name       string `json:"name"`
		Settings   struct {
			HVACMode string `json:"hvacMode"`
		} `json:"settings"`
		Runtime struct {
			// in tenths of a degree Fahrenheit
			ActualTemperature float64 `json:"actualTemperature"`
			ActualHumidity    float64 `json:"actualHumidity"`
		} `json:"runtime"`
	} `json:"thermostatList"`
	Status status `json:"status"`
}

// Status returns the status of all registered thermostats. On success, the DeviceRegistry is overwritten
// with the returned thermostats.
//
// https://www.ecobee.com/home/developer/api/documentation/v1/operations/get-thermostats.shtml
func (c *Client) Status(ctx context.Context) (Thermostats, error) {
	var resp thermostatsResponse
	if err := c.call(ctx, http.MethodGet, "/1/thermostat", url.Values{"json": {statusSelection}}, nil, true, &resp); err != nil {
		return nil, fmt.Errorf("thermostats: %w", err)
	}
	thermostats := make(Thermostats, len(resp.ThermostatList))
	for i, t := range resp.ThermostatList {
		thermostats[i] = Thermostat{
			ID:          t.Identifier,
			Name:        t.Name,
			Mode:        Mode(t.Settings.HVACMode),
			Temperature: t.Runtime.ActualTemperature / 10,
			Humidity:    t.Runtime.ActualHumidity,
		}
	}
	if err := c.registry.SetDevices(thermostats.Meta()); err != nil {
		return thermostats, fmt.Errorf("store thermostats: %w", err)
	}
	c.logger.Debug("thermostats retrieved", "thermostats", thermostats)
	return thermostats, nil
}

type updateRequest struct {
	Selection struct {
		SelectionType  string `json:"selectionType"`
		SelectionMatch string `json:"selectionMatch"`
	} `json:"selection"`
	Thermostat struct {
		Settings struct {
			HVACMode Mode `json:"hvacMode"`
		} `json:"settings"`
	} `json:"thermostat"`
}

// UpdateMode sets the HVAC mode of one thermostat. The ecobee API is unreliable when one call updates
// several thermostats, so each thermostat gets its own call.
//
// https://www.ecobee.com/home/developer/api/documentation/v1/operations/post-update-thermostats.shtml
func (c *Client) UpdateMode(ctx context.Context, id string, mode Mode) error {
	if !mode.Settable() {
		return fmt.Errorf("invalid mode %q", mode)
	}
	var req updateRequest
	req.Selection.SelectionType = "thermostats"
	req.Selection.SelectionMatch = id
	req.Thermostat.Settings.HVACMode = mode

	var resp struct {
		Status status `json:"status"`
	}
	if err := c.call(ctx, http.MethodPost, "/1/thermostat", url.Values{"format": {"json"}}, req, true, &resp); err != nil {
		return fmt.Errorf("update %s: %w", id, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any, authorized bool, response any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		r = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return err
	}
	if body != nil || authorized {
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	}
	if authorized {
		tokens, err := c.credentials.Tokens()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp)
	}
	if response == nil {
		return nil
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(payload, response); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	// the thermostat API may report a failure in the body of a 200 response
	var s struct {
		Status status `json:"status"`
	}
	if json.Unmarshal(payload, &s) == nil && s.Status.Code != 0 {
		return &APIError{StatusCode: resp.StatusCode, Code: s.Status.Code, Message: s.Status.Message}
	}
	return nil
}
