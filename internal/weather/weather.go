// Package weather reads the current outdoor temperature from weatherapi.com.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const DefaultURL = "https://api.weatherapi.com"

var ErrNoTemperature = errors.New("no temperature in weather report")

var _ error = &APIError{}

// APIError is returned when weatherapi.com rejects a request.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	msg := "weatherapi: " + strconv.Itoa(e.StatusCode) + " " + http.StatusText(e.StatusCode)
	if e.Code != 0 {
		msg += " (code " + strconv.Itoa(e.Code) + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *APIError) Is(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError)
}

// Client reads the temperature for one location.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	query      string
	metric     bool
}

// New returns a Client for the location in query, e.g. a city, a zip code or "lat,lon". If metric is true,
// Temperature returns degrees Celsius. Otherwise, it returns degrees Fahrenheit.
func New(baseURL string, httpClient *http.Client, apiKey, query string, metric bool) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		query:      query,
		metric:     metric,
	}
}

type currentResponse struct {
	Current struct {
		TempC *float64 `json:"temp_c"`
		TempF *float64 `json:"temp_f"`
	} `json:"current"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Temperature returns the current temperature.
//
// https://www.weatherapi.com/docs/#apis-realtime
func (c *Client) Temperature(ctx context.Context) (float64, error) {
	target := c.baseURL + "/v1/current.json?" + url.Values{"key": {c.apiKey}, "q": {c.query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("weather: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("weather: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := APIError{StatusCode: resp.StatusCode}
		var r errorResponse
		if json.Unmarshal(body, &r) == nil {
			apiErr.Code = r.Error.Code
			apiErr.Message = r.Error.Message
		}
		return 0, &apiErr
	}

	var r currentResponse
	if err = json.Unmarshal(body, &r); err != nil {
		return 0, fmt.Errorf("weather: decode: %w", err)
	}
	temp := r.Current.TempF
	if c.metric {
		temp = r.Current.TempC
	}
	if temp == nil {
		return 0, ErrNoTemperature
	}
	return *temp, nil
}
