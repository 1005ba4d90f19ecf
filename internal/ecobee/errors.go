package ecobee

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
)

var ErrNoDevices = errors.New("no registered thermostats")

var _ error = &APIError{}

// APIError is returned when the ecobee API rejects a call.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	msg := "ecobee: " + strconv.Itoa(e.StatusCode) + " " + http.StatusText(e.StatusCode)
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

// status is included in every response of the thermostat API.
type status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorResponse covers both error formats: the authorization API uses error/error_description,
// the thermostat API uses status.
type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Status      status `json:"status"`
}

func newAPIError(resp *http.Response) *APIError {
	apiError := APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(resp.Body)
	var r errorResponse
	if err := json.Unmarshal(body, &r); err != nil {
		apiError.Message = string(body)
		return &apiError
	}
	switch {
	case r.Status.Code != 0 || r.Status.Message != "":
		apiError.Code = r.Status.Code
		apiError.Message = r.Status.Message
	case r.Error != "":
		apiError.Message = r.Error
		if r.Description != "" {
			apiError.Message += ": " + r.Description
		}
	}
	return &apiError
}
