package weather_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clambin/ecobee-controller/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Temperature(t *testing.T) {
	tests := []struct {
		name    string
		metric  bool
		status  int
		body    string
		want    float64
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "imperial",
			status:  http.StatusOK,
			body:    `{"location":{"name":"Boston"},"current":{"temp_c":26.1,"temp_f":79.0}}`,
			want:    79,
			wantErr: assert.NoError,
		},
		{
			name:    "metric",
			metric:  true,
			status:  http.StatusOK,
			body:    `{"location":{"name":"Boston"},"current":{"temp_c":26.1,"temp_f":79.0}}`,
			want:    26.1,
			wantErr: assert.NoError,
		},
		{
			name:   "missing temperature",
			metric: true,
			status: http.StatusOK,
			body:   `{"current":{"temp_f":79.0}}`,
			wantErr: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.ErrorIs(t, err, weather.ErrNoTemperature)
			},
		},
		{
			name:    "invalid response",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: assert.Error,
		},
		{
			name:   "api error",
			status: http.StatusForbidden,
			body:   `{"error":{"code":2008,"message":"API key has been disabled."}}`,
			wantErr: func(t assert.TestingT, err error, _ ...any) bool {
				return assert.ErrorIs(t, err, &weather.APIError{}) &&
					assert.Equal(t, "weatherapi: 403 Forbidden (code 2008): API key has been disabled.", err.Error())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/current.json" || r.URL.Query().Get("key") != "key" || r.URL.Query().Get("q") != "Boston" {
					http.Error(w, "bad request", http.StatusBadRequest)
					return
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(s.Close)

			c := weather.New(s.URL, s.Client(), "key", "Boston", tt.metric)
			temp, err := c.Temperature(t.Context())
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, temp)
		})
	}
}

func TestClient_Temperature_Unreachable(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	s.Close()
	c := weather.New(s.URL, nil, "key", "Boston", false)
	_, err := c.Temperature(t.Context())
	require.Error(t, err)
}
