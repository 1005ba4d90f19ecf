package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/clambin/go-common/http/roundtripper"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notFound = roundtripper.RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(&bytes.Buffer{})}, nil
})

func TestNewRequestMetrics(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "blank",
			path: "",
			want: `
# HELP ecobee_controller_http_requests_total total number of http requests
# TYPE ecobee_controller_http_requests_total counter
ecobee_controller_http_requests_total{application="ecobee",code="404",method="GET",path="/"} 1
`,
		},
		{
			name: "thermostat",
			path: "/1/thermostat?json=%7B%7D",
			want: `
# HELP ecobee_controller_http_requests_total total number of http requests
# TYPE ecobee_controller_http_requests_total counter
ecobee_controller_http_requests_total{application="ecobee",code="404",method="GET",path="/1/thermostat"} 1
`,
		},
		{
			name: "weather",
			path: "/v1/current.json?key=secret&q=Boston",
			want: `
# HELP ecobee_controller_http_requests_total total number of http requests
# TYPE ecobee_controller_http_requests_total counter
ecobee_controller_http_requests_total{application="ecobee",code="404",method="GET",path="/v1/current.json"} 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			metrics := NewRequestMetrics("ecobee", "controller", map[string]string{"application": "ecobee"})
			c := http.Client{Transport: newRoundTripper(notFound, metrics, nil)}

			resp, err := c.Get("http://localhost" + tt.path)
			require.NoError(t, err)
			_ = resp.Body.Close()

			assert.NoError(t, testutil.CollectAndCompare(metrics, strings.NewReader(tt.want), "ecobee_controller_http_requests_total"))
		})
	}
}

func TestNew_Limiter(t *testing.T) {
	limiter := NewLimiter(time.Hour)
	c := http.Client{Transport: newRoundTripper(notFound, nil, limiter)}

	// the first request uses the burst
	resp, err := c.Get("http://localhost/")
	require.NoError(t, err)
	_ = resp.Body.Close()

	// the next one has to wait an hour
	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://localhost/", nil)
	_, err = c.Do(req)
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, NewLimiter(0))
	assert.NotNil(t, NewLimiter(time.Second))
}

func TestNew(t *testing.T) {
	c := New(nil, nil, time.Minute)
	assert.Equal(t, time.Minute, c.Timeout)
	assert.Equal(t, http.DefaultTransport, c.Transport)
}
