package settings_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/clambin/ecobee-controller/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name    string
		current settings.Weather
		input   string
		want    settings.Weather
	}{
		{
			name: "new settings",
			input: `key
Boston
false
80
65
78

15
`,
			want: settings.Weather{
				APIKey:    ptr("key"),
				Query:     ptr("Boston"),
				Metric:    ptr(false),
				CoolAbove: ptr(80.0),
				HeatBelow: ptr(65.0),
				OffAbove:  ptr(78.0),
				Interval:  ptr(15),
			},
		},
		{
			name:    "keep current values",
			current: validSettings(),
			input:   strings.Repeat("\n", 8),
			want:    validSettings(),
		},
		{
			name:    "unset a value",
			current: validSettings(),
			input:   "\n \n\n\n\n\n\n\n",
			want: func() settings.Weather {
				w := validSettings()
				w.Query = nil
				return w
			}(),
		},
		{
			name:    "invalid entry unsets the value",
			current: validSettings(),
			input:   "\n\n\nhot\n\n\n\n\n",
			want: func() settings.Weather {
				w := validSettings()
				w.CoolAbove = nil
				return w
			}(),
		},
		{
			name:    "windows line endings",
			current: validSettings(),
			input:   "\r\n\r\n\r\n\r\n\r\n\r\n\r\n30\r\n",
			want: func() settings.Weather {
				w := validSettings()
				w.Interval = ptr(30)
				return w
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := settings.Setup(strings.NewReader(tt.input), &out, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetup_Prompt(t *testing.T) {
	var out bytes.Buffer
	_, err := settings.Setup(strings.NewReader(strings.Repeat("\n", 8)), &out, validSettings())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "weatherapi.com API Key (current value: key)> ")
	assert.Contains(t, out.String(), "turn hvac off above (current value: unset)> ")
	assert.Contains(t, out.String(), "interval in minutes (current value: 15)> ")
}

func TestSetup_EOF(t *testing.T) {
	current := validSettings()
	got, err := settings.Setup(strings.NewReader("new-key\n"), io.Discard, current)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, current, got)
}
