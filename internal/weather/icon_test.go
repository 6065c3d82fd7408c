package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wxpanel/onecall/internal/weather"
)

func TestParseIcon(t *testing.T) {
	tests := []struct {
		code     string
		expected weather.Icon
	}{
		{"01d", weather.IconClearDay},
		{"01n", weather.IconClearNight},
		{"02d", weather.IconFewCloudsDay},
		{"02n", weather.IconFewCloudsNight},
		{"03d", weather.IconScatteredCloudsDay},
		{"03n", weather.IconScatteredCloudsNight},
		{"04d", weather.IconBrokenCloudsDay},
		{"04n", weather.IconBrokenCloudsNight},
		{"09d", weather.IconShowerRainDay},
		{"09n", weather.IconShowerRainNight},
		{"10d", weather.IconRainDay},
		{"10n", weather.IconRainNight},
		{"11d", weather.IconThunderstormDay},
		{"11n", weather.IconThunderstormNight},
		{"13d", weather.IconSnowDay},
		{"13n", weather.IconSnowNight},
		{"50d", weather.IconMistDay},
		{"50n", weather.IconMistNight},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			icon := weather.ParseIcon(tt.code)
			assert.Equal(t, tt.expected, icon)
			assert.Equal(t, tt.code, icon.Code())
		})
	}
}

func TestParseIcon_Unknown(t *testing.T) {
	for _, code := range []string{"", "99x", "10D", "10", "10dd", " 10d", "1d"} {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, weather.IconUnknown, weather.ParseIcon(code))
		})
	}
}

func TestIcon_IsNight(t *testing.T) {
	assert.False(t, weather.IconUnknown.IsNight())
	assert.False(t, weather.IconRainDay.IsNight())
	assert.True(t, weather.IconRainNight.IsNight())
	assert.True(t, weather.IconMistNight.IsNight())
	assert.False(t, weather.Icon(42).IsNight())
}

func TestIcon_String(t *testing.T) {
	assert.Equal(t, "rain (day)", weather.IconRainDay.String())
	assert.Equal(t, "unknown", weather.IconUnknown.String())
	assert.Equal(t, "unknown", weather.Icon(-1).String())
	assert.Equal(t, "", weather.IconUnknown.Code())
}
