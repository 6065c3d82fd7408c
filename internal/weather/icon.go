package weather

// Icon enumerates the OpenWeatherMap icon set
// (https://openweathermap.org/weather-conditions#How-to-get-icon-URL), so a
// display can select artwork by index.
type Icon int

const (
	IconUnknown Icon = iota
	IconClearDay
	IconClearNight
	IconFewCloudsDay
	IconFewCloudsNight
	IconScatteredCloudsDay
	IconScatteredCloudsNight
	IconBrokenCloudsDay
	IconBrokenCloudsNight
	IconShowerRainDay
	IconShowerRainNight
	IconRainDay
	IconRainNight
	IconThunderstormDay
	IconThunderstormNight
	IconSnowDay
	IconSnowNight
	IconMistDay
	IconMistNight
)

var iconCodes = map[string]Icon{
	"01d": IconClearDay,
	"01n": IconClearNight,
	"02d": IconFewCloudsDay,
	"02n": IconFewCloudsNight,
	"03d": IconScatteredCloudsDay,
	"03n": IconScatteredCloudsNight,
	"04d": IconBrokenCloudsDay,
	"04n": IconBrokenCloudsNight,
	"09d": IconShowerRainDay,
	"09n": IconShowerRainNight,
	"10d": IconRainDay,
	"10n": IconRainNight,
	"11d": IconThunderstormDay,
	"11n": IconThunderstormNight,
	"13d": IconSnowDay,
	"13n": IconSnowNight,
	"50d": IconMistDay,
	"50n": IconMistNight,
}

var iconNames = [...]string{
	IconUnknown:              "unknown",
	IconClearDay:             "clear sky (day)",
	IconClearNight:           "clear sky (night)",
	IconFewCloudsDay:         "few clouds (day)",
	IconFewCloudsNight:       "few clouds (night)",
	IconScatteredCloudsDay:   "scattered clouds (day)",
	IconScatteredCloudsNight: "scattered clouds (night)",
	IconBrokenCloudsDay:      "broken clouds (day)",
	IconBrokenCloudsNight:    "broken clouds (night)",
	IconShowerRainDay:        "shower rain (day)",
	IconShowerRainNight:      "shower rain (night)",
	IconRainDay:              "rain (day)",
	IconRainNight:            "rain (night)",
	IconThunderstormDay:      "thunderstorm (day)",
	IconThunderstormNight:    "thunderstorm (night)",
	IconSnowDay:              "snow (day)",
	IconSnowNight:            "snow (night)",
	IconMistDay:              "mist (day)",
	IconMistNight:            "mist (night)",
}

// ParseIcon maps an API icon code such as "10d" to its Icon.
// Matching is exact and case-sensitive; anything else is IconUnknown.
func ParseIcon(code string) Icon {
	if icon, ok := iconCodes[code]; ok {
		return icon
	}
	return IconUnknown
}

// Code returns the API icon code, or "" for IconUnknown.
func (i Icon) Code() string {
	for code, icon := range iconCodes {
		if icon == i && i != IconUnknown {
			return code
		}
	}
	return ""
}

// IsNight reports whether the icon is a night variant.
func (i Icon) IsNight() bool {
	return i != IconUnknown && i.valid() && i%2 == 0
}

func (i Icon) String() string {
	if !i.valid() {
		return iconNames[IconUnknown]
	}
	return iconNames[i]
}

func (i Icon) valid() bool {
	return i >= IconUnknown && int(i) < len(iconNames)
}
