package openweathermap

import (
	"github.com/wxpanel/onecall/internal/weather"
)

// One Call API 3.0 response structures. Alerts are never read.

type oneCallResponse struct {
	Lat            float64          `json:"lat"`
	Lon            float64          `json:"lon"`
	Timezone       string           `json:"timezone"`
	TimezoneOffset int              `json:"timezone_offset"`
	Current        currentResponse  `json:"current"`
	Minutely       []minuteResponse `json:"minutely"`
	Hourly         []hourlyResponse `json:"hourly"`
	Daily          []dailyResponse  `json:"daily"`
}

type conditionResponse struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type lastHour struct {
	Volume float64 `json:"1h"`
}

type currentResponse struct {
	Dt         int64               `json:"dt"`
	Sunrise    int64               `json:"sunrise"`
	Sunset     int64               `json:"sunset"`
	Temp       float64             `json:"temp"`
	FeelsLike  float64             `json:"feels_like"`
	Pressure   float64             `json:"pressure"`
	Humidity   float64             `json:"humidity"`
	DewPoint   float64             `json:"dew_point"`
	Clouds     float64             `json:"clouds"`
	UVI        float64             `json:"uvi"`
	Visibility float64             `json:"visibility"`
	WindSpeed  float64             `json:"wind_speed"`
	WindGust   float64             `json:"wind_gust"`
	WindDeg    float64             `json:"wind_deg"`
	Rain       lastHour            `json:"rain"`
	Snow       lastHour            `json:"snow"`
	Weather    []conditionResponse `json:"weather"`
}

type minuteResponse struct {
	Dt            int64   `json:"dt"`
	Precipitation float64 `json:"precipitation"`
}

type hourlyResponse struct {
	Dt         int64               `json:"dt"`
	Temp       float64             `json:"temp"`
	FeelsLike  float64             `json:"feels_like"`
	Pressure   float64             `json:"pressure"`
	Humidity   float64             `json:"humidity"`
	DewPoint   float64             `json:"dew_point"`
	UVI        float64             `json:"uvi"`
	Clouds     float64             `json:"clouds"`
	Visibility float64             `json:"visibility"`
	WindSpeed  float64             `json:"wind_speed"`
	WindGust   float64             `json:"wind_gust"`
	WindDeg    float64             `json:"wind_deg"`
	Pop        float64             `json:"pop"` // Probability of precipitation
	Rain       lastHour            `json:"rain"`
	Snow       lastHour            `json:"snow"`
	Weather    []conditionResponse `json:"weather"`
}

type dailyResponse struct {
	Dt        int64   `json:"dt"`
	Sunrise   int64   `json:"sunrise"`
	Sunset    int64   `json:"sunset"`
	Moonrise  int64   `json:"moonrise"`
	Moonset   int64   `json:"moonset"`
	MoonPhase float64 `json:"moon_phase"`
	Summary   string  `json:"summary"`
	Temp      struct {
		Day   float64 `json:"day"`
		Min   float64 `json:"min"`
		Max   float64 `json:"max"`
		Night float64 `json:"night"`
		Eve   float64 `json:"eve"`
		Morn  float64 `json:"morn"`
	} `json:"temp"`
	FeelsLike struct {
		Day   float64 `json:"day"`
		Night float64 `json:"night"`
		Eve   float64 `json:"eve"`
		Morn  float64 `json:"morn"`
	} `json:"feels_like"`
	Pressure  float64             `json:"pressure"`
	Humidity  float64             `json:"humidity"`
	DewPoint  float64             `json:"dew_point"`
	WindSpeed float64             `json:"wind_speed"`
	WindDeg   float64             `json:"wind_deg"`
	WindGust  float64             `json:"wind_gust"`
	Clouds    float64             `json:"clouds"`
	Pop       float64             `json:"pop"`
	Rain      float64             `json:"rain"`
	Snow      float64             `json:"snow"`
	UVI       float64             `json:"uvi"`
	Weather   []conditionResponse `json:"weather"`
}

// toConditions uses the first weather entry; the API lists the primary one first.
func toConditions(w []conditionResponse) weather.Conditions {
	if len(w) == 0 {
		return weather.Conditions{Icon: weather.IconUnknown}
	}
	return weather.Conditions{
		ID:          w[0].ID,
		Main:        w[0].Main,
		Description: w[0].Description,
		Icon:        weather.ParseIcon(w[0].Icon),
	}
}

func (r currentResponse) toCurrent() weather.CurrentWeather {
	return weather.CurrentWeather{
		Time:          weather.UnixTime(r.Dt),
		Sunrise:       weather.UnixTime(r.Sunrise),
		Sunset:        weather.UnixTime(r.Sunset),
		Temperature:   r.Temp,
		FeelsLike:     r.FeelsLike,
		Pressure:      r.Pressure,
		Humidity:      r.Humidity,
		DewPoint:      r.DewPoint,
		CloudCover:    r.Clouds,
		UVIndex:       r.UVI,
		Visibility:    r.Visibility,
		WindSpeed:     r.WindSpeed,
		WindGust:      r.WindGust,
		WindDirection: r.WindDeg,
		Rain:          r.Rain.Volume,
		Snow:          r.Snow.Volume,
		Conditions:    toConditions(r.Weather),
	}
}

func (r minuteResponse) toMinute() weather.MinuteForecast {
	return weather.MinuteForecast{
		Time:          weather.UnixTime(r.Dt),
		Precipitation: r.Precipitation,
	}
}

func (r hourlyResponse) toHourly() weather.HourlyForecast {
	return weather.HourlyForecast{
		Time:          weather.UnixTime(r.Dt),
		Temperature:   r.Temp,
		FeelsLike:     r.FeelsLike,
		Pressure:      r.Pressure,
		Humidity:      r.Humidity,
		DewPoint:      r.DewPoint,
		UVIndex:       r.UVI,
		CloudCover:    r.Clouds,
		Visibility:    r.Visibility,
		WindSpeed:     r.WindSpeed,
		WindGust:      r.WindGust,
		WindDirection: r.WindDeg,
		PrecipProb:    r.Pop,
		Rain:          r.Rain.Volume,
		Snow:          r.Snow.Volume,
		Conditions:    toConditions(r.Weather),
	}
}

func (r dailyResponse) toDaily() weather.DailyForecast {
	return weather.DailyForecast{
		Time:      weather.UnixTime(r.Dt),
		Sunrise:   weather.UnixTime(r.Sunrise),
		Sunset:    weather.UnixTime(r.Sunset),
		Moonrise:  weather.UnixTime(r.Moonrise),
		Moonset:   weather.UnixTime(r.Moonset),
		MoonPhase: r.MoonPhase,
		Summary:   r.Summary,
		Temperature: weather.DailyTemperatures{
			Morning: r.Temp.Morn,
			Day:     r.Temp.Day,
			Evening: r.Temp.Eve,
			Night:   r.Temp.Night,
			Min:     r.Temp.Min,
			Max:     r.Temp.Max,
		},
		FeelsLike: weather.DailyFeelsLike{
			Morning: r.FeelsLike.Morn,
			Day:     r.FeelsLike.Day,
			Evening: r.FeelsLike.Eve,
			Night:   r.FeelsLike.Night,
		},
		Pressure:      r.Pressure,
		Humidity:      r.Humidity,
		DewPoint:      r.DewPoint,
		UVIndex:       r.UVI,
		CloudCover:    r.Clouds,
		WindSpeed:     r.WindSpeed,
		WindGust:      r.WindGust,
		WindDirection: r.WindDeg,
		PrecipProb:    r.Pop,
		Rain:          r.Rain,
		Snow:          r.Snow,
		Conditions:    toConditions(r.Weather),
	}
}
