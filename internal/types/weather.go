package types

// WeatherCode represents a WMO weather code
type WeatherCode int

// SkyCategory drives the decorative sky animation and background
type SkyCategory string

// Weather represents weather conditions with a code, description and sky category
type Weather struct {
	Code        int         `json:"code"`
	Description string      `json:"description"`
	Sky         SkyCategory `json:"sky"`
}

// Weather code constants
const (
	ClearSky                     WeatherCode = 0
	MainlyClear                  WeatherCode = 1
	PartlyCloudy                 WeatherCode = 2
	Overcast                     WeatherCode = 3
	Fog                          WeatherCode = 45
	DepositingRimeFog            WeatherCode = 48
	DrizzleLight                 WeatherCode = 51
	DrizzleModerate              WeatherCode = 53
	DrizzleDense                 WeatherCode = 55
	FreezingDrizzleLight         WeatherCode = 56
	FreezingDrizzleDense         WeatherCode = 57
	RainSlight                   WeatherCode = 61
	RainModerate                 WeatherCode = 63
	RainHeavy                    WeatherCode = 65
	FreezingRainLight            WeatherCode = 66
	FreezingRainHeavy            WeatherCode = 67
	SnowFallSlight               WeatherCode = 71
	SnowFallModerate             WeatherCode = 73
	SnowFallHeavy                WeatherCode = 75
	SnowGrains                   WeatherCode = 77
	RainShowersSlight            WeatherCode = 80
	RainShowersModerate          WeatherCode = 81
	RainShowersViolent           WeatherCode = 82
	SnowShowersSlight            WeatherCode = 85
	SnowShowersHeavy             WeatherCode = 86
	ThunderstormSlightOrModerate WeatherCode = 95
	ThunderstormWithSlightHail   WeatherCode = 96
	ThunderstormWithHeavyHail    WeatherCode = 99
)

const (
	SkyClear        SkyCategory = "clear"
	SkyPartlyCloudy SkyCategory = "partly-cloudy"
	SkyOvercast     SkyCategory = "overcast"
	SkyFog          SkyCategory = "fog"
	SkyRainLight    SkyCategory = "rain-light"
	SkyRain         SkyCategory = "rain"
	SkyRainHeavy    SkyCategory = "rain-heavy"
	SkySnowLight    SkyCategory = "snow-light"
	SkySnow         SkyCategory = "snow"
	SkySnowHeavy    SkyCategory = "snow-heavy"
	SkyThunderstorm SkyCategory = "thunderstorm"
)

type codeInfo struct {
	description string
	sky         SkyCategory
}

// weatherCodes maps weather codes to their description and sky category
var weatherCodes = map[WeatherCode]codeInfo{
	ClearSky:                     {"Clear sky", SkyClear},
	MainlyClear:                  {"Mainly clear", SkyClear},
	PartlyCloudy:                 {"Partly cloudy", SkyPartlyCloudy},
	Overcast:                     {"Overcast", SkyOvercast},
	Fog:                          {"Fog", SkyFog},
	DepositingRimeFog:            {"Depositing rime fog", SkyFog},
	DrizzleLight:                 {"Light drizzle", SkyRainLight},
	DrizzleModerate:              {"Moderate drizzle", SkyRain},
	DrizzleDense:                 {"Dense drizzle", SkyRainHeavy},
	FreezingDrizzleLight:         {"Freezing drizzle: Light", SkyRainLight},
	FreezingDrizzleDense:         {"Freezing drizzle: Dense", SkyRain},
	RainSlight:                   {"Rain: Slight", SkyRainLight},
	RainModerate:                 {"Rain: Moderate", SkyRain},
	RainHeavy:                    {"Rain: Heavy", SkyRainHeavy},
	FreezingRainLight:            {"Freezing rain: Light", SkyRainLight},
	FreezingRainHeavy:            {"Freezing rain: Heavy", SkyRainHeavy},
	SnowFallSlight:               {"Snow: Slight", SkySnowLight},
	SnowFallModerate:             {"Snow: Moderate", SkySnow},
	SnowFallHeavy:                {"Snow: Heavy", SkySnowHeavy},
	SnowGrains:                   {"Snow grains", SkySnowLight},
	RainShowersSlight:            {"Rain showers", SkyRainLight},
	RainShowersModerate:          {"Rain showers: Moderate", SkyRain},
	RainShowersViolent:           {"Violent showers", SkyRainHeavy},
	SnowShowersSlight:            {"Snow showers: Slight", SkySnowLight},
	SnowShowersHeavy:             {"Snow showers: Heavy", SkySnowHeavy},
	ThunderstormSlightOrModerate: {"Thunderstorm", SkyThunderstorm},
	ThunderstormWithSlightHail:   {"Thunderstorm with hail", SkyThunderstorm},
	ThunderstormWithHeavyHail:    {"Thunderstorm with heavy hail", SkyThunderstorm},
}

// Description returns the description for the code, or "Unknown"
func (c WeatherCode) Description() string {
	if info, ok := weatherCodes[c]; ok {
		return info.description
	}
	return "Unknown"
}

// Sky returns the sky category for the code. Unknown codes render as a clear sky.
func (c WeatherCode) Sky() SkyCategory {
	if info, ok := weatherCodes[c]; ok {
		return info.sky
	}
	return SkyClear
}

// IsRain reports whether the category shows falling rain
func (s SkyCategory) IsRain() bool {
	return s == SkyRainLight || s == SkyRain || s == SkyRainHeavy
}

// IsCloudy reports whether the category shows a cloud layer without precipitation
func (s SkyCategory) IsCloudy() bool {
	return s == SkyPartlyCloudy || s == SkyOvercast
}

// NewWeather creates a Weather instance from a weather code
func NewWeather(code int) Weather {
	c := WeatherCode(code)
	return Weather{
		Code:        code,
		Description: c.Description(),
		Sky:         c.Sky(),
	}
}
