package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"weather-now/internal/types"
)

// Background names the page gradient
type Background string

const (
	BackgroundDayClear  Background = "day_clear"
	BackgroundDayCloudy Background = "day_cloudy"
	BackgroundNight     Background = "night"
	BackgroundRain      Background = "rain"
)

const (
	// defaultCardName labels a snapshot that carries no place name
	defaultCardName = "Current Location"

	localTimeLayout = "3:04:05 PM"
)

// View is everything needed to render the dashboard
type View struct {
	Status         Status            `json:"status" enum:"idle,loading,ready,error" doc:"Controller state"`
	Loading        bool              `json:"loading" doc:"True while a lookup is in flight"`
	Error          string            `json:"error,omitempty" doc:"Message shown in the error state"`
	Unit           types.Unit        `json:"unit" enum:"metric,imperial" doc:"Active unit preference"`
	Theme          types.Theme       `json:"theme" enum:"light,dark" doc:"Active theme"`
	Weather        *WeatherCard      `json:"weather,omitempty" doc:"Last successful reading"`
	Sky            types.SkyCategory `json:"sky,omitempty" doc:"Sky animation category"`
	Background     Background        `json:"background" doc:"Background gradient name"`
	RecentSearches []string          `json:"recent_searches" doc:"Recently searched cities, most recent first"`
}

// WeatherCard is the display form of a snapshot. Labels come from the unit the
// snapshot was fetched in, which can differ from the preference while a
// re-fetch is in flight.
type WeatherCard struct {
	Name               string            `json:"name" example:"Paris"`
	Region             string            `json:"region,omitempty" example:"Île-de-France"`
	Country            string            `json:"country,omitempty" example:"France"`
	CountryCode        string            `json:"country_code,omitempty" example:"FR"`
	Temperature        int               `json:"temperature" example:"18"`
	TemperatureLabel   string            `json:"temperature_label" example:"18°C"`
	Description        string            `json:"description" example:"Overcast"`
	WeatherCode        int               `json:"weather_code" example:"3"`
	Sky                types.SkyCategory `json:"sky" example:"overcast"`
	WindSpeed          int               `json:"wind_speed" example:"11"`
	WindSpeedLabel     string            `json:"wind_speed_label" example:"11 km/h"`
	WindDirection      int               `json:"wind_direction" example:"248"`
	WindCardinal       string            `json:"wind_cardinal" example:"WSW"`
	Precipitation      *float64          `json:"precipitation,omitempty" example:"0.4"`
	PrecipitationLabel string            `json:"precipitation_label" example:"0.4 mm"`
	IsDay              bool              `json:"is_day"`
	Time               time.Time         `json:"time"`
	LocalTime          string            `json:"local_time" example:"4:00:00 PM"`
	Timezone           string            `json:"timezone,omitempty" example:"Europe/Paris"`
	Latitude           float64           `json:"latitude"`
	Longitude          float64           `json:"longitude"`
	Unit               types.Unit        `json:"unit" enum:"metric,imperial"`
}

func newWeatherCard(s *types.Snapshot) *WeatherCard {
	labels := s.Unit.Labels()
	conditions := types.NewWeather(s.WeatherCode)

	name := s.Name
	if name == "" {
		name = defaultCardName
	}

	temperature := roundHalfUp(s.Temperature)
	windSpeed := roundHalfUp(s.WindSpeed)

	precipitationLabel := "N/A"
	if s.Precipitation != nil {
		precipitationLabel = strconv.FormatFloat(*s.Precipitation, 'f', -1, 64) + " " + labels.Precipitation
	}

	return &WeatherCard{
		Name:               name,
		Region:             s.Region,
		Country:            s.Country,
		CountryCode:        s.CountryCode,
		Temperature:        temperature,
		TemperatureLabel:   fmt.Sprintf("%d%s", temperature, labels.Temperature),
		Description:        conditions.Description,
		WeatherCode:        conditions.Code,
		Sky:                conditions.Sky,
		WindSpeed:          windSpeed,
		WindSpeedLabel:     fmt.Sprintf("%d %s", windSpeed, labels.WindSpeed),
		WindDirection:      s.WindDirection,
		WindCardinal:       types.CardinalDirection(float64(s.WindDirection)),
		Precipitation:      s.Precipitation,
		PrecipitationLabel: precipitationLabel,
		IsDay:              s.IsDay,
		Time:               s.Time,
		LocalTime:          s.LocalTime().Format(localTimeLayout),
		Timezone:           s.Timezone,
		Latitude:           s.Latitude,
		Longitude:          s.Longitude,
		Unit:               s.Unit,
	}
}

// backgroundFor picks the gradient: the theme sets day or night, rain and
// cloud override it.
func backgroundFor(theme types.Theme, sky types.SkyCategory) Background {
	switch {
	case sky.IsRain():
		return BackgroundRain
	case sky.IsCloudy():
		return BackgroundDayCloudy
	case theme == types.ThemeDark:
		return BackgroundNight
	default:
		return BackgroundDayClear
	}
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 displays as -2
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
