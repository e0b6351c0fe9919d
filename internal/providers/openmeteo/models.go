package openmeteo

// ErrorResponse is the body Open-Meteo returns with 4xx statuses
type ErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

type GeocodingAPIResponse struct {
	Results          []GeocodingResult `json:"results"`
	GenerationtimeMs float64           `json:"generationtime_ms"`
}

type GeocodingResult struct {
	Id          int      `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Elevation   float64  `json:"elevation"`
	FeatureCode string   `json:"feature_code"`
	CountryCode string   `json:"country_code"`
	Country     string   `json:"country"`
	Admin1      string   `json:"admin1"`
	Timezone    string   `json:"timezone"`
	Population  int      `json:"population"`
	Postcodes   []string `json:"postcodes"`
}

type ForecastAPIResponse struct {
	Latitude             float64           `json:"latitude"`
	Longitude            float64           `json:"longitude"`
	GenerationtimeMs     float64           `json:"generationtime_ms"`
	UtcOffsetSeconds     int               `json:"utc_offset_seconds"`
	Timezone             string            `json:"timezone"`
	TimezoneAbbreviation string            `json:"timezone_abbreviation"`
	Elevation            float64           `json:"elevation"`
	CurrentWeatherUnits  map[string]string `json:"current_weather_units"`
	CurrentWeather       *CurrentWeather   `json:"current_weather"`
	CurrentUnits         map[string]string `json:"current_units"`
	Current              *Current          `json:"current"`
}

// CurrentWeather is the legacy current_weather=true block
type CurrentWeather struct {
	Time          string  `json:"time"`
	Interval      int     `json:"interval"`
	Temperature   float64 `json:"temperature"`
	Windspeed     float64 `json:"windspeed"`
	Winddirection float64 `json:"winddirection"`
	IsDay         int     `json:"is_day"`
	Weathercode   int     `json:"weathercode"`
}

// Current holds the variables requested through current=...
type Current struct {
	Time          string   `json:"time"`
	Interval      int      `json:"interval"`
	Precipitation *float64 `json:"precipitation"`
}
