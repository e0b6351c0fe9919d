package types

import (
	"time"
	_ "time/tzdata"
)

// Snapshot is one current-weather reading. It is built once per successful
// fetch and replaced wholesale by the next one; Temperature and WindSpeed are
// expressed in Unit, the preference active when it was fetched.
type Snapshot struct {
	Temperature   float64   `json:"temperature"`
	WindSpeed     float64   `json:"windspeed"`
	WindDirection int       `json:"winddirection"`
	WeatherCode   int       `json:"weathercode"`
	IsDay         bool      `json:"is_day"`
	Time          time.Time `json:"time"`
	Precipitation *float64  `json:"precipitation,omitempty"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Name          string    `json:"name,omitempty"`
	Region        string    `json:"region,omitempty"`
	Country       string    `json:"country,omitempty"`
	CountryCode   string    `json:"country_code,omitempty"`
	Timezone      string    `json:"timezone,omitempty"`
	Unit          Unit      `json:"unit"`
}

func (s *Snapshot) Coords() Coords {
	return NewCoords(s.Latitude, s.Longitude)
}

// Place returns the display metadata carried by the snapshot
func (s *Snapshot) Place() Place {
	return Place{Name: s.Name, Region: s.Region, Country: s.Country, CountryCode: s.CountryCode}
}

// WithPlace returns a copy labelled with the given place
func (s Snapshot) WithPlace(p Place) *Snapshot {
	s.Name = p.Name
	s.Region = p.Region
	s.Country = p.Country
	s.CountryCode = p.CountryCode
	return &s
}

// LocalTime returns the reading time in the snapshot's timezone, or UTC when
// the zone is unknown.
func (s *Snapshot) LocalTime() time.Time {
	if s.Timezone == "" {
		return s.Time.UTC()
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return s.Time.UTC()
	}
	return s.Time.In(loc)
}
