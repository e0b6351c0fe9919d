package types

// Place contains human-readable display metadata for a location.
// It is never used to look weather up, only to label a snapshot.
type Place struct {
	Name        string `json:"name,omitempty"`
	Region      string `json:"region,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// IsZero reports whether no display metadata is present
func (p Place) IsZero() bool {
	return p == Place{}
}
