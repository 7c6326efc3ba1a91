package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

const mapsSearchURL = "https://www.google.com/maps/search/"

// Location is a structured WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinates are within range and not the zero value.
func (l Location) Valid() bool {
	if l.Lat == 0 && l.Lng == 0 {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// MapURL links to the coordinates on Google Maps, or "" when the location is unset.
func (l Location) MapURL() string {
	if !l.Valid() {
		return ""
	}
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", formatCoord(l.Lat)+","+formatCoord(l.Lng))
	return mapsSearchURL + "?" + q.Encode()
}

// DisplayAddress is the human-readable form used when pickup is at the current location.
func (l Location) DisplayAddress() string {
	return fmt.Sprintf("Lat: %s, Lng: %s", formatCoord(l.Lat), formatCoord(l.Lng))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
