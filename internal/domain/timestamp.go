package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// LocalMinuteLayout is the datetime-local layout the backend accepts for expiry times.
const LocalMinuteLayout = "2006-01-02T15:04"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	LocalMinuteLayout,
	"2006-01-02",
}

// Timestamp decodes the backend's timestamps: ISO strings with or without zone
// and seconds, or unix milliseconds. Anything else decodes to the zero time so
// one malformed record does not fail a whole list.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON never fails on well-formed JSON.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '"' {
		if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			t.Time = time.UnixMilli(ms)
		}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// MarshalJSON writes RFC3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Quantity is free text such as "3 kg"; the backend sometimes sends a bare number.
type Quantity string

// UnmarshalJSON accepts a string or a number.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*q = ""
	case data[0] == '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*q = Quantity(raw)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			*q = ""
			return nil
		}
		*q = Quantity(num.String())
	}
	return nil
}
