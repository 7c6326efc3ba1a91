// Package geo turns browser geolocation outcomes into the messages shown on forms.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zerohunger/portal/internal/domain"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// Geolocation error codes reported by the browser.
const (
	CodePermissionDenied    = 1
	CodePositionUnavailable = 2
	CodeTimeout             = 3
)

// Advisory messages. None of them block form submission by themselves.
const (
	PendingMessage     = "Detecting location..."
	UnsupportedMessage = "Geolocation not supported by this browser"
	ManualEntryMessage = "Unable to fetch precise location. Please enter address manually."
)

// StatusMessage maps a geolocation error code to its advisory text.
func StatusMessage(code int) string {
	switch code {
	case CodePermissionDenied:
		return "Location permission denied"
	case CodePositionUnavailable:
		return "Location information unavailable"
	case CodeTimeout:
		return "Location request timed out"
	default:
		return "Unable to fetch location"
	}
}

// DetectedMessage reports a successful fix with its accuracy rounded to metres.
func DetectedMessage(accuracy float64) string {
	return fmt.Sprintf("Location detected (±%dm accuracy)", int(math.Round(accuracy)))
}

// ParseCoordinates reads the lat/lng form fields. Both are required.
func ParseCoordinates(lat, lng string) (domain.Location, error) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" || lng == "" {
		return domain.Location{}, apperrors.NewValidationError("location is required", nil)
	}
	latV, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Location{}, apperrors.NewValidationError("invalid latitude", map[string]any{"lat": lat})
	}
	lngV, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return domain.Location{}, apperrors.NewValidationError("invalid longitude", map[string]any{"lng": lng})
	}
	loc := domain.Location{Lat: latV, Lng: lngV}
	if !loc.Valid() {
		return domain.Location{}, apperrors.NewValidationError("coordinates out of range", map[string]any{"lat": lat, "lng": lng})
	}
	return loc, nil
}
