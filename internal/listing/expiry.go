package listing

import (
	"fmt"
	"time"

	"github.com/zerohunger/portal/internal/domain"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

const packedExpiryClock = "T23:59"

// Expiry validation messages.
const (
	MsgCookedExpiryRequired = "Expiry date & time required for cooked food"
	MsgPackedExpiryRequired = "Expiry date required for packed items"
)

// DeriveExpiry builds the expiry string sent to the backend. Cooked food uses the
// datetime-local value as entered; packed items expire at 23:59 of the chosen date.
func DeriveExpiry(category domain.FoodCategory, dateTime, dateOnly string) (string, error) {
	if category == domain.FoodCategoryCooked {
		if dateTime == "" {
			return "", apperrors.NewValidationError(MsgCookedExpiryRequired, map[string]any{"field": "expiryDateTime"})
		}
		return dateTime, nil
	}
	if dateOnly == "" {
		return "", apperrors.NewValidationError(MsgPackedExpiryRequired, map[string]any{"field": "expiryDateOnly"})
	}
	return dateOnly + packedExpiryClock, nil
}

// Tone classifies an expiry tag for styling.
type Tone string

const (
	ToneExpired Tone = "expired"
	ToneDays    Tone = "days"
	ToneHours   Tone = "hours"
	ToneMinutes Tone = "minutes"
)

// Tag is the remaining-time badge of a listing.
type Tag struct {
	Text string
	Tone Tone
}

// ExpiryTag describes the time left until expiry, truncating to whole units.
// A listing without an expiry gets an empty tag.
func ExpiryTag(expiry, now time.Time) Tag {
	if expiry.IsZero() {
		return Tag{}
	}
	diff := expiry.Sub(now)
	if diff <= 0 {
		return Tag{Text: "Expired", Tone: ToneExpired}
	}
	mins := int(diff / time.Minute)
	hrs := mins / 60
	days := hrs / 24
	switch {
	case days > 0:
		return Tag{Text: fmt.Sprintf("%d day(s) left", days), Tone: ToneDays}
	case hrs > 0:
		return Tag{Text: fmt.Sprintf("%d hour(s) left", hrs), Tone: ToneHours}
	default:
		return Tag{Text: fmt.Sprintf("%d min left", mins), Tone: ToneMinutes}
	}
}
