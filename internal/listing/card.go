package listing

import (
	"time"

	"github.com/zerohunger/portal/internal/domain"
)

// Card is a listing decorated for rendering.
type Card struct {
	domain.FoodListing
	Tag       Tag
	MapURL    string
	CanEdit   bool
	CanDelete bool
	Actions   CartActions
}

// Cards decorates listings against the clock.
func Cards(items []domain.FoodListing, now time.Time) []Card {
	out := make([]Card, len(items))
	for i, item := range items {
		var tag Tag
		if ShowsExpiry(item.Status) {
			tag = ExpiryTag(item.ExpiryTime.Time, now)
		}
		out[i] = Card{
			FoodListing: item,
			Tag:         tag,
			MapURL:      item.Location.MapURL(),
			CanEdit:     CanEdit(item.Status),
			CanDelete:   CanDelete(item.Status),
			Actions:     CartActionsFor(item.Status),
		}
	}
	return out
}
