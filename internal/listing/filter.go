package listing

import (
	"strings"

	"github.com/zerohunger/portal/internal/domain"
)

// FilterAll disables a status or category filter.
const FilterAll = "all"

// MatchName reports whether name contains query, ignoring case. An empty query matches.
func MatchName(name, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// FoodFilter narrows a list of listings. Empty or "all" fields do not filter.
type FoodFilter struct {
	Query    string
	Status   string
	Category string
}

// FilterFoods keeps the listings matching every active filter, in order.
func FilterFoods(items []domain.FoodListing, f FoodFilter) []domain.FoodListing {
	out := make([]domain.FoodListing, 0, len(items))
	for _, item := range items {
		if !MatchName(item.FoodName, f.Query) {
			continue
		}
		if active(f.Status) && string(item.Status) != f.Status {
			continue
		}
		if active(f.Category) && string(item.ItemCategory) != f.Category {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterDeliveries keeps the delivery records whose food name matches query.
func FilterDeliveries(items []domain.DeliveryRecord, query string) []domain.DeliveryRecord {
	out := make([]domain.DeliveryRecord, 0, len(items))
	for _, item := range items {
		if MatchName(item.FoodName, query) {
			out = append(out, item)
		}
	}
	return out
}

func active(filter string) bool {
	return filter != "" && filter != FilterAll
}
