package listing

import "github.com/zerohunger/portal/internal/domain"

// CanEdit reports whether a donor may edit a listing.
func CanEdit(status domain.FoodStatus) bool {
	return status == domain.FoodStatusAvailable
}

// CanDelete reports whether a donor may delete a listing.
func CanDelete(status domain.FoodStatus) bool {
	return status == domain.FoodStatusAvailable || status == domain.FoodStatusExpired
}

// ShowsExpiry reports whether the expiry badge applies. Claimed and delivered
// listings no longer expire from the donor's point of view.
func ShowsExpiry(status domain.FoodStatus) bool {
	return status == domain.FoodStatusAvailable || status == domain.FoodStatusExpired
}

// CartActions lists what a volunteer may do with a cart entry.
type CartActions struct {
	Pick    bool
	Remove  bool
	Deliver bool
}

// CartActionsFor gates cart actions on the listing's status.
func CartActionsFor(status domain.FoodStatus) CartActions {
	return CartActions{
		Pick:    status == domain.FoodStatusReserved,
		Remove:  status == domain.FoodStatusReserved,
		Deliver: status == domain.FoodStatusPicked,
	}
}
