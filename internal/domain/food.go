package domain

// FoodStatus enumerates listing lifecycle states. Transitions are owned by the backend.
type FoodStatus string

const (
	FoodStatusAvailable FoodStatus = "available"
	FoodStatusReserved  FoodStatus = "reserved"
	FoodStatusPicked    FoodStatus = "picked"
	FoodStatusDelivered FoodStatus = "delivered"
	FoodStatusExpired   FoodStatus = "expired"
)

// FoodStatuses lists every status in lifecycle order, for filter menus.
var FoodStatuses = []FoodStatus{
	FoodStatusAvailable,
	FoodStatusReserved,
	FoodStatusPicked,
	FoodStatusDelivered,
	FoodStatusExpired,
}

// FoodCategory distinguishes cooked meals from packed goods.
type FoodCategory string

const (
	FoodCategoryCooked FoodCategory = "cooked"
	FoodCategoryPacked FoodCategory = "packed"
)

// Valid reports whether the category is known.
func (c FoodCategory) Valid() bool {
	return c == FoodCategoryCooked || c == FoodCategoryPacked
}

// Label is the display name of the category.
func (c FoodCategory) Label() string {
	if c == FoodCategoryCooked {
		return "Cooked"
	}
	return "Packed"
}

// FoodType is the dietary marker of a listing.
type FoodType string

const (
	FoodTypeVeg    FoodType = "Veg"
	FoodTypeNonVeg FoodType = "Non-Veg"
)

// FoodListing is a donated item as returned by the backend.
type FoodListing struct {
	ID               string       `json:"_id"`
	FoodName         string       `json:"foodName"`
	Quantity         Quantity     `json:"quantity"`
	FoodType         FoodType     `json:"foodType,omitempty"`
	ItemCategory     FoodCategory `json:"itemCategory"`
	ExpiryTime       Timestamp    `json:"expiryTime"`
	Location         Location     `json:"location"`
	Address          string       `json:"address"`
	IsSameAsLocation bool         `json:"isSameAsLocation"`
	Image            string       `json:"image,omitempty"`
	Status           FoodStatus   `json:"status"`
	CreatedAt        Timestamp    `json:"createdAt"`
}
