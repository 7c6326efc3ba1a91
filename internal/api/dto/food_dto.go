package dto

// AddFoodForm is the add-food form. Image carries a data URL converted in the
// browser; an uploaded file in image_file is used when it is empty. The query
// tags let the page start from the previous item's type, category and location.
type AddFoodForm struct {
	FoodName         string `form:"foodName"`
	Quantity         string `form:"quantity"`
	FoodType         string `form:"foodType" query:"foodType"`
	ItemCategory     string `form:"itemCategory" query:"itemCategory"`
	ExpiryDateTime   string `form:"expiryDateTime"`
	ExpiryDateOnly   string `form:"expiryDateOnly"`
	IsSameAsLocation bool   `form:"isSameAsLocation" query:"isSameAsLocation"`
	Address          string `form:"address" query:"address"`
	Lat              string `form:"lat" query:"lat"`
	Lng              string `form:"lng" query:"lng"`
	Image            string `form:"image"`
}

// UpdateFoodForm is the inline edit form of a listing.
type UpdateFoodForm struct {
	FoodName   string `form:"foodName"`
	Quantity   string `form:"quantity"`
	ExpiryTime string `form:"expiryTime"`
	Address    string `form:"address"`
}

// DeliverForm is the proof-of-delivery form.
type DeliverForm struct {
	DeliveryAddress string `form:"deliveryAddress"`
	DeliveryImage   string `form:"deliveryImage"`
	DeliveryNotes   string `form:"deliveryNotes"`
}

// ListQuery carries search, filters and page of a list view.
type ListQuery struct {
	Search   string `query:"q"`
	Status   string `query:"status"`
	Category string `query:"category"`
	Page     int    `query:"page"`
}
