package domain

// DeliveryRecord is the proof of a completed delivery.
type DeliveryRecord struct {
	ID              string    `json:"_id"`
	FoodName        string    `json:"foodName"`
	Quantity        Quantity  `json:"quantity"`
	DeliveryAddress string    `json:"deliveryAddress"`
	DeliveryImage   string    `json:"deliveryImage,omitempty"`
	DeliveryNotes   string    `json:"deliveryNotes,omitempty"`
	DeliveredAt     Timestamp `json:"deliveredAt"`
}
