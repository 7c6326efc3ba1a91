package backend

import "github.com/zerohunger/portal/internal/domain"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
	Role     domain.Role     `json:"role"`
	Address  string          `json:"address"`
	Location domain.Location `json:"location"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the credential and role issued by the backend.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	Role        domain.Role `json:"role"`
}

// AddFoodRequest is the body of POST /api/food/add.
type AddFoodRequest struct {
	FoodName         string              `json:"foodName"`
	Quantity         string              `json:"quantity"`
	FoodType         domain.FoodType     `json:"foodType"`
	ItemCategory     domain.FoodCategory `json:"itemCategory"`
	ExpiryTime       string              `json:"expiryTime"`
	Location         domain.Location     `json:"location"`
	Address          string              `json:"address"`
	IsSameAsLocation bool                `json:"isSameAsLocation"`
	Image            string              `json:"image"`
}

// UpdateFoodRequest is the body of PUT /api/food/update/{id}.
type UpdateFoodRequest struct {
	FoodName   string `json:"foodName"`
	Quantity   string `json:"quantity"`
	ExpiryTime string `json:"expiryTime"`
	Address    string `json:"address"`
}

// DeliverRequest is the body of POST /api/food/deliver/{id}.
type DeliverRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	DeliveryImage   string `json:"deliveryImage"`
	DeliveryNotes   string `json:"deliveryNotes"`
}
