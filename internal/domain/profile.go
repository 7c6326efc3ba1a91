package domain

import "time"

// Profile describes the signed-in donor or volunteer.
type Profile struct {
	ID                  string    `json:"_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Role                Role      `json:"role"`
	CreatedAt           time.Time `json:"createdAt"`
	KarmaPoints         int       `json:"karmaPoints"`
	DeliveriesCompleted int       `json:"deliveriesCompleted"`
}

// PublicMember is a community member shown on the welcome page.
type PublicMember struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
