package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/zerohunger/portal/internal/domain"
)

func foodPath(action, id string) string {
	return "/api/food/" + action + "/" + url.PathEscape(id)
}

func (c *Client) message(ctx context.Context, caller Caller, op call) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, caller, op, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func listOf[T any](ctx context.Context, c *Client, caller Caller, operation, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, caller, call{operation: operation, method: http.MethodGet, path: path}, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

func objectOf[T any](ctx context.Context, c *Client, caller Caller, operation, path string) (*T, error) {
	var out T
	if err := c.do(ctx, caller, call{operation: operation, method: http.MethodGet, path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddFood posts a new listing for the signed-in donor.
func (c *Client) AddFood(ctx context.Context, caller Caller, req AddFoodRequest) (*MessageResponse, error) {
	return c.message(ctx, caller, call{operation: "add_food", method: http.MethodPost, path: "/api/food/add", body: req})
}

// MyFoods lists the donor's own listings.
func (c *Client) MyFoods(ctx context.Context, caller Caller) ([]domain.FoodListing, error) {
	return listOf[domain.FoodListing](ctx, c, caller, "my_foods", "/api/food/my-foods")
}

// UpdateFood edits a listing.
func (c *Client) UpdateFood(ctx context.Context, caller Caller, id string, req UpdateFoodRequest) (*MessageResponse, error) {
	return c.message(ctx, caller, call{operation: "update_food", method: http.MethodPut, path: foodPath("update", id), body: req})
}

// DeleteFood removes a listing.
func (c *Client) DeleteFood(ctx context.Context, caller Caller, id string) (*MessageResponse, error) {
	return c.message(ctx, caller, call{operation: "delete_food", method: http.MethodDelete, path: foodPath("delete", id)})
}

// DonorStats returns counters over the donor's listings.
func (c *Client) DonorStats(ctx context.Context, caller Caller) (*domain.DonorStats, error) {
	return objectOf[domain.DonorStats](ctx, c, caller, "donor_stats", "/api/food/donor-stats")
}

// DonorProfile returns the signed-in donor.
func (c *Client) DonorProfile(ctx context.Context, caller Caller) (*domain.Profile, error) {
	return objectOf[domain.Profile](ctx, c, caller, "donor_profile", "/api/food/donor/profile")
}

// AvailableFoods lists listings open for reservation.
func (c *Client) AvailableFoods(ctx context.Context, caller Caller) ([]domain.FoodListing, error) {
	return listOf[domain.FoodListing](ctx, c, caller, "available_foods", "/api/food/available")
}

// ReserveFood moves a listing from available to reserved for the volunteer.
func (c *Client) ReserveFood(ctx context.Context, caller Caller, id string) (*MessageResponse, error) {
	return c.message(ctx, caller, call{operation: "reserve_food", method: http.MethodPost, path: foodPath("reserve", id)})
}

// UnreserveFood returns a reserved listing to available.
func (c *Client) UnreserveFood(ctx context.Context, caller Caller, id string) (*MessageResponse, error) {
	return c.message(ctx, caller, call{operation: "unreserve_food", method: http.MethodPost, path: foodPath("unreserve", id)})
}

// PickFood marks a reserved listing as picked up.
func (c *Client) PickFood(ctx context.Context, caller Caller, id string) (*MessageResponse, error) {
	return c.message(ctx, caller, call{operation: "pick_food", method: http.MethodPost, path: foodPath("pick", id)})
}

// MyCart lists the volunteer's reserved and picked listings.
func (c *Client) MyCart(ctx context.Context, caller Caller) ([]domain.FoodListing, error) {
	return listOf[domain.FoodListing](ctx, c, caller, "my_cart", "/api/food/my-cart")
}

// DeliverFood completes a picked listing with proof of delivery.
func (c *Client) DeliverFood(ctx context.Context, caller Caller, id string, req DeliverRequest) (*MessageResponse, error) {
	return c.message(ctx, caller, call{operation: "deliver_food", method: http.MethodPost, path: foodPath("deliver", id), body: req})
}

// VolunteerProfile returns the signed-in volunteer with karma counters.
func (c *Client) VolunteerProfile(ctx context.Context, caller Caller) (*domain.Profile, error) {
	return objectOf[domain.Profile](ctx, c, caller, "volunteer_profile", "/api/food/volunteer/profile")
}

// VolunteerDeliveries lists the volunteer's completed deliveries.
func (c *Client) VolunteerDeliveries(ctx context.Context, caller Caller) ([]domain.DeliveryRecord, error) {
	return listOf[domain.DeliveryRecord](ctx, c, caller, "volunteer_deliveries", "/api/food/volunteer/deliveries")
}

// PlatformStats returns platform-wide counters for signed-in users.
func (c *Client) PlatformStats(ctx context.Context, caller Caller) (*domain.PlatformStats, error) {
	return objectOf[domain.PlatformStats](ctx, c, caller, "platform_stats", "/api/food/platform/stats")
}

// PublicStats returns the counters shown on the welcome page.
func (c *Client) PublicStats(ctx context.Context, caller Caller) (*domain.PublicStats, error) {
	return objectOf[domain.PublicStats](ctx, c, caller, "public_stats", "/api/food/public/stats")
}

// PublicDonors lists donors shown on the welcome page.
func (c *Client) PublicDonors(ctx context.Context, caller Caller) ([]domain.PublicMember, error) {
	return listOf[domain.PublicMember](ctx, c, caller, "public_donors", "/api/food/public/donors")
}

// PublicVolunteers lists volunteers shown on the welcome page.
func (c *Client) PublicVolunteers(ctx context.Context, caller Caller) ([]domain.PublicMember, error) {
	return listOf[domain.PublicMember](ctx, c, caller, "public_volunteers", "/api/food/public/volunteers")
}

// PublicDeliveries lists recent deliveries shown on the welcome page.
func (c *Client) PublicDeliveries(ctx context.Context, caller Caller) ([]domain.DeliveryRecord, error) {
	return listOf[domain.DeliveryRecord](ctx, c, caller, "public_deliveries", "/api/food/public/deliveries")
}
