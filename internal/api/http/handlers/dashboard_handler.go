package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/auth"
	"github.com/zerohunger/portal/internal/session"
)

// DashboardHandler picks the role view for /dashboard.
type DashboardHandler struct {
	donor     *DonorHandler
	volunteer *VolunteerHandler
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(donor *DonorHandler, volunteer *VolunteerHandler) *DashboardHandler {
	return &DashboardHandler{donor: donor, volunteer: volunteer}
}

// Dashboard handles GET /dashboard. The decision uses only the stored role.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	switch auth.DashboardFor(string(session.FromContext(c).Role)) {
	case auth.DashboardDonor:
		return h.donor.Dashboard(c)
	case auth.DashboardVolunteer:
		return h.volunteer.Dashboard(c)
	default:
		return Unauthorized(c)
	}
}

// Unauthorized renders the page shown for a missing or unknown role.
func Unauthorized(c *fiber.Ctx) error {
	c.Status(fiber.StatusForbidden)
	return render(c, "unauthorized", fiber.Map{})
}
