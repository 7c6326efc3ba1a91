package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/api/dto"
	"github.com/zerohunger/portal/internal/service"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

const (
	volunteerDashboardPath = "/volunteer/dashboard"
	cartPath               = "/volunteer/cart"
)

// VolunteerHandler serves the volunteer pages.
type VolunteerHandler struct {
	volunteer *service.VolunteerService
	maxImage  int64
}

// NewVolunteerHandler constructs handler.
func NewVolunteerHandler(volunteerService *service.VolunteerService, maxImageBytes int64) *VolunteerHandler {
	return &VolunteerHandler{volunteer: volunteerService, maxImage: maxImageBytes}
}

// Dashboard handles GET /volunteer/dashboard.
func (h *VolunteerHandler) Dashboard(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	view, err := h.volunteer.Dashboard(c.UserContext(), callerOf(c), service.AvailableQuery{Search: q.Search, Category: q.Category, Page: q.Page})
	if err != nil {
		return err
	}
	return render(c, "volunteer/dashboard", fiber.Map{"View": view})
}

// Reserve handles POST /volunteer/foods/:id/reserve.
func (h *VolunteerHandler) Reserve(c *fiber.Ctx) error {
	if err := h.volunteer.Reserve(c.UserContext(), callerOf(c), c.Params("id")); err != nil {
		return actionFailed(c, err, volunteerDashboardPath)
	}
	return redirectWithFlash(c, volunteerDashboardPath, service.MsgReserved)
}

// Cart handles GET /volunteer/cart.
func (h *VolunteerHandler) Cart(c *fiber.Ctx) error {
	view, err := h.volunteer.Cart(c.UserContext(), callerOf(c), pageParam(c))
	if err != nil {
		return err
	}
	return render(c, "volunteer/cart", fiber.Map{"View": view})
}

// Pick handles POST /volunteer/cart/:id/pick.
func (h *VolunteerHandler) Pick(c *fiber.Ctx) error {
	if err := h.volunteer.Pick(c.UserContext(), callerOf(c), c.Params("id")); err != nil {
		return actionFailed(c, err, cartPath)
	}
	return redirectWithFlash(c, cartPath, service.MsgPicked)
}

// Remove handles POST /volunteer/cart/:id/remove.
func (h *VolunteerHandler) Remove(c *fiber.Ctx) error {
	if err := h.volunteer.Remove(c.UserContext(), callerOf(c), c.Params("id")); err != nil {
		return actionFailed(c, err, cartPath)
	}
	return redirectWithFlash(c, cartPath, service.MsgRemoved)
}

// Deliver handles POST /volunteer/cart/:id/deliver.
func (h *VolunteerHandler) Deliver(c *fiber.Ctx) error {
	var form dto.DeliverForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	image, err := uploadedImage(c, form.DeliveryImage, h.maxImage)
	if err != nil {
		return actionFailed(c, err, cartPath)
	}
	err = h.volunteer.Deliver(c.UserContext(), callerOf(c), c.Params("id"), service.DeliverInput{
		Address: form.DeliveryAddress,
		Image:   image,
		Notes:   form.DeliveryNotes,
	})
	if err != nil {
		return actionFailed(c, err, cartPath)
	}
	return redirectWithFlash(c, cartPath, service.MsgDelivered)
}

// Profile handles GET /volunteer/profile.
func (h *VolunteerHandler) Profile(c *fiber.Ctx) error {
	view, err := h.volunteer.Profile(c.UserContext(), callerOf(c), c.Query("q"), pageParam(c))
	if err != nil {
		return err
	}
	return render(c, "volunteer/profile", fiber.Map{"View": view})
}
