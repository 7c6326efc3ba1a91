package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/api/dto"
	"github.com/zerohunger/portal/internal/service"
	"github.com/zerohunger/portal/internal/session"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// SyncHandler answers the dashboard's foodUpdated poll.
type SyncHandler struct {
	updates *service.FoodUpdates
}

// NewSyncHandler constructs handler.
func NewSyncHandler(updates *service.FoodUpdates) *SyncHandler {
	return &SyncHandler{updates: updates}
}

// FoodUpdated handles GET /sync/food-updated?since=<unix-ms>.
func (h *SyncHandler) FoodUpdated(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	if !sess.Authenticated() {
		return apperrors.NewUnauthorized("login required")
	}
	var q dto.SyncQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("since must be unix milliseconds", nil)
	}
	state, err := h.updates.Since(c.UserContext(), sess.ID, q.Since)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(state)
}
