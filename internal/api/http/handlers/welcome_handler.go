package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/backend"
	"github.com/zerohunger/portal/internal/service"
	"github.com/zerohunger/portal/internal/session"
)

// WelcomeHandler serves the public landing page.
type WelcomeHandler struct {
	public *service.PublicService
}

// NewWelcomeHandler constructs handler.
func NewWelcomeHandler(publicService *service.PublicService) *WelcomeHandler {
	return &WelcomeHandler{public: publicService}
}

// Welcome handles GET /.
func (h *WelcomeHandler) Welcome(c *fiber.Ctx) error {
	view, err := h.public.Welcome(c.UserContext(), backend.CallerFor(session.FromContext(c)))
	if err != nil {
		return err
	}
	return render(c, "welcome", fiber.Map{"Welcome": view})
}
