package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/api/dto"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/geo"
	"github.com/zerohunger/portal/internal/service"
	"github.com/zerohunger/portal/internal/session"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// AuthHandler serves the login, registration and logout pages.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	if _, err := h.auth.Login(c.UserContext(), session.FromContext(c), form.Email, form.Password); err != nil {
		return formFailed(c, err, "login", fiber.Map{"Email": form.Email})
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{
		"Form":      dto.RegisterForm{Role: string(domain.RoleDonor)},
		"GeoStatus": "",
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	err := h.auth.Register(c.UserContext(), session.FromContext(c), service.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		Role:     domain.Role(form.Role),
		Address:  form.Address,
		Lat:      form.Lat,
		Lng:      form.Lng,
		GeoError: form.GeoError,
	})
	if err != nil {
		geoStatus := ""
		if form.GeoError != 0 {
			geoStatus = geo.StatusMessage(form.GeoError)
		}
		form.Password = ""
		return formFailed(c, err, "register", fiber.Map{"Form": form, "GeoStatus": geoStatus})
	}
	return redirectWithFlash(c, "/login", service.MsgRegistrationComplete)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(session.FromContext(c))
	return c.Redirect("/login", fiber.StatusSeeOther)
}
