package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/session"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// RequireSession sends anonymous browsers to the login page.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !session.FromContext(c).Authenticated() {
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
