package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/session"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// Dashboard names the view a role lands on.
type Dashboard string

const (
	DashboardDonor        Dashboard = "donor"
	DashboardVolunteer    Dashboard = "volunteer"
	DashboardUnauthorized Dashboard = "unauthorized"
)

// DashboardFor maps a stored role to its dashboard. It never calls the backend.
func DashboardFor(role string) Dashboard {
	switch domain.Role(role) {
	case domain.RoleDonor:
		return DashboardDonor
	case domain.RoleVolunteer:
		return DashboardVolunteer
	default:
		return DashboardUnauthorized
	}
}

// RequireRole ensures the session is signed in with the given role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session.FromContext(c)
		if !sess.Authenticated() {
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}
		if sess.Role != role {
			return apperrors.NewForbidden("Unauthorized")
		}
		return c.Next()
	}
}
