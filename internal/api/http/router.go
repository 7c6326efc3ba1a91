package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/api/http/handlers"
	"github.com/zerohunger/portal/internal/auth"
	"github.com/zerohunger/portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Welcome   *handlers.WelcomeHandler
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Donor     *handlers.DonorHandler
	Volunteer *handlers.VolunteerHandler
	Sync      *handlers.SyncHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Get("/", cfg.Welcome.Welcome)
	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/register", cfg.Auth.RegisterPage)
	app.Post("/register", cfg.Auth.Register)
	app.Post("/logout", cfg.Auth.Logout)

	app.Get("/dashboard", cfg.Dashboard.Dashboard)
	app.Get("/sync/food-updated", cfg.Sync.FoodUpdated)

	donor := app.Group("/donor", auth.RequireRole(domain.RoleDonor))
	donor.Get("/add-food", cfg.Donor.AddFoodPage)
	donor.Post("/add-food", cfg.Donor.AddFood)
	donor.Get("/my-foods", cfg.Donor.MyFoods)
	donor.Post("/foods/:id/update", cfg.Donor.UpdateFood)
	donor.Post("/foods/:id/delete", cfg.Donor.DeleteFood)

	volunteer := app.Group("/volunteer", auth.RequireRole(domain.RoleVolunteer))
	volunteer.Get("/dashboard", cfg.Volunteer.Dashboard)
	volunteer.Post("/foods/:id/reserve", cfg.Volunteer.Reserve)
	volunteer.Get("/cart", cfg.Volunteer.Cart)
	volunteer.Post("/cart/:id/pick", cfg.Volunteer.Pick)
	volunteer.Post("/cart/:id/remove", cfg.Volunteer.Remove)
	volunteer.Post("/cart/:id/deliver", cfg.Volunteer.Deliver)
	volunteer.Get("/profile", cfg.Volunteer.Profile)
}
