package routes

import (
	"github.com/anjiri1684/stackfit/handlers"
	"github.com/anjiri1684/stackfit/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/admin/login", handlers.AdminLogin)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/register", handlers.RegisterAdmin)
	admin.Get("/profile", handlers.GetAdminProfile)
	admin.Get("/dashboard-stats", handlers.GetDashboardStats)
	admin.Get("/membership-stats", handlers.GetMembershipStats)
	admin.Get("/events", handlers.GetUpcomingEvents)
	admin.Post("/events", handlers.CreateEvent)
}
