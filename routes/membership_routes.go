package routes

import (
	"github.com/anjiri1684/stackfit/handlers"
	"github.com/anjiri1684/stackfit/middleware"
	"github.com/gofiber/fiber/v2"
)

func MembershipRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/memberships", handlers.ListMembershipPlans)

	memberships := api.Group("/memberships", middleware.Protected(), middleware.AdminRequired())
	memberships.Get("/stats", handlers.GetMembershipPlanStats)
	memberships.Get("/:id", handlers.GetMembershipPlan)
	memberships.Post("", handlers.CreateMembershipPlan)
	memberships.Put("/:id", handlers.UpdateMembershipPlan)
	memberships.Delete("/:id", handlers.DeleteMembershipPlan)
}
