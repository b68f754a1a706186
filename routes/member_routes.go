package routes

import (
	"github.com/anjiri1684/stackfit/handlers"
	"github.com/anjiri1684/stackfit/middleware"
	"github.com/gofiber/fiber/v2"
)

func MemberRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/members/register", handlers.RegisterMember)

	members := api.Group("/members", middleware.Protected())
	members.Get("", handlers.ListMembers)
	members.Get("/export", middleware.AdminRequired(), handlers.ExportMembers)
	members.Post("", middleware.AdminRequired(), handlers.CreateMember)
	members.Get("/:id", handlers.GetMember)
	members.Put("/:id", middleware.AdminRequired(), handlers.UpdateMember)
	members.Delete("/:id", middleware.AdminRequired(), handlers.DeleteMember)

	members.Get("/:id/attendance", handlers.GetMemberAttendance)
	members.Get("/:id/payments", handlers.GetMemberPayments)

	members.Post("/:id/pause", middleware.AdminRequired(), handlers.PauseMembership)
	members.Post("/:id/resume", middleware.AdminRequired(), handlers.ResumeMembership)
	members.Get("/:id/pauses", handlers.GetPauseHistory)
}
