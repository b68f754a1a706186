package routes

import (
	"github.com/anjiri1684/stackfit/handlers"
	"github.com/anjiri1684/stackfit/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func AttendanceRoutes(app *fiber.App) {
	api := app.Group("/api")

	attendance := api.Group("/attendance", middleware.Protected())
	attendance.Get("", handlers.ListAttendance)
	attendance.Get("/today", handlers.GetTodayAttendance)
	attendance.Get("/stats", handlers.GetAttendanceStats)
	attendance.Post("", middleware.AdminRequired(), handlers.MarkAttendance)
	attendance.Post("/bulk", middleware.AdminRequired(), handlers.BulkMarkAttendance)
	attendance.Put("/:id", middleware.AdminRequired(), handlers.UpdateAttendance)

	api.Use("/ws/checkins", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/checkins", websocket.New(handlers.ServeCheckinFeed))
}
