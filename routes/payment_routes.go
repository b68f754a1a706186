package routes

import (
	"github.com/anjiri1684/stackfit/handlers"
	"github.com/anjiri1684/stackfit/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Stripe posts here with a signed raw body, so no auth middleware.
	api.Post("/payments/stripe-webhook", handlers.HandleStripeWebhook)
	api.Post("/payments/create-payment-intent", handlers.CreatePaymentIntentHandler)

	payments := api.Group("/payments", middleware.Protected())
	payments.Get("", handlers.ListPayments)
	payments.Get("/stats", handlers.GetPaymentStats)
	payments.Get("/due", handlers.GetDuePayments)
	payments.Get("/upcoming-renewals", handlers.GetUpcomingRenewals)
	payments.Get("/export", middleware.AdminRequired(), handlers.ExportPayments)
	payments.Post("/send-due-notifications", middleware.AdminRequired(), handlers.SendDueNotifications)
	payments.Post("", middleware.AdminRequired(), handlers.RecordPayment)
	payments.Get("/:id", handlers.GetPayment)
}
