package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seobrain/hosting_affiliate/middleware"
)

func AdminRoutes(app *fiber.App, h *Handlers, jwtSecret string) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)

	admin := api.Group("/admin", middleware.Protected(jwtSecret), middleware.AdminRequired())
	admin.Get("/payments", h.Admin.ListPayments)
	admin.Get("/users", h.Admin.ListUsers)
	admin.Post("/run-daily-charges", h.Admin.RunDailyCharges)
}
