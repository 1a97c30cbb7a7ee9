package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seobrain/hosting_affiliate/handlers"
)

// Handlers bundles the request handlers wired in main so route
// registration stays a single call per surface.
type Handlers struct {
	Registration *handlers.RegistrationHandler
	Referral     *handlers.ReferralHandler
	Payment      *handlers.PaymentHandler
	Webhook      *handlers.WebhookHandler
	Payout       *handlers.PayoutHandler
	Auth         *handlers.AuthHandler
	Admin        *handlers.AdminHandler
}

// PublicRoutes registers the affiliate program surface. Paths are kept
// exactly as the clients already integrated against them.
func PublicRoutes(app *fiber.App, h *Handlers) {
	app.Post("/register", h.Registration.Register)
	app.Get("/referrals/:userId", h.Referral.GetReferralCount)
	app.Post("/pay", h.Payment.InitiatePayment)
	app.Post("/activate-daily/:userId", h.Payout.ActivateDaily)
	app.Post("/webhook/paypal", h.Webhook.HandlePayPalWebhook)
}
