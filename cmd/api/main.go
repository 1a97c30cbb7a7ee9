package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	config "github.com/seobrain/hosting_affiliate/configs"
	"github.com/seobrain/hosting_affiliate/database"
	"github.com/seobrain/hosting_affiliate/handlers"
	"github.com/seobrain/hosting_affiliate/jobs"
	"github.com/seobrain/hosting_affiliate/notifications"
	"github.com/seobrain/hosting_affiliate/payments"
	"github.com/seobrain/hosting_affiliate/routes"
)

func main() {
	db, err := database.Connect(config.Config("DATABASE_URL"))
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 %v", err)
	}

	platformUsername := config.ConfigOr("PLATFORM_USERNAME", "seobrain")
	err = database.SeedPlatformAccount(db,
		platformUsername,
		config.Config("PLATFORM_EMAIL"),
		config.Config("PLATFORM_PASSWORD"),
	)
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	if err := database.SeedPackages(db); err != nil {
		log.Fatalf("🔥 %v", err)
	}

	mailer := notifications.NewEmailServiceFromEnv()
	gateway := payments.NewPayPalClientFromEnv()
	jwtSecret := config.Config("JWT_SECRET")

	chargeJob := &jobs.DailyChargeJob{DB: db, Gateway: gateway}
	c := cron.New()
	c.AddFunc("0 0 * * *", chargeJob.Run)
	go c.Start()
	log.Println("✅ Cron job for daily charges scheduled successfully.")

	h := &routes.Handlers{
		Registration: &handlers.RegistrationHandler{DB: db, Mailer: mailer, PlatformUsername: platformUsername},
		Referral:     &handlers.ReferralHandler{DB: db},
		Payment:      &handlers.PaymentHandler{DB: db, Gateway: gateway, PlatformUsername: platformUsername},
		Webhook:      &handlers.WebhookHandler{DB: db, Secret: config.Config("PAYPAL_WEBHOOK_SECRET")},
		Payout:       &handlers.PayoutHandler{DB: db, Mailer: mailer, PlatformUsername: platformUsername},
		Auth:         &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret},
		Admin:        &handlers.AdminHandler{DB: db, ChargeJob: chargeJob},
	}

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Hosting Affiliate",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Paypal-Transmission-Id, Paypal-Transmission-Time, Paypal-Transmission-Sig, Paypal-Cert-Url, Paypal-Auth-Algo",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "API is running!",
		})
	})

	routes.PublicRoutes(app, h)
	routes.AdminRoutes(app, h, jwtSecret)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
