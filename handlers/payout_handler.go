package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/seobrain/hosting_affiliate/models"
	"github.com/seobrain/hosting_affiliate/notifications"
	"github.com/seobrain/hosting_affiliate/services"
	"gorm.io/gorm"
)

type PayoutHandler struct {
	DB               *gorm.DB
	Mailer           *notifications.EmailService
	PlatformUsername string
}

// ActivateDaily checks whether the user has enough paid referrals and, if
// so, unlocks their recurring daily payout. Safe to call repeatedly.
func (h *PayoutHandler) ActivateDaily(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	status, err := services.ActivateDailyPayout(h.DB, user.ID, h.PlatformUsername)
	if err != nil {
		log.Printf("🔥 Failed to evaluate daily payout for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to evaluate daily payout"})
	}

	switch {
	case status.Activated:
		go h.Mailer.SendEmail(
			user.FirstName,
			user.Email,
			"Daily Payments Activated!",
			"<h1>Congratulations!</h1><p>Three of your referrals have paid their activation fee. Your daily payments are now active.</p>",
		)
		return c.JSON(fiber.Map{"message": "Daily payments activated"})
	case status.AlreadyActive:
		return c.JSON(fiber.Map{"message": "Already active"})
	case status.PackageMissing:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User package not found"})
	default:
		return c.JSON(fiber.Map{
			"message":    "Not enough paid referrals",
			"paid_count": status.PaidCount,
		})
	}
}
