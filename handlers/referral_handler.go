package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/seobrain/hosting_affiliate/services"
	"gorm.io/gorm"
)

type ReferralHandler struct {
	DB *gorm.DB
}

func (h *ReferralHandler) GetReferralCount(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	count, err := services.CountReferrals(h.DB, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"referral_count": count})
}
