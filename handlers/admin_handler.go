package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/seobrain/hosting_affiliate/jobs"
	"github.com/seobrain/hosting_affiliate/models"
	"gorm.io/gorm"
)

type AdminHandler struct {
	DB        *gorm.DB
	ChargeJob *jobs.DailyChargeJob
}

func (h *AdminHandler) ListPayments(c *fiber.Ctx) error {
	var payments []models.Payment
	if err := h.DB.Order("created_at DESC").Limit(100).Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"payments": payments})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.DB.Order("created_at DESC").Limit(100).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"users": users})
}

// RunDailyCharges triggers the nightly charge sweep on demand.
func (h *AdminHandler) RunDailyCharges(c *fiber.Ctx) error {
	go h.ChargeJob.Run()
	return c.JSON(fiber.Map{"message": "Daily charge sweep started"})
}
