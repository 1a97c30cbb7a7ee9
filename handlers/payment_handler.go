package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/seobrain/hosting_affiliate/models"
	"github.com/seobrain/hosting_affiliate/payments"
	"gorm.io/gorm"
)

type PayRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	PackageID   string `json:"package_id" validate:"required,uuid"`
	PaymentType string `json:"payment_type" validate:"omitempty,oneof=activation daily"`
}

type PaymentHandler struct {
	DB               *gorm.DB
	Gateway          payments.OrderCreator
	PlatformUsername string
}

// InitiatePayment creates a PayPal order and a matching pending payment
// row. Activation fees flow from the user to the platform account; daily
// fees flow from the user's referrer to the user. The payment stays
// pending (no payment date) until webhook reconciliation confirms it.
func (h *PaymentHandler) InitiatePayment(c *fiber.Ctx) error {
	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeActivation
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	var pkg models.Package
	if err := h.DB.First(&pkg, "id = ?", req.PackageID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
	}

	var amount float64
	var payerID, payeeID = user.ID, user.ID
	var feeLabel string

	switch paymentType {
	case models.PaymentTypeDaily:
		if user.ReferrerID == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User has no referrer"})
		}
		amount = pkg.DailyPaymentAmount
		payerID = *user.ReferrerID
		feeLabel = "Daily"
	default:
		var platform models.User
		if err := h.DB.Where("username = ?", h.PlatformUsername).First(&platform).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Platform account not configured"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
		amount = pkg.Price
		payeeID = platform.ID
		feeLabel = "Activation"
	}

	description := fmt.Sprintf("%s Web Hosting Package (%s Fee)", pkg.Name, feeLabel)
	order, err := h.Gateway.CreateOrder(amount, description)
	if err != nil {
		log.Printf("🔥 PayPal CreateOrder API call failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create PayPal order"})
	}

	payment := models.Payment{
		PayerID:     payerID,
		PayeeID:     payeeID,
		PackageID:   pkg.ID,
		Amount:      amount,
		PaymentType: paymentType,
		PaypalTxnID: &order.ID,
	}
	if err := h.DB.Create(&payment).Error; err != nil {
		log.Printf("🔥 Failed to record pending payment for order %s: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.JSON(fiber.Map{"paypal_order": order})
}
