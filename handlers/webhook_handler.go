package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/seobrain/hosting_affiliate/models"
	"gorm.io/gorm"
)

type paypalEvent struct {
	EventType string `json:"event_type"`
	Resource  struct {
		ID string `json:"id"`
	} `json:"resource"`
}

type WebhookHandler struct {
	DB *gorm.DB
	// Secret is the shared webhook signing secret. When empty, signature
	// verification is skipped entirely; only acceptable for local
	// development.
	Secret string
}

// HandlePayPalWebhook verifies and applies gateway payment notifications.
// Completed-capture events stamp the payment date on the matching pending
// payment; every other event type is acknowledged without mutation so
// unrecognized but valid gateway events are never rejected.
func (h *WebhookHandler) HandlePayPalWebhook(c *fiber.Ctx) error {
	body := c.Body()

	if h.Secret != "" {
		mac := hmac.New(sha256.New, []byte(h.Secret))
		mac.Write(body)
		expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

		provided := c.Get("Paypal-Transmission-Sig")
		if !hmac.Equal([]byte(expected), []byte(provided)) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid webhook signature"})
		}
	}

	var event paypalEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	switch event.EventType {
	case "CHECKOUT.ORDER.APPROVED", "PAYMENT.CAPTURE.COMPLETED":
		var payment models.Payment
		if err := h.DB.Where("paypal_txn_id = ?", event.Resource.ID).First(&payment).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		}

		if payment.PaymentDate != nil {
			return c.JSON(fiber.Map{"message": "Payment already recorded"})
		}

		now := time.Now().UTC()
		payment.PaymentDate = &now
		if err := h.DB.Save(&payment).Error; err != nil {
			log.Printf("🔥 Failed to record payment completion for order %s: %v", event.Resource.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
		}

		return c.JSON(fiber.Map{"message": "Payment recorded"})
	}

	return c.JSON(fiber.Map{"message": "Event received"})
}
