package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentTypeActivation = "activation"
	PaymentTypeDaily      = "daily"
)

// Payment records money moving between two users for a package. A payment
// is pending until PaymentDate is set; gateway-initiated payments carry the
// PayPal order id and are completed by webhook reconciliation, while the
// activation fee recorded at registration is settled immediately.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PayerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"payer_id"`
	PayeeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"payee_id"`
	PackageID uuid.UUID `gorm:"type:uuid;not null" json:"package_id"`

	Amount      float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentType string  `gorm:"size:20;not null" json:"payment_type"`

	PaypalTxnID *string    `gorm:"size:255;unique" json:"paypal_txn_id"`
	PaymentDate *time.Time `json:"payment_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
