package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Package is a hosting tier from the catalog. Catalog rows are seeded at
// startup and never mutated by request handlers.
type Package struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name               string    `gorm:"size:100;not null;unique" json:"name"`
	Price              float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	DailyPaymentAmount float64   `gorm:"type:numeric(10,2);not null" json:"daily_payment_amount"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
