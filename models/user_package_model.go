package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserPackage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	PackageID uuid.UUID `gorm:"type:uuid;not null" json:"package_id"`

	DailyPaymentActive    bool       `gorm:"not null;default:false" json:"daily_payment_active"`
	DailyPaymentStartDate *time.Time `json:"daily_payment_start_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (up *UserPackage) BeforeCreate(tx *gorm.DB) error {
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	return nil
}
