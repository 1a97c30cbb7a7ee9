package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Referral is an append-only edge recording that ReferrerID brought in
// ReferredID. A user is referred at most once, hence the unique index.
type Referral struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReferrerID uuid.UUID `gorm:"type:uuid;not null;index" json:"referrer_id"`
	ReferredID uuid.UUID `gorm:"type:uuid;not null;unique" json:"referred_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
