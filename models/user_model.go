package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"size:255;not null;unique" json:"email"`
	Username  string    `gorm:"size:100;not null;unique" json:"username"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	Role      string    `gorm:"size:20;not null;default:'member'" json:"role"`
	Password  string    `gorm:"size:255" json:"-"`

	// Weak reference to the user who brought this one in. Deleting a
	// referrer must never cascade to referred users, so there is no
	// foreign key constraint here.
	ReferrerID *uuid.UUID `gorm:"type:uuid;index" json:"referrer_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
