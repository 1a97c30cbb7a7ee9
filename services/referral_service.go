package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/seobrain/hosting_affiliate/models"
	"gorm.io/gorm"
)

// ResolveReferrer looks up the user a ref code points at. Codes are
// accepted as an email, a user id, or a username, checked in that order;
// the first match wins. An unresolvable code yields (nil, nil) so that
// registration can proceed without a referral rather than failing.
func ResolveReferrer(db *gorm.DB, refCode string) (*models.User, error) {
	if refCode == "" {
		return nil, nil
	}

	var user models.User

	err := db.Where("email = ?", refCode).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if id, parseErr := uuid.Parse(refCode); parseErr == nil {
		err = db.Where("id = ?", id).First(&user).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err = db.Where("username = ?", refCode).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, nil
}

// CountReferrals returns the number of referral edges a user owns.
func CountReferrals(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&models.Referral{}).Where("referrer_id = ?", userID).Count(&count).Error
	return count, err
}
