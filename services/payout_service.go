package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/seobrain/hosting_affiliate/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyPayoutThreshold is the number of referred users with a settled
// activation fee required before daily payouts unlock.
const DailyPayoutThreshold = 3

type PayoutStatus struct {
	Activated     bool
	AlreadyActive bool
	// PackageMissing reports that the user qualified but has no package
	// assignment to activate.
	PackageMissing bool
	PaidCount      int64
}

// ActivateDailyPayout counts the caller's qualifying referrals and flips
// the daily payment flag once the threshold is met. The count is a single
// aggregate join over the referral and payment ledgers; the flag flip
// happens under a row lock so concurrent activation calls for the same
// user serialize. The flag is one-way: once active it is never cleared,
// and repeated calls after activation are no-ops.
func ActivateDailyPayout(db *gorm.DB, userID uuid.UUID, platformUsername string) (*PayoutStatus, error) {
	status := &PayoutStatus{}

	err := db.Transaction(func(tx *gorm.DB) error {
		var platform models.User
		if err := tx.Where("username = ?", platformUsername).First(&platform).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No platform account means no activation fee can
				// have been collected yet.
				return nil
			}
			return err
		}

		// Only settled fees qualify: gateway-initiated activation
		// payments stay pending until webhook reconciliation stamps
		// the payment date.
		err := tx.Model(&models.Payment{}).
			Joins("JOIN referrals ON referrals.referred_id = payments.payer_id").
			Where("referrals.referrer_id = ?", userID).
			Where("payments.payee_id = ? AND payments.payment_type = ?", platform.ID, models.PaymentTypeActivation).
			Where("payments.payment_date IS NOT NULL").
			Distinct("payments.payer_id").
			Count(&status.PaidCount).Error
		if err != nil {
			return err
		}

		if status.PaidCount < DailyPayoutThreshold {
			return nil
		}

		var userPackage models.UserPackage
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&userPackage).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status.PackageMissing = true
				return nil
			}
			return err
		}

		if userPackage.DailyPaymentActive {
			status.AlreadyActive = true
			return nil
		}

		now := time.Now().UTC()
		userPackage.DailyPaymentActive = true
		userPackage.DailyPaymentStartDate = &now
		if err := tx.Save(&userPackage).Error; err != nil {
			return err
		}

		status.Activated = true
		return nil
	})

	return status, err
}
