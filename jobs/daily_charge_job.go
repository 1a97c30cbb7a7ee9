package jobs

import (
	"fmt"
	"log"

	"github.com/seobrain/hosting_affiliate/models"
	"github.com/seobrain/hosting_affiliate/payments"
	"gorm.io/gorm"
)

// DailyChargeJob creates pending daily payment orders for every active
// user-package. Payer is the user's referrer, payee the user, mirroring
// the daily branch of payment initiation; the resulting payments are
// completed later by webhook reconciliation. Per-row failures are logged
// and skipped so one bad record never stalls the sweep.
type DailyChargeJob struct {
	DB      *gorm.DB
	Gateway payments.OrderCreator
}

func (j *DailyChargeJob) Run() {
	log.Println("Running job: CollectDailyCharges...")

	var active []models.UserPackage
	if err := j.DB.Where("daily_payment_active = ?", true).Find(&active).Error; err != nil {
		log.Printf("Error loading active user packages: %v", err)
		return
	}
	if len(active) == 0 {
		return
	}

	charged := 0
	for _, userPackage := range active {
		var user models.User
		if err := j.DB.First(&user, "id = ?", userPackage.UserID).Error; err != nil {
			log.Printf("Skipping user package %s: user lookup failed: %v", userPackage.ID, err)
			continue
		}
		if user.ReferrerID == nil {
			continue
		}

		var pkg models.Package
		if err := j.DB.First(&pkg, "id = ?", userPackage.PackageID).Error; err != nil {
			log.Printf("Skipping user package %s: package lookup failed: %v", userPackage.ID, err)
			continue
		}

		description := fmt.Sprintf("%s Web Hosting Package (Daily Fee)", pkg.Name)
		order, err := j.Gateway.CreateOrder(pkg.DailyPaymentAmount, description)
		if err != nil {
			log.Printf("Skipping user package %s: gateway order failed: %v", userPackage.ID, err)
			continue
		}

		payment := models.Payment{
			PayerID:     *user.ReferrerID,
			PayeeID:     user.ID,
			PackageID:   pkg.ID,
			Amount:      pkg.DailyPaymentAmount,
			PaymentType: models.PaymentTypeDaily,
			PaypalTxnID: &order.ID,
		}
		if err := j.DB.Create(&payment).Error; err != nil {
			log.Printf("Failed to record daily payment for user %s: %v", user.ID, err)
			continue
		}
		charged++
	}

	log.Printf("Daily charge sweep complete: %d of %d active packages charged", charged, len(active))
}
