package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/seobrain/hosting_affiliate/models"
	"github.com/stretchr/testify/require"
)

// seedReferredUser creates a user referred by referrerID, with the
// referral edge and, when paid is set, a settled activation fee to the
// platform account.
func seedReferredUser(t *testing.T, e *testEnv, referrerID uuid.UUID, n int, paid bool) models.User {
	t.Helper()

	user := models.User{
		Email:      fmt.Sprintf("referred%d@example.com", n),
		Username:   fmt.Sprintf("referred%d", n),
		FirstName:  "Referred",
		ReferrerID: &referrerID,
	}
	require.NoError(t, e.db.Create(&user).Error)
	require.NoError(t, e.db.Create(&models.Referral{ReferrerID: referrerID, ReferredID: user.ID}).Error)

	if paid {
		now := time.Now().UTC()
		fee := models.Payment{
			PayerID:     user.ID,
			PayeeID:     e.platform.ID,
			PackageID:   e.pkg.ID,
			Amount:      e.pkg.Price,
			PaymentType: models.PaymentTypeActivation,
			PaymentDate: &now,
		}
		require.NoError(t, e.db.Create(&fee).Error)
	}
	return user
}

func seedReferrer(t *testing.T, e *testEnv) models.User {
	t.Helper()

	referrer := models.User{Email: "referrer@example.com", Username: "referrer", FirstName: "Rita"}
	require.NoError(t, e.db.Create(&referrer).Error)
	require.NoError(t, e.db.Create(&models.UserPackage{UserID: referrer.ID, PackageID: e.pkg.ID}).Error)
	return referrer
}

func TestActivateDailyUnknownUser(t *testing.T) {
	e := newTestEnv(t, "")

	resp, body := e.request(t, http.MethodPost, "/activate-daily/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "User not found", body["error"])
}

func TestActivateDailyNoReferrals(t *testing.T) {
	e := newTestEnv(t, "")
	referrer := seedReferrer(t, e)

	resp, body := e.request(t, http.MethodPost, "/activate-daily/"+referrer.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Not enough paid referrals", body["message"])
	require.EqualValues(t, 0, body["paid_count"])
}

func TestActivateDailyCountsOnlyPaidReferrals(t *testing.T) {
	e := newTestEnv(t, "")
	referrer := seedReferrer(t, e)

	seedReferredUser(t, e, referrer.ID, 1, true)
	seedReferredUser(t, e, referrer.ID, 2, true)
	seedReferredUser(t, e, referrer.ID, 3, false)

	resp, body := e.request(t, http.MethodPost, "/activate-daily/"+referrer.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Not enough paid referrals", body["message"])
	require.EqualValues(t, 2, body["paid_count"])

	var assignment models.UserPackage
	require.NoError(t, e.db.Where("user_id = ?", referrer.ID).First(&assignment).Error)
	require.False(t, assignment.DailyPaymentActive)
}

func TestActivateDailyIgnoresPendingFees(t *testing.T) {
	e := newTestEnv(t, "")
	referrer := seedReferrer(t, e)

	// Three referred users whose activation fees were initiated through
	// the gateway but never confirmed by webhook.
	for i := 1; i <= 3; i++ {
		user := seedReferredUser(t, e, referrer.ID, i, false)
		orderID := fmt.Sprintf("UNCONFIRMED-%d", i)
		fee := models.Payment{
			PayerID:     user.ID,
			PayeeID:     e.platform.ID,
			PackageID:   e.pkg.ID,
			Amount:      e.pkg.Price,
			PaymentType: models.PaymentTypeActivation,
			PaypalTxnID: &orderID,
		}
		require.NoError(t, e.db.Create(&fee).Error)
	}

	resp, body := e.request(t, http.MethodPost, "/activate-daily/"+referrer.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Not enough paid referrals", body["message"])
	require.EqualValues(t, 0, body["paid_count"])

	var assignment models.UserPackage
	require.NoError(t, e.db.Where("user_id = ?", referrer.ID).First(&assignment).Error)
	require.False(t, assignment.DailyPaymentActive)
}

func TestActivateDailyWithoutUserPackage(t *testing.T) {
	e := newTestEnv(t, "")

	referrer := models.User{Email: "lost@example.com", Username: "lost", FirstName: "Lost"}
	require.NoError(t, e.db.Create(&referrer).Error)
	for i := 1; i <= 3; i++ {
		seedReferredUser(t, e, referrer.ID, i, true)
	}

	resp, body := e.request(t, http.MethodPost, "/activate-daily/"+referrer.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "User package not found", body["error"])
}

func TestActivateDailyAtThresholdIsOneWay(t *testing.T) {
	e := newTestEnv(t, "")
	referrer := seedReferrer(t, e)

	for i := 1; i <= 3; i++ {
		seedReferredUser(t, e, referrer.ID, i, true)
	}

	resp, body := e.request(t, http.MethodPost, "/activate-daily/"+referrer.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Daily payments activated", body["message"])

	var assignment models.UserPackage
	require.NoError(t, e.db.Where("user_id = ?", referrer.ID).First(&assignment).Error)
	require.True(t, assignment.DailyPaymentActive)
	require.NotNil(t, assignment.DailyPaymentStartDate)
	started := *assignment.DailyPaymentStartDate

	resp, body = e.request(t, http.MethodPost, "/activate-daily/"+referrer.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Already active", body["message"])

	require.NoError(t, e.db.Where("user_id = ?", referrer.ID).First(&assignment).Error)
	require.True(t, assignment.DailyPaymentActive)
	require.True(t, assignment.DailyPaymentStartDate.Equal(started))
}
