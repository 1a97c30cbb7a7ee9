package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/seobrain/hosting_affiliate/handlers"
	"github.com/seobrain/hosting_affiliate/models"
	"github.com/seobrain/hosting_affiliate/payments"
	"github.com/seobrain/hosting_affiliate/routes"
	"github.com/seobrain/hosting_affiliate/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const platformUsername = "seobrain"

type stubGateway struct {
	orders int
	err    error
}

func (s *stubGateway) CreateOrder(amount float64, description string) (*payments.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.orders++
	return &payments.Order{ID: fmt.Sprintf("ORDER-%d", s.orders), Status: "CREATED"}, nil
}

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	gateway  *stubGateway
	platform models.User
	pkg      models.Package
}

func newTestEnv(t *testing.T, webhookSecret string) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)

	platform := models.User{
		Email:     "ops@seobrain.io",
		Username:  platformUsername,
		FirstName: "Platform",
		Role:      models.RoleAdmin,
	}
	require.NoError(t, db.Create(&platform).Error)

	pkg := models.Package{Name: "Starter", Price: 25.00, DailyPaymentAmount: 0.50}
	require.NoError(t, db.Create(&pkg).Error)

	gateway := &stubGateway{}
	h := &routes.Handlers{
		Registration: &handlers.RegistrationHandler{DB: db, PlatformUsername: platformUsername},
		Referral:     &handlers.ReferralHandler{DB: db},
		Payment:      &handlers.PaymentHandler{DB: db, Gateway: gateway, PlatformUsername: platformUsername},
		Webhook:      &handlers.WebhookHandler{DB: db, Secret: webhookSecret},
		Payout:       &handlers.PayoutHandler{DB: db, PlatformUsername: platformUsername},
	}

	app := fiber.New()
	routes.PublicRoutes(app, h)

	return &testEnv{app: app, db: db, gateway: gateway, platform: platform, pkg: pkg}
}

func (e *testEnv) request(t *testing.T, method, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}
