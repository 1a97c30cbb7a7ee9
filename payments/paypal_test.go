package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(apiBase string) *PayPalClient {
	return &PayPalClient{
		APIBase:      apiBase,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Currency:     "USD",
		HTTPClient:   &http.Client{Timeout: 2 * time.Second},
	}
}

func TestCreateOrder(t *testing.T) {
	var capturedOrder map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "client-id", user)
			require.Equal(t, "client-secret", pass)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"token-123"}`))
		case "/v2/checkout/orders":
			require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedOrder))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"ORDER-XYZ","status":"CREATED"}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	order, err := client.CreateOrder(25, "Starter Web Hosting Package (Activation Fee)")
	require.NoError(t, err)
	require.Equal(t, "ORDER-XYZ", order.ID)
	require.Equal(t, "CREATED", order.Status)

	require.Equal(t, "CAPTURE", capturedOrder["intent"])
	units := capturedOrder["purchase_units"].([]any)
	require.Len(t, units, 1)
	unit := units[0].(map[string]any)
	require.Equal(t, "Starter Web Hosting Package (Activation Fee)", unit["description"])
	amount := unit["amount"].(map[string]any)
	require.Equal(t, "USD", amount["currency_code"])
	require.Equal(t, "25.00", amount["value"])
}

func TestCreateOrderTokenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateOrder(25, "anything")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to get access token")
}

func TestCreateOrderRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			w.Write([]byte(`{"access_token":"token-123"}`))
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateOrder(25, "anything")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create order")
}
