package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	config "github.com/seobrain/hosting_affiliate/configs"
)

// OrderCreator is the gateway contract consumed by payment initiation and
// the daily charge sweep.
type OrderCreator interface {
	CreateOrder(amount float64, description string) (*Order, error)
}

type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []Link `json:"links,omitempty"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// PayPalClient talks to the PayPal REST v2 checkout API. The embedded HTTP
// client carries a bounded timeout so a slow gateway surfaces as a
// retryable error instead of hanging the request.
type PayPalClient struct {
	APIBase      string
	ClientID     string
	ClientSecret string
	Currency     string
	HTTPClient   *http.Client
}

func NewPayPalClientFromEnv() *PayPalClient {
	return &PayPalClient{
		APIBase:      config.Config("PAYPAL_API_BASE_URL"),
		ClientID:     config.Config("PAYPAL_CLIENT_ID"),
		ClientSecret: config.Config("PAYPAL_CLIENT_SECRET"),
		Currency:     config.ConfigOr("PAYPAL_CURRENCY", "USD"),
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *PayPalClient) getAccessToken() (string, error) {
	reqBody := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/oauth2/token", p.APIBase), reqBody)
	if err != nil {
		return "", err
	}

	req.SetBasicAuth(p.ClientID, p.ClientSecret)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get access token, status: %s", resp.Status)
	}

	var tokenResp accessTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}

	return tokenResp.AccessToken, nil
}

func (p *PayPalClient) CreateOrder(amount float64, description string) (*Order, error) {
	accessToken, err := p.getAccessToken()
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"description": description,
				"amount": map[string]string{
					"currency_code": p.Currency,
					"value":         fmt.Sprintf("%.2f", amount),
				},
			},
		},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v2/checkout/orders", p.APIBase), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create order: %s", string(respBody))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}
