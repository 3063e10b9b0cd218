package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PaymentGateway creates client-usable payment handles. The server never
// interprets the handle beyond passing the client secret through.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (*PaymentIntent, error)
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// StripePayments talks to Stripe's payment-intents REST endpoint directly.
type StripePayments struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

func NewStripePayments(apiKey string) *StripePayments {
	return &StripePayments{
		APIKey:   strings.TrimSpace(apiKey),
		Endpoint: "https://api.stripe.com/v1/payment_intents",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type stripePaymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

func (p *StripePayments) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (*PaymentIntent, error) {
	if p == nil || p.APIKey == "" {
		return nil, fmt.Errorf("missing STRIPE_SECRET_KEY")
	}
	if amountCents <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stripe payment intent http %d", resp.StatusCode)
	}

	var out stripePaymentIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ClientSecret == "" {
		return nil, fmt.Errorf("stripe response missing client_secret")
	}

	return &PaymentIntent{ID: out.ID, ClientSecret: out.ClientSecret}, nil
}
