package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// CheckoutClient talks to the external checkout provider. The system only
// creates an order, polls its status and records the outcome; everything
// else belongs to the provider.
type CheckoutClient interface {
	CreateOrder(ctx context.Context, memberRef string, amount float64, currency string) (*CheckoutOrder, error)
	GetOrder(ctx context.Context, orderRef string) (*CheckoutOrder, error)
}

type CheckoutOrder struct {
	OrderRef    string  `json:"order_ref"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	ApprovalURL string  `json:"approval_url,omitempty"`
}

type HTTPCheckoutClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPCheckoutClient(baseURL, apiKey string) *HTTPCheckoutClient {
	return &HTTPCheckoutClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

func (c *HTTPCheckoutClient) CreateOrder(ctx context.Context, memberRef string, amount float64, currency string) (*CheckoutOrder, error) {
	payload := map[string]any{
		"reference": memberRef,
		"amount":    amount,
		"currency":  currency,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, "create order")
}

func (c *HTTPCheckoutClient) GetOrder(ctx context.Context, orderRef string) (*CheckoutOrder, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/orders/"+orderRef, nil)
	if err != nil {
		return nil, fmt.Errorf("build order status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, "get order")
}

func (c *HTTPCheckoutClient) do(req *http.Request, action string) (*CheckoutOrder, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%s: status %d: %s", action, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var order CheckoutOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", action, err)
	}
	if order.OrderRef == "" {
		return nil, fmt.Errorf("order reference missing from %s response", action)
	}
	return &order, nil
}
