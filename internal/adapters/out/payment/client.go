// Package payment provides the HTTP client for the payment service.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/ports"

	"github.com/hashicorp/go-retryablehttp"
)

// Client authorizes and voids payments in the payment service over HTTP.
// Both operations are idempotent by order id, so retries are safe.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// NewClient creates a payment service client for the given base address.
func NewClient(baseURL string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 100 * time.Millisecond
	httpClient.RetryWaitMax = 2 * time.Second
	httpClient.HTTPClient.Timeout = 5 * time.Second
	httpClient.Logger = nil

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type authorizeRequest struct {
	OrderID    string `json:"orderId"`
	Amount     int    `json:"amount"`
	CardNumber string `json:"cardNumber"`
}

type authorizeResponse struct {
	Success bool `json:"success"`
}

// Authorize charges the given amount for the order. Re-authorizing an already
// charged order succeeds without charging again.
func (c *Client) Authorize(ctx context.Context, orderID kernel.OrderID, amount int, cardNumber string) (bool, error) {
	body, err := json.Marshal(authorizeRequest{
		OrderID:    orderID.String(),
		Amount:     amount,
		CardNumber: cardNumber,
	})
	if err != nil {
		return false, fmt.Errorf("marshal authorize request: %w", err)
	}

	url := c.baseURL + "/api/payments"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create authorize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("payment service: %w: %w", ports.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("payment service: %w: unexpected status %d",
			ports.ErrServiceUnavailable, resp.StatusCode)
	}

	var result authorizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decode authorize response: %w", err)
	}

	return result.Success, nil
}

// Cancel voids any authorization held for the order. The payment service
// answers 404 for orders it never charged; that counts as success here, which
// keeps the call idempotent.
func (c *Client) Cancel(ctx context.Context, orderID kernel.OrderID) error {
	url := fmt.Sprintf("%s/api/payments/%s", c.baseURL, orderID.String())
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("create cancel request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payment service: %w: %w", ports.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("payment service: %w: unexpected status %d",
			ports.ErrServiceUnavailable, resp.StatusCode)
	}
}
