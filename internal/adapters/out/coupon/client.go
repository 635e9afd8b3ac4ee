// Package coupon provides the HTTP client for the coupon service.
package coupon

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

// Client marks coupons as used in the coupon service over HTTP.
// Transient failures are retried with backoff; a request that keeps failing
// surfaces as ports.ErrServiceUnavailable.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// NewClient creates a coupon service client for the given base address.
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

type useRequest struct {
	OrderID string `json:"orderId"`
}

type useResponse struct {
	Consumed bool `json:"consumed"`
}

// Use marks the coupon as consumed, carrying the order id as the idempotency
// token. Returns consumed=false when a different order already used the coupon.
func (c *Client) Use(ctx context.Context, couponID int64, orderID kernel.OrderID) (bool, error) {
	body, err := json.Marshal(useRequest{OrderID: orderID.String()})
	if err != nil {
		return false, fmt.Errorf("marshal coupon use request: %w", err)
	}

	url := fmt.Sprintf("%s/api/coupons/%d/use", c.baseURL, couponID)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create coupon use request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("coupon service: %w: %w", ports.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("coupon service: %w: unexpected status %d",
			ports.ErrServiceUnavailable, resp.StatusCode)
	}

	var result useResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decode coupon use response: %w", err)
	}

	return result.Consumed, nil
}
