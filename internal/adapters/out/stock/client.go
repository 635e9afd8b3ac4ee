// Package stock provides the HTTP client for the stock service.
package stock

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

// Client checks product availability in the stock service over HTTP.
// One batch request covers all items of an order.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// NewClient creates a stock service client for the given base address.
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

type availabilityRequestItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type availabilityRequest struct {
	OrderID string                    `json:"orderId"`
	Items   []availabilityRequestItem `json:"items"`
}

type availabilityResponseItem struct {
	ProductID int64 `json:"productId"`
	Available bool  `json:"available"`
}

type availabilityResponse struct {
	Items []availabilityResponseItem `json:"items"`
}

// CheckAvailability submits one batch availability request for all items of an
// order, keyed by the order id.
func (c *Client) CheckAvailability(
	ctx context.Context,
	orderID kernel.OrderID,
	items []ports.StockCheckItem,
) ([]ports.StockAvailability, error) {
	request := availabilityRequest{
		OrderID: orderID.String(),
		Items:   make([]availabilityRequestItem, 0, len(items)),
	}
	for _, item := range items {
		request.Items = append(request.Items, availabilityRequestItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal availability request: %w", err)
	}

	url := c.baseURL + "/api/stock/availability"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create availability request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock service: %w: %w", ports.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock service: %w: unexpected status %d",
			ports.ErrServiceUnavailable, resp.StatusCode)
	}

	var result availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode availability response: %w", err)
	}

	availability := make([]ports.StockAvailability, 0, len(result.Items))
	for _, item := range result.Items {
		availability = append(availability, ports.StockAvailability{
			ProductID: item.ProductID,
			Available: item.Available,
		})
	}

	return availability, nil
}
