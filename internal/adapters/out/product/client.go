// Package product provides the HTTP client for the product service.
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"orderservice/internal/core/ports"

	"github.com/hashicorp/go-retryablehttp"
)

// Client fetches product data from the product service over HTTP.
// Used on the read path only; callers degrade gracefully when it fails.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// NewClient creates a product service client for the given base address.
func NewClient(baseURL string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 2
	httpClient.RetryWaitMin = 100 * time.Millisecond
	httpClient.RetryWaitMax = time.Second
	httpClient.HTTPClient.Timeout = 3 * time.Second
	httpClient.Logger = nil

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type productResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

type getProductsResponse struct {
	Products []productResponse `json:"products"`
}

// GetByIDs fetches product data for the given ids. Products the service does
// not know are simply absent from the result.
func (c *Client) GetByIDs(ctx context.Context, ids []int64) ([]ports.Product, error) {
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, strconv.FormatInt(id, 10))
	}

	url := c.baseURL + "/api/products?ids=" + strings.Join(idStrings, ",")
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create products request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product service: %w: %w", ports.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product service: %w: unexpected status %d",
			ports.ErrServiceUnavailable, resp.StatusCode)
	}

	var result getProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	products := make([]ports.Product, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, ports.Product{
			ID:       p.ID,
			Name:     p.Name,
			ImageURL: p.ImageURL,
		})
	}

	return products, nil
}
