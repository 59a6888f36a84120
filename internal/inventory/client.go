package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ariefcatur/go-microservices-shop/internal/orders"
)

// Client queries the inventory service. One attempt per call, no retry.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ orders.InventoryChecker = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// CheckStock calls GET /api/inventory?skuCode=..&skuCode=.. keeping the
// order of the given codes. An empty 200 body yields an empty result.
func (c *Client) CheckStock(ctx context.Context, skuCodes []string) ([]orders.InventoryStatus, error) {
	q := url.Values{}
	for _, sku := range skuCodes {
		q.Add("skuCode", sku)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/inventory?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build inventory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call inventory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("inventory returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out []orders.InventoryStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode inventory response: %w", err)
	}
	return out, nil
}
