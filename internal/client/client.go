// Package client is the widget side of the edge API: it fetches the
// per-product payload the server renders and rebuilds the catalog graph
// locally so the selection machine can react to the shopper without
// another round trip.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ayase-dev/otodoke/internal/contract"
	"github.com/ayase-dev/otodoke/internal/delivery"
	"github.com/ayase-dev/otodoke/internal/domain"
)

// Client talks to one edge API deployment. The locale mirrors the host
// page's language attribute and rides every request as Accept-Language.
type Client struct {
	baseURL string
	tag     domain.Locale
	http    *http.Client
}

// New creates a Client for the given base URL, e.g. "http://localhost:8700".
func New(baseURL string, tag domain.Locale) *Client {
	return &Client{
		baseURL: baseURL,
		tag:     tag,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
			Timeout: 15 * time.Second,
		},
	}
}

// FetchProduct loads one product's detail payload.
func (c *Client) FetchProduct(ctx context.Context, productID string) (*contract.ProductView, error) {
	var view contract.ProductView
	if err := c.getJSON(ctx, "/api/products/"+productID, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// FetchProducts loads the product summaries for pickers.
func (c *Client) FetchProducts(ctx context.Context) ([]contract.ProductSummaryView, error) {
	var body struct {
		Items []contract.ProductSummaryView `json:"items"`
	}
	if err := c.getJSON(ctx, "/api/products", &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

// FetchDelivery loads the delivery report for one product.
func (c *Client) FetchDelivery(ctx context.Context, productID string, onlyDelaying bool) (*delivery.Report, error) {
	path := "/api/products/" + productID + "/delivery"
	if !onlyDelaying {
		path += "?filter=false"
	}
	var report delivery.Report
	if err := c.getJSON(ctx, path, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", c.tag.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransientFetchError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= 500:
		return &TransientFetchError{Path: path, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &TransientFetchError{Path: path, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
