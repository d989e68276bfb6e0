package openfoodfacts

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/scanlens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// SourceName identifies this adapter in logs and resolved records.
const SourceName = "openfoodfacts"

// Client handles communication with the Open Food Facts product API.
// The API is keyless; Open Food Facts only asks for an identifying
// User-Agent and a polite request rate.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Open Food Facts API client
func NewClient(baseURL string) *Client {
	// Open Food Facts asks product-lookup clients to stay under 100 req/min
	limiter := rate.NewLimiter(rate.Limit(1.5), 5)

	return &Client{
		httpClient:  &http.Client{},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// Name implements domain.SourceAdapter
func (c *Client) Name() string { return SourceName }

// Lookup fetches the product for a barcode and normalizes it into the
// canonical shape.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.CanonicalProduct, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorFromTransport(err), err)
	}

	reqURL := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, barcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ScanLens/1.0 (backend)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorFromTransport(err), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrorFromTransport(err), err)
	}

	if statusErr := domain.ErrorFromStatus(resp.StatusCode); statusErr != nil {
		return nil, fmt.Errorf("%w (status %d)", statusErr, resp.StatusCode)
	}

	return mapToProduct(barcode, body)
}
