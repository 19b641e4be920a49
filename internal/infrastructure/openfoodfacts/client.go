// Package openfoodfacts queries the Open Food Facts product database.
package openfoodfacts

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

	"inventory/internal/domain/gtin"
	"inventory/pkg/logger"
)

const (
	// maxResponseSize limits the body read from the API.
	maxResponseSize = 1 << 20
	maxRedirects    = 4
	fields          = "product_name,product_name_de,quantity"
)

var _ gtin.ProductLookup = (*Client)(nil)

// Config configures the client.
type Config struct {
	// BaseURL is a format string receiving the country code,
	// e.g. "https://%s.openfoodfacts.org".
	BaseURL   string
	Countries []string
	UserAgent string
	Timeout   time.Duration
}

// Client looks products up country by country.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName   string `json:"product_name"`
		ProductNameDE string `json:"product_name_de"`
		Quantity      string `json:"quantity"`
	} `json:"product"`
}

// Lookup asks every configured country in order and returns the first hit.
func (c *Client) Lookup(ctx context.Context, code string) (gtin.Product, bool, error) {
	for _, country := range c.cfg.Countries {
		resp, err := c.fetch(ctx, country, code)
		if err != nil {
			return gtin.Product{}, false, err
		}
		if resp.Status != 1 {
			logger.Debug(ctx, "product not listed", "gtin", code, "country", country)
			continue
		}

		name := resp.Product.ProductNameDE
		if name == "" {
			name = resp.Product.ProductName
		}
		return gtin.Product{Name: name, Quantity: resp.Product.Quantity}, true, nil
	}
	return gtin.Product{}, false, nil
}

func (c *Client) productURL(country, code string) string {
	base := strings.TrimRight(fmt.Sprintf(c.cfg.BaseURL, country), "/")
	return fmt.Sprintf("%s/api/v0/product/%s.json?fields=%s", base, url.PathEscape(code), fields)
}

func (c *Client) fetch(ctx context.Context, country, code string) (*productResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.productURL(country, code), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", country, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out productResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("query %s: unexpected status %d", country, res.StatusCode)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// ErrNoCountries is returned by Validate for a client without countries.
var ErrNoCountries = errors.New("openfoodfacts: no countries configured")

// Validate checks the configuration.
func (c Config) Validate() error {
	if len(c.Countries) == 0 {
		return ErrNoCountries
	}
	if !strings.Contains(c.BaseURL, "%s") {
		return fmt.Errorf("openfoodfacts: base url %q has no country placeholder", c.BaseURL)
	}
	return nil
}
