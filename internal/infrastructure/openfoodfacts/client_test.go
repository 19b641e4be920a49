package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient serves every country from srv; the country is sent as the
// first path segment.
func newTestClient(srv *httptest.Server, countries ...string) *Client {
	return NewClient(Config{
		BaseURL:   srv.URL + "/%s",
		Countries: countries,
		UserAgent: "inventory-test",
		Timeout:   5 * time.Second,
	})
}

func TestLookup_FoundPrefersGermanName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "inventory-test", r.UserAgent())
		assert.Equal(t, "/ch/api/v0/product/7610200337184.json", r.URL.Path)
		assert.Equal(t, fields, r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Milk","product_name_de":"Milch","quantity":"1 l"}}`))
	}))
	defer srv.Close()

	product, found, err := newTestClient(srv, "ch", "world").Lookup(context.Background(), "7610200337184")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Milch", product.Name)
	assert.Equal(t, "1 l", product.Quantity)
}

func TestLookup_FallsBackToNextCountry(t *testing.T) {
	var (
		mu    sync.Mutex
		asked []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		country := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")[0]
		mu.Lock()
		asked = append(asked, country)
		mu.Unlock()
		if country == "ch" {
			_, _ = w.Write([]byte(`{"status":0}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":1,"product":{"product_name":"Pasta","quantity":"500 g"}}`))
	}))
	defer srv.Close()

	product, found, err := newTestClient(srv, "ch", "world").Lookup(context.Background(), "8076800195057")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Pasta", product.Name)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ch", "world"}, asked)
}

func TestLookup_NotFoundAnywhere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
	}))
	defer srv.Close()

	_, found, err := newTestClient(srv, "ch", "world").Lookup(context.Background(), "00000000")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLookup_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv, "ch").Lookup(context.Background(), "12345678")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLookup_TooManyRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv, "ch").Lookup(context.Background(), "12345678")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirects")
}

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, Config{BaseURL: "https://%s.example"}.Validate(), ErrNoCountries)
	assert.Error(t, Config{BaseURL: "https://example", Countries: []string{"ch"}}.Validate())
	assert.NoError(t, Config{BaseURL: "https://%s.example", Countries: []string{"ch"}}.Validate())
}
