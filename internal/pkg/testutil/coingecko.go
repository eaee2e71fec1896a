package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// PriceAPI is a fake CoinGecko /simple/price endpoint.
type PriceAPI struct {
	server *httptest.Server
	prices map[string]float64
	hits   atomic.Int64
	// header name and value of the latest demo or pro API key
	lastAPIKey atomic.Value
}

// NewPriceAPI starts a fake price API serving the given USD prices keyed by coin id.
func NewPriceAPI(t testing.TB, prices map[string]float64) *PriceAPI {
	t.Helper()
	p := &PriceAPI{prices: prices}
	p.lastAPIKey.Store("")
	p.server = httptest.NewServer(http.HandlerFunc(p.serveHTTP))
	t.Cleanup(p.server.Close)
	return p
}

// URL returns the base URL to configure the client with.
func (p *PriceAPI) URL() string {
	return p.server.URL
}

// Hits returns the number of requests served.
func (p *PriceAPI) Hits() int {
	return int(p.hits.Load())
}

// LastAPIKey returns the API key header of the latest request, prefixed with the header name.
func (p *PriceAPI) LastAPIKey() string {
	return p.lastAPIKey.Load().(string)
}

func (p *PriceAPI) serveHTTP(w http.ResponseWriter, r *http.Request) {
	p.hits.Add(1)
	if key := r.Header.Get("x-cg-demo-api-key"); key != "" {
		p.lastAPIKey.Store("x-cg-demo-api-key:" + key)
	}
	if key := r.Header.Get("x-cg-pro-api-key"); key != "" {
		p.lastAPIKey.Store("x-cg-pro-api-key:" + key)
	}

	if r.URL.Path != "/simple/price" {
		http.NotFound(w, r)
		return
	}

	currency := r.URL.Query().Get("vs_currencies")
	body := make(map[string]map[string]float64)
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if price, ok := p.prices[id]; ok {
			body[id] = map[string]float64{currency: price}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
