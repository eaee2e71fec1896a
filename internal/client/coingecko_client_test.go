package client

import (
	"context"
	"testing"
	"time"

	"chain_stats/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCoinGeckoClient_GetUSDPrice(t *testing.T) {
	api := testutil.NewPriceAPI(t, map[string]float64{"ethereum": 3120.55, "binancecoin": 600})
	c := NewCoinGeckoClient(api.URL()+"/", "", false, "usd", 5*time.Second, zap.NewNop())

	price, err := c.GetUSDPrice(context.Background(), "ethereum")
	require.NoError(t, err)
	assert.Equal(t, 3120.55, price)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	price, err = c.GetUSDPrice(ctx, "binancecoin")
	require.NoError(t, err)
	assert.Equal(t, 600.0, price)
	assert.Equal(t, 2, api.Hits())
}

func TestCoinGeckoClient_MissingCoin(t *testing.T) {
	api := testutil.NewPriceAPI(t, map[string]float64{"ethereum": 3000})
	c := NewCoinGeckoClient(api.URL(), "", false, "usd", 5*time.Second, zap.NewNop())

	_, err := c.GetUSDPrice(context.Background(), "matic-network")
	assert.ErrorContains(t, err, "matic-network")
}

func TestCoinGeckoClient_APIKeyHeader(t *testing.T) {
	api := testutil.NewPriceAPI(t, map[string]float64{"ethereum": 3000})

	demo := NewCoinGeckoClient(api.URL(), "demo-key", false, "usd", 5*time.Second, zap.NewNop())
	_, err := demo.GetUSDPrice(context.Background(), "ethereum")
	require.NoError(t, err)
	assert.Equal(t, "x-cg-demo-api-key:demo-key", api.LastAPIKey())

	pro := NewCoinGeckoClient(api.URL(), "pro-key", true, "usd", 5*time.Second, zap.NewNop())
	_, err = pro.GetUSDPrice(context.Background(), "ethereum")
	require.NoError(t, err)
	assert.Equal(t, "x-cg-pro-api-key:pro-key", api.LastAPIKey())
}

func TestCoinGeckoClient_HTTPError(t *testing.T) {
	api := testutil.NewPriceAPI(t, nil)
	// Any path other than /simple/price answers 404.
	c := NewCoinGeckoClient(api.URL()+"/wrong", "", false, "usd", 5*time.Second, zap.NewNop())

	_, err := c.GetUSDPrice(context.Background(), "ethereum")
	assert.ErrorContains(t, err, "status 404")
}

func TestCoinGeckoClient_CancelledContext(t *testing.T) {
	api := testutil.NewPriceAPI(t, map[string]float64{"ethereum": 3000})
	c := NewCoinGeckoClient(api.URL(), "", false, "usd", 5*time.Second, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetUSDPrice(ctx, "ethereum")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, api.Hits())
}
