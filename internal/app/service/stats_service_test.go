package service

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"chain_stats/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ethereumDef = entity.NetworkDefinition{Identifier: "ethereum", PriceFeedID: "ethereum", RPCURL: "http://eth"}

func newStatsFixture() (*fakeClient, *fakeClientProvider, *fakePrices) {
	client := &fakeClient{
		netDef: ethereumDef,
		block:  entity.BlockSummary{Number: big.NewInt(19_000_000), Timestamp: 1_700_000_000, TransactionCount: 150},
		fees: entity.FeeData{
			GasPrice:             big.NewInt(12_345_600_000),
			MaxFeePerGas:         big.NewInt(21_500_000_000),
			MaxPriorityFeePerGas: big.NewInt(0),
		},
	}
	provider := &fakeClientProvider{clients: map[string]*fakeClient{"ethereum": client}}
	prices := &fakePrices{prices: map[string]float64{"ethereum": 3000}}
	return client, provider, prices
}

func TestGetChainStats(t *testing.T) {
	client, provider, prices := newStatsFixture()
	svc := NewStatsService(fakeNetworks{"ethereum": ethereumDef}, provider, prices, nopLogger{})

	stats, err := svc.GetChainStats(context.Background(), "ethereum")
	require.NoError(t, err)

	assert.Equal(t, &entity.ChainStats{
		BlockNumber:      "19000000",
		Timestamp:        1_700_000_000,
		TransactionCount: 150,
		GasPrice: entity.GasPriceTiers{
			Slow:    "12.35",
			Average: "21.50",
			Fast:    "0.00",
		},
		NativeCoinPriceUSD: "3000",
	}, stats)
	assert.True(t, client.closed.Load(), "client is closed after the request")
}

func TestGetChainStats_UnsupportedChain(t *testing.T) {
	_, provider, prices := newStatsFixture()
	svc := NewStatsService(fakeNetworks{"ethereum": ethereumDef}, provider, prices, nopLogger{})

	_, err := svc.GetChainStats(context.Background(), "solana")
	assert.ErrorIs(t, err, entity.ErrUnsupportedChain)
	assert.Equal(t, 0, provider.calls)
	assert.Equal(t, int32(0), prices.calls.Load())
}

func TestGetChainStats_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeClient, *fakeClientProvider, *fakePrices)
	}{
		{"block fails", func(c *fakeClient, _ *fakeClientProvider, _ *fakePrices) { c.blockErr = errors.New("boom") }},
		{"fee data fails", func(c *fakeClient, _ *fakeClientProvider, _ *fakePrices) { c.feesErr = errors.New("no base fee") }},
		{"price missing", func(_ *fakeClient, _ *fakeClientProvider, p *fakePrices) { p.prices = map[string]float64{} }},
		{"client unavailable", func(_ *fakeClient, cp *fakeClientProvider, _ *fakePrices) { cp.err = errors.New("dial failed") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, provider, prices := newStatsFixture()
			tt.setup(client, provider, prices)
			svc := NewStatsService(fakeNetworks{"ethereum": ethereumDef}, provider, prices, nopLogger{})

			stats, err := svc.GetChainStats(context.Background(), "ethereum")
			assert.Nil(t, stats)
			assert.ErrorIs(t, err, entity.ErrUpstreamFailure)
		})
	}
}
