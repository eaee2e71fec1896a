package service

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"

	"chain_stats/internal/app/port"
	"chain_stats/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeNetworks map[string]entity.NetworkDefinition

func (f fakeNetworks) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	defs := make([]entity.NetworkDefinition, 0, len(f))
	for _, def := range f {
		defs = append(defs, def)
	}
	return defs
}

func (f fakeNetworks) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	def, ok := f[strings.ToLower(identifier)]
	return def, ok
}

type fakeTokens map[string][]string

func (f fakeTokens) GetTokenAddresses(networkIdentifier string) []string {
	return append([]string{}, f[networkIdentifier]...)
}

type fakeClient struct {
	netDef   entity.NetworkDefinition
	block    entity.BlockSummary
	blockErr error
	fees     entity.FeeData
	feesErr  error
	probes   map[string]entity.TokenProbe
	probeErr map[string]error
	closed   atomic.Bool
	probed   atomic.Int32
}

func (c *fakeClient) LatestBlock(ctx context.Context) (entity.BlockSummary, error) {
	return c.block, c.blockErr
}

func (c *fakeClient) FeeData(ctx context.Context) (entity.FeeData, error) {
	return c.fees, c.feesErr
}

func (c *fakeClient) ProbeToken(ctx context.Context, tokenAddress string, walletAddress string) (entity.TokenProbe, error) {
	c.probed.Add(1)
	if err := c.probeErr[tokenAddress]; err != nil {
		return entity.TokenProbe{}, err
	}
	probe, ok := c.probes[tokenAddress]
	if !ok {
		return entity.TokenProbe{}, errors.New("no contract")
	}
	return probe, nil
}

func (c *fakeClient) Definition() entity.NetworkDefinition { return c.netDef }

func (c *fakeClient) Close() { c.closed.Store(true) }

type fakeClientProvider struct {
	mu      sync.Mutex
	clients map[string]*fakeClient
	err     error
	calls   int
}

func (p *fakeClientProvider) GetClient(ctx context.Context, netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.clients[netDef.Identifier], nil
}

type fakePrices struct {
	prices map[string]float64
	calls  atomic.Int32
}

func (f *fakePrices) GetUSDPrice(ctx context.Context, coinID string) (float64, error) {
	f.calls.Add(1)
	price, ok := f.prices[coinID]
	if !ok {
		return 0, errors.New("price not found")
	}
	return price, nil
}

func probe(symbol string, decimals uint8, balance int64) entity.TokenProbe {
	return entity.TokenProbe{Symbol: symbol, Decimals: decimals, Balance: big.NewInt(balance)}
}
