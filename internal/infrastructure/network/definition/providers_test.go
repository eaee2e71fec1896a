package networkdefinition

import (
	"os"
	"path/filepath"
	"testing"

	"chain_stats/internal/infrastructure/configloader"
	"chain_stats/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNetworkDefinitionProvider_BuiltIns(t *testing.T) {
	p, err := NewNetworkDefinitionProvider(&configloader.Config{}, logger.NewSlogAdapter())
	require.NoError(t, err)

	defs := p.GetAllNetworkDefinitions()
	identifiers := make([]string, 0, len(defs))
	for _, def := range defs {
		identifiers = append(identifiers, def.Identifier)
	}
	assert.Equal(t, []string{"arbitrum", "avalanche", "base", "bsc", "ethereum", "polygon"}, identifiers)

	eth, ok := p.GetNetworkDefinitionByName("ethereum")
	require.True(t, ok)
	assert.Equal(t, uint64(1), eth.ChainID)
	assert.Equal(t, "ethereum", eth.PriceFeedID)
	assert.Len(t, eth.TokenAddresses, 4)

	_, ok = p.GetNetworkDefinitionByName("solana")
	assert.False(t, ok)
}

func TestGetNetworkDefinitionByName_IgnoresCase(t *testing.T) {
	p, err := NewNetworkDefinitionProvider(&configloader.Config{}, logger.NewSlogAdapter())
	require.NoError(t, err)

	def, ok := p.GetNetworkDefinitionByName("Polygon")
	require.True(t, ok)
	assert.Equal(t, "polygon", def.Identifier)
}

func TestGetNetworkDefinitionByName_ReturnsCopy(t *testing.T) {
	p, err := NewNetworkDefinitionProvider(&configloader.Config{}, logger.NewSlogAdapter())
	require.NoError(t, err)

	def, _ := p.GetNetworkDefinitionByName("ethereum")
	def.TokenAddresses[0] = "mutated"

	again, _ := p.GetNetworkDefinitionByName("ethereum")
	assert.Equal(t, Ethereum.TokenAddresses[0], again.TokenAddresses[0])
}

func TestNewNetworkDefinitionProvider_OverridesAndAdditions(t *testing.T) {
	tokensFile := filepath.Join(t.TempDir(), "extra.json")
	require.NoError(t, os.WriteFile(tokensFile, []byte(`["0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"]`), 0o600))

	cfg := &configloader.Config{
		EnabledNetworks: []string{"ethereum", "Optimism"},
		Networks: []configloader.NetworkNodeConfig{
			{
				Name:   "ethereum",
				RPCURL: "http://localhost:8545",
				Tokens: []string{"0x6B175474E89094C44Da98b954EedeAC495271d0F"},
			},
			{
				Name:         "optimism",
				ChainID:      10,
				NativeSymbol: "ETH",
				RPCURL:       "http://localhost:9545",
				PriceFeedID:  "ethereum",
				TokensFile:   tokensFile,
			},
		},
	}

	p, err := NewNetworkDefinitionProvider(cfg, logger.NewSlogAdapter())
	require.NoError(t, err)
	require.Len(t, p.GetAllNetworkDefinitions(), 2)

	eth, ok := p.GetNetworkDefinitionByName("ethereum")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8545", eth.RPCURL)
	assert.Equal(t, "Ethereum Mainnet", eth.Name, "unset fields keep the built-in value")
	assert.Equal(t, []string{"0x6B175474E89094C44Da98b954EedeAC495271d0F"}, eth.TokenAddresses)

	op, ok := p.GetNetworkDefinitionByName("optimism")
	require.True(t, ok)
	assert.Equal(t, uint64(10), op.ChainID)
	assert.Equal(t, []string{"0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"}, op.TokenAddresses)

	_, ok = p.GetNetworkDefinitionByName("polygon")
	assert.False(t, ok, "networks outside enabledNetworks are not served")
}

func TestNewNetworkDefinitionProvider_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  *configloader.Config
	}{
		{
			name: "new network without rpc url",
			cfg: &configloader.Config{Networks: []configloader.NetworkNodeConfig{
				{Name: "custom", PriceFeedID: "ethereum"},
			}},
		},
		{
			name: "new network without price feed id",
			cfg: &configloader.Config{Networks: []configloader.NetworkNodeConfig{
				{Name: "custom", RPCURL: "http://localhost:8545"},
			}},
		},
		{
			name: "unknown enabled network",
			cfg:  &configloader.Config{EnabledNetworks: []string{"solana"}},
		},
		{
			name: "missing tokens file",
			cfg: &configloader.Config{Networks: []configloader.NetworkNodeConfig{
				{Name: "ethereum", TokensFile: filepath.Join(t.TempDir(), "missing.json")},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNetworkDefinitionProvider(tt.cfg, logger.NewSlogAdapter())
			assert.Error(t, err)
		})
	}
}
