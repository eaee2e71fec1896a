package networkdefinition

import (
	"fmt"
	"sort"
	"strings"

	"chain_stats/internal/app/port"
	"chain_stats/internal/domain/entity"
	"chain_stats/internal/infrastructure/configloader"
	"chain_stats/internal/infrastructure/tokenloader"
)

// NetworkDefinitionProvider provides the immutable registry of supported networks.
type NetworkDefinitionProvider struct {
	logger            port.Logger
	activeNetworkDefs map[string]entity.NetworkDefinition // key: lower-case identifier
	sortedIdentifiers []string
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:      1,
		Name:         "Ethereum Mainnet",
		Identifier:   "ethereum",
		NativeSymbol: "ETH",
		RPCURL:       "https://ethereum-rpc.publicnode.com",
		PriceFeedID:  "ethereum",
		TokenAddresses: []string{
			"0xdAC17F958D2ee523a2206206994597C13D831ec7", // USDT
			"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", // USDC
			"0x6B175474E89094C44Da98b954EedeAC495271d0F", // DAI
			"0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", // WBTC
		},
	}
	Polygon = entity.NetworkDefinition{
		ChainID:      137,
		Name:         "Polygon PoS",
		Identifier:   "polygon",
		NativeSymbol: "MATIC",
		RPCURL:       "https://polygon-rpc.com/",
		PriceFeedID:  "matic-network",
		TokenAddresses: []string{
			"0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", // USDC.e
			"0xc2132D05D31c914a87C6611C10748AEb04B58e8F", // USDT
		},
	}
	BSC = entity.NetworkDefinition{
		ChainID:      56,
		Name:         "BNB Smart Chain",
		Identifier:   "bsc",
		NativeSymbol: "BNB",
		RPCURL:       "https://bsc-dataseed.binance.org/",
		PriceFeedID:  "binancecoin",
		TokenAddresses: []string{
			"0x55d398326f99059fF775485246999027B3197955", // USDT
			"0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56", // BUSD
		},
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:        42161,
		Name:           "Arbitrum One",
		Identifier:     "arbitrum",
		NativeSymbol:   "ETH",
		RPCURL:         "https://arb1.arbitrum.io/rpc",
		PriceFeedID:    "ethereum",
		TokenAddresses: []string{},
	}
	Base = entity.NetworkDefinition{
		ChainID:        8453,
		Name:           "Base Mainnet",
		Identifier:     "base",
		NativeSymbol:   "ETH",
		RPCURL:         "https://mainnet.base.org",
		PriceFeedID:    "ethereum",
		TokenAddresses: []string{},
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:        43114,
		Name:           "Avalanche C-Chain",
		Identifier:     "avalanche",
		NativeSymbol:   "AVAX",
		RPCURL:         "https://api.avax.network/ext/bc/C/rpc",
		PriceFeedID:    "avalanche-2",
		TokenAddresses: []string{},
	}
)

// builtInDefinitions returns fresh copies of the hardcoded definitions keyed by identifier.
func builtInDefinitions() map[string]entity.NetworkDefinition {
	defs := make(map[string]entity.NetworkDefinition)
	for _, def := range []entity.NetworkDefinition{Ethereum, Polygon, BSC, Arbitrum, Base, Avalanche} {
		def.TokenAddresses = append([]string(nil), def.TokenAddresses...)
		defs[def.Identifier] = def
	}
	return defs
}

// NewNetworkDefinitionProvider builds the registry from the built-in definitions,
// the networks section of the config and the enabledNetworks filter.
func NewNetworkDefinitionProvider(cfg *configloader.Config, log port.Logger) (*NetworkDefinitionProvider, error) {
	defs := builtInDefinitions()

	for _, netCfg := range cfg.Networks {
		identifier := strings.ToLower(strings.TrimSpace(netCfg.Name))
		def, known := defs[identifier]
		if !known {
			def = entity.NetworkDefinition{Identifier: identifier, Name: netCfg.Name}
			log.Debug("Adding network from config", "network", identifier)
		} else {
			log.Debug("Overriding built-in network from config", "network", identifier)
		}

		if netCfg.ChainID != 0 {
			def.ChainID = netCfg.ChainID
		}
		if netCfg.DisplayName != "" {
			def.Name = netCfg.DisplayName
		}
		if netCfg.NativeSymbol != "" {
			def.NativeSymbol = netCfg.NativeSymbol
		}
		if netCfg.RPCURL != "" {
			def.RPCURL = netCfg.RPCURL
		}
		if netCfg.PriceFeedID != "" {
			def.PriceFeedID = netCfg.PriceFeedID
		}
		if netCfg.Tokens != nil {
			def.TokenAddresses = append([]string(nil), netCfg.Tokens...)
		}
		if netCfg.TokensFile != "" {
			fromFile, err := tokenloader.LoadTokenAddresses(netCfg.TokensFile)
			if err != nil {
				return nil, fmt.Errorf("network %s: %w", identifier, err)
			}
			def.TokenAddresses = append(def.TokenAddresses, fromFile...)
			log.Info("Loaded token addresses from file", "network", identifier, "file", netCfg.TokensFile, "count", len(fromFile))
		}
		if def.TokenAddresses == nil {
			def.TokenAddresses = []string{}
		}
		defs[identifier] = def
	}

	if len(cfg.EnabledNetworks) > 0 {
		enabled := make(map[string]entity.NetworkDefinition, len(cfg.EnabledNetworks))
		for _, name := range cfg.EnabledNetworks {
			identifier := strings.ToLower(strings.TrimSpace(name))
			def, ok := defs[identifier]
			if !ok {
				return nil, fmt.Errorf("enabled network %q has no definition", name)
			}
			enabled[identifier] = def
		}
		defs = enabled
	}

	p := &NetworkDefinitionProvider{
		logger:            log,
		activeNetworkDefs: defs,
		sortedIdentifiers: make([]string, 0, len(defs)),
	}
	for identifier, def := range defs {
		if def.RPCURL == "" {
			return nil, fmt.Errorf("network %s: rpcURL is required", identifier)
		}
		if def.PriceFeedID == "" {
			return nil, fmt.Errorf("network %s: priceFeedID is required", identifier)
		}
		p.sortedIdentifiers = append(p.sortedIdentifiers, identifier)
	}
	sort.Strings(p.sortedIdentifiers)

	p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Active networks: %d", len(p.sortedIdentifiers)))
	for _, identifier := range p.sortedIdentifiers {
		netDef := p.activeNetworkDefs[identifier]
		p.logger.Debug(fmt.Sprintf("  - Active network: %s (ID: %s, ChainID: %d, PriceFeedID: %s)", netDef.Name, netDef.Identifier, netDef.ChainID, netDef.PriceFeedID))
	}
	return p, nil
}

// GetAllNetworkDefinitions returns the active network definitions sorted by identifier.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.sortedIdentifiers))
	for _, identifier := range p.sortedIdentifiers {
		defs = append(defs, copyDefinition(p.activeNetworkDefs[identifier]))
	}
	return defs
}

// GetNetworkDefinitionByName returns a specific network definition by its identifier if it's active.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.activeNetworkDefs[strings.ToLower(identifier)]
	if !ok {
		return entity.NetworkDefinition{}, false
	}
	return copyDefinition(def), true
}

func copyDefinition(def entity.NetworkDefinition) entity.NetworkDefinition {
	def.TokenAddresses = append([]string{}, def.TokenAddresses...)
	return def
}
