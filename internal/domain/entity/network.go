package entity

// NetworkDefinition holds the configuration for a specific blockchain network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	ChainID        uint64   `json:"chainId" yaml:"chainId"`
	Name           string   `json:"name" yaml:"name"`
	Identifier     string   `json:"identifier" yaml:"identifier"` // lower-case key used in routes, e.g. "ethereum", "bsc"
	NativeSymbol   string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	RPCURL         string   `json:"rpcUrl" yaml:"rpcUrl"`
	PriceFeedID    string   `json:"priceFeedId" yaml:"priceFeedId"` // CoinGecko coin id of the native coin
	TokenAddresses []string `json:"tokenAddresses" yaml:"tokenAddresses"`
}
