package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port            string `yaml:"port"`
	ReadTimeout     int    `yaml:"readTimeout"`     // seconds
	WriteTimeout    int    `yaml:"writeTimeout"`    // seconds
	IdleTimeout     int    `yaml:"idleTimeout"`     // seconds
	ShutdownTimeout int    `yaml:"shutdownTimeout"` // seconds
	DefaultChain    string `yaml:"defaultChain"`    // served by the legacy GET /api/stats
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // "json" or "console"
}

// CoinGeckoConfig holds CoinGecko API specific configurations.
type CoinGeckoConfig struct {
	APIKey               string `yaml:"apiKey"`
	ProAPI               bool   `yaml:"proAPI"`
	BaseURL              string `yaml:"baseURL"`
	ClientTimeoutSeconds int    `yaml:"clientTimeoutSeconds"`
	VsCurrency           string `yaml:"vsCurrency"`
}

// RPCClientConfig holds settings shared by all JSON-RPC clients.
type RPCClientConfig struct {
	CallTimeoutSeconds int `yaml:"callTimeoutSeconds"`
}

// NetworkNodeConfig holds configuration for a specific blockchain network.
// Zero fields keep the value of the built-in network with the same name.
type NetworkNodeConfig struct {
	Name         string   `yaml:"name"`         // e.g., "ethereum"
	ChainID      uint64   `yaml:"chainID"`      // e.g., 1 for Ethereum
	DisplayName  string   `yaml:"displayName"`  // e.g., "Ethereum Mainnet"
	NativeSymbol string   `yaml:"nativeSymbol"` // e.g., "ETH"
	RPCURL       string   `yaml:"rpcURL"`       // e.g., "https://eth.llamarpc.com"
	PriceFeedID  string   `yaml:"priceFeedID"`  // CoinGecko coin id, e.g., "ethereum"
	Tokens       []string `yaml:"tokens"`       // replaces the built-in token list when set
	TokensFile   string   `yaml:"tokensFile"`   // JSON file with additional token addresses
}

// Config is the top-level configuration structure.
type Config struct {
	Server          ServerConfig        `yaml:"server"`
	Logging         LoggingConfig       `yaml:"logging"`
	CoinGecko       CoinGeckoConfig     `yaml:"coinGecko"`
	RPCClient       RPCClientConfig     `yaml:"rpcClient"`
	EnabledNetworks []string            `yaml:"enabledNetworks"`
	Networks        []NetworkNodeConfig `yaml:"networks"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
// A missing file is not an error: the returned config carries defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.WithField("path", path).Warn("Config file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":5000"
		logrus.WithField("port", cfg.Server.Port).Info("server.port not set, using default")
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 5
	}
	if cfg.Server.DefaultChain == "" {
		cfg.Server.DefaultChain = "ethereum"
		logrus.WithField("defaultChain", cfg.Server.DefaultChain).Info("server.defaultChain not set, using default")
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Encoding == "" {
		cfg.Logging.Encoding = "json"
	}

	if cfg.CoinGecko.BaseURL == "" {
		if cfg.CoinGecko.ProAPI {
			cfg.CoinGecko.BaseURL = "https://pro-api.coingecko.com/api/v3"
		} else {
			cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3" // Default public API
		}
		logrus.WithField("baseURL", cfg.CoinGecko.BaseURL).Info("coinGecko.baseURL not set, using default")
	}
	if cfg.CoinGecko.ClientTimeoutSeconds <= 0 {
		cfg.CoinGecko.ClientTimeoutSeconds = 10
		logrus.WithField("seconds", cfg.CoinGecko.ClientTimeoutSeconds).Info("coinGecko.clientTimeoutSeconds not set, using default")
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}

	if cfg.RPCClient.CallTimeoutSeconds <= 0 {
		cfg.RPCClient.CallTimeoutSeconds = 10
		logrus.WithField("seconds", cfg.RPCClient.CallTimeoutSeconds).Info("rpcClient.callTimeoutSeconds not set, using default")
	}
}

// Validate checks the fields defaults cannot repair.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Networks))
	for i, network := range c.Networks {
		if network.Name == "" {
			return fmt.Errorf("networks[%d]: name is required", i)
		}
		if _, dup := seen[network.Name]; dup {
			return fmt.Errorf("networks[%d]: duplicate network %q", i, network.Name)
		}
		seen[network.Name] = struct{}{}
	}
	return nil
}
