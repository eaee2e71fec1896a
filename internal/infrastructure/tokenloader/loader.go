package tokenloader

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// tokenEntry is the object form of a token file entry.
type tokenEntry struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol,omitempty"`
}

// LoadTokenAddresses reads a JSON token file and returns the addresses in file order.
// The file is either an array of address strings or an array of objects with an "address" field.
// Addresses are returned unvalidated.
func LoadTokenAddresses(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", filePath, err)
	}

	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}

	var entries []tokenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokens from file %s: %w", filePath, err)
	}

	addresses := make([]string, 0, len(entries))
	for _, entry := range entries {
		addresses = append(addresses, entry.Address)
	}
	return addresses, nil
}
