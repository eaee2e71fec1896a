package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidAddress reports whether s is a 20-byte hex address with an optional 0x prefix.
// All-lowercase and all-uppercase forms are accepted as is; mixed-case input
// must carry a valid EIP-55 checksum.
func IsValidAddress(s string) bool {
	if !common.IsHexAddress(s) {
		return false
	}
	body := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	mixed, err := common.NewMixedcaseAddressFromString("0x" + body)
	if err != nil {
		return false
	}
	return mixed.ValidChecksum()
}

// NormalizeAddress returns the lower-case 0x-prefixed form of a valid address.
func NormalizeAddress(s string) string {
	return strings.ToLower(common.HexToAddress(s).Hex())
}
