package utils

import (
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatBigInt converts a raw integer amount into a human-readable decimal string,
// considering the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
// Trailing zeros are dropped and whole values carry no fractional part.
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// FormatGwei converts a wei amount to gwei rounded half away from zero to two decimals.
// Example: 12345600000 => "12.35"
func FormatGwei(wei *big.Int) string {
	if wei == nil {
		return "0.00"
	}
	return decimal.NewFromBigInt(wei, -9).StringFixed(2)
}

// FormatPrice renders a price with the shortest representation that round-trips.
// Example: 3120.55 => "3120.55", 3000 => "3000"
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
