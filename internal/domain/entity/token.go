package entity

import "math/big"

// TokenProbe holds the ERC-20 metadata and wallet balance read from a token contract.
type TokenProbe struct {
	TokenAddress string
	Symbol       string
	Decimals     uint8
	Balance      *big.Int
}
