package entity

import "math/big"

// BlockSummary is the subset of the latest block header the stats endpoint reports.
type BlockSummary struct {
	Number           *big.Int
	Timestamp        uint64
	TransactionCount int
}

// FeeData mirrors the fee estimate of an EIP-1559 chain, all values in wei.
type FeeData struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// GasPriceTiers are display buckets in gwei with two decimals.
// Slow is the gas price, Average the max fee and Fast the max priority fee; the
// tiers are labels and not ordered by magnitude.
type GasPriceTiers struct {
	Slow    string `json:"slow"`
	Average string `json:"average"`
	Fast    string `json:"fast"`
}

// ChainStats is the response payload of the stats endpoint.
type ChainStats struct {
	BlockNumber        string        `json:"blockNumber"`
	Timestamp          uint64        `json:"timestamp"`
	TransactionCount   int           `json:"transactionCount"`
	GasPrice           GasPriceTiers `json:"gasPrice"`
	NativeCoinPriceUSD string        `json:"nativeCoinPriceUsd"`
}
