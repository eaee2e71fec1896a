package entity

// TokenBalance is a non-zero token holding of a wallet.
type TokenBalance struct {
	Symbol  string `json:"symbol"`
	Balance string `json:"balance"`
}

// WalletBalances is the response payload of the balances endpoint.
type WalletBalances struct {
	Found    []TokenBalance `json:"found"`
	Searched []string       `json:"searched"`
}

// NewWalletBalances returns an empty result whose lists encode as [] rather than null.
func NewWalletBalances() *WalletBalances {
	return &WalletBalances{
		Found:    []TokenBalance{},
		Searched: []string{},
	}
}
