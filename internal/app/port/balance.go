package port

import (
	"context"

	"chain_stats/internal/domain/entity"
)

// BalanceService reports the non-zero tracked token balances of a wallet.
type BalanceService interface {
	GetWalletBalances(ctx context.Context, chainName string, walletAddress string) (*entity.WalletBalances, error)
}
