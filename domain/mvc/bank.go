package mvc

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankUsecase represent the token ledger usecases
type BankUsecase interface {
	GetBalances(ctx context.Context, address string) (sdk.Coins, error)
	Approve(ctx context.Context, owner, spender string, coin sdk.Coin) error
	Transfer(ctx context.Context, from, to string, coin sdk.Coin) error
	// Mint credits new coins to address. It is only used by genesis and tests.
	Mint(ctx context.Context, address string, coins ...sdk.Coin) error
}
