package domain

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// Bank is the token ledger every component settles through.
type Bank interface {
	// Balance returns the balance of address in denom.
	Balance(address, denom string) osmomath.Int
	// Transfer moves coin from one account to another.
	Transfer(from, to string, coin sdk.Coin) error
	// TransferFrom moves coin out of from on behalf of spender, consuming the allowance
	// from granted to spender.
	TransferFrom(spender, from, to string, coin sdk.Coin) error
}
