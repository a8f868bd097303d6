package domain

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
)

// PoolKey identifies a concentrated liquidity pool.
// Token0 is always the lexicographically smaller denom.
type PoolKey struct {
	Token0 string `json:"token0"`
	Token1 string `json:"token1"`
	Fee    uint32 `json:"fee"`
}

// NewPoolKey returns the key of the pool trading tokenA against tokenB at the given fee tier,
// with the tokens sorted.
func NewPoolKey(tokenA, tokenB string, fee uint32) PoolKey {
	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
	}
	return PoolKey{Token0: tokenA, Token1: tokenB, Fee: fee}
}

// String implements fmt.Stringer.
func (k PoolKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.Token0, k.Token1, k.Fee)
}

// Address returns the bank account that custodies the pool reserves.
func (k PoolKey) Address() string {
	return "pool/" + k.String()
}

// IsToken0 returns true if denom is the first token of the pool.
func (k PoolKey) IsToken0(denom string) bool {
	return k.Token0 == denom
}

// PoolState is a snapshot of the price state of a pool.
type PoolState struct {
	Key          PoolKey      `json:"key"`
	SqrtPriceX96 *uint256.Int `json:"sqrt_price_x96"`
	Tick         int32        `json:"tick"`
	Liquidity    *uint256.Int `json:"liquidity"`
	TickSpacing  int32        `json:"tick_spacing"`
}

// PositionInfo describes a liquidity position.
// TokensOwed includes fees accrued but not yet collected.
type PositionInfo struct {
	ID          uint64       `json:"id"`
	Owner       string       `json:"owner"`
	Key         PoolKey      `json:"key"`
	TickLower   int32        `json:"tick_lower"`
	TickUpper   int32        `json:"tick_upper"`
	Liquidity   *uint256.Int `json:"liquidity"`
	TokensOwed0 *uint256.Int `json:"tokens_owed0"`
	TokensOwed1 *uint256.Int `json:"tokens_owed1"`
}

// PayFunc is invoked during a mint with the exact amounts the pool requires.
// It must transfer them to payTo before returning.
type PayFunc func(ctx context.Context, amount0, amount1 *uint256.Int, payTo string) error

// MintParams are the parameters of a position mint.
type MintParams struct {
	Key       PoolKey
	TickLower int32
	TickUpper int32
	Liquidity *uint256.Int
	Recipient string
}

// MintResult is the outcome of a mint.
type MintResult struct {
	PositionID uint64
	Liquidity  *uint256.Int
	Amount0    *uint256.Int
	Amount1    *uint256.Int
}

// SwapParams are the parameters of an exact input swap.
type SwapParams struct {
	Key              PoolKey
	Sender           string
	Recipient        string
	TokenIn          string
	AmountIn         *uint256.Int
	AmountOutMinimum *uint256.Int
	// SqrtPriceLimitX96 is optional. The swap stops once the price reaches it.
	SqrtPriceLimitX96 *uint256.Int
}

// SwapResult is the outcome of a swap.
type SwapResult struct {
	AmountIn          *uint256.Int `json:"amount_in"`
	AmountOut         *uint256.Int `json:"amount_out"`
	SqrtPriceX96After *uint256.Int `json:"sqrt_price_x96_after"`
	TickAfter         int32        `json:"tick_after"`
}

// PoolView is a pool state enriched with display values.
type PoolView struct {
	PoolState
	// SpotPrice is the price of one whole token0 in whole token1. It is display only.
	SpotPrice string `json:"spot_price"`
	// PoolBalances are the reserves custodied by the pool account.
	PoolBalances map[string]string `json:"pool_balances"`
}
