package pricemath

import "github.com/holiman/uint256"

const (
	// Resolution is the number of fractional bits of a Q64.96 number.
	Resolution = 96

	// MaxLiquidityBits bounds position and pool liquidity, same as a uint128.
	MaxLiquidityBits = 128

	// FeeDenominator is the unit of a pool fee tier, so 3000 is 0.3%.
	FeeDenominator uint64 = 1_000_000
)

var (
	// Q96 is 2^96, the unit of a Q64.96 value.
	Q96 = new(uint256.Int).Lsh(uint256.NewInt(1), 96)
	// Q128 is 2^128, the unit of fee growth accumulators.
	Q128 = new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	// Q192 is 2^192, Q96 squared.
	Q192 = new(uint256.Int).Lsh(uint256.NewInt(1), 192)

	// MinSqrtRatio is the sqrt price at the minimum tick.
	MinSqrtRatio = uint256.NewInt(4295128739)
	// MaxSqrtRatio is the sqrt price at the maximum tick.
	MaxSqrtRatio = uint256.MustFromDecimal("1461446703485210103287273052203988822378723970342")
)

// IsValidSqrtPrice returns true if minSqrtRatio <= sqrtPriceX96 < maxSqrtRatio.
func IsValidSqrtPrice(sqrtPriceX96 *uint256.Int) bool {
	if sqrtPriceX96 == nil {
		return false
	}
	return !sqrtPriceX96.Lt(MinSqrtRatio) && sqrtPriceX96.Lt(MaxSqrtRatio)
}
