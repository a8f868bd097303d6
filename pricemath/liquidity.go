package pricemath

import "github.com/holiman/uint256"

// GetLiquidityForAmount0 returns the liquidity that amount0 of token0 provides over [sqrtA, sqrtB],
// rounded down:
// amount0 * (sqrtA * sqrtB / 2^96) / (sqrtB - sqrtA)
func GetLiquidityForAmount0(sqrtA, sqrtB, amount0 *uint256.Int) (*uint256.Int, error) {
	sqrtA, sqrtB = sortSqrtPrices(sqrtA, sqrtB)
	if sqrtA.Eq(sqrtB) {
		return nil, ErrDivisionByZero
	}

	intermediate, err := MulDiv(sqrtA, sqrtB, Q96)
	if err != nil {
		return nil, err
	}

	liquidity, err := MulDiv(amount0, intermediate, new(uint256.Int).Sub(sqrtB, sqrtA))
	if err != nil {
		return nil, err
	}

	return checkLiquidity(liquidity)
}

// GetLiquidityForAmount1 returns the liquidity that amount1 of token1 provides over [sqrtA, sqrtB],
// rounded down:
// amount1 * 2^96 / (sqrtB - sqrtA)
func GetLiquidityForAmount1(sqrtA, sqrtB, amount1 *uint256.Int) (*uint256.Int, error) {
	sqrtA, sqrtB = sortSqrtPrices(sqrtA, sqrtB)
	if sqrtA.Eq(sqrtB) {
		return nil, ErrDivisionByZero
	}

	liquidity, err := MulDiv(amount1, Q96, new(uint256.Int).Sub(sqrtB, sqrtA))
	if err != nil {
		return nil, err
	}

	return checkLiquidity(liquidity)
}

// GetLiquidityForAmounts returns the maximum liquidity obtainable from amount0 and amount1
// over [sqrtA, sqrtB] given the current price sqrtPrice.
func GetLiquidityForAmounts(sqrtPrice, sqrtA, sqrtB, amount0, amount1 *uint256.Int) (*uint256.Int, error) {
	sqrtA, sqrtB = sortSqrtPrices(sqrtA, sqrtB)

	if !sqrtPrice.Gt(sqrtA) {
		return GetLiquidityForAmount0(sqrtA, sqrtB, amount0)
	}

	if sqrtPrice.Lt(sqrtB) {
		liquidity0, err := GetLiquidityForAmount0(sqrtPrice, sqrtB, amount0)
		if err != nil {
			return nil, err
		}
		liquidity1, err := GetLiquidityForAmount1(sqrtA, sqrtPrice, amount1)
		if err != nil {
			return nil, err
		}
		return Min(liquidity0, liquidity1), nil
	}

	return GetLiquidityForAmount1(sqrtA, sqrtB, amount1)
}

func checkLiquidity(liquidity *uint256.Int) (*uint256.Int, error) {
	if liquidity.BitLen() > MaxLiquidityBits {
		return nil, ErrArithmeticOverflow
	}
	return liquidity, nil
}
