package pricemath

import (
	"github.com/holiman/uint256"
)

func sortSqrtPrices(sqrtA, sqrtB *uint256.Int) (*uint256.Int, *uint256.Int) {
	if sqrtA.Gt(sqrtB) {
		return sqrtB, sqrtA
	}
	return sqrtA, sqrtB
}

// GetAmount0Delta returns the amount of token0 required to cover a position of size liquidity
// between the two square-root prices:
// liquidity * 2^96 * (sqrtB - sqrtA) / sqrtB / sqrtA
func GetAmount0Delta(sqrtA, sqrtB, liquidity *uint256.Int, roundUp bool) (*uint256.Int, error) {
	sqrtA, sqrtB = sortSqrtPrices(sqrtA, sqrtB)

	if sqrtA.IsZero() {
		return nil, ErrDivisionByZero
	}
	if liquidity.BitLen() > MaxLiquidityBits {
		return nil, ErrArithmeticOverflow
	}

	numerator1 := new(uint256.Int).Lsh(liquidity, Resolution)
	numerator2 := new(uint256.Int).Sub(sqrtB, sqrtA)

	if roundUp {
		intermediate, err := MulDivRoundingUp(numerator1, numerator2, sqrtB)
		if err != nil {
			return nil, err
		}
		return DivRoundingUp(intermediate, sqrtA)
	}

	intermediate, err := MulDiv(numerator1, numerator2, sqrtB)
	if err != nil {
		return nil, err
	}
	return intermediate.Div(intermediate, sqrtA), nil
}

// GetAmount1Delta returns the amount of token1 required to cover a position of size liquidity
// between the two square-root prices:
// liquidity * (sqrtB - sqrtA) / 2^96
func GetAmount1Delta(sqrtA, sqrtB, liquidity *uint256.Int, roundUp bool) (*uint256.Int, error) {
	sqrtA, sqrtB = sortSqrtPrices(sqrtA, sqrtB)

	if liquidity.BitLen() > MaxLiquidityBits {
		return nil, ErrArithmeticOverflow
	}

	delta := new(uint256.Int).Sub(sqrtB, sqrtA)
	if roundUp {
		return MulDivRoundingUp(liquidity, delta, Q96)
	}
	return MulDiv(liquidity, delta, Q96)
}

// AmountDeltaForPriceMove returns both token deltas of liquidity moving between the two prices.
func AmountDeltaForPriceMove(sqrtA, sqrtB, liquidity *uint256.Int, roundUp bool) (amount0 *uint256.Int, amount1 *uint256.Int, err error) {
	amount0, err = GetAmount0Delta(sqrtA, sqrtB, liquidity, roundUp)
	if err != nil {
		return nil, nil, err
	}

	amount1, err = GetAmount1Delta(sqrtA, sqrtB, liquidity, roundUp)
	if err != nil {
		return nil, nil, err
	}

	return amount0, amount1, nil
}

// GetAmountsForLiquidity returns the token amounts held by liquidity in [sqrtA, sqrtB]
// at the current price sqrtPrice, rounded down.
func GetAmountsForLiquidity(sqrtPrice, sqrtA, sqrtB, liquidity *uint256.Int) (amount0 *uint256.Int, amount1 *uint256.Int, err error) {
	sqrtA, sqrtB = sortSqrtPrices(sqrtA, sqrtB)

	switch {
	case !sqrtPrice.Gt(sqrtA):
		amount0, err = GetAmount0Delta(sqrtA, sqrtB, liquidity, false)
		if err != nil {
			return nil, nil, err
		}
		return amount0, new(uint256.Int), nil
	case sqrtPrice.Lt(sqrtB):
		amount0, err = GetAmount0Delta(sqrtPrice, sqrtB, liquidity, false)
		if err != nil {
			return nil, nil, err
		}
		amount1, err = GetAmount1Delta(sqrtA, sqrtPrice, liquidity, false)
		if err != nil {
			return nil, nil, err
		}
		return amount0, amount1, nil
	default:
		amount1, err = GetAmount1Delta(sqrtA, sqrtB, liquidity, false)
		if err != nil {
			return nil, nil, err
		}
		return new(uint256.Int), amount1, nil
	}
}
