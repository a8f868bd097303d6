package clpool

import (
	"github.com/holiman/uint256"

	"github.com/osmosis-labs/limitswap/pricemath"
)

// FeeDenominator is the denominator of pool fees, expressed in hundredths of a bip.
const FeeDenominator = pricemath.FeeDenominator

// swapStep is the outcome of a single step of a swap within one initialized tick interval.
type swapStep struct {
	sqrtPriceNextX96 *uint256.Int
	amountIn         *uint256.Int
	amountOut        *uint256.Int
	feeAmount        *uint256.Int
}

// computeSwapStep swaps amountRemaining (exact input) from sqrtCurrent towards sqrtTarget
// without crossing it.
func computeSwapStep(sqrtCurrent, sqrtTarget, liquidity, amountRemaining *uint256.Int, feePips uint32) (swapStep, error) {
	zeroForOne := !sqrtCurrent.Lt(sqrtTarget)
	feeComplement := uint256.NewInt(FeeDenominator - uint64(feePips))
	feeDenominator := uint256.NewInt(FeeDenominator)

	amountRemainingLessFee, err := pricemath.MulDiv(amountRemaining, feeComplement, feeDenominator)
	if err != nil {
		return swapStep{}, err
	}

	var amountIn *uint256.Int
	if zeroForOne {
		amountIn, err = pricemath.GetAmount0Delta(sqrtTarget, sqrtCurrent, liquidity, true)
	} else {
		amountIn, err = pricemath.GetAmount1Delta(sqrtCurrent, sqrtTarget, liquidity, true)
	}
	if err != nil {
		return swapStep{}, err
	}

	var sqrtNext *uint256.Int
	if !amountRemainingLessFee.Lt(amountIn) {
		sqrtNext = sqrtTarget.Clone()
	} else {
		sqrtNext, err = nextSqrtPriceFromInput(sqrtCurrent, liquidity, amountRemainingLessFee, zeroForOne)
		if err != nil {
			return swapStep{}, err
		}
	}

	reachedTarget := sqrtNext.Eq(sqrtTarget)

	var amountOut *uint256.Int
	if zeroForOne {
		if !reachedTarget {
			if amountIn, err = pricemath.GetAmount0Delta(sqrtNext, sqrtCurrent, liquidity, true); err != nil {
				return swapStep{}, err
			}
		}
		amountOut, err = pricemath.GetAmount1Delta(sqrtNext, sqrtCurrent, liquidity, false)
	} else {
		if !reachedTarget {
			if amountIn, err = pricemath.GetAmount1Delta(sqrtCurrent, sqrtNext, liquidity, true); err != nil {
				return swapStep{}, err
			}
		}
		amountOut, err = pricemath.GetAmount0Delta(sqrtCurrent, sqrtNext, liquidity, false)
	}
	if err != nil {
		return swapStep{}, err
	}

	var feeAmount *uint256.Int
	if !reachedTarget {
		// the remainder of the input is taken as fee
		feeAmount = new(uint256.Int).Sub(amountRemaining, amountIn)
	} else {
		feeAmount, err = pricemath.MulDivRoundingUp(amountIn, uint256.NewInt(uint64(feePips)), feeComplement)
		if err != nil {
			return swapStep{}, err
		}
	}

	return swapStep{
		sqrtPriceNextX96: sqrtNext,
		amountIn:         amountIn,
		amountOut:        amountOut,
		feeAmount:        feeAmount,
	}, nil
}

func nextSqrtPriceFromInput(sqrtPrice, liquidity, amountIn *uint256.Int, zeroForOne bool) (*uint256.Int, error) {
	if liquidity.IsZero() {
		return nil, pricemath.ErrDivisionByZero
	}

	if zeroForOne {
		return nextSqrtPriceFromAmount0RoundingUp(sqrtPrice, liquidity, amountIn)
	}
	return nextSqrtPriceFromAmount1RoundingDown(sqrtPrice, liquidity, amountIn)
}

// liquidity * sqrtPrice / (liquidity + amount * sqrtPrice)
func nextSqrtPriceFromAmount0RoundingUp(sqrtPrice, liquidity, amount *uint256.Int) (*uint256.Int, error) {
	if amount.IsZero() {
		return sqrtPrice.Clone(), nil
	}

	numerator1 := new(uint256.Int).Lsh(liquidity, pricemath.Resolution)

	product, overflow := new(uint256.Int).MulOverflow(amount, sqrtPrice)
	if !overflow {
		denominator, overflow := new(uint256.Int).AddOverflow(numerator1, product)
		if !overflow {
			return pricemath.MulDivRoundingUp(numerator1, sqrtPrice, denominator)
		}
	}

	// liquidity / (liquidity / sqrtPrice + amount)
	denominator, overflow := new(uint256.Int).AddOverflow(new(uint256.Int).Div(numerator1, sqrtPrice), amount)
	if overflow {
		return nil, pricemath.ErrArithmeticOverflow
	}
	return pricemath.DivRoundingUp(numerator1, denominator)
}

// sqrtPrice + amount / liquidity
func nextSqrtPriceFromAmount1RoundingDown(sqrtPrice, liquidity, amount *uint256.Int) (*uint256.Int, error) {
	quotient, err := pricemath.MulDiv(amount, pricemath.Q96, liquidity)
	if err != nil {
		return nil, err
	}

	next, overflow := new(uint256.Int).AddOverflow(sqrtPrice, quotient)
	if overflow || !next.Lt(pricemath.MaxSqrtRatio) {
		return nil, pricemath.ErrArithmeticOverflow
	}
	return next, nil
}
