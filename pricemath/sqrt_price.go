package pricemath

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"
)

var (
	q192Big = new(big.Int).Lsh(big.NewInt(1), 192)
	tenBig  = big.NewInt(10)

	q64 = new(uint256.Int).Lsh(uint256.NewInt(1), 64)
)

// SqrtPriceFromRatio returns isqrt(numerator * 2^192 / denominator), the Q64.96 square-root
// price of the rate numerator/denominator. It is monotonic in the ratio.
// Ratios of 2^128 or more have no valid square-root price and fail with ErrArithmeticOverflow.
func SqrtPriceFromRatio(numerator, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, ErrDivisionByZero
	}

	ratioX192, overflow := new(uint256.Int).MulDivOverflow(numerator, Q192, denominator)
	if !overflow {
		return ratioX192.Sqrt(ratioX192), nil
	}

	return sqrtWideRatioX192(numerator, denominator)
}

// sqrtWideRatioX192 is SqrtPriceFromRatio for ratios of at least 2^64, where the ratio in
// Q192 needs more than 256 bits. The ratio is split as hi * 2^64 + lo and the root is the
// largest r in [isqrt(hi) << 32, (isqrt(hi) + 1) << 32) with r^2 <= hi * 2^64 + lo.
func sqrtWideRatioX192(numerator, denominator *uint256.Int) (*uint256.Int, error) {
	hi, overflow := new(uint256.Int).MulDivOverflow(numerator, Q128, denominator)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	remainder := new(uint256.Int).MulMod(numerator, Q128, denominator)
	lo, _ := new(uint256.Int).MulDivOverflow(remainder, q64, denominator)

	root := new(uint256.Int).Sqrt(hi)
	low := new(uint256.Int).Lsh(root, 32)
	high := new(uint256.Int).Lsh(root.AddUint64(root, 1), 32)

	for new(uint256.Int).Sub(high, low).GtUint64(1) {
		mid := new(uint256.Int).Add(low, high)
		mid.Rsh(mid, 1)
		if squareAtMost(mid, hi, lo) {
			low = mid
		} else {
			high = mid
		}
	}

	return low, nil
}

// squareAtMost reports whether r^2 <= hi * 2^64 + lo, for r < 2^160 and lo < 2^64.
func squareAtMost(r, hi, lo *uint256.Int) bool {
	squareHi, _ := new(uint256.Int).MulDivOverflow(r, r, q64)
	if !squareHi.Eq(hi) {
		return squareHi.Lt(hi)
	}
	return !new(uint256.Int).MulMod(r, r, q64).Gt(lo)
}

// TokenAmountFromDecimals scales a human quantity to raw token units: value * 10^decimals.
func TokenAmountFromDecimals(value *uint256.Int, decimals uint8) (*uint256.Int, error) {
	scale, err := pow10(decimals)
	if err != nil {
		return nil, err
	}

	result, overflow := new(uint256.Int).MulOverflow(value, scale)
	if overflow {
		return nil, ErrArithmeticOverflow
	}

	return result, nil
}

// SqrtPriceFromPrice converts a human price, quoted as token1 per one token0, into a
// Q64.96 square-root price of raw units.
func SqrtPriceFromPrice(price decimal.Decimal, decimals0, decimals1 uint8) (*uint256.Int, error) {
	if !price.IsPositive() {
		return nil, InvalidUnitsError{Amount: price.String(), Decimals: decimals1, Reason: "price must be positive"}
	}

	// price = coefficient * 10^exponent
	numerator := new(big.Int).Set(price.Coefficient())
	denominator := big.NewInt(1)

	exponent := price.Exponent()
	if exponent > 0 {
		numerator.Mul(numerator, new(big.Int).Exp(tenBig, big.NewInt(int64(exponent)), nil))
	} else if exponent < 0 {
		denominator.Exp(tenBig, big.NewInt(int64(-exponent)), nil)
	}

	// raw price = price * 10^decimals1 / 10^decimals0
	numerator.Mul(numerator, new(big.Int).Exp(tenBig, big.NewInt(int64(decimals1)), nil))
	denominator.Mul(denominator, new(big.Int).Exp(tenBig, big.NewInt(int64(decimals0)), nil))

	numeratorU256, overflow := uint256.FromBig(numerator)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	denominatorU256, overflow := uint256.FromBig(denominator)
	if overflow {
		return nil, ErrArithmeticOverflow
	}

	return SqrtPriceFromRatio(numeratorU256, denominatorU256)
}

// SqrtPriceX96ToPrice returns the raw price token1/token0 represented by sqrtPriceX96.
func SqrtPriceX96ToPrice(sqrtPriceX96 *uint256.Int) osmomath.BigDec {
	sqrtPrice := sqrtPriceX96.ToBig()
	priceX192 := new(big.Int).Mul(sqrtPrice, sqrtPrice)

	return osmomath.NewBigDecFromBigInt(priceX192).Quo(osmomath.NewBigDecFromBigInt(q192Big))
}

// SqrtPriceX96ToHumanPrice returns the price of one whole token0 in whole token1 units.
func SqrtPriceX96ToHumanPrice(sqrtPriceX96 *uint256.Int, decimals0, decimals1 uint8) osmomath.BigDec {
	price := SqrtPriceX96ToPrice(sqrtPriceX96)

	scale0 := osmomath.NewBigDecFromBigInt(new(big.Int).Exp(tenBig, big.NewInt(int64(decimals0)), nil))
	scale1 := osmomath.NewBigDecFromBigInt(new(big.Int).Exp(tenBig, big.NewInt(int64(decimals1)), nil))

	return price.Mul(scale0).Quo(scale1)
}

func pow10(decimals uint8) (*uint256.Int, error) {
	result := uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := uint8(0); i < decimals; i++ {
		if _, overflow := result.MulOverflow(result, ten); overflow {
			return nil, ErrArithmeticOverflow
		}
	}
	return result, nil
}
