package pricemath

import (
	"github.com/holiman/uint256"
)

var one = uint256.NewInt(1)

// MulDiv computes floor(a * b / denominator) with a 512-bit intermediate product.
// Errors if the denominator is zero or the result does not fit 256 bits.
func MulDiv(a, b, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, ErrDivisionByZero
	}

	result, overflow := new(uint256.Int).MulDivOverflow(a, b, denominator)
	if overflow {
		return nil, ErrArithmeticOverflow
	}

	return result, nil
}

// MulDivRoundingUp computes ceil(a * b / denominator) with a 512-bit intermediate product.
func MulDivRoundingUp(a, b, denominator *uint256.Int) (*uint256.Int, error) {
	result, err := MulDiv(a, b, denominator)
	if err != nil {
		return nil, err
	}

	if new(uint256.Int).MulMod(a, b, denominator).IsZero() {
		return result, nil
	}

	if _, overflow := result.AddOverflow(result, one); overflow {
		return nil, ErrArithmeticOverflow
	}

	return result, nil
}

// DivRoundingUp computes ceil(x / y).
func DivRoundingUp(x, y *uint256.Int) (*uint256.Int, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}

	quotient := new(uint256.Int).Div(x, y)
	if !new(uint256.Int).Mod(x, y).IsZero() {
		quotient.AddUint64(quotient, 1)
	}

	return quotient, nil
}

// GrossUpForFee returns the amount a swap must pay so that amount is left after a fee of feePips,
// ceil(amount * FeeDenominator / (FeeDenominator - feePips)).
func GrossUpForFee(amount *uint256.Int, feePips uint32) (*uint256.Int, error) {
	if uint64(feePips) >= FeeDenominator {
		return nil, ErrDivisionByZero
	}

	return MulDivRoundingUp(amount, uint256.NewInt(FeeDenominator), uint256.NewInt(FeeDenominator-uint64(feePips)))
}

// Min returns a copy of the smaller of a and b.
func Min(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return a.Clone()
	}
	return b.Clone()
}

// Clamp returns a copy of x bounded to [lower, upper].
func Clamp(x, lower, upper *uint256.Int) *uint256.Int {
	if x.Lt(lower) {
		return lower.Clone()
	}
	if x.Gt(upper) {
		return upper.Clone()
	}
	return x.Clone()
}
