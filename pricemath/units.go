package pricemath

import (
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/shopspring/decimal"
)

// ParseUnits converts a human amount into raw units with the given decimals.
// Errors if the amount is negative or has more fractional digits than decimals.
func ParseUnits(amount decimal.Decimal, decimals uint8) (*uint256.Int, error) {
	if amount.IsNegative() {
		return nil, InvalidUnitsError{Amount: amount.String(), Decimals: decimals, Reason: "negative amount"}
	}

	shifted := amount.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, InvalidUnitsError{Amount: amount.String(), Decimals: decimals, Reason: "too many fractional digits"}
	}

	raw, overflow := uint256.FromBig(shifted.BigInt())
	if overflow {
		return nil, ErrArithmeticOverflow
	}

	return raw, nil
}

// FormatUnits converts raw units into a human amount with the given decimals.
func FormatUnits(amount *uint256.Int, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(amount.ToBig(), -int32(decimals))
}

// ToInt converts a uint256 into an osmomath.Int.
func ToInt(value *uint256.Int) osmomath.Int {
	if value == nil {
		return osmomath.ZeroInt()
	}
	return osmomath.NewIntFromBigInt(value.ToBig())
}

// FromInt converts a non-negative osmomath.Int into a uint256.
func FromInt(value osmomath.Int) (*uint256.Int, error) {
	if value.IsNil() || value.IsZero() {
		return new(uint256.Int), nil
	}
	if value.IsNegative() {
		return nil, ErrArithmeticOverflow
	}

	result, overflow := uint256.FromBig(value.BigInt())
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return result, nil
}
