package pricemath_test

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"
	clmath "github.com/osmosis-labs/osmosis/v25/x/concentrated-liquidity/math"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/limitswap/pricemath"
)

var (
	maxUint256 = new(uint256.Int).SetAllOne()

	twoQ96  = new(uint256.Int).Lsh(pricemath.Q96, 1)
	halfQ96 = new(uint256.Int).Rsh(pricemath.Q96, 1)
)

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name        string
		a, b, d     *uint256.Int
		expected    *uint256.Int
		expectedUp  *uint256.Int
		expectedErr error
	}{
		{
			name:       "exact",
			a:          uint256.NewInt(6),
			b:          uint256.NewInt(8),
			d:          uint256.NewInt(4),
			expected:   uint256.NewInt(12),
			expectedUp: uint256.NewInt(12),
		},
		{
			name:       "remainder",
			a:          uint256.NewInt(6),
			b:          uint256.NewInt(7),
			d:          uint256.NewInt(4),
			expected:   uint256.NewInt(10),
			expectedUp: uint256.NewInt(11),
		},
		{
			name:       "512 bit intermediate",
			a:          maxUint256,
			b:          maxUint256,
			d:          maxUint256,
			expected:   maxUint256,
			expectedUp: maxUint256,
		},
		{
			name:        "division by zero",
			a:           uint256.NewInt(1),
			b:           uint256.NewInt(1),
			d:           new(uint256.Int),
			expectedErr: pricemath.ErrDivisionByZero,
		},
		{
			name:        "result overflows",
			a:           maxUint256,
			b:           uint256.NewInt(2),
			d:           uint256.NewInt(1),
			expectedErr: pricemath.ErrArithmeticOverflow,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := pricemath.MulDiv(tc.a, tc.b, tc.d)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)

				_, err = pricemath.MulDivRoundingUp(tc.a, tc.b, tc.d)
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected.Dec(), result.Dec())

			resultUp, err := pricemath.MulDivRoundingUp(tc.a, tc.b, tc.d)
			require.NoError(t, err)
			require.Equal(t, tc.expectedUp.Dec(), resultUp.Dec())
		})
	}
}

func TestDivRoundingUp(t *testing.T) {
	result, err := pricemath.DivRoundingUp(uint256.NewInt(7), uint256.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, uint64(4), result.Uint64())

	result, err = pricemath.DivRoundingUp(uint256.NewInt(8), uint256.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, uint64(4), result.Uint64())

	_, err = pricemath.DivRoundingUp(uint256.NewInt(8), new(uint256.Int))
	require.ErrorIs(t, err, pricemath.ErrDivisionByZero)
}

func TestGrossUpForFee(t *testing.T) {
	tests := []struct {
		name     string
		amount   uint64
		feePips  uint32
		expected uint64
	}{
		{"no fee", 1_000, 0, 1_000},
		{"exact", 997_000, 3000, 1_000_000},
		{"rounds up", 1, 3000, 2},
		{"zero", 0, 500, 0},
		{"one percent", 990_000, 10_000, 1_000_000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := pricemath.GrossUpForFee(uint256.NewInt(tc.amount), tc.feePips)
			require.NoError(t, err)
			require.Equal(t, tc.expected, result.Uint64())
		})
	}

	_, err := pricemath.GrossUpForFee(uint256.NewInt(1), uint32(pricemath.FeeDenominator))
	require.ErrorIs(t, err, pricemath.ErrDivisionByZero)
}

func TestMinClamp(t *testing.T) {
	a, b := uint256.NewInt(3), uint256.NewInt(5)

	smaller := pricemath.Min(a, b)
	require.Equal(t, uint64(3), smaller.Uint64())

	// returns a copy
	smaller.SetUint64(100)
	require.Equal(t, uint64(3), a.Uint64())

	require.Equal(t, uint64(3), pricemath.Clamp(uint256.NewInt(1), a, b).Uint64())
	require.Equal(t, uint64(4), pricemath.Clamp(uint256.NewInt(4), a, b).Uint64())
	require.Equal(t, uint64(5), pricemath.Clamp(uint256.NewInt(9), a, b).Uint64())
}

func TestSqrtPriceFromRatio(t *testing.T) {
	tests := []struct {
		name        string
		numerator   uint64
		denominator uint64
		expected    *uint256.Int
	}{
		{"one", 1, 1, pricemath.Q96},
		{"four", 4, 1, twoQ96},
		{"quarter", 1, 4, halfQ96},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := pricemath.SqrtPriceFromRatio(uint256.NewInt(tc.numerator), uint256.NewInt(tc.denominator))
			require.NoError(t, err)
			require.Equal(t, tc.expected.Dec(), result.Dec())
		})
	}

	_, err := pricemath.SqrtPriceFromRatio(uint256.NewInt(1), new(uint256.Int))
	require.ErrorIs(t, err, pricemath.ErrDivisionByZero)

	// monotonic in the ratio
	low, err := pricemath.SqrtPriceFromRatio(uint256.NewInt(1_000_000), uint256.NewInt(1_000_001))
	require.NoError(t, err)
	high, err := pricemath.SqrtPriceFromRatio(uint256.NewInt(1_000_001), uint256.NewInt(1_000_000))
	require.NoError(t, err)
	require.True(t, low.Lt(pricemath.Q96))
	require.True(t, high.Gt(pricemath.Q96))
}

// TestSqrtPriceFromRatio_Wide covers ratios whose Q192 value does not fit 256 bits.
func TestSqrtPriceFromRatio_Wide(t *testing.T) {
	tests := []struct {
		name        string
		numerator   *uint256.Int
		denominator *uint256.Int
	}{
		{"2^64", new(uint256.Int).Lsh(uint256.NewInt(1), 64), uint256.NewInt(1)},
		{"2^80", new(uint256.Int).Lsh(uint256.NewInt(1), 80), uint256.NewInt(1)},
		{"just above 2^64", new(uint256.Int).AddUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 64), 1), uint256.NewInt(1)},
		{"odd fraction", uint256.MustFromDecimal("340282366920938463463374607431768211455"), uint256.NewInt(7_777_777)},
		{"large denominator", uint256.MustFromDecimal("1000000000000000000000000000000000000000000000"), uint256.MustFromDecimal("3000000000000000000000000")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ratioX192 := new(big.Int).Lsh(tc.numerator.ToBig(), 192)
			ratioX192.Quo(ratioX192, tc.denominator.ToBig())
			expected := new(big.Int).Sqrt(ratioX192)

			result, err := pricemath.SqrtPriceFromRatio(tc.numerator, tc.denominator)
			require.NoError(t, err)
			require.Equal(t, expected.String(), result.Dec())
		})
	}

	// no valid square-root price at 2^128
	_, err := pricemath.SqrtPriceFromRatio(pricemath.Q128, uint256.NewInt(1))
	require.ErrorIs(t, err, pricemath.ErrArithmeticOverflow)
}

func TestSqrtPriceFromPrice(t *testing.T) {
	// 1 USDC (6 decimals) = 0.0004 WETH (18 decimals), so the raw price is 4e8 and its root 2e4.
	expected := new(uint256.Int).Mul(pricemath.Q96, uint256.NewInt(20_000))

	result, err := pricemath.SqrtPriceFromPrice(decimal.RequireFromString("0.0004"), 6, 18)
	require.NoError(t, err)
	require.Equal(t, expected.Dec(), result.Dec())

	price := pricemath.SqrtPriceX96ToHumanPrice(result, 6, 18)
	require.True(t, osmomath.MustNewBigDecFromStr("0.0004").Equal(price), price.String())

	_, err = pricemath.SqrtPriceFromPrice(decimal.Zero, 6, 18)
	require.Error(t, err)
	require.IsType(t, pricemath.InvalidUnitsError{}, err)

	_, err = pricemath.SqrtPriceFromPrice(decimal.RequireFromString("-1"), 6, 18)
	require.Error(t, err)
}

// TestSqrtPriceMatchesOsmosisTickPrices round trips the exact prices of osmosis concentrated
// liquidity ticks through the Q64.96 representation.
func TestSqrtPriceMatchesOsmosisTickPrices(t *testing.T) {
	tolerance := osmomath.MustNewBigDecFromStr("0.000000000000000001")

	for _, tick := range []int64{-18_000_000, -9_000_000, -100_000, 0, 1, 100_000, 9_000_000, 27_000_000} {
		expected, err := clmath.TickToPrice(tick)
		require.NoError(t, err)

		sqrtPriceX96, err := pricemath.SqrtPriceFromPrice(decimal.RequireFromString(expected.String()), 0, 0)
		require.NoError(t, err)
		require.True(t, pricemath.IsValidSqrtPrice(sqrtPriceX96))

		actual := pricemath.SqrtPriceX96ToPrice(sqrtPriceX96)

		relativeError := actual.Sub(expected).Abs().Quo(expected)
		require.Truef(t, relativeError.LTE(tolerance), "tick %d: expected %s, actual %s", tick, expected, actual)
	}
}

func TestIsValidSqrtPrice(t *testing.T) {
	require.False(t, pricemath.IsValidSqrtPrice(nil))
	require.True(t, pricemath.IsValidSqrtPrice(pricemath.MinSqrtRatio))
	require.False(t, pricemath.IsValidSqrtPrice(new(uint256.Int).Sub(pricemath.MinSqrtRatio, uint256.NewInt(1))))
	require.False(t, pricemath.IsValidSqrtPrice(pricemath.MaxSqrtRatio))
	require.True(t, pricemath.IsValidSqrtPrice(new(uint256.Int).Sub(pricemath.MaxSqrtRatio, uint256.NewInt(1))))
}

func TestAmountDeltas(t *testing.T) {
	liquidity := uint256.NewInt(1_000_000_000_000_000_000)

	// price moves from 1 to 4
	amount0, err := pricemath.GetAmount0Delta(pricemath.Q96, twoQ96, liquidity, false)
	require.NoError(t, err)
	require.Equal(t, "500000000000000000", amount0.Dec())

	amount1, err := pricemath.GetAmount1Delta(twoQ96, pricemath.Q96, liquidity, true)
	require.NoError(t, err)
	require.Equal(t, "1000000000000000000", amount1.Dec())

	// 1.5 rounds down to 1 and up to 2
	down, err := pricemath.GetAmount0Delta(pricemath.Q96, twoQ96, uint256.NewInt(3), false)
	require.NoError(t, err)
	require.Equal(t, uint64(1), down.Uint64())

	up, err := pricemath.GetAmount0Delta(pricemath.Q96, twoQ96, uint256.NewInt(3), true)
	require.NoError(t, err)
	require.Equal(t, uint64(2), up.Uint64())

	amount0, amount1, err = pricemath.AmountDeltaForPriceMove(pricemath.Q96, twoQ96, liquidity, true)
	require.NoError(t, err)
	require.Equal(t, "500000000000000000", amount0.Dec())
	require.Equal(t, "1000000000000000000", amount1.Dec())

	tooMuchLiquidity := new(uint256.Int).Lsh(uint256.NewInt(1), pricemath.MaxLiquidityBits)
	_, err = pricemath.GetAmount0Delta(pricemath.Q96, twoQ96, tooMuchLiquidity, false)
	require.ErrorIs(t, err, pricemath.ErrArithmeticOverflow)
	_, err = pricemath.GetAmount1Delta(pricemath.Q96, twoQ96, tooMuchLiquidity, false)
	require.ErrorIs(t, err, pricemath.ErrArithmeticOverflow)

	_, err = pricemath.GetAmount0Delta(new(uint256.Int), twoQ96, liquidity, false)
	require.ErrorIs(t, err, pricemath.ErrDivisionByZero)
}

func TestLiquidityForAmounts(t *testing.T) {
	amount0 := uint256.NewInt(5_000_000_000)
	amount1 := uint256.NewInt(7_000_000_000)

	tests := []struct {
		name      string
		sqrtPrice *uint256.Int
		only0     bool
		only1     bool
	}{
		{name: "below range", sqrtPrice: halfQ96, only0: true},
		{name: "in range", sqrtPrice: new(uint256.Int).Add(pricemath.Q96, halfQ96)},
		{name: "above range", sqrtPrice: new(uint256.Int).Lsh(pricemath.Q96, 2), only1: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			liquidity, err := pricemath.GetLiquidityForAmounts(tc.sqrtPrice, pricemath.Q96, twoQ96, amount0, amount1)
			require.NoError(t, err)
			require.False(t, liquidity.IsZero())

			held0, held1, err := pricemath.GetAmountsForLiquidity(tc.sqrtPrice, pricemath.Q96, twoQ96, liquidity)
			require.NoError(t, err)

			// never more than provided
			require.False(t, held0.Gt(amount0))
			require.False(t, held1.Gt(amount1))

			if tc.only0 {
				require.True(t, held1.IsZero())
			}
			if tc.only1 {
				require.True(t, held0.IsZero())
			}
		})
	}

	_, err := pricemath.GetLiquidityForAmount0(pricemath.Q96, pricemath.Q96, amount0)
	require.ErrorIs(t, err, pricemath.ErrDivisionByZero)
}

func TestUnits(t *testing.T) {
	raw, err := pricemath.ParseUnits(decimal.RequireFromString("1.5"), 6)
	require.NoError(t, err)
	require.Equal(t, uint64(1_500_000), raw.Uint64())

	require.Equal(t, "1.5", pricemath.FormatUnits(raw, 6).String())

	_, err = pricemath.ParseUnits(decimal.RequireFromString("1.0000001"), 6)
	require.IsType(t, pricemath.InvalidUnitsError{}, err)

	_, err = pricemath.ParseUnits(decimal.RequireFromString("-1"), 6)
	require.IsType(t, pricemath.InvalidUnitsError{}, err)

	scaled, err := pricemath.TokenAmountFromDecimals(uint256.NewInt(3), 18)
	require.NoError(t, err)
	require.Equal(t, "3000000000000000000", scaled.Dec())

	_, err = pricemath.TokenAmountFromDecimals(uint256.NewInt(1), 78)
	require.ErrorIs(t, err, pricemath.ErrArithmeticOverflow)

	asInt := pricemath.ToInt(raw)
	require.True(t, osmomath.NewInt(1_500_000).Equal(asInt))
	require.True(t, pricemath.ToInt(nil).IsZero())

	back, err := pricemath.FromInt(asInt)
	require.NoError(t, err)
	require.Equal(t, raw.Dec(), back.Dec())

	_, err = pricemath.FromInt(osmomath.NewInt(-1))
	require.ErrorIs(t, err, pricemath.ErrArithmeticOverflow)
}
