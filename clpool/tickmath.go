package clpool

import (
	"github.com/holiman/uint256"

	"github.com/osmosis-labs/limitswap/pricemath"
)

const (
	// MinTick is the minimum tick that may be passed to SqrtRatioAtTick.
	MinTick int32 = -887272
	// MaxTick is the maximum tick that may be passed to SqrtRatioAtTick.
	MaxTick int32 = -MinTick
)

var (
	// sqrt(1.0001^-(2^i)) in Q128.128 for i in [0, 19].
	tickRatioFactors = []*uint256.Int{
		uint256.MustFromHex("0xfffcb933bd6fad37aa2d162d1a594001"),
		uint256.MustFromHex("0xfff97272373d413259a46990580e213a"),
		uint256.MustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcc"),
		uint256.MustFromHex("0xffe5caca7e10e4e61c3624eaa0941cd0"),
		uint256.MustFromHex("0xffcb9843d60f6159c9db58835c926644"),
		uint256.MustFromHex("0xff973b41fa98c081472e6896dfb254c0"),
		uint256.MustFromHex("0xff2ea16466c96a3843ec78b326b52861"),
		uint256.MustFromHex("0xfe5dee046a99a2a811c461f1969c3053"),
		uint256.MustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a4"),
		uint256.MustFromHex("0xf987a7253ac413176f2b074cf7815e54"),
		uint256.MustFromHex("0xf3392b0822b70005940c7a398e4b70f3"),
		uint256.MustFromHex("0xe7159475a2c29b7443b29c7fa6e889d9"),
		uint256.MustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825"),
		uint256.MustFromHex("0xa9f746462d870fdf8a65dc1f90e061e5"),
		uint256.MustFromHex("0x70d869a156d2a1b890bb3df62baf32f7"),
		uint256.MustFromHex("0x31be135f97d08fd981231505542fcfa6"),
		uint256.MustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc9"),
		uint256.MustFromHex("0x5d6af8dedb81196699c329225ee604"),
		uint256.MustFromHex("0x2216e584f5fa1ea926041bedfe98"),
		uint256.MustFromHex("0x48a170391f7dc42444e8fa2"),
	}

	maxUint256 = new(uint256.Int).SetAllOne()
)

// SqrtRatioAtTick returns sqrt(1.0001^tick) * 2^96.
// Errors with TickOutOfBoundsError if |tick| > MaxTick.
func SqrtRatioAtTick(tick int32) (*uint256.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, TickOutOfBoundsError{Tick: tick}
	}

	absTick := uint32(tick)
	if tick < 0 {
		absTick = uint32(-tick)
	}

	var ratio *uint256.Int
	if absTick&1 != 0 {
		ratio = tickRatioFactors[0].Clone()
	} else {
		ratio = pricemath.Q128.Clone()
	}

	for i := 1; i < len(tickRatioFactors); i++ {
		if absTick&(1<<uint(i)) != 0 {
			ratio.Mul(ratio, tickRatioFactors[i])
			ratio.Rsh(ratio, 128)
		}
	}

	if tick > 0 {
		ratio.Div(maxUint256, ratio)
	}

	// Q128.128 to Q128.96, rounding up so that TickAtSqrtRatio is consistent.
	remainder := new(uint256.Int).And(ratio, uint256.NewInt(0xffffffff))
	sqrtPriceX96 := ratio.Rsh(ratio, 32)
	if !remainder.IsZero() {
		sqrtPriceX96.AddUint64(sqrtPriceX96, 1)
	}

	return sqrtPriceX96, nil
}

// TickAtSqrtRatio returns the greatest tick such that SqrtRatioAtTick(tick) <= sqrtPriceX96.
// Errors if sqrtPriceX96 is outside of [MinSqrtRatio, MaxSqrtRatio).
func TickAtSqrtRatio(sqrtPriceX96 *uint256.Int) (int32, error) {
	if sqrtPriceX96 == nil {
		return 0, pricemath.InvalidSqrtPriceError{SqrtPriceX96: "<nil>"}
	}
	if !pricemath.IsValidSqrtPrice(sqrtPriceX96) {
		return 0, pricemath.InvalidSqrtPriceError{SqrtPriceX96: sqrtPriceX96.Dec()}
	}

	low, high := MinTick, MaxTick
	for low < high {
		mid := low + (high-low+1)/2

		sqrtPriceMid, err := SqrtRatioAtTick(mid)
		if err != nil {
			return 0, err
		}

		if sqrtPriceMid.Cmp(sqrtPriceX96) <= 0 {
			low = mid
		} else {
			high = mid - 1
		}
	}

	return low, nil
}

// MinUsableTick returns the smallest tick aligned to tickSpacing.
func MinUsableTick(tickSpacing int32) int32 {
	return (MinTick / tickSpacing) * tickSpacing
}

// MaxUsableTick returns the greatest tick aligned to tickSpacing.
func MaxUsableTick(tickSpacing int32) int32 {
	return (MaxTick / tickSpacing) * tickSpacing
}

// FloorTick rounds tick down to a multiple of tickSpacing.
func FloorTick(tick, tickSpacing int32) int32 {
	compressed := tick / tickSpacing
	if tick < 0 && tick%tickSpacing != 0 {
		compressed--
	}
	return compressed * tickSpacing
}

// TickMath exposes the package level tick conversions behind an interface.
type TickMath struct{}

// SqrtPriceAtTick returns the square-root price at tick.
func (TickMath) SqrtPriceAtTick(tick int32) (*uint256.Int, error) {
	return SqrtRatioAtTick(tick)
}

// TickAtSqrtPrice returns the tick containing sqrtPriceX96.
func (TickMath) TickAtSqrtPrice(sqrtPriceX96 *uint256.Int) (int32, error) {
	return TickAtSqrtRatio(sqrtPriceX96)
}
