package clpool

import (
	"sort"

	"github.com/holiman/uint256"

	"github.com/osmosis-labs/limitswap/pricemath"
)

// tickInfo is the per-tick state of a pool.
// liquidityNet is a signed value stored as a 256-bit two's complement, so adding or
// subtracting it from pool liquidity with wrapping arithmetic yields the signed result.
type tickInfo struct {
	liquidityGross        *uint256.Int
	liquidityNet          *uint256.Int
	feeGrowthOutside0X128 *uint256.Int
	feeGrowthOutside1X128 *uint256.Int
}

func (t *tickInfo) clone() *tickInfo {
	return &tickInfo{
		liquidityGross:        t.liquidityGross.Clone(),
		liquidityNet:          t.liquidityNet.Clone(),
		feeGrowthOutside0X128: t.feeGrowthOutside0X128.Clone(),
		feeGrowthOutside1X128: t.feeGrowthOutside1X128.Clone(),
	}
}

// maxLiquidityPerTick derives the liquidity cap of a single tick from the tick spacing.
func maxLiquidityPerTick(tickSpacing int32) *uint256.Int {
	minTick := MinUsableTick(tickSpacing)
	maxTick := MaxUsableTick(tickSpacing)
	numTicks := uint64((maxTick-minTick)/tickSpacing) + 1

	maxUint128 := new(uint256.Int).Sub(pricemath.Q128, uint256.NewInt(1))
	return maxUint128.Div(maxUint128, uint256.NewInt(numTicks))
}

// tickSet is the sorted set of initialized ticks of a pool.
type tickSet []int32

func (s tickSet) insert(tick int32) tickSet {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= tick })
	if i < len(s) && s[i] == tick {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = tick
	return s
}

func (s tickSet) remove(tick int32) tickSet {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= tick })
	if i == len(s) || s[i] != tick {
		return s
	}
	return append(s[:i], s[i+1:]...)
}

// next returns the next initialized tick in the swap direction.
// If lte, it is the greatest initialized tick <= tick, otherwise the smallest initialized tick > tick.
// When none exists, the bound of the tick domain is returned with initialized false.
func (s tickSet) next(tick int32, lte bool) (next int32, initialized bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i] > tick })
	if lte {
		if i == 0 {
			return MinTick, false
		}
		return s[i-1], true
	}

	if i == len(s) {
		return MaxTick, false
	}
	return s[i], true
}

func (s tickSet) clone() tickSet {
	cloned := make(tickSet, len(s))
	copy(cloned, s)
	return cloned
}
