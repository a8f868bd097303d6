package clpool

import (
	"github.com/holiman/uint256"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/pricemath"
)

// position is the pool side state of a liquidity position.
type position struct {
	tickLower                int32
	tickUpper                int32
	liquidity                *uint256.Int
	feeGrowthInside0LastX128 *uint256.Int
	feeGrowthInside1LastX128 *uint256.Int
	tokensOwed0              *uint256.Int
	tokensOwed1              *uint256.Int
}

func (p *position) clone() *position {
	return &position{
		tickLower:                p.tickLower,
		tickUpper:                p.tickUpper,
		liquidity:                p.liquidity.Clone(),
		feeGrowthInside0LastX128: p.feeGrowthInside0LastX128.Clone(),
		feeGrowthInside1LastX128: p.feeGrowthInside1LastX128.Clone(),
		tokensOwed0:              p.tokensOwed0.Clone(),
		tokensOwed1:              p.tokensOwed1.Clone(),
	}
}

// pool is a single concentrated liquidity pool.
// All accumulator arithmetic wraps modulo 2^256, which makes differences of
// fee growth values correct even after overflow.
type pool struct {
	key                 domain.PoolKey
	tickSpacing         int32
	maxLiquidityPerTick *uint256.Int

	sqrtPriceX96 *uint256.Int
	tick         int32
	liquidity    *uint256.Int

	feeGrowthGlobal0X128 *uint256.Int
	feeGrowthGlobal1X128 *uint256.Int

	ticks            map[int32]*tickInfo
	initializedTicks tickSet
	positions        map[uint64]*position
}

func newPool(key domain.PoolKey, tickSpacing int32, sqrtPriceX96 *uint256.Int) (*pool, error) {
	tick, err := TickAtSqrtRatio(sqrtPriceX96)
	if err != nil {
		return nil, err
	}

	return &pool{
		key:                  key,
		tickSpacing:          tickSpacing,
		maxLiquidityPerTick:  maxLiquidityPerTick(tickSpacing),
		sqrtPriceX96:         sqrtPriceX96.Clone(),
		tick:                 tick,
		liquidity:            new(uint256.Int),
		feeGrowthGlobal0X128: new(uint256.Int),
		feeGrowthGlobal1X128: new(uint256.Int),
		ticks:                make(map[int32]*tickInfo),
		positions:            make(map[uint64]*position),
	}, nil
}

func (p *pool) state() domain.PoolState {
	return domain.PoolState{
		Key:          p.key,
		SqrtPriceX96: p.sqrtPriceX96.Clone(),
		Tick:         p.tick,
		Liquidity:    p.liquidity.Clone(),
		TickSpacing:  p.tickSpacing,
	}
}

func (p *pool) clone() *pool {
	cloned := *p
	cloned.sqrtPriceX96 = p.sqrtPriceX96.Clone()
	cloned.liquidity = p.liquidity.Clone()
	cloned.feeGrowthGlobal0X128 = p.feeGrowthGlobal0X128.Clone()
	cloned.feeGrowthGlobal1X128 = p.feeGrowthGlobal1X128.Clone()
	cloned.initializedTicks = p.initializedTicks.clone()

	cloned.ticks = make(map[int32]*tickInfo, len(p.ticks))
	for tick, info := range p.ticks {
		cloned.ticks[tick] = info.clone()
	}

	cloned.positions = make(map[uint64]*position, len(p.positions))
	for id, pos := range p.positions {
		cloned.positions[id] = pos.clone()
	}

	return &cloned
}

func (p *pool) validateTicks(tickLower, tickUpper int32) error {
	if tickLower >= tickUpper ||
		tickLower < MinTick || tickUpper > MaxTick ||
		tickLower%p.tickSpacing != 0 || tickUpper%p.tickSpacing != 0 {
		return InvalidTickRangeError{TickLower: tickLower, TickUpper: tickUpper, TickSpacing: p.tickSpacing}
	}
	return nil
}

// feeGrowthInside returns the fee growth per unit of liquidity inside [tickLower, tickUpper).
func (p *pool) feeGrowthInside(tickLower, tickUpper int32) (*uint256.Int, *uint256.Int) {
	lower := p.tickOrEmpty(tickLower)
	upper := p.tickOrEmpty(tickUpper)

	var below0, below1 *uint256.Int
	if p.tick >= tickLower {
		below0, below1 = lower.feeGrowthOutside0X128, lower.feeGrowthOutside1X128
	} else {
		below0 = new(uint256.Int).Sub(p.feeGrowthGlobal0X128, lower.feeGrowthOutside0X128)
		below1 = new(uint256.Int).Sub(p.feeGrowthGlobal1X128, lower.feeGrowthOutside1X128)
	}

	var above0, above1 *uint256.Int
	if p.tick < tickUpper {
		above0, above1 = upper.feeGrowthOutside0X128, upper.feeGrowthOutside1X128
	} else {
		above0 = new(uint256.Int).Sub(p.feeGrowthGlobal0X128, upper.feeGrowthOutside0X128)
		above1 = new(uint256.Int).Sub(p.feeGrowthGlobal1X128, upper.feeGrowthOutside1X128)
	}

	inside0 := new(uint256.Int).Sub(p.feeGrowthGlobal0X128, below0)
	inside0.Sub(inside0, above0)
	inside1 := new(uint256.Int).Sub(p.feeGrowthGlobal1X128, below1)
	inside1.Sub(inside1, above1)

	return inside0, inside1
}

func (p *pool) tickOrEmpty(tick int32) *tickInfo {
	if info, ok := p.ticks[tick]; ok {
		return info
	}
	return &tickInfo{
		liquidityGross:        new(uint256.Int),
		liquidityNet:          new(uint256.Int),
		feeGrowthOutside0X128: new(uint256.Int),
		feeGrowthOutside1X128: new(uint256.Int),
	}
}

// updateTick applies a liquidity change to a tick and returns whether it flipped
// between initialized and uninitialized.
func (p *pool) updateTick(tick int32, liquidityDelta *uint256.Int, add bool, upper bool) bool {
	info, ok := p.ticks[tick]
	if !ok {
		info = p.tickOrEmpty(tick)
		// by convention, all growth before a tick was initialized happened below it
		if tick <= p.tick {
			info.feeGrowthOutside0X128 = p.feeGrowthGlobal0X128.Clone()
			info.feeGrowthOutside1X128 = p.feeGrowthGlobal1X128.Clone()
		}
		p.ticks[tick] = info
	}

	grossBefore := info.liquidityGross.Clone()
	if add {
		info.liquidityGross.Add(info.liquidityGross, liquidityDelta)
	} else {
		info.liquidityGross.Sub(info.liquidityGross, liquidityDelta)
	}

	// the lower tick adds liquidity when crossed left to right, the upper tick removes it
	if add != upper {
		info.liquidityNet.Add(info.liquidityNet, liquidityDelta)
	} else {
		info.liquidityNet.Sub(info.liquidityNet, liquidityDelta)
	}

	return grossBefore.IsZero() != info.liquidityGross.IsZero()
}

func (p *pool) clearTick(tick int32) {
	delete(p.ticks, tick)
	p.initializedTicks = p.initializedTicks.remove(tick)
}

// crossTick transitions a tick as the price moves through it and returns its liquidityNet.
func (p *pool) crossTick(tick int32) *uint256.Int {
	info := p.ticks[tick]
	info.feeGrowthOutside0X128 = new(uint256.Int).Sub(p.feeGrowthGlobal0X128, info.feeGrowthOutside0X128)
	info.feeGrowthOutside1X128 = new(uint256.Int).Sub(p.feeGrowthGlobal1X128, info.feeGrowthOutside1X128)
	return info.liquidityNet
}

// accrue credits the fees earned by a position since its last update to tokensOwed.
func accrue(pos *position, inside0, inside1 *uint256.Int) error {
	owed0, err := pricemath.MulDiv(new(uint256.Int).Sub(inside0, pos.feeGrowthInside0LastX128), pos.liquidity, pricemath.Q128)
	if err != nil {
		return err
	}
	owed1, err := pricemath.MulDiv(new(uint256.Int).Sub(inside1, pos.feeGrowthInside1LastX128), pos.liquidity, pricemath.Q128)
	if err != nil {
		return err
	}

	pos.tokensOwed0.Add(pos.tokensOwed0, owed0)
	pos.tokensOwed1.Add(pos.tokensOwed1, owed1)
	pos.feeGrowthInside0LastX128 = inside0
	pos.feeGrowthInside1LastX128 = inside1
	return nil
}

// modifyPosition adds (add == true) or removes liquidityDelta from the position with the given ID.
// It returns the token amounts owed to the pool when adding, rounded up, or released to the
// position when removing, rounded down. Released amounts are credited to tokensOwed.
func (p *pool) modifyPosition(positionID uint64, tickLower, tickUpper int32, liquidityDelta *uint256.Int, add bool) (amount0 *uint256.Int, amount1 *uint256.Int, err error) {
	if liquidityDelta.IsZero() {
		return nil, nil, ZeroLiquidityError{}
	}
	if err := p.validateTicks(tickLower, tickUpper); err != nil {
		return nil, nil, err
	}

	pos, ok := p.positions[positionID]
	if !ok {
		if !add {
			return nil, nil, PositionNotFoundError{PositionID: positionID}
		}
		pos = &position{
			tickLower:                tickLower,
			tickUpper:                tickUpper,
			liquidity:                new(uint256.Int),
			feeGrowthInside0LastX128: new(uint256.Int),
			feeGrowthInside1LastX128: new(uint256.Int),
			tokensOwed0:              new(uint256.Int),
			tokensOwed1:              new(uint256.Int),
		}
	}

	if !add && pos.liquidity.Lt(liquidityDelta) {
		return nil, nil, InsufficientPositionLiquidityError{
			PositionID: positionID,
			Liquidity:  pos.liquidity.Dec(),
			Requested:  liquidityDelta.Dec(),
		}
	}

	if add {
		for _, tick := range []int32{tickLower, tickUpper} {
			gross := new(uint256.Int).Add(p.tickOrEmpty(tick).liquidityGross, liquidityDelta)
			if gross.Gt(p.maxLiquidityPerTick) {
				return nil, nil, MaxLiquidityPerTickError{Tick: tick}
			}
		}
	}

	sqrtLower, err := SqrtRatioAtTick(tickLower)
	if err != nil {
		return nil, nil, err
	}
	sqrtUpper, err := SqrtRatioAtTick(tickUpper)
	if err != nil {
		return nil, nil, err
	}

	// amounts are computed before any state change so that a failure leaves the pool untouched
	amount0, amount1 = new(uint256.Int), new(uint256.Int)
	inRange := false
	switch {
	case p.tick < tickLower:
		amount0, err = pricemath.GetAmount0Delta(sqrtLower, sqrtUpper, liquidityDelta, add)
	case p.tick < tickUpper:
		inRange = true
		amount0, err = pricemath.GetAmount0Delta(p.sqrtPriceX96, sqrtUpper, liquidityDelta, add)
		if err == nil {
			amount1, err = pricemath.GetAmount1Delta(sqrtLower, p.sqrtPriceX96, liquidityDelta, add)
		}
	default:
		amount1, err = pricemath.GetAmount1Delta(sqrtLower, sqrtUpper, liquidityDelta, add)
	}
	if err != nil {
		return nil, nil, err
	}

	flippedLower := p.updateTick(tickLower, liquidityDelta, add, false)
	flippedUpper := p.updateTick(tickUpper, liquidityDelta, add, true)
	if add {
		if flippedLower {
			p.initializedTicks = p.initializedTicks.insert(tickLower)
		}
		if flippedUpper {
			p.initializedTicks = p.initializedTicks.insert(tickUpper)
		}
	}

	inside0, inside1 := p.feeGrowthInside(tickLower, tickUpper)
	if err := accrue(pos, inside0, inside1); err != nil {
		return nil, nil, err
	}

	if add {
		pos.liquidity.Add(pos.liquidity, liquidityDelta)
		p.positions[positionID] = pos
	} else {
		pos.liquidity.Sub(pos.liquidity, liquidityDelta)
		pos.tokensOwed0.Add(pos.tokensOwed0, amount0)
		pos.tokensOwed1.Add(pos.tokensOwed1, amount1)

		if flippedLower {
			p.clearTick(tickLower)
		}
		if flippedUpper {
			p.clearTick(tickUpper)
		}
	}

	if inRange {
		if add {
			p.liquidity.Add(p.liquidity, liquidityDelta)
		} else {
			p.liquidity.Sub(p.liquidity, liquidityDelta)
		}
	}

	return amount0, amount1, nil
}

// owed returns tokensOwed of a position including fees not yet accrued, without mutating state.
func (p *pool) owed(positionID uint64) (*uint256.Int, *uint256.Int, error) {
	pos, ok := p.positions[positionID]
	if !ok {
		return nil, nil, PositionNotFoundError{PositionID: positionID}
	}

	snapshot := pos.clone()
	inside0, inside1 := p.feeGrowthInside(pos.tickLower, pos.tickUpper)
	if err := accrue(snapshot, inside0, inside1); err != nil {
		return nil, nil, err
	}

	return snapshot.tokensOwed0, snapshot.tokensOwed1, nil
}

// collect accrues pending fees and zeroes the owed balances of a position, returning them.
func (p *pool) collect(positionID uint64) (*uint256.Int, *uint256.Int, error) {
	pos, ok := p.positions[positionID]
	if !ok {
		return nil, nil, PositionNotFoundError{PositionID: positionID}
	}

	if !pos.liquidity.IsZero() {
		inside0, inside1 := p.feeGrowthInside(pos.tickLower, pos.tickUpper)
		if err := accrue(pos, inside0, inside1); err != nil {
			return nil, nil, err
		}
	}

	amount0, amount1 := pos.tokensOwed0, pos.tokensOwed1
	pos.tokensOwed0, pos.tokensOwed1 = new(uint256.Int), new(uint256.Int)
	return amount0, amount1, nil
}

func (p *pool) deletePosition(positionID uint64) error {
	pos, ok := p.positions[positionID]
	if !ok {
		return PositionNotFoundError{PositionID: positionID}
	}
	if !pos.liquidity.IsZero() || !pos.tokensOwed0.IsZero() || !pos.tokensOwed1.IsZero() {
		return PositionNotClearedError{PositionID: positionID}
	}
	delete(p.positions, positionID)
	return nil
}

// swap executes an exact input swap and returns the input consumed, fee included, and the output.
// It mutates the pool in place even on failure, callers swap on a clone.
func (p *pool) swap(zeroForOne bool, amountSpecified, sqrtPriceLimitX96 *uint256.Int) (amountIn *uint256.Int, amountOut *uint256.Int, err error) {
	if amountSpecified.IsZero() {
		return nil, nil, ZeroLiquidityError{}
	}

	limit := sqrtPriceLimitX96
	if limit == nil {
		if zeroForOne {
			limit = new(uint256.Int).AddUint64(pricemath.MinSqrtRatio, 1)
		} else {
			limit = new(uint256.Int).SubUint64(pricemath.MaxSqrtRatio, 1)
		}
	}

	if zeroForOne {
		if !limit.Lt(p.sqrtPriceX96) || !limit.Gt(pricemath.MinSqrtRatio) {
			return nil, nil, InvalidSqrtPriceLimitError{SqrtPriceLimitX96: limit.Dec()}
		}
	} else {
		if !limit.Gt(p.sqrtPriceX96) || !limit.Lt(pricemath.MaxSqrtRatio) {
			return nil, nil, InvalidSqrtPriceLimitError{SqrtPriceLimitX96: limit.Dec()}
		}
	}

	amountRemaining := amountSpecified.Clone()
	amountOut = new(uint256.Int)

	feeGrowthGlobal := p.feeGrowthGlobal1X128
	if zeroForOne {
		feeGrowthGlobal = p.feeGrowthGlobal0X128
	}

	for !amountRemaining.IsZero() && !p.sqrtPriceX96.Eq(limit) {
		sqrtStart := p.sqrtPriceX96.Clone()

		tickNext, initialized := p.initializedTicks.next(p.tick, zeroForOne)
		sqrtNext, err := SqrtRatioAtTick(tickNext)
		if err != nil {
			return nil, nil, err
		}

		target := sqrtNext
		if (zeroForOne && sqrtNext.Lt(limit)) || (!zeroForOne && sqrtNext.Gt(limit)) {
			target = limit
		}

		step, err := computeSwapStep(p.sqrtPriceX96, target, p.liquidity, amountRemaining, p.key.Fee)
		if err != nil {
			return nil, nil, err
		}

		p.sqrtPriceX96 = step.sqrtPriceNextX96
		amountRemaining.Sub(amountRemaining, step.amountIn)
		amountRemaining.Sub(amountRemaining, step.feeAmount)
		amountOut.Add(amountOut, step.amountOut)

		if !p.liquidity.IsZero() {
			feeGrowth, err := pricemath.MulDiv(step.feeAmount, pricemath.Q128, p.liquidity)
			if err != nil {
				return nil, nil, err
			}
			feeGrowthGlobal.Add(feeGrowthGlobal, feeGrowth)
		}

		if p.sqrtPriceX96.Eq(sqrtNext) {
			if initialized {
				liquidityNet := p.crossTick(tickNext)
				if zeroForOne {
					p.liquidity.Sub(p.liquidity, liquidityNet)
				} else {
					p.liquidity.Add(p.liquidity, liquidityNet)
				}
			}

			if zeroForOne {
				p.tick = tickNext - 1
			} else {
				p.tick = tickNext
			}
		} else if !p.sqrtPriceX96.Eq(sqrtStart) {
			p.tick, err = TickAtSqrtRatio(p.sqrtPriceX96)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	return new(uint256.Int).Sub(amountSpecified, amountRemaining), amountOut, nil
}
