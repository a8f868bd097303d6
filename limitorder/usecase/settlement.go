package limitorderusecase

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/limitorder/telemetry"
	"github.com/osmosis-labs/limitswap/limitorder/types"
	"github.com/osmosis-labs/limitswap/pricemath"
)

// fillPlan is the liquidity slice a fill converts and what it charges.
type fillPlan struct {
	liquidity      *uint256.Int
	needed         *uint256.Int
	amountToUse    *uint256.Int
	liquidityDelta *uint256.Int
	used           *uint256.Int
}

// fillSplit is the division of the tokens released by a fill, indexed by pool token.
type fillSplit struct {
	filler0, filler1 *uint256.Int
	maker0, maker1   *uint256.Int
}

// planFill sizes a fill of amountOffered against an order with liquidity left at sqrtPriceX96.
func (u *limitOrderUseCaseImpl) planFill(order limitorderdomain.Order, sqrtPriceX96, liquidity, amountOffered *uint256.Int) (fillPlan, error) {
	needed, err := u.amountNeeded(order, sqrtPriceX96, liquidity)
	if err != nil {
		return fillPlan{}, err
	}
	if needed.IsZero() {
		return fillPlan{}, types.OrderFullyFilledError{OrderID: order.ID}
	}
	if amountOffered.IsZero() {
		return fillPlan{}, types.ZeroAmountError{Field: "amount offered"}
	}

	amountToUse := pricemath.Min(amountOffered, needed)

	liquidityDelta := liquidity.Clone()
	if amountToUse.Lt(needed) {
		liquidityDelta, err = pricemath.MulDiv(liquidity, amountToUse, needed)
		if err != nil {
			return fillPlan{}, err
		}
	}

	used, err := u.amountUsed(order, sqrtPriceX96, liquidity, needed, liquidityDelta)
	if err != nil {
		return fillPlan{}, err
	}
	if used.Gt(amountToUse) {
		// the fee rounding can charge a unit over the offer, take the largest slice that fits
		low, high := new(uint256.Int), liquidityDelta
		for new(uint256.Int).Sub(high, low).GtUint64(1) {
			mid := new(uint256.Int).Add(low, high)
			mid.Rsh(mid, 1)

			midUsed, err := u.amountUsed(order, sqrtPriceX96, liquidity, needed, mid)
			if err != nil {
				return fillPlan{}, err
			}
			if midUsed.Gt(amountToUse) {
				high = mid
			} else {
				low = mid
			}
		}

		liquidityDelta = low
		if used, err = u.amountUsed(order, sqrtPriceX96, liquidity, needed, liquidityDelta); err != nil {
			return fillPlan{}, err
		}
	}

	if liquidityDelta.IsZero() {
		return fillPlan{}, types.ZeroAmountError{Field: "liquidity filled"}
	}
	if used.IsZero() {
		return fillPlan{}, types.ZeroAmountError{Field: "amount used"}
	}

	return fillPlan{
		liquidity:      liquidity.Clone(),
		needed:         needed,
		amountToUse:    amountToUse,
		liquidityDelta: liquidityDelta,
		used:           used,
	}, nil
}

// amountUsed charges the exact difference of the rounded up quotes before and after removing
// liquidityDelta, so that fills telescope.
func (u *limitOrderUseCaseImpl) amountUsed(order limitorderdomain.Order, sqrtPriceX96, liquidity, needed, liquidityDelta *uint256.Int) (*uint256.Int, error) {
	remaining, err := u.amountNeeded(order, sqrtPriceX96, new(uint256.Int).Sub(liquidity, liquidityDelta))
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Sub(needed, remaining), nil
}

// splitFill divides what the position released for a fill between filler and maker.
// The filler gets the token in principal and its liquidity share of the fees.
// The maker gets the used offer, which includes the pool fee premium, the token out principal
// and the rest of the fees.
func splitFill(zeroForOne bool, plan fillPlan, principal0, principal1, collected0, collected1 *uint256.Int) (fillSplit, error) {
	if collected0.Lt(principal0) || collected1.Lt(principal1) {
		return fillSplit{}, fmt.Errorf("collected (%s, %s) is less than principal (%s, %s)", collected0.Dec(), collected1.Dec(), principal0.Dec(), principal1.Dec())
	}

	fees0 := new(uint256.Int).Sub(collected0, principal0)
	fees1 := new(uint256.Int).Sub(collected1, principal1)

	fillerFees0, err := pricemath.MulDiv(fees0, plan.liquidityDelta, plan.liquidity)
	if err != nil {
		return fillSplit{}, err
	}
	fillerFees1, err := pricemath.MulDiv(fees1, plan.liquidityDelta, plan.liquidity)
	if err != nil {
		return fillSplit{}, err
	}

	split := fillSplit{
		maker0: new(uint256.Int).Sub(fees0, fillerFees0),
		maker1: new(uint256.Int).Sub(fees1, fillerFees1),
	}
	if zeroForOne {
		split.filler0 = new(uint256.Int).Add(principal0, fillerFees0)
		split.filler1 = fillerFees1
		split.maker1.Add(split.maker1, plan.used)
		split.maker1.Add(split.maker1, principal1)
	} else {
		split.filler1 = new(uint256.Int).Add(principal1, fillerFees1)
		split.filler0 = fillerFees0
		split.maker0.Add(split.maker0, plan.used)
		split.maker0.Add(split.maker0, principal0)
	}

	return split, nil
}

// FillOrder implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) FillOrder(ctx context.Context, filler string, orderID uint64, amountOffered osmomath.Int) (result limitorderdomain.FillResult, err error) {
	ctx, span := tracer.Start(ctx, "limitOrderUseCase.FillOrder")
	defer span.End()
	defer func() { u.recordError(span, operationFill, err) }()

	span.SetAttributes(attribute.Int64("order_id", int64(orderID)))

	if amountOffered.IsNil() || amountOffered.IsNegative() {
		return limitorderdomain.FillResult{}, types.ZeroAmountError{Field: "amount offered"}
	}
	offered, err := pricemath.FromInt(amountOffered)
	if err != nil {
		return limitorderdomain.FillResult{}, fmt.Errorf("amount offered %s: %w", amountOffered, err)
	}

	var events []limitorderdomain.Event
	err = u.sequencer.Exec(ctx, "fill_order", func(ctx context.Context, height uint64) error {
		var event limitorderdomain.OrderFilled
		result, event, err = u.fillOrder(ctx, filler, orderID, offered)
		if err != nil {
			return err
		}

		events = append(events, limitorderdomain.Event{
			Type:    limitorderdomain.EventTypeOrderFilled,
			OrderID: orderID,
			Height:  height,
			Filled:  &event,
		})
		return nil
	})
	if err != nil {
		return limitorderdomain.FillResult{}, err
	}

	telemetry.OrdersFilledCounter.Inc()
	if !offered.IsZero() {
		usedRatio, _ := result.AmountUsed.ToLegacyDec().Quo(amountOffered.ToLegacyDec()).Float64()
		telemetry.FillAmountUsedRatioHistogram.Observe(usedRatio)
	}
	u.logger.Info("order filled", zap.Uint64("order_id", orderID), zap.String("filler", filler), zap.Stringer("amount_used", result.AmountUsed))

	u.publish(ctx, events)

	return result, nil
}

func (u *limitOrderUseCaseImpl) fillOrder(ctx context.Context, filler string, orderID uint64, offered *uint256.Int) (limitorderdomain.FillResult, limitorderdomain.OrderFilled, error) {
	order, err := u.getOrder(ctx, orderID)
	if err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}
	if order.IsClosed() {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, types.OrderClosedError{OrderID: orderID}
	}

	key := order.PoolKey()
	position, err := u.positionGateway.Position(ctx, order.PositionID)
	if err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}
	pool, err := u.positionGateway.PoolState(ctx, key)
	if err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}

	plan, err := u.planFill(order, pool.SqrtPriceX96, position.Liquidity, offered)
	if err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}

	principal0, principal1, err := u.positionGateway.DecreaseLiquidity(ctx, u.engineAddress, order.PositionID, plan.liquidityDelta)
	if err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}
	collected0, collected1, err := u.positionGateway.Collect(ctx, u.engineAddress, order.PositionID, u.engineAddress)
	if err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}

	split, err := splitFill(order.ZeroForOne, plan, principal0, principal1, collected0, collected1)
	if err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}

	// only the used amount is pulled, so the unused offer stays with the filler
	if err := u.bank.TransferFrom(u.engineAddress, filler, u.engineAddress, sdk.NewCoin(order.TokenOut, pricemath.ToInt(plan.used))); err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}

	received := sdk.NewCoins(
		sdk.NewCoin(key.Token0, pricemath.ToInt(split.filler0)),
		sdk.NewCoin(key.Token1, pricemath.ToInt(split.filler1)),
	)
	for _, coin := range received {
		if err := u.bank.Transfer(u.engineAddress, filler, coin); err != nil {
			return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
		}
	}

	order.Credits = order.Credits.Add(sdk.NewCoins(
		sdk.NewCoin(key.Token0, pricemath.ToInt(split.maker0)),
		sdk.NewCoin(key.Token1, pricemath.ToInt(split.maker1)),
	)...)
	if err := u.orderRepository.StoreOrder(ctx, order); err != nil {
		return limitorderdomain.FillResult{}, limitorderdomain.OrderFilled{}, err
	}

	result := limitorderdomain.FillResult{
		OrderID:         orderID,
		AmountUsed:      pricemath.ToInt(plan.used),
		LiquidityFilled: plan.liquidityDelta.Clone(),
		Received:        received,
	}

	// the rebate reports the unused offer with what the filler received
	excess := new(uint256.Int).Sub(offered, plan.used)
	rebate0, rebate1 := split.filler0, new(uint256.Int).Add(split.filler1, excess)
	if !order.ZeroForOne {
		rebate0, rebate1 = new(uint256.Int).Add(split.filler0, excess), split.filler1
	}

	event := limitorderdomain.OrderFilled{
		Filler:          filler,
		Amount0:         pricemath.ToInt(collected0),
		Amount1:         pricemath.ToInt(collected1),
		Rebate0:         pricemath.ToInt(rebate0),
		Rebate1:         pricemath.ToInt(rebate1),
		AmountUsed:      pricemath.ToInt(plan.used),
		LiquidityFilled: plan.liquidityDelta.Clone(),
	}
	return result, event, nil
}

// CloseOrder implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) CloseOrder(ctx context.Context, caller string, orderID uint64) (result limitorderdomain.CloseResult, err error) {
	ctx, span := tracer.Start(ctx, "limitOrderUseCase.CloseOrder")
	defer span.End()
	defer func() { u.recordError(span, operationClose, err) }()

	span.SetAttributes(attribute.Int64("order_id", int64(orderID)))

	var events []limitorderdomain.Event
	err = u.sequencer.Exec(ctx, "close_order", func(ctx context.Context, height uint64) error {
		var event limitorderdomain.OrderClosed
		result, event, err = u.closeOrder(ctx, caller, orderID, height)
		if err != nil {
			return err
		}

		events = append(events, limitorderdomain.Event{
			Type:    limitorderdomain.EventTypeOrderClosed,
			OrderID: orderID,
			Height:  height,
			Closed:  &event,
		})
		return nil
	})
	if err != nil {
		return limitorderdomain.CloseResult{}, err
	}

	telemetry.OrdersClosedCounter.Inc()
	u.logger.Info("order closed", zap.Uint64("order_id", orderID), zap.Stringer("paid", result.Paid))

	u.publish(ctx, events)

	return result, nil
}

func (u *limitOrderUseCaseImpl) closeOrder(ctx context.Context, caller string, orderID uint64, height uint64) (limitorderdomain.CloseResult, limitorderdomain.OrderClosed, error) {
	order, err := u.getOrder(ctx, orderID)
	if err != nil {
		return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, err
	}
	if order.Maker != caller {
		return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, types.UnauthorizedError{OrderID: orderID, Sender: caller}
	}
	if order.IsClosed() {
		return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, types.OrderClosedError{OrderID: orderID}
	}

	key := order.PoolKey()
	position, err := u.positionGateway.Position(ctx, order.PositionID)
	if err != nil {
		return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, err
	}

	if !position.Liquidity.IsZero() {
		if _, _, err := u.positionGateway.DecreaseLiquidity(ctx, u.engineAddress, order.PositionID, position.Liquidity); err != nil {
			return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, err
		}
	}

	collected0, collected1, err := u.positionGateway.Collect(ctx, u.engineAddress, order.PositionID, u.engineAddress)
	if err != nil {
		return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, err
	}
	if err := u.positionGateway.Burn(ctx, u.engineAddress, order.PositionID); err != nil {
		return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, err
	}

	paid := order.Credits.Add(sdk.NewCoins(
		sdk.NewCoin(key.Token0, pricemath.ToInt(collected0)),
		sdk.NewCoin(key.Token1, pricemath.ToInt(collected1)),
	)...)
	for _, coin := range paid {
		if err := u.bank.Transfer(u.engineAddress, order.Maker, coin); err != nil {
			return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, err
		}
	}

	order.Credits = sdk.NewCoins()
	order.State = limitorderdomain.OrderStateClosed
	order.ClosedHeight = height
	if err := u.orderRepository.StoreOrder(ctx, order); err != nil {
		return limitorderdomain.CloseResult{}, limitorderdomain.OrderClosed{}, err
	}

	return limitorderdomain.CloseResult{OrderID: orderID, Paid: paid}, limitorderdomain.OrderClosed{
		Maker:   order.Maker,
		Amount0: paid.AmountOf(key.Token0),
		Amount1: paid.AmountOf(key.Token1),
	}, nil
}
