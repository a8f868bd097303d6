package limitorderusecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/osmosis-labs/limitswap/domain"
	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/limitorder/telemetry"
	"github.com/osmosis-labs/limitswap/limitorder/types"
	"github.com/osmosis-labs/limitswap/log"
	"github.com/osmosis-labs/limitswap/pricemath"
)

type limitOrderUseCaseImpl struct {
	orderRepository limitorderdomain.OrderRepository
	positionGateway limitorderdomain.PositionGateway
	tickMath        limitorderdomain.TickMath
	bank            domain.Bank
	sequencer       domain.Sequencer
	eventPublisher  limitorderdomain.EventPublisher

	engineAddress string

	logger log.Logger
}

var _ mvc.LimitOrderUsecase = &limitOrderUseCaseImpl{}

const (
	tracerName = "limitswap-limitorder"

	operationCreate = "create"
	operationFill   = "fill"
	operationClose  = "close"
)

var (
	tracer = otel.Tracer(tracerName)
)

// New creates a new limit order use case.
// engineAddress custodies every order position and the credits owed to makers.
func New(
	orderRepository limitorderdomain.OrderRepository,
	positionGateway limitorderdomain.PositionGateway,
	tickMath limitorderdomain.TickMath,
	bank domain.Bank,
	sequencer domain.Sequencer,
	eventPublisher limitorderdomain.EventPublisher,
	engineAddress string,
	logger log.Logger,
) *limitOrderUseCaseImpl {
	return &limitOrderUseCaseImpl{
		orderRepository: orderRepository,
		positionGateway: positionGateway,
		tickMath:        tickMath,
		bank:            bank,
		sequencer:       sequencer,
		eventPublisher:  eventPublisher,
		engineAddress:   engineAddress,
		logger:          logger,
	}
}

// EngineAddress implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) EngineAddress() string {
	return u.engineAddress
}

// CreateOrder implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) CreateOrder(ctx context.Context, maker string, req limitorderdomain.CreateOrderRequest) (orderID uint64, err error) {
	ctx, span := tracer.Start(ctx, "limitOrderUseCase.CreateOrder")
	defer span.End()
	defer func() { u.recordError(span, operationCreate, err) }()

	if req.DepositAmount.IsNil() || !req.DepositAmount.IsPositive() {
		return 0, types.ZeroAmountError{Field: "deposit amount"}
	}
	if req.TokenIn == req.TokenOut {
		return 0, types.SameTokenError{Token: req.TokenIn}
	}

	key := domain.NewPoolKey(req.TokenIn, req.TokenOut, req.Fee)
	if key.IsToken0(req.TokenIn) != req.ZeroForOne {
		return 0, types.InvalidDirectionError{TokenIn: req.TokenIn, TokenOut: req.TokenOut, ZeroForOne: req.ZeroForOne}
	}

	depositAmount, err := pricemath.FromInt(req.DepositAmount)
	if err != nil {
		return 0, fmt.Errorf("deposit amount %s: %w", req.DepositAmount, err)
	}

	var events []limitorderdomain.Event
	err = u.sequencer.Exec(ctx, "create_order", func(ctx context.Context, height uint64) error {
		order, err := u.createOrder(ctx, maker, key, req, depositAmount, height)
		if err != nil {
			return err
		}

		orderID = order.ID
		events = append(events, limitorderdomain.Event{
			Type:    limitorderdomain.EventTypeOrderCreated,
			OrderID: order.ID,
			Height:  height,
			Created: &limitorderdomain.OrderCreated{
				Maker:              order.Maker,
				TokenIn:            order.TokenIn,
				TokenOut:           order.TokenOut,
				Fee:                order.Fee,
				ZeroForOne:         order.ZeroForOne,
				Deposited:          order.Deposited,
				TargetSqrtPriceX96: order.TargetSqrtPriceX96.Clone(),
				TickLower:          order.TickLower,
				TickUpper:          order.TickUpper,
				Liquidity:          order.Liquidity.Clone(),
				PositionID:         order.PositionID,
			},
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	telemetry.OrdersCreatedCounter.Inc()
	span.SetAttributes(attribute.Int64("order_id", int64(orderID)))
	u.logger.Info("order created", zap.Uint64("order_id", orderID), zap.String("maker", maker), zap.String("pool", key.String()))

	u.publish(ctx, events)

	return orderID, nil
}

func (u *limitOrderUseCaseImpl) createOrder(ctx context.Context, maker string, key domain.PoolKey, req limitorderdomain.CreateOrderRequest, depositAmount *uint256.Int, height uint64) (limitorderdomain.Order, error) {
	pool, err := u.positionGateway.PoolState(ctx, key)
	if err != nil {
		return limitorderdomain.Order{}, err
	}

	target := req.TargetSqrtPriceX96
	priceErr := types.InvalidOrderPriceError{CurrentTick: pool.Tick, ZeroForOne: req.ZeroForOne}
	if target == nil || !pricemath.IsValidSqrtPrice(target) {
		if target != nil {
			priceErr.TargetSqrtPriceX96 = target.Dec()
		}
		return limitorderdomain.Order{}, priceErr
	}
	priceErr.TargetSqrtPriceX96 = target.Dec()

	// selling token0 rests above the price, selling token1 rests below it
	if (req.ZeroForOne && !target.Gt(pool.SqrtPriceX96)) || (!req.ZeroForOne && !target.Lt(pool.SqrtPriceX96)) {
		return limitorderdomain.Order{}, priceErr
	}

	targetTick, err := u.tickMath.TickAtSqrtPrice(target)
	if err != nil {
		return limitorderdomain.Order{}, priceErr
	}

	tickLower := floorTick(targetTick, pool.TickSpacing)
	tickUpper := tickLower + pool.TickSpacing

	// a target in the current tick range rests in the nearest range past the current tick
	if req.ZeroForOne && pool.Tick >= tickLower {
		tickLower = floorTick(pool.Tick, pool.TickSpacing) + pool.TickSpacing
		tickUpper = tickLower + pool.TickSpacing
	} else if !req.ZeroForOne && pool.Tick < tickUpper {
		tickUpper = floorTick(pool.Tick, pool.TickSpacing)
		tickLower = tickUpper - pool.TickSpacing
	}

	sqrtLower, err := u.tickMath.SqrtPriceAtTick(tickLower)
	if err != nil {
		return limitorderdomain.Order{}, types.InvalidTickRangeError{TickLower: tickLower, TickUpper: tickUpper}
	}
	sqrtUpper, err := u.tickMath.SqrtPriceAtTick(tickUpper)
	if err != nil {
		return limitorderdomain.Order{}, types.InvalidTickRangeError{TickLower: tickLower, TickUpper: tickUpper}
	}

	// the whole range must hold only token in at the current price
	if (req.ZeroForOne && !sqrtLower.Gt(pool.SqrtPriceX96)) || (!req.ZeroForOne && sqrtUpper.Gt(pool.SqrtPriceX96)) {
		return limitorderdomain.Order{}, types.InvalidTickRangeError{TickLower: tickLower, TickUpper: tickUpper}
	}

	var liquidity *uint256.Int
	if req.ZeroForOne {
		liquidity, err = pricemath.GetLiquidityForAmount0(sqrtLower, sqrtUpper, depositAmount)
	} else {
		liquidity, err = pricemath.GetLiquidityForAmount1(sqrtLower, sqrtUpper, depositAmount)
	}
	if err != nil {
		return limitorderdomain.Order{}, err
	}
	if liquidity.IsZero() {
		return limitorderdomain.Order{}, types.ZeroAmountError{Field: "liquidity"}
	}

	minted, err := u.positionGateway.Mint(ctx, domain.MintParams{
		Key:       key,
		TickLower: tickLower,
		TickUpper: tickUpper,
		Liquidity: liquidity,
		Recipient: u.engineAddress,
	}, u.payFrom(maker, key))
	if err != nil {
		return limitorderdomain.Order{}, err
	}

	deposited := minted.Amount0
	if !req.ZeroForOne {
		deposited = minted.Amount1
	}

	orderID, err := u.orderRepository.NextOrderID(ctx)
	if err != nil {
		return limitorderdomain.Order{}, err
	}

	order := limitorderdomain.Order{
		ID:                 orderID,
		Maker:              maker,
		TokenIn:            req.TokenIn,
		TokenOut:           req.TokenOut,
		Fee:                req.Fee,
		ZeroForOne:         req.ZeroForOne,
		DepositAmount:      req.DepositAmount,
		Deposited:          pricemath.ToInt(deposited),
		TargetSqrtPriceX96: target.Clone(),
		TickLower:          tickLower,
		TickUpper:          tickUpper,
		PositionID:         minted.PositionID,
		Liquidity:          minted.Liquidity,
		Credits:            sdk.NewCoins(),
		State:              limitorderdomain.OrderStateOpen,
		CreatedHeight:      height,
	}

	if err := u.orderRepository.StoreOrder(ctx, order); err != nil {
		return limitorderdomain.Order{}, err
	}

	return order, nil
}

// payFrom returns the mint callback pulling the owed amounts from maker with the engine allowance.
func (u *limitOrderUseCaseImpl) payFrom(maker string, key domain.PoolKey) domain.PayFunc {
	return func(ctx context.Context, amount0, amount1 *uint256.Int, payTo string) error {
		if !amount0.IsZero() {
			if err := u.bank.TransferFrom(u.engineAddress, maker, payTo, sdk.NewCoin(key.Token0, pricemath.ToInt(amount0))); err != nil {
				return err
			}
		}
		if !amount1.IsZero() {
			if err := u.bank.TransferFrom(u.engineAddress, maker, payTo, sdk.NewCoin(key.Token1, pricemath.ToInt(amount1))); err != nil {
				return err
			}
		}
		return nil
	}
}

// GetOrderFillAmount implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) GetOrderFillAmount(ctx context.Context, orderID uint64) (limitorderdomain.FillQuote, error) {
	ctx, span := tracer.Start(ctx, "limitOrderUseCase.GetOrderFillAmount")
	defer span.End()

	var quote limitorderdomain.FillQuote
	err := u.sequencer.Query(ctx, func(ctx context.Context) error {
		order, err := u.getOrder(ctx, orderID)
		if err != nil {
			return err
		}

		quote = limitorderdomain.FillQuote{
			OrderID:        order.ID,
			TokenNeeded:    order.TokenOut,
			AmountNeeded:   osmomath.ZeroInt(),
			TokenReleased:  order.TokenIn,
			AmountReleased: osmomath.ZeroInt(),
		}
		if order.IsClosed() {
			return nil
		}

		needed, released, err := u.fillAmount(ctx, order)
		if err != nil {
			return err
		}
		quote.AmountNeeded = pricemath.ToInt(needed)
		quote.AmountReleased = pricemath.ToInt(released)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return limitorderdomain.FillQuote{}, err
	}

	return quote, nil
}

// fillAmount returns the token out still needed by the live position of an open order and the
// token in the position holds, both at the current pool price.
func (u *limitOrderUseCaseImpl) fillAmount(ctx context.Context, order limitorderdomain.Order) (needed *uint256.Int, released *uint256.Int, err error) {
	position, err := u.positionGateway.Position(ctx, order.PositionID)
	if err != nil {
		return nil, nil, err
	}
	pool, err := u.positionGateway.PoolState(ctx, order.PoolKey())
	if err != nil {
		return nil, nil, err
	}

	needed, err = u.amountNeeded(order, pool.SqrtPriceX96, position.Liquidity)
	if err != nil {
		return nil, nil, err
	}

	sqrtLower, err := u.tickMath.SqrtPriceAtTick(order.TickLower)
	if err != nil {
		return nil, nil, err
	}
	sqrtUpper, err := u.tickMath.SqrtPriceAtTick(order.TickUpper)
	if err != nil {
		return nil, nil, err
	}

	amount0, amount1, err := pricemath.GetAmountsForLiquidity(pool.SqrtPriceX96, sqrtLower, sqrtUpper, position.Liquidity)
	if err != nil {
		return nil, nil, err
	}
	if order.ZeroForOne {
		return needed, amount0, nil
	}
	return needed, amount1, nil
}

// amountNeeded is the token out that converts liquidity of the order range at sqrtPriceX96
// plus the pool fee on it, rounded up.
func (u *limitOrderUseCaseImpl) amountNeeded(order limitorderdomain.Order, sqrtPriceX96, liquidity *uint256.Int) (*uint256.Int, error) {
	if liquidity.IsZero() {
		return new(uint256.Int), nil
	}

	sqrtLower, err := u.tickMath.SqrtPriceAtTick(order.TickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := u.tickMath.SqrtPriceAtTick(order.TickUpper)
	if err != nil {
		return nil, err
	}

	var amount *uint256.Int
	sqrtPrice := pricemath.Clamp(sqrtPriceX96, sqrtLower, sqrtUpper)
	if order.ZeroForOne {
		_, amount, err = u.positionGateway.AmountDeltas(sqrtPrice, sqrtUpper, liquidity, true)
	} else {
		amount, _, err = u.positionGateway.AmountDeltas(sqrtLower, sqrtPrice, liquidity, true)
	}
	if err != nil {
		return nil, err
	}

	// what a swap through the range would pay, pool fee included
	return pricemath.GrossUpForFee(amount, order.Fee)
}

// GetOrder implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) GetOrder(ctx context.Context, orderID uint64) (order limitorderdomain.Order, err error) {
	err = u.sequencer.Query(ctx, func(ctx context.Context) error {
		order, err = u.getOrder(ctx, orderID)
		return err
	})
	return order, err
}

// GetOrdersByMaker implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) GetOrdersByMaker(ctx context.Context, maker string) (orders []limitorderdomain.Order, err error) {
	err = u.sequencer.Query(ctx, func(ctx context.Context) error {
		orders, err = u.orderRepository.GetOrdersByMaker(ctx, maker)
		return err
	})
	return orders, err
}

// GetOpenOrders implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) GetOpenOrders(ctx context.Context) (orders []limitorderdomain.Order, err error) {
	err = u.sequencer.Query(ctx, func(ctx context.Context) error {
		orders, err = u.orderRepository.GetOpenOrders(ctx)
		return err
	})
	return orders, err
}

// GetOrderStatus implements mvc.LimitOrderUsecase.
func (u *limitOrderUseCaseImpl) GetOrderStatus(ctx context.Context, orderID uint64) (limitorderdomain.OrderStatus, error) {
	var status limitorderdomain.OrderStatus
	err := u.sequencer.Query(ctx, func(ctx context.Context) error {
		order, err := u.getOrder(ctx, orderID)
		if err != nil {
			return err
		}

		status = limitorderdomain.OrderStatus{
			OrderID:       order.ID,
			State:         order.State,
			Status:        limitorderdomain.FillStatusClosed,
			PercentFilled: osmomath.ZeroDec(),
			Liquidity:     new(uint256.Int),
			Amount0:       osmomath.ZeroInt(),
			Amount1:       osmomath.ZeroInt(),
			Credits:       order.Credits,
		}
		if order.IsClosed() {
			return nil
		}

		position, err := u.positionGateway.Position(ctx, order.PositionID)
		if err != nil {
			return err
		}
		pool, err := u.positionGateway.PoolState(ctx, order.PoolKey())
		if err != nil {
			return err
		}

		sqrtLower, err := u.tickMath.SqrtPriceAtTick(order.TickLower)
		if err != nil {
			return err
		}
		sqrtUpper, err := u.tickMath.SqrtPriceAtTick(order.TickUpper)
		if err != nil {
			return err
		}

		amount0, amount1, err := pricemath.GetAmountsForLiquidity(pool.SqrtPriceX96, sqrtLower, sqrtUpper, position.Liquidity)
		if err != nil {
			return err
		}

		// the token in held by the initial liquidity, rounded like the live amounts
		initial0, initial1, err := pricemath.AmountDeltaForPriceMove(sqrtLower, sqrtUpper, order.Liquidity, false)
		if err != nil {
			return err
		}

		remainingIn, initialIn := amount0, initial0
		if !order.ZeroForOne {
			remainingIn, initialIn = amount1, initial1
		}

		status.Liquidity = position.Liquidity
		status.Amount0 = pricemath.ToInt(amount0)
		status.Amount1 = pricemath.ToInt(amount1)
		status.Status, status.PercentFilled = fillProgress(pricemath.ToInt(remainingIn), pricemath.ToInt(initialIn))
		return nil
	})
	if err != nil {
		return limitorderdomain.OrderStatus{}, err
	}

	return status, nil
}

// fillProgress derives the status of an open order from the token in it still holds.
func fillProgress(remainingIn, initialIn osmomath.Int) (limitorderdomain.FillStatus, osmomath.Dec) {
	if remainingIn.IsZero() || initialIn.IsZero() {
		return limitorderdomain.FillStatusFilled, osmomath.OneDec()
	}
	if remainingIn.GTE(initialIn) {
		return limitorderdomain.FillStatusUnfilled, osmomath.ZeroDec()
	}

	percentFilled := osmomath.OneDec().Sub(remainingIn.ToLegacyDec().Quo(initialIn.ToLegacyDec()))
	return limitorderdomain.FillStatusPartiallyFilled, percentFilled
}

// getOrder returns the order with the given ID or OrderNotFoundError.
func (u *limitOrderUseCaseImpl) getOrder(ctx context.Context, orderID uint64) (limitorderdomain.Order, error) {
	order, found, err := u.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		return limitorderdomain.Order{}, err
	}
	if !found {
		return limitorderdomain.Order{}, types.OrderNotFoundError{OrderID: orderID}
	}
	return order, nil
}

// publish delivers committed events. State is already committed so failures are only reported.
func (u *limitOrderUseCaseImpl) publish(ctx context.Context, events []limitorderdomain.Event) {
	if u.eventPublisher == nil || len(events) == 0 {
		return
	}

	if err := u.eventPublisher.Publish(ctx, events); err != nil {
		u.logger.Error("failed to publish order events", zap.Error(err), zap.Int("num_events", len(events)))
	}
}

func (u *limitOrderUseCaseImpl) recordError(span trace.Span, operation string, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	telemetry.LimitOrderErrorCounter.WithLabelValues(operation, errorType(err)).Inc()
	u.logger.Debug("limit order operation failed", zap.String("operation", operation), zap.Error(err))
}

// errorType returns the name of the typed error in the chain, for metric labels.
func errorType(err error) string {
	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		if _, ok := unwrapped.(domain.StatusCoder); ok {
			return reflect.TypeOf(unwrapped).Name()
		}
	}
	return "internal"
}

// floorTick rounds tick down to a multiple of tickSpacing.
func floorTick(tick, tickSpacing int32) int32 {
	compressed := tick / tickSpacing
	if tick < 0 && tick%tickSpacing != 0 {
		compressed--
	}
	return compressed * tickSpacing
}
