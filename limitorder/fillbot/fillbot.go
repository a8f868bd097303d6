// Package fillbot fills limit orders whose price has been crossed by the market.
package fillbot

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/getsentry/sentry-go"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/osmosis-labs/limitswap/domain"
	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/domain/workerpool"
	"github.com/osmosis-labs/limitswap/limitorder/telemetry"
	"github.com/osmosis-labs/limitswap/log"
	"github.com/osmosis-labs/limitswap/pricemath"
	"github.com/osmosis-labs/limitswap/slices"
)

const (
	tracerName = "limitswap-fillbot"

	DefaultInterval      = 5 * time.Second
	DefaultNumWorkers    = 4
	DefaultFillBatchSize = 10

	resultFilled       = "filled"
	resultFailed       = "failed"
	resultUnprofitable = "unprofitable"
	resultNoFunds      = "insufficient_funds"
)

var (
	tracer = otel.Tracer(tracerName)

	// DefaultMinProfit requires the value received to at least match the payment.
	DefaultMinProfit = osmomath.OneDec()
)

// fillCandidate is a quoted order.
type fillCandidate struct {
	order limitorderdomain.Order
	quote limitorderdomain.FillQuote
	// value is the token in received, valued in token out at the pool spot price.
	value osmomath.BigDec
}

// Config is the runtime configuration of the bot.
type Config struct {
	Address       string
	Interval      time.Duration
	MinProfit     osmomath.Dec
	NumWorkers    int
	FillBatchSize int
}

// NewConfig converts the server configuration, applying defaults.
func NewConfig(config domain.FillBotConfig) (Config, error) {
	result := Config{
		Address:       config.Address,
		Interval:      config.Interval,
		MinProfit:     DefaultMinProfit,
		NumWorkers:    config.NumWorkers,
		FillBatchSize: config.FillBatchSize,
	}

	if result.Address == "" {
		return Config{}, fmt.Errorf("fill bot address is required")
	}
	if config.MinProfit != "" {
		minProfit, err := osmomath.NewDecFromStr(config.MinProfit)
		if err != nil {
			return Config{}, fmt.Errorf("invalid fill bot min profit (%s): %w", config.MinProfit, err)
		}
		result.MinProfit = minProfit
	}
	if result.Interval <= 0 {
		result.Interval = DefaultInterval
	}
	if result.NumWorkers <= 0 {
		result.NumWorkers = DefaultNumWorkers
	}
	if result.FillBatchSize <= 0 {
		result.FillBatchSize = DefaultFillBatchSize
	}

	return result, nil
}

type fillBot struct {
	limitOrderUseCase mvc.LimitOrderUsecase
	poolsUseCase      mvc.PoolsUsecase
	bankUseCase       mvc.BankUsecase

	config Config
	// minProfit is config.MinProfit at BigDec precision
	minProfit osmomath.BigDec

	atomicBool atomic.Bool

	logger log.Logger
}

// New returns a bot filling from config.Address.
func New(
	limitOrderUseCase mvc.LimitOrderUsecase,
	poolsUseCase mvc.PoolsUsecase,
	bankUseCase mvc.BankUsecase,
	config Config,
	logger log.Logger,
) *fillBot {
	return &fillBot{
		limitOrderUseCase: limitOrderUseCase,
		poolsUseCase:      poolsUseCase,
		bankUseCase:       bankUseCase,
		config:            config,
		minProfit:         osmomath.MustNewBigDecFromStr(config.MinProfit.String()),

		atomicBool: atomic.Bool{},

		logger: logger,
	}
}

// Run processes rounds every interval until ctx is done.
func (f *fillBot) Run(ctx context.Context) {
	ticker := time.NewTicker(f.config.Interval)
	defer ticker.Stop()

	f.logger.Info("fill bot started", zap.String("address", f.config.Address), zap.Duration("interval", f.config.Interval))

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("fill bot stopped")
			return
		case <-ticker.C:
			if err := f.ProcessRound(ctx); err != nil {
				f.logger.Error("fill bot round failed", zap.Error(err))
			}
		}
	}
}

// ProcessRound quotes every open order and fills the profitable ones.
func (f *fillBot) ProcessRound(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "fillBot.ProcessRound")
	defer span.End()

	// For simplicity, we allow only one round to be processed at a time.
	if !f.atomicBool.CompareAndSwap(false, true) {
		f.logger.Info("fill bot round is already in progress")
		return nil
	}
	defer f.atomicBool.Store(false)

	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			err = fmt.Errorf("fill bot round panicked: %v", r)
		}
	}()

	orders, err := f.limitOrderUseCase.GetOpenOrders(ctx)
	if err != nil {
		return err
	}

	candidates := f.quoteOrders(ctx, orders)
	span.SetAttributes(attribute.Int("open_orders", len(orders)), attribute.Int("candidates", len(candidates)))

	filled := 0
	for _, batch := range slices.Split(candidates, f.config.FillBatchSize) {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, candidate := range batch {
			if f.fill(ctx, candidate) {
				filled++
			}
		}
	}

	f.logger.Info("processed fill bot round", zap.Int("open_orders", len(orders)), zap.Int("candidates", len(candidates)), zap.Int("filled", filled))

	return nil
}

// quoteOrders quotes orders concurrently and returns the profitable ones in order ID order.
func (f *fillBot) quoteOrders(ctx context.Context, orders []limitorderdomain.Order) []fillCandidate {
	jobs := make([]workerpool.Job[*fillCandidate], 0, len(orders))
	for _, order := range orders {
		order := order
		jobs = append(jobs, workerpool.Job[*fillCandidate]{
			Task: func() (*fillCandidate, error) {
				return f.quote(ctx, order)
			},
		})
	}

	results := workerpool.RunJobs(f.config.NumWorkers, jobs)

	candidates := make([]fillCandidate, 0, len(results))
	for i, result := range results {
		if result.Err != nil {
			f.logger.Debug("failed to quote order", zap.Uint64("order_id", orders[i].ID), zap.Error(result.Err))
			continue
		}
		if result.Result != nil {
			candidates = append(candidates, *result.Result)
		}
	}
	return candidates
}

// quote returns nil if the order is not worth filling.
func (f *fillBot) quote(ctx context.Context, order limitorderdomain.Order) (*fillCandidate, error) {
	quote, err := f.limitOrderUseCase.GetOrderFillAmount(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if !quote.AmountNeeded.IsPositive() {
		return nil, nil
	}

	pool, err := f.poolsUseCase.GetPool(ctx, order.PoolKey())
	if err != nil {
		return nil, err
	}

	// raw price of token0 in token1
	price := pricemath.SqrtPriceX96ToPrice(pool.SqrtPriceX96)

	released := osmomath.NewBigDecFromBigInt(quote.AmountReleased.BigInt())

	var value osmomath.BigDec
	if order.ZeroForOne {
		value = released.Mul(price)
	} else {
		if price.IsZero() {
			return nil, nil
		}
		value = released.Quo(price)
	}

	required := osmomath.NewBigDecFromBigInt(quote.AmountNeeded.BigInt()).Mul(f.minProfit)
	if value.LT(required) {
		telemetry.FillBotFillsCounter.WithLabelValues(resultUnprofitable).Inc()
		return nil, nil
	}

	return &fillCandidate{order: order, quote: quote, value: value}, nil
}

// fill approves exactly the quoted amount and fills the order.
func (f *fillBot) fill(ctx context.Context, candidate fillCandidate) bool {
	orderID := candidate.order.ID
	payment := sdk.NewCoin(candidate.quote.TokenNeeded, candidate.quote.AmountNeeded)

	balances, err := f.bankUseCase.GetBalances(ctx, f.config.Address)
	if err != nil {
		f.logger.Error("failed to get fill bot balances", zap.Error(err))
		telemetry.FillBotFillsCounter.WithLabelValues(resultFailed).Inc()
		return false
	}
	if balances.AmountOf(payment.Denom).LT(payment.Amount) {
		f.logger.Warn("fill bot has insufficient funds", zap.Uint64("order_id", orderID), zap.Stringer("required", payment))
		telemetry.FillBotFillsCounter.WithLabelValues(resultNoFunds).Inc()
		return false
	}

	if err := f.bankUseCase.Approve(ctx, f.config.Address, f.limitOrderUseCase.EngineAddress(), payment); err != nil {
		f.logger.Error("failed to approve fill payment", zap.Uint64("order_id", orderID), zap.Error(err))
		telemetry.FillBotFillsCounter.WithLabelValues(resultFailed).Inc()
		return false
	}

	result, err := f.limitOrderUseCase.FillOrder(ctx, f.config.Address, orderID, payment.Amount)
	if err != nil {
		f.logger.Error("failed to fill order", zap.Uint64("order_id", orderID), zap.Error(err))
		telemetry.FillBotFillsCounter.WithLabelValues(resultFailed).Inc()
		return false
	}

	telemetry.FillBotFillsCounter.WithLabelValues(resultFilled).Inc()
	f.logger.Info("filled order",
		zap.Uint64("order_id", orderID),
		zap.Stringer("paid", payment),
		zap.Stringer("received", result.Received),
		zap.Stringer("expected_value", candidate.value),
	)
	return true
}
