package usecase

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/osmosis-labs/limitswap/clpool"
	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/log"
	"github.com/osmosis-labs/limitswap/pricemath"
)

// PoolManager is the concentrated liquidity engine behind the pools usecase.
type PoolManager interface {
	CreatePool(ctx context.Context, tokenA, tokenB string, fee uint32, sqrtPriceX96 *uint256.Int) (domain.PoolState, error)
	PoolState(ctx context.Context, key domain.PoolKey) (domain.PoolState, error)
	Pools(ctx context.Context) []domain.PoolState
	Mint(ctx context.Context, params domain.MintParams, pay domain.PayFunc) (domain.MintResult, error)
	Swap(ctx context.Context, params domain.SwapParams) (domain.SwapResult, error)
}

type poolsUseCase struct {
	poolManager   PoolManager
	tokensUseCase mvc.TokensUsecase
	bank          domain.Bank
	sequencer     domain.Sequencer

	logger log.Logger
}

var _ mvc.PoolsUsecase = &poolsUseCase{}

// NewPoolsUsecase will create a new pools use case object
func NewPoolsUsecase(poolManager PoolManager, tokensUseCase mvc.TokensUsecase, bank domain.Bank, sequencer domain.Sequencer, logger log.Logger) *poolsUseCase {
	return &poolsUseCase{
		poolManager:   poolManager,
		tokensUseCase: tokensUseCase,
		bank:          bank,
		sequencer:     sequencer,
		logger:        logger,
	}
}

// CreatePool implements mvc.PoolsUsecase.
func (p *poolsUseCase) CreatePool(ctx context.Context, tokenA, tokenB string, fee uint32, price decimal.Decimal) (domain.PoolState, error) {
	if tokenA == tokenB {
		return domain.PoolState{}, domain.SameDenomError{Denom: tokenA}
	}

	key := domain.NewPoolKey(tokenA, tokenB, fee)

	token0, err := p.tokensUseCase.GetMetadataByChainDenom(ctx, key.Token0)
	if err != nil {
		return domain.PoolState{}, err
	}
	token1, err := p.tokensUseCase.GetMetadataByChainDenom(ctx, key.Token1)
	if err != nil {
		return domain.PoolState{}, err
	}

	sqrtPriceX96, err := pricemath.SqrtPriceFromPrice(price, uint8(token0.Precision), uint8(token1.Precision))
	if err != nil {
		return domain.PoolState{}, err
	}

	var state domain.PoolState
	err = p.sequencer.Exec(ctx, "create_pool", func(ctx context.Context, _ uint64) error {
		state, err = p.poolManager.CreatePool(ctx, key.Token0, key.Token1, fee, sqrtPriceX96)
		return err
	})
	if err != nil {
		return domain.PoolState{}, err
	}

	p.logger.Info("pool created", zap.Stringer("pool", key), zap.Stringer("price", price), zap.Int32("tick", state.Tick))

	return state, nil
}

// GetPool implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetPool(ctx context.Context, key domain.PoolKey) (domain.PoolView, error) {
	var view domain.PoolView
	err := p.sequencer.Query(ctx, func(ctx context.Context) error {
		state, err := p.poolManager.PoolState(ctx, key)
		if err != nil {
			return err
		}

		view = p.poolView(ctx, state)
		return nil
	})
	return view, err
}

// GetAllPools implements mvc.PoolsUsecase.
func (p *poolsUseCase) GetAllPools(ctx context.Context) ([]domain.PoolView, error) {
	var views []domain.PoolView
	err := p.sequencer.Query(ctx, func(ctx context.Context) error {
		states := p.poolManager.Pools(ctx)

		views = make([]domain.PoolView, 0, len(states))
		for _, state := range states {
			views = append(views, p.poolView(ctx, state))
		}
		return nil
	})
	return views, err
}

// AddLiquidity implements mvc.PoolsUsecase.
func (p *poolsUseCase) AddLiquidity(ctx context.Context, owner string, key domain.PoolKey, tickLower, tickUpper int32, amount0, amount1 *uint256.Int) (domain.MintResult, error) {
	if amount0 == nil {
		amount0 = new(uint256.Int)
	}
	if amount1 == nil {
		amount1 = new(uint256.Int)
	}

	var result domain.MintResult
	err := p.sequencer.Exec(ctx, "add_liquidity", func(ctx context.Context, _ uint64) error {
		state, err := p.poolManager.PoolState(ctx, key)
		if err != nil {
			return err
		}

		if tickLower == 0 && tickUpper == 0 {
			tickLower = clpool.MinUsableTick(state.TickSpacing)
			tickUpper = clpool.MaxUsableTick(state.TickSpacing)
		}

		sqrtLower, err := clpool.SqrtRatioAtTick(tickLower)
		if err != nil {
			return err
		}
		sqrtUpper, err := clpool.SqrtRatioAtTick(tickUpper)
		if err != nil {
			return err
		}

		liquidity, err := pricemath.GetLiquidityForAmounts(state.SqrtPriceX96, sqrtLower, sqrtUpper, amount0, amount1)
		if err != nil {
			return err
		}
		if liquidity.IsZero() {
			return clpool.ZeroLiquidityError{}
		}

		result, err = p.poolManager.Mint(ctx, domain.MintParams{
			Key:       key,
			TickLower: tickLower,
			TickUpper: tickUpper,
			Liquidity: liquidity,
			Recipient: owner,
		}, p.payFrom(key, owner))
		return err
	})
	if err != nil {
		return domain.MintResult{}, err
	}

	p.logger.Debug("liquidity added",
		zap.Stringer("pool", key),
		zap.String("owner", owner),
		zap.Uint64("position_id", result.PositionID),
		zap.Stringer("liquidity", result.Liquidity),
	)

	return result, nil
}

// Swap implements mvc.PoolsUsecase.
func (p *poolsUseCase) Swap(ctx context.Context, params domain.SwapParams) (domain.SwapResult, error) {
	if params.Recipient == "" {
		params.Recipient = params.Sender
	}

	var result domain.SwapResult
	err := p.sequencer.Exec(ctx, "swap", func(ctx context.Context, _ uint64) (err error) {
		result, err = p.poolManager.Swap(ctx, params)
		return err
	})
	if err != nil {
		return domain.SwapResult{}, err
	}

	domain.PoolsSwapCounter.WithLabelValues(params.Key.String()).Inc()

	return result, nil
}

// payFrom returns a pay callback debiting the owner directly.
func (p *poolsUseCase) payFrom(key domain.PoolKey, owner string) domain.PayFunc {
	return func(ctx context.Context, amount0, amount1 *uint256.Int, payTo string) error {
		if !amount0.IsZero() {
			if err := p.bank.Transfer(owner, payTo, sdk.NewCoin(key.Token0, pricemath.ToInt(amount0))); err != nil {
				return err
			}
		}
		if !amount1.IsZero() {
			if err := p.bank.Transfer(owner, payTo, sdk.NewCoin(key.Token1, pricemath.ToInt(amount1))); err != nil {
				return err
			}
		}
		return nil
	}
}

// poolView enriches state with the spot price and reserves.
// Tokens without metadata are displayed in raw units.
func (p *poolsUseCase) poolView(ctx context.Context, state domain.PoolState) domain.PoolView {
	decimals0 := p.precision(ctx, state.Key.Token0)
	decimals1 := p.precision(ctx, state.Key.Token1)

	poolAddress := state.Key.Address()
	return domain.PoolView{
		PoolState: state,
		SpotPrice: pricemath.SqrtPriceX96ToHumanPrice(state.SqrtPriceX96, decimals0, decimals1).String(),
		PoolBalances: map[string]string{
			state.Key.Token0: p.bank.Balance(poolAddress, state.Key.Token0).String(),
			state.Key.Token1: p.bank.Balance(poolAddress, state.Key.Token1).String(),
		},
	}
}

func (p *poolsUseCase) precision(ctx context.Context, denom string) uint8 {
	token, err := p.tokensUseCase.GetMetadataByChainDenom(ctx, denom)
	if err != nil {
		return 0
	}
	return uint8(token.Precision)
}
