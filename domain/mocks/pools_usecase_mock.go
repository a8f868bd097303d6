package mocks

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
)

var _ mvc.PoolsUsecase = &PoolsUsecaseMock{}

// PoolsUsecaseMock is a mock implementation of the PoolsUsecase interface
type PoolsUsecaseMock struct {
	CreatePoolFunc   func(ctx context.Context, tokenA, tokenB string, fee uint32, price decimal.Decimal) (domain.PoolState, error)
	GetPoolFunc      func(ctx context.Context, key domain.PoolKey) (domain.PoolView, error)
	GetAllPoolsFunc  func(ctx context.Context) ([]domain.PoolView, error)
	AddLiquidityFunc func(ctx context.Context, owner string, key domain.PoolKey, tickLower, tickUpper int32, amount0, amount1 *uint256.Int) (domain.MintResult, error)
	SwapFunc         func(ctx context.Context, params domain.SwapParams) (domain.SwapResult, error)
}

func (m *PoolsUsecaseMock) CreatePool(ctx context.Context, tokenA, tokenB string, fee uint32, price decimal.Decimal) (domain.PoolState, error) {
	if m.CreatePoolFunc != nil {
		return m.CreatePoolFunc(ctx, tokenA, tokenB, fee, price)
	}
	panic("unimplemented")
}

func (m *PoolsUsecaseMock) GetPool(ctx context.Context, key domain.PoolKey) (domain.PoolView, error) {
	if m.GetPoolFunc != nil {
		return m.GetPoolFunc(ctx, key)
	}
	panic("unimplemented")
}

func (m *PoolsUsecaseMock) GetAllPools(ctx context.Context) ([]domain.PoolView, error) {
	if m.GetAllPoolsFunc != nil {
		return m.GetAllPoolsFunc(ctx)
	}
	panic("unimplemented")
}

func (m *PoolsUsecaseMock) AddLiquidity(ctx context.Context, owner string, key domain.PoolKey, tickLower, tickUpper int32, amount0, amount1 *uint256.Int) (domain.MintResult, error) {
	if m.AddLiquidityFunc != nil {
		return m.AddLiquidityFunc(ctx, owner, key, tickLower, tickUpper, amount0, amount1)
	}
	panic("unimplemented")
}

func (m *PoolsUsecaseMock) Swap(ctx context.Context, params domain.SwapParams) (domain.SwapResult, error) {
	if m.SwapFunc != nil {
		return m.SwapFunc(ctx, params)
	}
	panic("unimplemented")
}
