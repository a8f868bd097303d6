package mvc

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/osmosis-labs/limitswap/domain"
)

// PoolsUsecase represent the pool's usecases
type PoolsUsecase interface {
	// CreatePool creates the pool of tokenA and tokenB initialized at price, quoted as
	// whole token1 per whole token0 of the sorted pair.
	CreatePool(ctx context.Context, tokenA, tokenB string, fee uint32, price decimal.Decimal) (domain.PoolState, error)

	GetPool(ctx context.Context, key domain.PoolKey) (domain.PoolView, error)
	GetAllPools(ctx context.Context) ([]domain.PoolView, error)

	// AddLiquidity mints a position for owner funded from the owner balances.
	// Zero ticks select the full usable range.
	AddLiquidity(ctx context.Context, owner string, key domain.PoolKey, tickLower, tickUpper int32, amount0, amount1 *uint256.Int) (domain.MintResult, error)

	// Swap executes an exact input swap from the sender balances.
	Swap(ctx context.Context, params domain.SwapParams) (domain.SwapResult, error)
}
