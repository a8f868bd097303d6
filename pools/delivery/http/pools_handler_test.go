package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/limitswap/clpool"
	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mocks"
	poolsdelivery "github.com/osmosis-labs/limitswap/pools/delivery/http"
)

func serve(usecase *mocks.PoolsUsecaseMock, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	poolsdelivery.NewPoolsHandler(e, usecase)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetPool(t *testing.T) {
	key := domain.NewPoolKey("uusdc", "weth", 500)

	usecase := &mocks.PoolsUsecaseMock{
		GetPoolFunc: func(ctx context.Context, k domain.PoolKey) (domain.PoolView, error) {
			if k != key {
				return domain.PoolView{}, domain.PoolNotFoundError{Key: k}
			}
			return domain.PoolView{
				PoolState: domain.PoolState{Key: k, SqrtPriceX96: uint256.NewInt(1), Liquidity: uint256.NewInt(0), Tick: -5, TickSpacing: 10},
				SpotPrice: "0.0004",
			}, nil
		},
		GetAllPoolsFunc: func(ctx context.Context) ([]domain.PoolView, error) {
			return []domain.PoolView{}, nil
		},
	}

	testcases := []struct {
		name               string
		target             string
		expectedStatusCode int
		expectedContains   string
	}{
		{
			name:               "sorted pair",
			target:             "/pools/uusdc/weth/500",
			expectedStatusCode: http.StatusOK,
			expectedContains:   `"spot_price":"0.0004"`,
		},
		{
			name:               "pair in reverse order",
			target:             "/pools/weth/uusdc/500",
			expectedStatusCode: http.StatusOK,
			expectedContains:   `"tick_spacing":10`,
		},
		{
			name:               "unknown fee tier",
			target:             "/pools/uusdc/weth/3000",
			expectedStatusCode: http.StatusNotFound,
			expectedContains:   `pool uusdc/weth/3000 is not found`,
		},
		{
			name:               "invalid fee",
			target:             "/pools/uusdc/weth/abc",
			expectedStatusCode: http.StatusBadRequest,
			expectedContains:   `invalid fee (abc)`,
		},
		{
			name:               "all pools",
			target:             "/pools",
			expectedStatusCode: http.StatusOK,
			expectedContains:   `[]`,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(usecase, http.MethodGet, tc.target, "")

			require.Equal(t, tc.expectedStatusCode, rec.Code)
			require.Contains(t, rec.Body.String(), tc.expectedContains)
		})
	}
}

func TestSwap(t *testing.T) {
	var received domain.SwapParams
	usecase := &mocks.PoolsUsecaseMock{
		SwapFunc: func(ctx context.Context, params domain.SwapParams) (domain.SwapResult, error) {
			received = params
			if params.AmountOutMinimum != nil && params.AmountOutMinimum.GtUint64(1000) {
				return domain.SwapResult{}, clpool.SlippageExceededError{AmountOut: "900", AmountOutMinimum: params.AmountOutMinimum.Dec()}
			}
			return domain.SwapResult{
				AmountIn:          params.AmountIn,
				AmountOut:         uint256.NewInt(900),
				SqrtPriceX96After: uint256.NewInt(1),
				TickAfter:         3,
			}, nil
		},
	}

	rec := serve(usecase, http.MethodPost, "/pools/swap", `{"sender":"trader","token_in":"weth","token_out":"uusdc","fee":500,"amount_in":"1000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"amount_in":"1000","amount_out":"900","sqrt_price_x96_after":"1","tick_after":3}`, rec.Body.String())
	require.Equal(t, domain.NewPoolKey("uusdc", "weth", 500), received.Key)
	require.Equal(t, "weth", received.TokenIn)
	require.Nil(t, received.SqrtPriceLimitX96)

	rec = serve(usecase, http.MethodPost, "/pools/swap", `{"sender":"trader","token_in":"weth","token_out":"uusdc","fee":500,"amount_in":"1000","amount_out_minimum":"5000"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	for name, body := range map[string]string{
		"missing sender": `{"token_in":"weth","token_out":"uusdc","fee":500,"amount_in":"1000"}`,
		"same token":     `{"sender":"trader","token_in":"weth","token_out":"weth","fee":500,"amount_in":"1000"}`,
		"zero amount":    `{"sender":"trader","token_in":"weth","token_out":"uusdc","fee":500,"amount_in":"0"}`,
		"malformed":      `{"sender":`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(usecase, http.MethodPost, "/pools/swap", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAddLiquidity(t *testing.T) {
	usecase := &mocks.PoolsUsecaseMock{
		AddLiquidityFunc: func(ctx context.Context, owner string, key domain.PoolKey, tickLower, tickUpper int32, amount0, amount1 *uint256.Int) (domain.MintResult, error) {
			require.Equal(t, "lp", owner)
			require.Equal(t, domain.NewPoolKey("uusdc", "weth", 500), key)
			require.Zero(t, tickLower)
			require.Zero(t, tickUpper)
			require.Equal(t, uint64(100), amount0.Uint64())
			require.Equal(t, uint64(200), amount1.Uint64())
			return domain.MintResult{PositionID: 9, Liquidity: uint256.NewInt(50), Amount0: amount0, Amount1: amount1}, nil
		},
	}

	rec := serve(usecase, http.MethodPost, "/pools/liquidity", `{"owner":"lp","token_a":"weth","token_b":"uusdc","fee":500,"amount0":"100","amount1":"200"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"PositionID":9`)

	rec = serve(usecase, http.MethodPost, "/pools/liquidity", `{"token_a":"weth","token_b":"uusdc","fee":500}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
