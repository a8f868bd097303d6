package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/osmosis-labs/limitswap/domain"
	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/domain/mocks"
	"github.com/osmosis-labs/limitswap/events"
	limitorderdelivery "github.com/osmosis-labs/limitswap/limitorder/delivery/http"
	"github.com/osmosis-labs/limitswap/limitorder/types"
	"github.com/osmosis-labs/limitswap/log"
)

type LimitOrderHandlerSuite struct {
	suite.Suite
}

var tokens = map[string]domain.Token{
	"uusdc": {ChainDenom: "uusdc", HumanDenom: "usdc", Precision: 6},
	"weth":  {ChainDenom: "weth", HumanDenom: "eth", Precision: 18},
}

func TestLimitOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(LimitOrderHandlerSuite))
}

func (s *LimitOrderHandlerSuite) serve(usecase *mocks.LimitOrderUsecaseMock, journal limitorderdomain.EventJournal, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	limitorderdelivery.NewLimitOrderHandler(e, usecase, &mocks.TokensUsecaseMock{Tokens: tokens}, journal, &log.NoOpLogger{})

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func (s *LimitOrderHandlerSuite) TestCreateOrder() {
	var (
		q96             = new(uint256.Int).Lsh(uint256.NewInt(1), 96)
		usdcPerWETH2500 = new(uint256.Int).Mul(uint256.NewInt(20000), q96)
	)

	testcases := []struct {
		name string
		body string

		expectedStatusCode int
		expectedResponse   string
		expectedRequest    *limitorderdomain.CreateOrderRequest
		usecaseErr         error
	}{
		{
			name:               "raw sqrt price",
			body:               `{"maker":"alice","token_in":"uusdc","token_out":"weth","fee":500,"amount":"2490000000","target_sqrt_price_x96":"79228162514264337593543950336"}`,
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"order_id":1}`,
			expectedRequest: &limitorderdomain.CreateOrderRequest{
				TokenIn:            "uusdc",
				TokenOut:           "weth",
				Fee:                500,
				ZeroForOne:         true,
				DepositAmount:      osmomath.NewInt(2_490_000_000),
				TargetSqrtPriceX96: q96,
			},
		},
		{
			name:               "human price converted with token decimals",
			body:               `{"maker":"alice","token_in":"weth","token_out":"uusdc","fee":500,"amount":"1000000000000000000","target_price":"0.0004"}`,
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"order_id":1}`,
			expectedRequest: &limitorderdomain.CreateOrderRequest{
				TokenIn:            "weth",
				TokenOut:           "uusdc",
				Fee:                500,
				ZeroForOne:         false,
				DepositAmount:      osmomath.NewInt(1_000_000_000_000_000_000),
				TargetSqrtPriceX96: usdcPerWETH2500,
			},
		},
		{
			name:               "missing maker",
			body:               `{"token_in":"uusdc","token_out":"weth","fee":500,"amount":"1","target_price":"0.0004"}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `{"message":"address is required"}`,
		},
		{
			name:               "zero amount",
			body:               `{"maker":"alice","token_in":"uusdc","token_out":"weth","fee":500,"amount":"0","target_price":"0.0004"}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `{"message":"amount must be positive"}`,
		},
		{
			name:               "both targets",
			body:               `{"maker":"alice","token_in":"uusdc","token_out":"weth","fee":500,"amount":"1","target_price":"0.0004","target_sqrt_price_x96":"1"}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `{"message":"only one of target_sqrt_price_x96 or target_price may be set"}`,
		},
		{
			name:               "unknown token metadata",
			body:               `{"maker":"alice","token_in":"uatom","token_out":"weth","fee":500,"amount":"1","target_price":"1"}`,
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "usecase rejects price",
			body:               `{"maker":"alice","token_in":"uusdc","token_out":"weth","fee":500,"amount":"1","target_sqrt_price_x96":"1"}`,
			usecaseErr:         types.InvalidOrderPriceError{TargetSqrtPriceX96: "1"},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "pool not found",
			body:               `{"maker":"alice","token_in":"uusdc","token_out":"weth","fee":3000,"amount":"1","target_sqrt_price_x96":"1"}`,
			usecaseErr:         domain.PoolNotFoundError{Key: domain.NewPoolKey("uusdc", "weth", 3000)},
			expectedStatusCode: http.StatusNotFound,
			expectedResponse:   `{"message":"pool uusdc/weth/3000 is not found"}`,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			var called bool
			usecase := &mocks.LimitOrderUsecaseMock{
				CreateOrderFunc: func(ctx context.Context, maker string, req limitorderdomain.CreateOrderRequest) (uint64, error) {
					called = true
					s.Require().Equal("alice", maker)
					if tc.usecaseErr != nil {
						return 0, tc.usecaseErr
					}

					s.Require().NotNil(tc.expectedRequest)
					s.Require().Equal(tc.expectedRequest.TokenIn, req.TokenIn)
					s.Require().Equal(tc.expectedRequest.TokenOut, req.TokenOut)
					s.Require().Equal(tc.expectedRequest.Fee, req.Fee)
					s.Require().Equal(tc.expectedRequest.ZeroForOne, req.ZeroForOne)
					s.Require().True(tc.expectedRequest.DepositAmount.Equal(req.DepositAmount))
					s.Require().Equal(tc.expectedRequest.TargetSqrtPriceX96.Dec(), req.TargetSqrtPriceX96.Dec())
					return 1, nil
				},
			}

			rec := s.serve(usecase, nil, http.MethodPost, "/limit-orders", tc.body)

			s.Require().Equal(tc.expectedStatusCode, rec.Code)
			if tc.expectedResponse != "" {
				s.Require().JSONEq(tc.expectedResponse, rec.Body.String())
			}
			s.Require().Equal(tc.expectedRequest != nil || tc.usecaseErr != nil, called)
		})
	}
}

func (s *LimitOrderHandlerSuite) TestGetOrders() {
	order := limitorderdomain.Order{ID: 3, Maker: "alice", State: limitorderdomain.OrderStateOpen}

	usecase := &mocks.LimitOrderUsecaseMock{
		GetOpenOrdersFunc: func(ctx context.Context) ([]limitorderdomain.Order, error) {
			return []limitorderdomain.Order{order}, nil
		},
		GetOrdersByMakerFunc: func(ctx context.Context, maker string) ([]limitorderdomain.Order, error) {
			s.Require().Equal("bob", maker)
			return nil, nil
		},
	}

	rec := s.serve(usecase, nil, http.MethodGet, "/limit-orders", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"id":3`)
	s.Require().Contains(rec.Body.String(), `"maker":"alice"`)

	// no orders is an empty list, not null
	rec = s.serve(usecase, nil, http.MethodGet, "/limit-orders?maker=bob", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"orders":[]}`, rec.Body.String())
}

func (s *LimitOrderHandlerSuite) TestReadEndpoints() {
	usecase := &mocks.LimitOrderUsecaseMock{
		GetOrderFunc: func(ctx context.Context, orderID uint64) (limitorderdomain.Order, error) {
			if orderID != 1 {
				return limitorderdomain.Order{}, types.OrderNotFoundError{OrderID: orderID}
			}
			return limitorderdomain.Order{ID: 1}, nil
		},
		GetOrderFillAmountFunc: func(ctx context.Context, orderID uint64) (limitorderdomain.FillQuote, error) {
			return limitorderdomain.FillQuote{OrderID: orderID, TokenNeeded: "weth", AmountNeeded: osmomath.NewInt(42)}, nil
		},
		GetOrderStatusFunc: func(ctx context.Context, orderID uint64) (limitorderdomain.OrderStatus, error) {
			return limitorderdomain.OrderStatus{}, types.OrderNotFoundError{OrderID: orderID}
		},
	}

	testcases := []struct {
		name               string
		target             string
		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name:               "get order",
			target:             "/limit-orders/1",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "get unknown order",
			target:             "/limit-orders/2",
			expectedStatusCode: http.StatusNotFound,
			expectedResponse:   `{"message":"order (2) is not found"}`,
		},
		{
			name:               "invalid order id",
			target:             "/limit-orders/abc",
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "fill amount",
			target:             "/limit-orders/7/fill-amount",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"order_id":7,"token_needed":"weth","amount_needed":"42"}`,
		},
		{
			name:               "status of unknown order",
			target:             "/limit-orders/9/status",
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			rec := s.serve(usecase, nil, http.MethodGet, tc.target, "")

			s.Require().Equal(tc.expectedStatusCode, rec.Code)
			if tc.expectedResponse != "" {
				s.Require().JSONEq(tc.expectedResponse, rec.Body.String())
			}
		})
	}
}

func (s *LimitOrderHandlerSuite) TestFillOrder() {
	usecase := &mocks.LimitOrderUsecaseMock{
		FillOrderFunc: func(ctx context.Context, filler string, orderID uint64, amountOffered osmomath.Int) (limitorderdomain.FillResult, error) {
			s.Require().Equal("bob", filler)
			if orderID == 2 {
				return limitorderdomain.FillResult{}, types.OrderClosedError{OrderID: orderID}
			}
			s.Require().Equal(uint64(1), orderID)
			s.Require().True(amountOffered.Equal(osmomath.NewInt(1_000_000)))
			return limitorderdomain.FillResult{OrderID: orderID, AmountUsed: amountOffered, LiquidityFilled: uint256.NewInt(5)}, nil
		},
	}

	rec := s.serve(usecase, nil, http.MethodPost, "/limit-orders/1/fill", `{"filler":"bob","amount":"1000000"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"amount_used":"1000000"`)

	rec = s.serve(usecase, nil, http.MethodPost, "/limit-orders/2/fill", `{"filler":"bob","amount":"1000000"}`)
	s.Require().Equal(http.StatusConflict, rec.Code)

	rec = s.serve(usecase, nil, http.MethodPost, "/limit-orders/1/fill", `{"filler":"bob","amount":"-5"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = s.serve(usecase, nil, http.MethodPost, "/limit-orders/1/fill", `{"amount":"5"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *LimitOrderHandlerSuite) TestCloseOrder() {
	usecase := &mocks.LimitOrderUsecaseMock{
		CloseOrderFunc: func(ctx context.Context, caller string, orderID uint64) (limitorderdomain.CloseResult, error) {
			if caller != "alice" {
				return limitorderdomain.CloseResult{}, types.UnauthorizedError{OrderID: orderID, Sender: caller}
			}
			return limitorderdomain.CloseResult{OrderID: orderID}, nil
		},
	}

	rec := s.serve(usecase, nil, http.MethodPost, "/limit-orders/4/close", `{"caller":"alice"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"order_id":4`)

	rec = s.serve(usecase, nil, http.MethodPost, "/limit-orders/4/close", `{"caller":"mallory"}`)
	s.Require().Equal(http.StatusForbidden, rec.Code)
	s.Require().JSONEq(`{"message":"sender (mallory) is not the maker of order (4)"}`, rec.Body.String())

	rec = s.serve(usecase, nil, http.MethodPost, "/limit-orders/4/close", "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *LimitOrderHandlerSuite) TestGetOrderEvents() {
	usecase := &mocks.LimitOrderUsecaseMock{
		GetOrderFunc: func(ctx context.Context, orderID uint64) (limitorderdomain.Order, error) {
			if orderID > 2 {
				return limitorderdomain.Order{}, types.OrderNotFoundError{OrderID: orderID}
			}
			return limitorderdomain.Order{ID: orderID}, nil
		},
	}

	rec := s.serve(usecase, nil, http.MethodGet, "/limit-orders/1/events", "")
	s.Require().Equal(http.StatusNotImplemented, rec.Code)

	journal := events.NewMemoryPublisher(8)
	s.Require().NoError(journal.Publish(context.Background(), []limitorderdomain.Event{
		{Type: limitorderdomain.EventTypeOrderCreated, OrderID: 1, Height: 1},
		{Type: limitorderdomain.EventTypeOrderClosed, OrderID: 1, Height: 2},
	}))

	rec = s.serve(usecase, journal, http.MethodGet, "/limit-orders/1/events", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`[{"type":"order_created","order_id":1,"height":1},{"type":"order_closed","order_id":1,"height":2}]`, rec.Body.String())

	rec = s.serve(usecase, journal, http.MethodGet, "/limit-orders/2/events", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`[]`, rec.Body.String())

	rec = s.serve(usecase, journal, http.MethodGet, "/limit-orders/3/events", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
}
