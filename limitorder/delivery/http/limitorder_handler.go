package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	deliveryhttp "github.com/osmosis-labs/limitswap/delivery/http"
	"github.com/osmosis-labs/limitswap/domain"
	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/limitorder/types"
	"github.com/osmosis-labs/limitswap/log"
)

// LimitOrderHandler represent the httphandler for limit orders
type LimitOrderHandler struct {
	LUsecase mvc.LimitOrderUsecase
	TUsecase mvc.TokensUsecase
	// Journal is nil when the event journal is disabled.
	Journal limitorderdomain.EventJournal

	logger log.Logger
}

const resourcePrefix = "/limit-orders"

func formatLimitOrderResource(resource string) string {
	return resourcePrefix + resource
}

// NewLimitOrderHandler will initialize the /limit-orders resources endpoint
func NewLimitOrderHandler(e *echo.Echo, us mvc.LimitOrderUsecase, tokensUsecase mvc.TokensUsecase, journal limitorderdomain.EventJournal, logger log.Logger) {
	handler := &LimitOrderHandler{
		LUsecase: us,
		TUsecase: tokensUsecase,
		Journal:  journal,
		logger:   logger,
	}

	e.POST(formatLimitOrderResource(""), handler.CreateOrder)
	e.GET(formatLimitOrderResource(""), handler.GetOrders)
	e.GET(formatLimitOrderResource("/:id"), handler.GetOrder)
	e.GET(formatLimitOrderResource("/:id/fill-amount"), handler.GetOrderFillAmount)
	e.GET(formatLimitOrderResource("/:id/status"), handler.GetOrderStatus)
	e.GET(formatLimitOrderResource("/:id/events"), handler.GetOrderEvents)
	e.POST(formatLimitOrderResource("/:id/fill"), handler.FillOrder)
	e.POST(formatLimitOrderResource("/:id/close"), handler.CloseOrder)
}

// @Summary Create a limit order
// @Description Deposits token_in into a single-sided position one tick spacing wide at the target price.
// @ID create-limit-order
// @Accept  json
// @Produce  json
// @Param  request  body  types.CreateOrderRequest  true  "Order to create. Set one of target_sqrt_price_x96 or target_price."
// @Success 200  {object}  types.CreateOrderResponse  "The ID of the new order"
// @Router /limit-orders [post]
func (a *LimitOrderHandler) CreateOrder(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req types.CreateOrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	var decimals0, decimals1 uint8
	if req.TargetPrice != "" {
		key := req.PoolKey()
		token0, err := a.TUsecase.GetMetadataByChainDenom(ctx, key.Token0)
		if err != nil {
			return err
		}
		token1, err := a.TUsecase.GetMetadataByChainDenom(ctx, key.Token1)
		if err != nil {
			return err
		}
		decimals0, decimals1 = uint8(token0.Precision), uint8(token1.Precision)
	}

	createReq, err := req.ToDomain(decimals0, decimals1)
	if err != nil {
		return err
	}

	orderID, err := a.LUsecase.CreateOrder(ctx, req.Maker, createReq)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.CreateOrderResponse{OrderID: orderID})
}

// @Summary List limit orders
// @Description Returns the orders of the maker query parameter, or every open order if it is empty.
// @ID get-limit-orders
// @Produce  json
// @Param  maker  query  string  false  "Maker address"
// @Success 200  {object}  types.GetOrdersResponse  "List of orders"
// @Router /limit-orders [get]
func (a *LimitOrderHandler) GetOrders(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req types.GetOrdersRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	var orders []limitorderdomain.Order
	if req.Maker == "" {
		orders, err = a.LUsecase.GetOpenOrders(ctx)
	} else {
		orders, err = a.LUsecase.GetOrdersByMaker(ctx, req.Maker)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types.NewGetOrdersResponse(orders))
}

// @Summary Get a limit order
// @ID get-limit-order
// @Produce  json
// @Param  id  path  int  true  "Order ID"
// @Success 200  {object}  limitorderdomain.Order  "The order"
// @Router /limit-orders/{id} [get]
func (a *LimitOrderHandler) GetOrder(c echo.Context) (err error) {
	return a.byOrderID(c, func(c echo.Context, orderID uint64) (any, error) {
		return a.LUsecase.GetOrder(c.Request().Context(), orderID)
	})
}

// @Summary Quote a fill
// @Description Returns the token out that completes the order at the current price, pool fee included,
// @Description and the token in the fill releases.
// @ID get-limit-order-fill-amount
// @Produce  json
// @Param  id  path  int  true  "Order ID"
// @Success 200  {object}  limitorderdomain.FillQuote  "The fill quote"
// @Router /limit-orders/{id}/fill-amount [get]
func (a *LimitOrderHandler) GetOrderFillAmount(c echo.Context) (err error) {
	return a.byOrderID(c, func(c echo.Context, orderID uint64) (any, error) {
		return a.LUsecase.GetOrderFillAmount(c.Request().Context(), orderID)
	})
}

// @Summary Get the fill status of a limit order
// @ID get-limit-order-status
// @Produce  json
// @Param  id  path  int  true  "Order ID"
// @Success 200  {object}  limitorderdomain.OrderStatus  "The fill progress"
// @Router /limit-orders/{id}/status [get]
func (a *LimitOrderHandler) GetOrderStatus(c echo.Context) (err error) {
	return a.byOrderID(c, func(c echo.Context, orderID uint64) (any, error) {
		return a.LUsecase.GetOrderStatus(c.Request().Context(), orderID)
	})
}

// @Summary Get the events of a limit order
// @Description Returns the journaled events of an order, oldest first.
// @ID get-limit-order-events
// @Produce  json
// @Param  id  path  int  true  "Order ID"
// @Success 200  {array}  limitorderdomain.Event  "The order events"
// @Router /limit-orders/{id}/events [get]
func (a *LimitOrderHandler) GetOrderEvents(c echo.Context) (err error) {
	return a.byOrderID(c, func(c echo.Context, orderID uint64) (any, error) {
		if a.Journal == nil {
			return nil, EventJournalDisabledError{}
		}

		ctx := c.Request().Context()

		// 404 for unknown orders rather than an empty list
		if _, err := a.LUsecase.GetOrder(ctx, orderID); err != nil {
			return nil, err
		}

		events, err := a.Journal.EventsByOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if events == nil {
			events = []limitorderdomain.Event{}
		}
		return events, nil
	})
}

// @Summary Fill a limit order
// @Description Pays up to amount of token out for the remaining token in of the order.
// @Description The filler must have approved the engine address for token out.
// @ID fill-limit-order
// @Accept  json
// @Produce  json
// @Param  id  path  int  true  "Order ID"
// @Param  request  body  types.FillOrderRequest  true  "Filler and amount offered"
// @Success 200  {object}  limitorderdomain.FillResult  "What the filler received"
// @Router /limit-orders/{id}/fill [post]
func (a *LimitOrderHandler) FillOrder(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req types.FillOrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	result, err := a.LUsecase.FillOrder(ctx, req.Filler, req.OrderID, req.AmountOffered())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// @Summary Close a limit order
// @Description Removes the position of the order and pays everything it holds to the maker.
// @ID close-limit-order
// @Accept  json
// @Produce  json
// @Param  id  path  int  true  "Order ID"
// @Param  request  body  types.CloseOrderRequest  true  "Caller, who must be the maker"
// @Success 200  {object}  limitorderdomain.CloseResult  "What the maker was paid"
// @Router /limit-orders/{id}/close [post]
func (a *LimitOrderHandler) CloseOrder(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req types.CloseOrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	result, err := a.LUsecase.CloseOrder(ctx, req.Caller, req.OrderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// byOrderID serves the read endpoints addressing a single order.
func (a *LimitOrderHandler) byOrderID(c echo.Context, get func(c echo.Context, orderID uint64) (any, error)) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req types.OrderIDRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	resp, err := get(c, req.OrderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// EventJournalDisabledError is returned by the events endpoint when no journal is configured.
type EventJournalDisabledError struct{}

func (e EventJournalDisabledError) Error() string {
	return "event journal is disabled"
}

func (e EventJournalDisabledError) StatusCode() int { return http.StatusNotImplemented }
