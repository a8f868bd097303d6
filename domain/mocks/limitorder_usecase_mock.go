package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/domain/mvc"
)

var _ mvc.LimitOrderUsecase = &LimitOrderUsecaseMock{}

// LimitOrderUsecaseMock is a mock implementation of the LimitOrderUsecase interface
type LimitOrderUsecaseMock struct {
	CreateOrderFunc        func(ctx context.Context, maker string, req limitorderdomain.CreateOrderRequest) (uint64, error)
	GetOrderFillAmountFunc func(ctx context.Context, orderID uint64) (limitorderdomain.FillQuote, error)
	FillOrderFunc          func(ctx context.Context, filler string, orderID uint64, amountOffered osmomath.Int) (limitorderdomain.FillResult, error)
	CloseOrderFunc         func(ctx context.Context, caller string, orderID uint64) (limitorderdomain.CloseResult, error)
	GetOrderFunc           func(ctx context.Context, orderID uint64) (limitorderdomain.Order, error)
	GetOrdersByMakerFunc   func(ctx context.Context, maker string) ([]limitorderdomain.Order, error)
	GetOpenOrdersFunc      func(ctx context.Context) ([]limitorderdomain.Order, error)
	GetOrderStatusFunc     func(ctx context.Context, orderID uint64) (limitorderdomain.OrderStatus, error)

	Engine string
}

func (m *LimitOrderUsecaseMock) CreateOrder(ctx context.Context, maker string, req limitorderdomain.CreateOrderRequest) (uint64, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, maker, req)
	}
	panic("unimplemented")
}

func (m *LimitOrderUsecaseMock) GetOrderFillAmount(ctx context.Context, orderID uint64) (limitorderdomain.FillQuote, error) {
	if m.GetOrderFillAmountFunc != nil {
		return m.GetOrderFillAmountFunc(ctx, orderID)
	}
	panic("unimplemented")
}

func (m *LimitOrderUsecaseMock) FillOrder(ctx context.Context, filler string, orderID uint64, amountOffered osmomath.Int) (limitorderdomain.FillResult, error) {
	if m.FillOrderFunc != nil {
		return m.FillOrderFunc(ctx, filler, orderID, amountOffered)
	}
	panic("unimplemented")
}

func (m *LimitOrderUsecaseMock) CloseOrder(ctx context.Context, caller string, orderID uint64) (limitorderdomain.CloseResult, error) {
	if m.CloseOrderFunc != nil {
		return m.CloseOrderFunc(ctx, caller, orderID)
	}
	panic("unimplemented")
}

func (m *LimitOrderUsecaseMock) GetOrder(ctx context.Context, orderID uint64) (limitorderdomain.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, orderID)
	}
	panic("unimplemented")
}

func (m *LimitOrderUsecaseMock) GetOrdersByMaker(ctx context.Context, maker string) ([]limitorderdomain.Order, error) {
	if m.GetOrdersByMakerFunc != nil {
		return m.GetOrdersByMakerFunc(ctx, maker)
	}
	panic("unimplemented")
}

func (m *LimitOrderUsecaseMock) GetOpenOrders(ctx context.Context) ([]limitorderdomain.Order, error) {
	if m.GetOpenOrdersFunc != nil {
		return m.GetOpenOrdersFunc(ctx)
	}
	panic("unimplemented")
}

func (m *LimitOrderUsecaseMock) GetOrderStatus(ctx context.Context, orderID uint64) (limitorderdomain.OrderStatus, error) {
	if m.GetOrderStatusFunc != nil {
		return m.GetOrderStatusFunc(ctx, orderID)
	}
	panic("unimplemented")
}

func (m *LimitOrderUsecaseMock) EngineAddress() string {
	return m.Engine
}
