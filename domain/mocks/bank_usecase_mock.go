package mocks

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/limitswap/domain/mvc"
)

var _ mvc.BankUsecase = &BankUsecaseMock{}

// BankUsecaseMock is a mock implementation of the BankUsecase interface
type BankUsecaseMock struct {
	GetBalancesFunc func(ctx context.Context, address string) (sdk.Coins, error)
	ApproveFunc     func(ctx context.Context, owner, spender string, coin sdk.Coin) error
	TransferFunc    func(ctx context.Context, from, to string, coin sdk.Coin) error
	MintFunc        func(ctx context.Context, address string, coins ...sdk.Coin) error
}

func (m *BankUsecaseMock) GetBalances(ctx context.Context, address string) (sdk.Coins, error) {
	if m.GetBalancesFunc != nil {
		return m.GetBalancesFunc(ctx, address)
	}
	panic("unimplemented")
}

func (m *BankUsecaseMock) Approve(ctx context.Context, owner, spender string, coin sdk.Coin) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, owner, spender, coin)
	}
	panic("unimplemented")
}

func (m *BankUsecaseMock) Transfer(ctx context.Context, from, to string, coin sdk.Coin) error {
	if m.TransferFunc != nil {
		return m.TransferFunc(ctx, from, to, coin)
	}
	panic("unimplemented")
}

func (m *BankUsecaseMock) Mint(ctx context.Context, address string, coins ...sdk.Coin) error {
	if m.MintFunc != nil {
		return m.MintFunc(ctx, address, coins...)
	}
	panic("unimplemented")
}
