package usecase

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/log"
)

// Keeper is the token ledger behind the bank usecase.
type Keeper interface {
	domain.Bank

	Balances(address string) sdk.Coins
	Approve(owner, spender string, coin sdk.Coin) error
	Mint(address string, coins ...sdk.Coin) error
}

type bankUseCase struct {
	keeper    Keeper
	sequencer domain.Sequencer

	logger log.Logger
}

var _ mvc.BankUsecase = &bankUseCase{}

// NewBankUsecase will create a new bank use case object
func NewBankUsecase(keeper Keeper, sequencer domain.Sequencer, logger log.Logger) *bankUseCase {
	return &bankUseCase{
		keeper:    keeper,
		sequencer: sequencer,
		logger:    logger,
	}
}

// GetBalances implements mvc.BankUsecase.
func (b *bankUseCase) GetBalances(ctx context.Context, address string) (balances sdk.Coins, err error) {
	err = b.sequencer.Query(ctx, func(ctx context.Context) error {
		balances = b.keeper.Balances(address)
		return nil
	})
	return balances, err
}

// Approve implements mvc.BankUsecase.
func (b *bankUseCase) Approve(ctx context.Context, owner, spender string, coin sdk.Coin) error {
	return b.sequencer.Exec(ctx, "approve", func(ctx context.Context, _ uint64) error {
		return b.keeper.Approve(owner, spender, coin)
	})
}

// Transfer implements mvc.BankUsecase.
func (b *bankUseCase) Transfer(ctx context.Context, from, to string, coin sdk.Coin) error {
	return b.sequencer.Exec(ctx, "transfer", func(ctx context.Context, _ uint64) error {
		return b.keeper.Transfer(from, to, coin)
	})
}

// Mint implements mvc.BankUsecase.
func (b *bankUseCase) Mint(ctx context.Context, address string, coins ...sdk.Coin) error {
	err := b.sequencer.Exec(ctx, "mint", func(ctx context.Context, _ uint64) error {
		return b.keeper.Mint(address, coins...)
	})
	if err != nil {
		return err
	}

	b.logger.Debug("minted", zap.String("address", address), zap.Any("coins", coins))
	return nil
}
