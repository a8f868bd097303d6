package usecase_test

import (
	"context"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/limitswap/bank"
	bankusecase "github.com/osmosis-labs/limitswap/bank/usecase"
	"github.com/osmosis-labs/limitswap/ledger"
	"github.com/osmosis-labs/limitswap/log"
)

func TestBankUsecase(t *testing.T) {
	ctx := context.Background()
	keeper := bank.New()
	sequencer := ledger.New(&log.NoOpLogger{}, keeper)
	usecase := bankusecase.NewBankUsecase(keeper, sequencer, &log.NoOpLogger{})

	require.NoError(t, usecase.Mint(ctx, "alice", sdk.NewInt64Coin("uusdc", 100), sdk.NewInt64Coin("weth", 3)))
	require.Equal(t, uint64(1), sequencer.Height())

	balances, err := usecase.GetBalances(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "100uusdc,3weth", balances.String())

	require.NoError(t, usecase.Transfer(ctx, "alice", "bob", sdk.NewInt64Coin("uusdc", 40)))
	require.Equal(t, uint64(2), sequencer.Height())

	// overdrafts leave the ledger untouched
	err = usecase.Transfer(ctx, "alice", "bob", sdk.NewInt64Coin("uusdc", 61))
	require.IsType(t, bank.InsufficientBalanceError{}, err)
	require.Equal(t, uint64(2), sequencer.Height())

	balances, err = usecase.GetBalances(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "40uusdc", balances.String())

	require.NoError(t, usecase.Approve(ctx, "alice", "engine", sdk.NewInt64Coin("weth", 2)))
	require.Equal(t, "2", keeper.Allowance("alice", "engine", "weth").String())

	require.Error(t, usecase.Approve(ctx, "", "engine", sdk.NewInt64Coin("weth", 2)))
	require.Equal(t, uint64(3), sequencer.Height())

	balances, err = usecase.GetBalances(ctx, "nobody")
	require.NoError(t, err)
	require.True(t, balances.IsZero())
}
