package limitorderrepository_test

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	limitorderrepository "github.com/osmosis-labs/limitswap/limitorder/repository"
)

type revertibleRepository interface {
	limitorderdomain.OrderRepository
	Checkpoint() func()
}

type OrderRepositoryTestSuite struct {
	suite.Suite

	newRepository func() revertibleRepository
	repository    revertibleRepository
}

func TestMemoryOrderRepository(t *testing.T) {
	suite.Run(t, &OrderRepositoryTestSuite{
		newRepository: func() revertibleRepository {
			return limitorderrepository.NewMemory()
		},
	})
}

func TestPebbleOrderRepository(t *testing.T) {
	s := &OrderRepositoryTestSuite{}
	s.newRepository = func() revertibleRepository {
		repository, err := limitorderrepository.NewPebble(s.T().TempDir(), 2)
		s.Require().NoError(err)
		s.T().Cleanup(func() { _ = repository.Close() })
		return repository
	}
	suite.Run(t, s)
}

func (s *OrderRepositoryTestSuite) SetupTest() {
	s.repository = s.newRepository()
}

func newOrder(id uint64, maker string, state limitorderdomain.OrderState) limitorderdomain.Order {
	return limitorderdomain.Order{
		ID:                 id,
		Maker:              maker,
		TokenIn:            "uusdc",
		TokenOut:           "weth",
		Fee:                3000,
		ZeroForOne:         true,
		DepositAmount:      osmomath.NewInt(1_000_000),
		Deposited:          osmomath.NewInt(999_999),
		TargetSqrtPriceX96: uint256.MustFromDecimal("79228162514264337593543950336"),
		TickLower:          60,
		TickUpper:          120,
		PositionID:         id,
		Liquidity:          uint256.NewInt(12345),
		Credits:            sdk.NewCoins(),
		State:              state,
		CreatedHeight:      id,
	}
}

func (s *OrderRepositoryTestSuite) TestNextOrderID() {
	ctx := context.Background()

	first, err := s.repository.NextOrderID(ctx)
	s.Require().NoError(err)
	second, err := s.repository.NextOrderID(ctx)
	s.Require().NoError(err)

	s.Require().Equal(uint64(1), first)
	s.Require().Equal(uint64(2), second)
}

func (s *OrderRepositoryTestSuite) TestStoreAndGetOrder() {
	ctx := context.Background()

	s.Require().NoError(s.repository.StoreOrder(ctx, newOrder(1, "alice", limitorderdomain.OrderStateOpen)))

	order, found, err := s.repository.GetOrder(ctx, 1)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal("alice", order.Maker)
	s.Require().Equal(int32(60), order.TickLower)
	s.Require().Equal("999999", order.Deposited.String())
	s.Require().Equal("12345", order.Liquidity.Dec())
	s.Require().Equal("79228162514264337593543950336", order.TargetSqrtPriceX96.Dec())

	_, found, err = s.repository.GetOrder(ctx, 2)
	s.Require().NoError(err)
	s.Require().False(found)
}

func (s *OrderRepositoryTestSuite) TestReturnedOrdersAreCopies() {
	ctx := context.Background()

	s.Require().NoError(s.repository.StoreOrder(ctx, newOrder(1, "alice", limitorderdomain.OrderStateOpen)))

	order, _, err := s.repository.GetOrder(ctx, 1)
	s.Require().NoError(err)
	order.Liquidity.SetUint64(1)

	stored, _, err := s.repository.GetOrder(ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal("12345", stored.Liquidity.Dec())
}

func (s *OrderRepositoryTestSuite) TestQueries() {
	ctx := context.Background()

	s.Require().NoError(s.repository.StoreOrder(ctx, newOrder(3, "alice", limitorderdomain.OrderStateOpen)))
	s.Require().NoError(s.repository.StoreOrder(ctx, newOrder(1, "alice", limitorderdomain.OrderStateClosed)))
	s.Require().NoError(s.repository.StoreOrder(ctx, newOrder(2, "bob", limitorderdomain.OrderStateOpen)))
	s.Require().NoError(s.repository.StoreOrder(ctx, newOrder(4, "alice/x", limitorderdomain.OrderStateOpen)))

	tests := []struct {
		name        string
		query       func() ([]limitorderdomain.Order, error)
		expectedIDs []uint64
	}{
		{
			name:        "orders by maker",
			query:       func() ([]limitorderdomain.Order, error) { return s.repository.GetOrdersByMaker(ctx, "alice") },
			expectedIDs: []uint64{1, 3},
		},
		{
			name:        "orders by unknown maker",
			query:       func() ([]limitorderdomain.Order, error) { return s.repository.GetOrdersByMaker(ctx, "carol") },
			expectedIDs: []uint64{},
		},
		{
			name:        "open orders",
			query:       func() ([]limitorderdomain.Order, error) { return s.repository.GetOpenOrders(ctx) },
			expectedIDs: []uint64{2, 3, 4},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			orders, err := tc.query()
			s.Require().NoError(err)

			ids := make([]uint64, 0, len(orders))
			for _, order := range orders {
				ids = append(ids, order.ID)
			}
			s.Require().Equal(tc.expectedIDs, ids)
		})
	}
}

func (s *OrderRepositoryTestSuite) TestCheckpointRestore() {
	ctx := context.Background()

	id, err := s.repository.NextOrderID(ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.repository.StoreOrder(ctx, newOrder(id, "alice", limitorderdomain.OrderStateOpen)))

	restore := s.repository.Checkpoint()

	closed := newOrder(id, "alice", limitorderdomain.OrderStateClosed)
	s.Require().NoError(s.repository.StoreOrder(ctx, closed))
	next, err := s.repository.NextOrderID(ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.repository.StoreOrder(ctx, newOrder(next, "bob", limitorderdomain.OrderStateOpen)))

	restore()

	order, found, err := s.repository.GetOrder(ctx, id)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(limitorderdomain.OrderStateOpen, order.State)

	_, found, err = s.repository.GetOrder(ctx, next)
	s.Require().NoError(err)
	s.Require().False(found)

	bobOrders, err := s.repository.GetOrdersByMaker(ctx, "bob")
	s.Require().NoError(err)
	s.Require().Empty(bobOrders)

	reissued, err := s.repository.NextOrderID(ctx)
	s.Require().NoError(err)
	s.Require().Equal(next, reissued)
}

func TestPebbleReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repository, err := limitorderrepository.NewPebble(dir, 0)
	assert.NoError(t, err)

	id, err := repository.NextOrderID(ctx)
	assert.NoError(t, err)
	assert.NoError(t, repository.StoreOrder(ctx, newOrder(id, "alice", limitorderdomain.OrderStateOpen)))
	assert.NoError(t, repository.Close())

	reopened, err := limitorderrepository.NewPebble(dir, 0)
	assert.NoError(t, err)
	defer reopened.Close()

	order, found, err := reopened.GetOrder(ctx, id)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", order.Maker)

	next, err := reopened.NextOrderID(ctx)
	assert.NoError(t, err)
	assert.Equal(t, id+1, next)
}
