package fillbot_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/osmosis-labs/limitswap/domain"
	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/domain/mocks"
	"github.com/osmosis-labs/limitswap/limitorder/fillbot"
	"github.com/osmosis-labs/limitswap/log"
	"github.com/osmosis-labs/limitswap/pricemath"
)

const (
	ATOM = "atom"
	USDC = "usdc"

	botAddress    = "bot"
	engineAddress = "engine"
)

type FillBotTestSuite struct {
	suite.Suite

	mu       sync.Mutex
	filled   []uint64
	approved []sdk.Coin
	// statusReads counts order status reads, which quoting must not need
	statusReads int
}

func TestFillBotTestSuite(t *testing.T) {
	suite.Run(t, new(FillBotTestSuite))
}

func (s *FillBotTestSuite) SetupTest() {
	s.filled = nil
	s.approved = nil
	s.statusReads = 0
}

type orderFixture struct {
	order limitorderdomain.Order
	quote osmomath.Int
	// released is the token in the quote releases
	released osmomath.Int
	// quoteErr fails the quote of the order
	quoteErr error
}

// fixtures are quoted against pools where the raw price of atom in usdc is 1 (fee 3000) and 4 (fee 500).
func fixtures() []orderFixture {
	sellAtom := func(id uint64, fee uint32) limitorderdomain.Order {
		return limitorderdomain.Order{ID: id, TokenIn: ATOM, TokenOut: USDC, Fee: fee, ZeroForOne: true}
	}
	sellUSDC := func(id uint64, fee uint32) limitorderdomain.Order {
		return limitorderdomain.Order{ID: id, TokenIn: USDC, TokenOut: ATOM, Fee: fee, ZeroForOne: false}
	}

	return []orderFixture{
		// 1000 atom worth 1000 usdc for 990 usdc
		{order: sellAtom(1, 3000), quote: osmomath.NewInt(990), released: osmomath.NewInt(1000)},
		// nothing to fill
		{order: sellAtom(2, 3000), quote: osmomath.ZeroInt(), released: osmomath.ZeroInt()},
		// break even is below the minimum profit
		{order: sellAtom(3, 3000), quote: osmomath.NewInt(1000), released: osmomath.NewInt(1000)},
		// 2000 usdc worth 500 atom for 400 atom
		{order: sellUSDC(4, 500), quote: osmomath.NewInt(400), released: osmomath.NewInt(2000)},
		{order: sellAtom(5, 3000), quoteErr: mocks.MockError{Err: "quote failed"}},
		// more than the bot holds
		{order: sellAtom(6, 3000), quote: osmomath.NewInt(1_000_000), released: osmomath.NewInt(10_000_000)},
	}
}

type runnableBot interface {
	ProcessRound(ctx context.Context) error
	Run(ctx context.Context)
}

func (s *FillBotTestSuite) newBot(orders []orderFixture, fillErr error) runnableBot {
	return s.newRunnableBot(orders, fillErr, time.Second)
}

func (s *FillBotTestSuite) newRunnableBot(orders []orderFixture, fillErr error, interval time.Duration) runnableBot {
	byID := make(map[uint64]orderFixture, len(orders))
	open := make([]limitorderdomain.Order, 0, len(orders))
	for _, fixture := range orders {
		byID[fixture.order.ID] = fixture
		open = append(open, fixture.order)
	}

	limitOrderUsecase := &mocks.LimitOrderUsecaseMock{
		Engine: engineAddress,
		GetOpenOrdersFunc: func(ctx context.Context) ([]limitorderdomain.Order, error) {
			return open, nil
		},
		GetOrderFillAmountFunc: func(ctx context.Context, orderID uint64) (limitorderdomain.FillQuote, error) {
			fixture := byID[orderID]
			if fixture.quoteErr != nil {
				return limitorderdomain.FillQuote{}, fixture.quoteErr
			}
			return limitorderdomain.FillQuote{
				OrderID:        orderID,
				TokenNeeded:    fixture.order.TokenOut,
				AmountNeeded:   fixture.quote,
				TokenReleased:  fixture.order.TokenIn,
				AmountReleased: fixture.released,
			}, nil
		},
		GetOrderStatusFunc: func(ctx context.Context, orderID uint64) (limitorderdomain.OrderStatus, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.statusReads++
			return limitorderdomain.OrderStatus{}, mocks.MockError{Err: "status is not read when quoting"}
		},
		FillOrderFunc: func(ctx context.Context, filler string, orderID uint64, amountOffered osmomath.Int) (limitorderdomain.FillResult, error) {
			s.Require().Equal(botAddress, filler)
			s.Require().True(byID[orderID].quote.Equal(amountOffered))
			if fillErr != nil {
				return limitorderdomain.FillResult{}, fillErr
			}

			s.mu.Lock()
			defer s.mu.Unlock()
			s.filled = append(s.filled, orderID)
			return limitorderdomain.FillResult{OrderID: orderID, AmountUsed: amountOffered}, nil
		},
	}

	poolsUsecase := &mocks.PoolsUsecaseMock{
		GetPoolFunc: func(ctx context.Context, key domain.PoolKey) (domain.PoolView, error) {
			sqrtPrice := pricemath.Q96
			if key.Fee == 500 {
				sqrtPrice = new(uint256.Int).Mul(uint256.NewInt(2), pricemath.Q96)
			}
			return domain.PoolView{PoolState: domain.PoolState{Key: key, SqrtPriceX96: sqrtPrice}}, nil
		},
	}

	bankUsecase := &mocks.BankUsecaseMock{
		GetBalancesFunc: func(ctx context.Context, address string) (sdk.Coins, error) {
			return sdk.NewCoins(sdk.NewInt64Coin(ATOM, 100_000), sdk.NewInt64Coin(USDC, 100_000)), nil
		},
		ApproveFunc: func(ctx context.Context, owner, spender string, coin sdk.Coin) error {
			s.Require().Equal(botAddress, owner)
			s.Require().Equal(engineAddress, spender)

			s.mu.Lock()
			defer s.mu.Unlock()
			s.approved = append(s.approved, coin)
			return nil
		},
	}

	config, err := fillbot.NewConfig(domain.FillBotConfig{
		Address:       botAddress,
		Interval:      interval,
		MinProfit:     "1.001",
		NumWorkers:    3,
		FillBatchSize: 2,
	})
	s.Require().NoError(err)

	return fillbot.New(limitOrderUsecase, poolsUsecase, bankUsecase, config, &log.NoOpLogger{})
}

func (s *FillBotTestSuite) TestProcessRound() {
	bot := s.newBot(fixtures(), nil)

	s.Require().NoError(bot.ProcessRound(context.Background()))

	s.Require().Equal([]uint64{1, 4}, s.filled)
	s.Require().Equal([]sdk.Coin{sdk.NewInt64Coin(USDC, 990), sdk.NewInt64Coin(ATOM, 400)}, s.approved)

	// profitability comes from the quote alone so both amounts are from the same state
	s.Require().Zero(s.statusReads)
}

func (s *FillBotTestSuite) TestProcessRound_FillFailure() {
	bot := s.newBot(fixtures(), mocks.MockError{Err: "order closed"})

	// failed fills are logged and the round carries on
	s.Require().NoError(bot.ProcessRound(context.Background()))
	s.Require().Empty(s.filled)
	s.Require().Len(s.approved, 2)
}

func (s *FillBotTestSuite) TestProcessRound_Cancelled() {
	bot := s.newBot(fixtures(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Require().ErrorIs(bot.ProcessRound(ctx), context.Canceled)
	s.Require().Empty(s.filled)
}

func (s *FillBotTestSuite) TestProcessRound_ManyOrders() {
	orders := make([]orderFixture, 0, 25)
	for i := uint64(1); i <= 25; i++ {
		orders = append(orders, orderFixture{
			order:    limitorderdomain.Order{ID: i, TokenIn: ATOM, TokenOut: USDC, Fee: 3000, ZeroForOne: true},
			quote:    osmomath.NewInt(100),
			released: osmomath.NewInt(200),
		})
	}
	bot := s.newBot(orders, nil)

	s.Require().NoError(bot.ProcessRound(context.Background()))

	// fills follow order ID order regardless of quoting concurrency
	s.Require().Len(s.filled, 25)
	for i, orderID := range s.filled {
		s.Require().Equal(uint64(i+1), orderID, fmt.Sprintf("fill %d", i))
	}
}

func (s *FillBotTestSuite) TestRun() {
	bot := s.newRunnableBot(fixtures()[:1], nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		bot.Run(ctx)
	}()

	s.Require().Eventually(func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.filled) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("fill bot did not stop")
	}
}

func (s *FillBotTestSuite) TestNewConfig() {
	testcases := []struct {
		name      string
		config    domain.FillBotConfig
		expectErr bool

		expectedInterval  time.Duration
		expectedMinProfit osmomath.Dec
		expectedWorkers   int
		expectedBatchSize int
	}{
		{
			name:              "defaults",
			config:            domain.FillBotConfig{Address: botAddress},
			expectedInterval:  fillbot.DefaultInterval,
			expectedMinProfit: fillbot.DefaultMinProfit,
			expectedWorkers:   fillbot.DefaultNumWorkers,
			expectedBatchSize: fillbot.DefaultFillBatchSize,
		},
		{
			name:              "explicit",
			config:            domain.FillBotConfig{Address: botAddress, Interval: time.Minute, MinProfit: "1.05", NumWorkers: 8, FillBatchSize: 3},
			expectedInterval:  time.Minute,
			expectedMinProfit: osmomath.MustNewDecFromStr("1.05"),
			expectedWorkers:   8,
			expectedBatchSize: 3,
		},
		{
			name:      "missing address",
			config:    domain.FillBotConfig{},
			expectErr: true,
		},
		{
			name:      "invalid min profit",
			config:    domain.FillBotConfig{Address: botAddress, MinProfit: "lots"},
			expectErr: true,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			config, err := fillbot.NewConfig(tc.config)
			if tc.expectErr {
				s.Require().Error(err)
				return
			}

			s.Require().NoError(err)
			s.Require().Equal(botAddress, config.Address)
			s.Require().Equal(tc.expectedInterval, config.Interval)
			s.Require().True(tc.expectedMinProfit.Equal(config.MinProfit))
			s.Require().Equal(tc.expectedWorkers, config.NumWorkers)
			s.Require().Equal(tc.expectedBatchSize, config.FillBatchSize)
		})
	}
}
