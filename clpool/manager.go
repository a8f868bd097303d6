package clpool

import (
	"context"
	"sort"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/pricemath"
)

// DefaultFeeTickSpacing are the fee tiers enabled on a new Manager.
var DefaultFeeTickSpacing = map[uint32]int32{
	100:   1,
	500:   10,
	3000:  60,
	10000: 200,
}

type positionRecord struct {
	owner     string
	key       domain.PoolKey
	tickLower int32
	tickUpper int32
}

// Manager creates pools and manages positions on behalf of their owners.
// Pool reserves are custodied by the bank account returned by PoolKey.Address.
type Manager struct {
	mu sync.RWMutex

	bank           domain.Bank
	feeTickSpacing map[uint32]int32

	pools          map[domain.PoolKey]*pool
	positions      map[uint64]*positionRecord
	nextPositionID uint64
}

// NewManager returns a Manager with the default fee tiers enabled.
func NewManager(bank domain.Bank) *Manager {
	feeTickSpacing := make(map[uint32]int32, len(DefaultFeeTickSpacing))
	for fee, spacing := range DefaultFeeTickSpacing {
		feeTickSpacing[fee] = spacing
	}

	return &Manager{
		bank:           bank,
		feeTickSpacing: feeTickSpacing,
		pools:          make(map[domain.PoolKey]*pool),
		positions:      make(map[uint64]*positionRecord),
		nextPositionID: 1,
	}
}

// TickSpacing returns the tick spacing of an enabled fee tier.
func (m *Manager) TickSpacing(fee uint32) (int32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	spacing, ok := m.feeTickSpacing[fee]
	if !ok {
		return 0, UnsupportedFeeError{Fee: fee}
	}
	return spacing, nil
}

// EnableFeeAmount enables a fee tier with the given tick spacing.
func (m *Manager) EnableFeeAmount(fee uint32, tickSpacing int32) error {
	if uint64(fee) >= FeeDenominator || tickSpacing <= 0 || tickSpacing >= 16384 {
		return UnsupportedFeeError{Fee: fee}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.feeTickSpacing[fee]; ok {
		return UnsupportedFeeError{Fee: fee}
	}
	m.feeTickSpacing[fee] = tickSpacing
	return nil
}

// CreatePool creates and initializes the pool of tokenA and tokenB at sqrtPriceX96.
func (m *Manager) CreatePool(ctx context.Context, tokenA, tokenB string, fee uint32, sqrtPriceX96 *uint256.Int) (domain.PoolState, error) {
	if tokenA == tokenB {
		return domain.PoolState{}, InvalidTokenPairError{TokenA: tokenA, TokenB: tokenB}
	}
	if err := sdk.ValidateDenom(tokenA); err != nil {
		return domain.PoolState{}, InvalidTokenPairError{TokenA: tokenA, TokenB: tokenB}
	}
	if err := sdk.ValidateDenom(tokenB); err != nil {
		return domain.PoolState{}, InvalidTokenPairError{TokenA: tokenA, TokenB: tokenB}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	spacing, ok := m.feeTickSpacing[fee]
	if !ok {
		return domain.PoolState{}, UnsupportedFeeError{Fee: fee}
	}

	key := domain.NewPoolKey(tokenA, tokenB, fee)
	if _, ok := m.pools[key]; ok {
		return domain.PoolState{}, PoolAlreadyExistsError{Key: key}
	}

	p, err := newPool(key, spacing, sqrtPriceX96)
	if err != nil {
		return domain.PoolState{}, err
	}
	m.pools[key] = p

	return p.state(), nil
}

// PoolState returns the current state of the pool with the given key.
func (m *Manager) PoolState(ctx context.Context, key domain.PoolKey) (domain.PoolState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.pools[key]
	if !ok {
		return domain.PoolState{}, domain.PoolNotFoundError{Key: key}
	}
	return p.state(), nil
}

// Pools returns the state of all pools sorted by key.
func (m *Manager) Pools(ctx context.Context) []domain.PoolState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]domain.PoolState, 0, len(m.pools))
	for _, p := range m.pools {
		states = append(states, p.state())
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].Key.String() < states[j].Key.String()
	})
	return states
}

// Mint creates a new position owned by params.Recipient.
// pay is invoked with the exact amounts owed and must transfer them to the pool before returning.
func (m *Manager) Mint(ctx context.Context, params domain.MintParams, pay domain.PayFunc) (domain.MintResult, error) {
	m.mu.Lock()

	p, ok := m.pools[params.Key]
	if !ok {
		m.mu.Unlock()
		return domain.MintResult{}, domain.PoolNotFoundError{Key: params.Key}
	}

	positionID := m.nextPositionID
	amount0, amount1, err := p.modifyPosition(positionID, params.TickLower, params.TickUpper, params.Liquidity, true)
	if err != nil {
		m.mu.Unlock()
		return domain.MintResult{}, err
	}

	m.nextPositionID++
	m.positions[positionID] = &positionRecord{
		owner:     params.Recipient,
		key:       params.Key,
		tickLower: params.TickLower,
		tickUpper: params.TickUpper,
	}
	m.mu.Unlock()

	poolAddress := params.Key.Address()
	balance0Before := m.bank.Balance(poolAddress, params.Key.Token0)
	balance1Before := m.bank.Balance(poolAddress, params.Key.Token1)

	if err := pay(ctx, amount0.Clone(), amount1.Clone(), poolAddress); err != nil {
		return domain.MintResult{}, err
	}

	if err := m.checkPaid(poolAddress, params.Key.Token0, balance0Before, amount0); err != nil {
		return domain.MintResult{}, err
	}
	if err := m.checkPaid(poolAddress, params.Key.Token1, balance1Before, amount1); err != nil {
		return domain.MintResult{}, err
	}

	return domain.MintResult{
		PositionID: positionID,
		Liquidity:  params.Liquidity.Clone(),
		Amount0:    amount0,
		Amount1:    amount1,
	}, nil
}

func (m *Manager) checkPaid(poolAddress, denom string, before osmomath.Int, owed *uint256.Int) error {
	expected := before.Add(pricemath.ToInt(owed))
	received := m.bank.Balance(poolAddress, denom)
	if received.LT(expected) {
		return InsufficientPaymentError{Denom: denom, Owed: owed.Dec(), Received: received.Sub(before).String()}
	}
	return nil
}

// Position returns the position with the given ID. Owed amounts include uncollected fees.
func (m *Manager) Position(ctx context.Context, positionID uint64) (domain.PositionInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, p, err := m.getPosition(positionID)
	if err != nil {
		return domain.PositionInfo{}, err
	}

	owed0, owed1, err := p.owed(positionID)
	if err != nil {
		return domain.PositionInfo{}, err
	}

	return domain.PositionInfo{
		ID:          positionID,
		Owner:       record.owner,
		Key:         record.key,
		TickLower:   record.tickLower,
		TickUpper:   record.tickUpper,
		Liquidity:   p.positions[positionID].liquidity.Clone(),
		TokensOwed0: owed0,
		TokensOwed1: owed1,
	}, nil
}

// DecreaseLiquidity removes liquidity from a position. The released principal is credited
// to the position owed balances and returned.
func (m *Manager) DecreaseLiquidity(ctx context.Context, sender string, positionID uint64, liquidity *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, p, err := m.getOwnedPosition(sender, positionID)
	if err != nil {
		return nil, nil, err
	}

	return p.modifyPosition(positionID, record.tickLower, record.tickUpper, liquidity, false)
}

// Collect transfers everything owed to a position, principal and fees, to recipient.
func (m *Manager) Collect(ctx context.Context, sender string, positionID uint64, recipient string) (*uint256.Int, *uint256.Int, error) {
	m.mu.Lock()
	record, p, err := m.getOwnedPosition(sender, positionID)
	if err != nil {
		m.mu.Unlock()
		return nil, nil, err
	}

	amount0, amount1, err := p.collect(positionID)
	m.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	poolAddress := record.key.Address()
	if err := m.payOut(poolAddress, recipient, record.key.Token0, amount0); err != nil {
		return nil, nil, err
	}
	if err := m.payOut(poolAddress, recipient, record.key.Token1, amount1); err != nil {
		return nil, nil, err
	}

	return amount0, amount1, nil
}

// Burn deletes a position that has no liquidity and nothing owed.
func (m *Manager) Burn(ctx context.Context, sender string, positionID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, p, err := m.getOwnedPosition(sender, positionID)
	if err != nil {
		return err
	}

	if err := p.deletePosition(positionID); err != nil {
		return err
	}
	delete(m.positions, positionID)
	return nil
}

// Swap executes an exact input swap. The input is debited from params.Sender and the output
// is credited to params.Recipient.
func (m *Manager) Swap(ctx context.Context, params domain.SwapParams) (domain.SwapResult, error) {
	m.mu.Lock()

	p, ok := m.pools[params.Key]
	if !ok {
		m.mu.Unlock()
		return domain.SwapResult{}, domain.PoolNotFoundError{Key: params.Key}
	}

	if params.TokenIn != params.Key.Token0 && params.TokenIn != params.Key.Token1 {
		m.mu.Unlock()
		return domain.SwapResult{}, InvalidTokenPairError{TokenA: params.TokenIn, TokenB: params.Key.String()}
	}
	zeroForOne := params.Key.IsToken0(params.TokenIn)

	// swap on a copy so that the pool is only replaced once the output is known to be acceptable
	next := p.clone()
	amountIn, amountOut, err := next.swap(zeroForOne, params.AmountIn, params.SqrtPriceLimitX96)
	if err != nil {
		m.mu.Unlock()
		return domain.SwapResult{}, err
	}

	if params.AmountOutMinimum != nil && amountOut.Lt(params.AmountOutMinimum) {
		m.mu.Unlock()
		return domain.SwapResult{}, SlippageExceededError{AmountOut: amountOut.Dec(), AmountOutMinimum: params.AmountOutMinimum.Dec()}
	}

	m.pools[params.Key] = next
	result := domain.SwapResult{
		AmountIn:          amountIn,
		AmountOut:         amountOut,
		SqrtPriceX96After: next.sqrtPriceX96.Clone(),
		TickAfter:         next.tick,
	}
	m.mu.Unlock()

	tokenOut := params.Key.Token1
	if !zeroForOne {
		tokenOut = params.Key.Token0
	}

	poolAddress := params.Key.Address()
	if !amountIn.IsZero() {
		if err := m.bank.Transfer(params.Sender, poolAddress, sdk.NewCoin(params.TokenIn, pricemath.ToInt(amountIn))); err != nil {
			return domain.SwapResult{}, err
		}
	}
	if err := m.payOut(poolAddress, params.Recipient, tokenOut, amountOut); err != nil {
		return domain.SwapResult{}, err
	}

	return result, nil
}

// AmountDeltas returns the token deltas of liquidity moving between two square-root prices.
func (m *Manager) AmountDeltas(sqrtA, sqrtB, liquidity *uint256.Int, roundUp bool) (*uint256.Int, *uint256.Int, error) {
	return pricemath.AmountDeltaForPriceMove(sqrtA, sqrtB, liquidity, roundUp)
}

// Checkpoint snapshots all pools and positions and returns a function restoring the snapshot.
func (m *Manager) Checkpoint() func() {
	m.mu.RLock()
	pools := make(map[domain.PoolKey]*pool, len(m.pools))
	for key, p := range m.pools {
		pools[key] = p.clone()
	}
	positions := make(map[uint64]*positionRecord, len(m.positions))
	for id, record := range m.positions {
		copied := *record
		positions[id] = &copied
	}
	nextPositionID := m.nextPositionID
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.pools = pools
		m.positions = positions
		m.nextPositionID = nextPositionID
	}
}

func (m *Manager) payOut(poolAddress, recipient, denom string, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	return m.bank.Transfer(poolAddress, recipient, sdk.NewCoin(denom, pricemath.ToInt(amount)))
}

func (m *Manager) getPosition(positionID uint64) (*positionRecord, *pool, error) {
	record, ok := m.positions[positionID]
	if !ok {
		return nil, nil, PositionNotFoundError{PositionID: positionID}
	}

	p, ok := m.pools[record.key]
	if !ok {
		return nil, nil, domain.PoolNotFoundError{Key: record.key}
	}

	return record, p, nil
}

func (m *Manager) getOwnedPosition(sender string, positionID uint64) (*positionRecord, *pool, error) {
	record, p, err := m.getPosition(positionID)
	if err != nil {
		return nil, nil, err
	}

	if record.owner != sender {
		return nil, nil, NotPositionOwnerError{PositionID: positionID, Owner: record.owner, Sender: sender}
	}

	return record, p, nil
}
