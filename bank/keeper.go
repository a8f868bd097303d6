package bank

import (
	"errors"
	"sort"
	"sync"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/limitswap/domain"
)

// Keeper is an in-memory token ledger with ERC-20 style allowances.
type Keeper struct {
	mu sync.RWMutex

	balances map[string]sdk.Coins
	// owner -> spender -> allowance
	allowances map[string]map[string]sdk.Coins
	supply     sdk.Coins
}

var _ domain.Bank = &Keeper{}

// New returns an empty Keeper.
func New() *Keeper {
	return &Keeper{
		balances:   make(map[string]sdk.Coins),
		allowances: make(map[string]map[string]sdk.Coins),
		supply:     sdk.NewCoins(),
	}
}

// Mint creates coins out of thin air and credits them to address.
func (k *Keeper) Mint(address string, coins ...sdk.Coin) error {
	if address == "" {
		return InvalidAddressError{Address: address}
	}

	minted := sdk.NewCoins()
	for _, coin := range coins {
		if err := validatePositive(coin); err != nil {
			return err
		}
		minted = minted.Add(coin)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.balances[address] = k.balances[address].Add(minted...)
	k.supply = k.supply.Add(minted...)
	return nil
}

// Balance implements domain.Bank.
func (k *Keeper) Balance(address, denom string) sdkmath.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.balances[address].AmountOf(denom)
}

// Balances returns all balances of address.
func (k *Keeper) Balances(address string) sdk.Coins {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return sdk.NewCoins(k.balances[address]...)
}

// Supply returns the total minted supply of denom.
func (k *Keeper) Supply(denom string) sdkmath.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.supply.AmountOf(denom)
}

// Accounts returns all addresses holding a balance, sorted.
func (k *Keeper) Accounts() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	addresses := make([]string, 0, len(k.balances))
	for address, balance := range k.balances {
		if !balance.IsZero() {
			addresses = append(addresses, address)
		}
	}
	sort.Strings(addresses)
	return addresses
}

// Transfer implements domain.Bank.
func (k *Keeper) Transfer(from, to string, coin sdk.Coin) error {
	if err := validateTransfer(from, to, coin); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	return k.transfer(from, to, coin)
}

// Approve sets the allowance of spender over the denom of coin held by owner.
// A zero amount revokes the allowance.
func (k *Keeper) Approve(owner, spender string, coin sdk.Coin) error {
	if owner == "" || spender == "" {
		return InvalidAddressError{Address: owner + "/" + spender}
	}
	if err := coin.Validate(); err != nil {
		return InvalidCoinError{Coin: coin.String(), Err: err}
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	spenders, ok := k.allowances[owner]
	if !ok {
		spenders = make(map[string]sdk.Coins)
		k.allowances[owner] = spenders
	}
	spenders[spender] = setAmount(spenders[spender], coin)
	return nil
}

// Allowance returns how much of denom spender may move out of owner.
func (k *Keeper) Allowance(owner, spender, denom string) sdkmath.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.allowances[owner][spender].AmountOf(denom)
}

// TransferFrom implements domain.Bank.
func (k *Keeper) TransferFrom(spender, from, to string, coin sdk.Coin) error {
	if err := validateTransfer(from, to, coin); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	allowance := k.allowances[from][spender]
	if allowance.AmountOf(coin.Denom).LT(coin.Amount) {
		return InsufficientAllowanceError{
			Owner:     from,
			Spender:   spender,
			Denom:     coin.Denom,
			Allowance: allowance.AmountOf(coin.Denom),
			Required:  coin.Amount,
		}
	}

	if err := k.transfer(from, to, coin); err != nil {
		return err
	}

	remaining := allowance.AmountOf(coin.Denom).Sub(coin.Amount)
	k.allowances[from][spender] = setAmount(allowance, sdk.NewCoin(coin.Denom, remaining))
	return nil
}

// Checkpoint snapshots all balances and allowances and returns a function restoring them.
func (k *Keeper) Checkpoint() func() {
	k.mu.RLock()
	balances := make(map[string]sdk.Coins, len(k.balances))
	for address, coins := range k.balances {
		balances[address] = sdk.NewCoins(coins...)
	}
	allowances := make(map[string]map[string]sdk.Coins, len(k.allowances))
	for owner, spenders := range k.allowances {
		copied := make(map[string]sdk.Coins, len(spenders))
		for spender, coins := range spenders {
			copied[spender] = sdk.NewCoins(coins...)
		}
		allowances[owner] = copied
	}
	supply := sdk.NewCoins(k.supply...)
	k.mu.RUnlock()

	return func() {
		k.mu.Lock()
		defer k.mu.Unlock()

		k.balances = balances
		k.allowances = allowances
		k.supply = supply
	}
}

// transfer must be called with the write lock held.
func (k *Keeper) transfer(from, to string, coin sdk.Coin) error {
	fromBalance := k.balances[from]
	remaining, hasNeg := fromBalance.SafeSub(coin)
	if hasNeg {
		return InsufficientBalanceError{
			Address:  from,
			Denom:    coin.Denom,
			Balance:  fromBalance.AmountOf(coin.Denom),
			Required: coin.Amount,
		}
	}

	k.balances[from] = remaining
	k.balances[to] = k.balances[to].Add(coin)
	return nil
}

// setAmount returns coins with the amount of coin.Denom replaced by coin.Amount.
func setAmount(coins sdk.Coins, coin sdk.Coin) sdk.Coins {
	updated := make(sdk.Coins, 0, len(coins)+1)
	for _, c := range coins {
		if c.Denom != coin.Denom {
			updated = append(updated, c)
		}
	}
	if coin.IsPositive() {
		updated = append(updated, coin)
	}
	return sdk.NewCoins(updated...)
}

func validateTransfer(from, to string, coin sdk.Coin) error {
	if from == "" {
		return InvalidAddressError{Address: from}
	}
	if to == "" {
		return InvalidAddressError{Address: to}
	}
	return validatePositive(coin)
}

func validatePositive(coin sdk.Coin) error {
	if err := coin.Validate(); err != nil {
		return InvalidCoinError{Coin: coin.String(), Err: err}
	}
	if !coin.IsPositive() {
		return InvalidCoinError{Coin: coin.String(), Err: errors.New("amount must be positive")}
	}
	return nil
}
