package main

import (
	"context"
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/log"
	"github.com/osmosis-labs/limitswap/pricemath"
)

// Genesis is the initial state loaded at start. Amounts are human decimals, scaled by the
// decimals of their token.
type Genesis struct {
	FeeTiers  []GenesisFeeTier  `yaml:"fee_tiers"`
	Tokens    []domain.Token    `yaml:"tokens"`
	Accounts  []GenesisAccount  `yaml:"accounts"`
	Pools     []GenesisPool     `yaml:"pools"`
	Positions []GenesisPosition `yaml:"positions"`
}

// GenesisFeeTier enables a fee tier besides the defaults.
type GenesisFeeTier struct {
	Fee         uint32 `yaml:"fee"`
	TickSpacing int32  `yaml:"tick_spacing"`
}

// GenesisAccount funds an address and sets its allowances.
type GenesisAccount struct {
	Address    string             `yaml:"address"`
	Balances   []GenesisAmount    `yaml:"balances"`
	Allowances []GenesisAllowance `yaml:"allowances"`
}

type GenesisAmount struct {
	Denom  string          `yaml:"denom"`
	Amount decimal.Decimal `yaml:"amount"`
}

type GenesisAllowance struct {
	Spender string          `yaml:"spender"`
	Denom   string          `yaml:"denom"`
	Amount  decimal.Decimal `yaml:"amount"`
}

// GenesisPool creates a pool. Price is whole token1 per whole token0 of the sorted pair.
type GenesisPool struct {
	TokenA string          `yaml:"token_a"`
	TokenB string          `yaml:"token_b"`
	Fee    uint32          `yaml:"fee"`
	Price  decimal.Decimal `yaml:"price"`
}

// GenesisPosition adds liquidity from the owner balances. Zero ticks select the full range.
type GenesisPosition struct {
	Owner     string          `yaml:"owner"`
	TokenA    string          `yaml:"token_a"`
	TokenB    string          `yaml:"token_b"`
	Fee       uint32          `yaml:"fee"`
	TickLower int32           `yaml:"tick_lower"`
	TickUpper int32           `yaml:"tick_upper"`
	Amount0   decimal.Decimal `yaml:"amount0"`
	Amount1   decimal.Decimal `yaml:"amount1"`
}

// FeeTierEnabler enables extra pool fee tiers.
type FeeTierEnabler interface {
	EnableFeeAmount(fee uint32, tickSpacing int32) error
}

// LoadGenesis reads the genesis file at path.
func LoadGenesis(path string) (Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := yaml.Unmarshal(data, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("failed to parse genesis %s: %w", path, err)
	}
	return genesis, nil
}

// genesisLoader applies a genesis through the usecases so that every step is a ledger transaction.
type genesisLoader struct {
	feeTiers      FeeTierEnabler
	tokensUseCase mvc.TokensUsecase
	bankUseCase   mvc.BankUsecase
	poolsUseCase  mvc.PoolsUsecase
	logger        log.Logger
}

// Apply applies genesis in order: fee tiers, tokens, accounts, pools, positions.
func (g *genesisLoader) Apply(ctx context.Context, genesis Genesis) error {
	for _, tier := range genesis.FeeTiers {
		if err := g.feeTiers.EnableFeeAmount(tier.Fee, tier.TickSpacing); err != nil {
			return fmt.Errorf("fee tier %d: %w", tier.Fee, err)
		}
	}

	for _, token := range genesis.Tokens {
		if err := g.tokensUseCase.RegisterToken(ctx, token.ChainDenom, token); err != nil {
			return fmt.Errorf("token %s: %w", token.ChainDenom, err)
		}
	}

	for _, account := range genesis.Accounts {
		if err := g.applyAccount(ctx, account); err != nil {
			return fmt.Errorf("account %s: %w", account.Address, err)
		}
	}

	for _, pool := range genesis.Pools {
		if _, err := g.poolsUseCase.CreatePool(ctx, pool.TokenA, pool.TokenB, pool.Fee, pool.Price); err != nil {
			return fmt.Errorf("pool %s/%s/%d: %w", pool.TokenA, pool.TokenB, pool.Fee, err)
		}
	}

	for _, position := range genesis.Positions {
		if err := g.applyPosition(ctx, position); err != nil {
			return fmt.Errorf("position of %s in %s/%s/%d: %w", position.Owner, position.TokenA, position.TokenB, position.Fee, err)
		}
	}

	g.logger.Info("applied genesis",
		zap.Int("tokens", len(genesis.Tokens)),
		zap.Int("accounts", len(genesis.Accounts)),
		zap.Int("pools", len(genesis.Pools)),
		zap.Int("positions", len(genesis.Positions)),
	)

	return nil
}

func (g *genesisLoader) applyAccount(ctx context.Context, account GenesisAccount) error {
	coins := make([]sdk.Coin, 0, len(account.Balances))
	for _, balance := range account.Balances {
		coin, err := g.toCoin(ctx, balance.Denom, balance.Amount)
		if err != nil {
			return err
		}
		coins = append(coins, coin)
	}
	if len(coins) > 0 {
		if err := g.bankUseCase.Mint(ctx, account.Address, coins...); err != nil {
			return err
		}
	}

	for _, allowance := range account.Allowances {
		coin, err := g.toCoin(ctx, allowance.Denom, allowance.Amount)
		if err != nil {
			return err
		}
		if err := g.bankUseCase.Approve(ctx, account.Address, allowance.Spender, coin); err != nil {
			return err
		}
	}
	return nil
}

func (g *genesisLoader) applyPosition(ctx context.Context, position GenesisPosition) error {
	key := domain.NewPoolKey(position.TokenA, position.TokenB, position.Fee)

	amount0, err := g.toRawAmount(ctx, key.Token0, position.Amount0)
	if err != nil {
		return err
	}
	amount1, err := g.toRawAmount(ctx, key.Token1, position.Amount1)
	if err != nil {
		return err
	}

	_, err = g.poolsUseCase.AddLiquidity(ctx, position.Owner, key, position.TickLower, position.TickUpper, amount0, amount1)
	return err
}

func (g *genesisLoader) toCoin(ctx context.Context, denom string, amount decimal.Decimal) (sdk.Coin, error) {
	raw, err := g.toRawAmount(ctx, denom, amount)
	if err != nil {
		return sdk.Coin{}, err
	}
	return sdk.Coin{Denom: denom, Amount: pricemath.ToInt(raw)}, nil
}

func (g *genesisLoader) toRawAmount(ctx context.Context, denom string, amount decimal.Decimal) (*uint256.Int, error) {
	token, err := g.tokensUseCase.GetMetadataByChainDenom(ctx, denom)
	if err != nil {
		return nil, err
	}
	return pricemath.ParseUnits(amount, uint8(token.Precision))
}
