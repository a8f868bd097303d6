package usecase

import (
	"context"
	"strings"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
)

// maxPrecision bounds decimals so that scaling factors fit the fixed-point math.
const maxPrecision = 36

type tokensUseCase struct {
	metadataMapMu             sync.RWMutex
	tokenMetadataByChainDenom map[string]domain.Token
	humanToChainDenomMap      map[string]string
}

var _ mvc.TokensUsecase = &tokensUseCase{}

// NewTokensUsecase will create a new tokens use case object
func NewTokensUsecase(tokenMetadataByChainDenom map[string]domain.Token) *tokensUseCase {
	t := &tokensUseCase{
		tokenMetadataByChainDenom: make(map[string]domain.Token, len(tokenMetadataByChainDenom)),
		humanToChainDenomMap:      make(map[string]string, len(tokenMetadataByChainDenom)),
	}

	for chainDenom, token := range tokenMetadataByChainDenom {
		t.register(chainDenom, token)
	}

	return t
}

// GetChainDenom implements mvc.TokensUsecase.
func (t *tokensUseCase) GetChainDenom(ctx context.Context, humanDenom string) (string, error) {
	humanDenomLowerCase := strings.ToLower(humanDenom)

	t.metadataMapMu.RLock()
	defer t.metadataMapMu.RUnlock()

	chainDenom, ok := t.humanToChainDenomMap[humanDenomLowerCase]
	if !ok {
		return "", ChainDenomForHumanDenomNotFoundError{HumanDenom: humanDenomLowerCase}
	}

	return chainDenom, nil
}

// GetMetadataByChainDenom implements mvc.TokensUsecase.
func (t *tokensUseCase) GetMetadataByChainDenom(ctx context.Context, denom string) (domain.Token, error) {
	t.metadataMapMu.RLock()
	defer t.metadataMapMu.RUnlock()

	token, ok := t.tokenMetadataByChainDenom[denom]
	if !ok {
		return domain.Token{}, domain.TokenNotFoundError{Denom: denom}
	}

	return token, nil
}

// GetFullTokenMetadata implements mvc.TokensUsecase.
func (t *tokensUseCase) GetFullTokenMetadata(ctx context.Context) (map[string]domain.Token, error) {
	t.metadataMapMu.RLock()
	defer t.metadataMapMu.RUnlock()

	result := make(map[string]domain.Token, len(t.tokenMetadataByChainDenom))
	for denom, token := range t.tokenMetadataByChainDenom {
		result[denom] = token
	}

	return result, nil
}

// RegisterToken implements mvc.TokensUsecase.
func (t *tokensUseCase) RegisterToken(ctx context.Context, denom string, token domain.Token) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return InvalidDenomError{ChainDenom: denom, Err: err}
	}
	if token.Precision < 0 || token.Precision > maxPrecision {
		return InvalidPrecisionError{ChainDenom: denom, Precision: token.Precision}
	}

	t.metadataMapMu.Lock()
	defer t.metadataMapMu.Unlock()

	t.register(denom, token)
	return nil
}

// register must be called with the lock held or before the usecase is shared.
func (t *tokensUseCase) register(chainDenom string, token domain.Token) {
	token.ChainDenom = chainDenom
	if token.HumanDenom == "" {
		token.HumanDenom = chainDenom
	}

	if previous, ok := t.tokenMetadataByChainDenom[chainDenom]; ok {
		delete(t.humanToChainDenomMap, strings.ToLower(previous.HumanDenom))
	}

	t.tokenMetadataByChainDenom[chainDenom] = token
	t.humanToChainDenomMap[strings.ToLower(token.HumanDenom)] = chainDenom
}
