package mocks

import (
	"context"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
)

var _ mvc.TokensUsecase = &TokensUsecaseMock{}

// TokensUsecaseMock is a mock implementation of the TokensUsecase interface.
// It serves Tokens when no function is set.
type TokensUsecaseMock struct {
	Tokens map[string]domain.Token

	GetMetadataByChainDenomFunc func(ctx context.Context, denom string) (domain.Token, error)
	RegisterTokenFunc           func(ctx context.Context, denom string, token domain.Token) error
}

func (m *TokensUsecaseMock) GetMetadataByChainDenom(ctx context.Context, denom string) (domain.Token, error) {
	if m.GetMetadataByChainDenomFunc != nil {
		return m.GetMetadataByChainDenomFunc(ctx, denom)
	}
	token, ok := m.Tokens[denom]
	if !ok {
		return domain.Token{}, domain.TokenNotFoundError{Denom: denom}
	}
	return token, nil
}

func (m *TokensUsecaseMock) GetFullTokenMetadata(ctx context.Context) (map[string]domain.Token, error) {
	return m.Tokens, nil
}

func (m *TokensUsecaseMock) GetChainDenom(ctx context.Context, humanDenom string) (string, error) {
	for denom, token := range m.Tokens {
		if token.HumanDenom == humanDenom {
			return denom, nil
		}
	}
	return "", domain.TokenNotFoundError{Denom: humanDenom}
}

func (m *TokensUsecaseMock) RegisterToken(ctx context.Context, denom string, token domain.Token) error {
	if m.RegisterTokenFunc != nil {
		return m.RegisterTokenFunc(ctx, denom, token)
	}
	panic("unimplemented")
}
