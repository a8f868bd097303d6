package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/tokens/usecase"
)

type TokensUsecaseTestSuite struct {
	suite.Suite
}

func TestTokensUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(TokensUsecaseTestSuite))
}

func (s *TokensUsecaseTestSuite) newUsecase() mvc.TokensUsecase {
	return usecase.NewTokensUsecase(map[string]domain.Token{
		"uusdc": {HumanDenom: "USDC", Precision: 6},
		"weth":  {HumanDenom: "eth", Precision: 18},
		"uosmo": {Precision: 6},
	})
}

func (s *TokensUsecaseTestSuite) TestGetMetadataByChainDenom() {
	ctx := context.Background()
	tokensUsecase := s.newUsecase()

	token, err := tokensUsecase.GetMetadataByChainDenom(ctx, "uusdc")
	s.Require().NoError(err)
	s.Require().Equal(domain.Token{ChainDenom: "uusdc", HumanDenom: "USDC", Precision: 6}, token)

	// human denom defaults to the chain denom
	token, err = tokensUsecase.GetMetadataByChainDenom(ctx, "uosmo")
	s.Require().NoError(err)
	s.Require().Equal("uosmo", token.HumanDenom)

	_, err = tokensUsecase.GetMetadataByChainDenom(ctx, "uatom")
	s.Require().Error(err)
	s.Require().IsType(domain.TokenNotFoundError{}, err)
}

func (s *TokensUsecaseTestSuite) TestGetChainDenom() {
	ctx := context.Background()
	tokensUsecase := s.newUsecase()

	testcases := []struct {
		name       string
		humanDenom string

		expectedChainDenom string
		expectErr          bool
	}{
		{name: "exact case", humanDenom: "eth", expectedChainDenom: "weth"},
		{name: "case insensitive", humanDenom: "usdc", expectedChainDenom: "uusdc"},
		{name: "upper case query", humanDenom: "ETH", expectedChainDenom: "weth"},
		{name: "unknown", humanDenom: "atom", expectErr: true},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			chainDenom, err := tokensUsecase.GetChainDenom(ctx, tc.humanDenom)
			if tc.expectErr {
				s.Require().Error(err)
				s.Require().IsType(usecase.ChainDenomForHumanDenomNotFoundError{}, err)
				return
			}

			s.Require().NoError(err)
			s.Require().Equal(tc.expectedChainDenom, chainDenom)
		})
	}
}

func (s *TokensUsecaseTestSuite) TestRegisterToken() {
	ctx := context.Background()
	tokensUsecase := s.newUsecase()

	s.Require().NoError(tokensUsecase.RegisterToken(ctx, "weth", domain.Token{HumanDenom: "weth", Precision: 18}))

	// the previous human denom no longer resolves
	_, err := tokensUsecase.GetChainDenom(ctx, "eth")
	s.Require().Error(err)

	chainDenom, err := tokensUsecase.GetChainDenom(ctx, "weth")
	s.Require().NoError(err)
	s.Require().Equal("weth", chainDenom)

	err = tokensUsecase.RegisterToken(ctx, "1bad", domain.Token{Precision: 6})
	s.Require().IsType(usecase.InvalidDenomError{}, err)

	err = tokensUsecase.RegisterToken(ctx, "uatom", domain.Token{Precision: 37})
	s.Require().IsType(usecase.InvalidPrecisionError{}, err)

	all, err := tokensUsecase.GetFullTokenMetadata(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)

	// the returned map is a copy
	delete(all, "weth")
	_, err = tokensUsecase.GetMetadataByChainDenom(ctx, "weth")
	s.Require().NoError(err)
}
