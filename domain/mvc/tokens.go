package mvc

import (
	"context"

	"github.com/osmosis-labs/limitswap/domain"
)

// TokensUsecase defines an interface for the tokens usecase.
type TokensUsecase interface {
	// GetMetadataByChainDenom returns token metadata for a given chain denom.
	GetMetadataByChainDenom(ctx context.Context, denom string) (domain.Token, error)

	// GetFullTokenMetadata returns token metadata for all chain denoms as a map.
	GetFullTokenMetadata(ctx context.Context) (map[string]domain.Token, error)

	// GetChainDenom returns chain denom by human denom
	GetChainDenom(ctx context.Context, humanDenom string) (string, error)

	// RegisterToken adds or replaces the metadata of a chain denom.
	RegisterToken(ctx context.Context, denom string, token domain.Token) error
}
