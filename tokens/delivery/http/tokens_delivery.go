package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	_ "github.com/osmosis-labs/limitswap/docs"
	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/log"
)

// TokensHandler  represent the httphandler for tokens
type TokensHandler struct {
	TUsecase mvc.TokensUsecase
	logger   log.Logger
}

const routerResource = "/tokens"

func formatTokensResource(resource string) string {
	return routerResource + resource
}

// NewTokensHandler will initialize the tokens/ resources endpoint
func NewTokensHandler(e *echo.Echo, ts mvc.TokensUsecase, logger log.Logger) {
	handler := &TokensHandler{
		TUsecase: ts,
		logger:   logger,
	}
	e.GET(formatTokensResource("/metadata"), handler.GetMetadata)
}

// @Summary Token Metadata
// @Description returns token metadata with chain denom, human denom, and precision.
// @ID get-token-metadata
// @Produce  json
// @Param  denoms  query  string  false  "List of denoms where each can either be a human denom or a chain denom"
// @Success 200 {object} map[string]domain.Token "Success"
// @Router /tokens/metadata [get]
func (a *TokensHandler) GetMetadata(c echo.Context) (err error) {
	ctx := c.Request().Context()

	denomsStr := c.QueryParam("denoms")
	if len(denomsStr) == 0 {
		tokenMetadata, err := a.TUsecase.GetFullTokenMetadata(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, domain.ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, tokenMetadata)
	}

	denoms := strings.Split(denomsStr, ",")

	tokenMetadataResult := make(map[string]domain.Token, len(denoms))

	for _, denom := range denoms {
		denom, err := url.PathUnescape(denom)
		if err != nil {
			return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
		}

		// try as a chain denom first, then as a human denom
		tokenMetadata, err := a.TUsecase.GetMetadataByChainDenom(ctx, denom)
		if err != nil {
			chainDenom, humanErr := a.TUsecase.GetChainDenom(ctx, denom)
			if humanErr != nil {
				return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
			}

			tokenMetadata, err = a.TUsecase.GetMetadataByChainDenom(ctx, chainDenom)
			if err != nil {
				return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
			}
		}

		tokenMetadataResult[tokenMetadata.ChainDenom] = tokenMetadata
	}

	return c.JSON(http.StatusOK, tokenMetadataResult)
}
