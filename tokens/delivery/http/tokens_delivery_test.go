package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mocks"
	"github.com/osmosis-labs/limitswap/log"
	tokensdelivery "github.com/osmosis-labs/limitswap/tokens/delivery/http"
)

func TestGetMetadata(t *testing.T) {
	usecase := &mocks.TokensUsecaseMock{
		Tokens: map[string]domain.Token{
			"uusdc": {ChainDenom: "uusdc", HumanDenom: "usdc", Precision: 6},
			"weth":  {ChainDenom: "weth", HumanDenom: "eth", Precision: 18},
		},
	}

	testcases := []struct {
		name               string
		query              string
		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name:               "all tokens",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"uusdc":{"denom":"uusdc","symbol":"usdc","decimals":6},"weth":{"denom":"weth","symbol":"eth","decimals":18}}`,
		},
		{
			name:               "chain denom",
			query:              "?denoms=weth",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"weth":{"denom":"weth","symbol":"eth","decimals":18}}`,
		},
		{
			name:               "human denom and chain denom",
			query:              "?denoms=usdc,weth",
			expectedStatusCode: http.StatusOK,
			expectedResponse:   `{"uusdc":{"denom":"uusdc","symbol":"usdc","decimals":6},"weth":{"denom":"weth","symbol":"eth","decimals":18}}`,
		},
		{
			name:               "unknown denom",
			query:              "?denoms=uatom",
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			tokensdelivery.NewTokensHandler(e, usecase, &log.NoOpLogger{})

			req := httptest.NewRequest(http.MethodGet, "/tokens/metadata"+tc.query, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedResponse != "" {
				require.JSONEq(t, tc.expectedResponse, rec.Body.String())
			}
		})
	}
}
