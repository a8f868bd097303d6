package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/limitswap/bank"
	bankdelivery "github.com/osmosis-labs/limitswap/bank/delivery/http"
	"github.com/osmosis-labs/limitswap/domain/mocks"
)

func serve(usecase *mocks.BankUsecaseMock, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	bankdelivery.NewBankHandler(e, usecase)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetBalances(t *testing.T) {
	usecase := &mocks.BankUsecaseMock{
		GetBalancesFunc: func(ctx context.Context, address string) (sdk.Coins, error) {
			if address == "alice" {
				return sdk.NewCoins(sdk.NewInt64Coin("uusdc", 5), sdk.NewInt64Coin("weth", 7)), nil
			}
			return nil, nil
		},
	}

	rec := serve(usecase, http.MethodGet, "/bank/balances/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"address":"alice","balances":[{"denom":"uusdc","amount":"5"},{"denom":"weth","amount":"7"}]}`, rec.Body.String())

	rec = serve(usecase, http.MethodGet, "/bank/balances/nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"address":"nobody","balances":[]}`, rec.Body.String())
}

func TestApprove(t *testing.T) {
	var approved sdk.Coin
	usecase := &mocks.BankUsecaseMock{
		ApproveFunc: func(ctx context.Context, owner, spender string, coin sdk.Coin) error {
			if owner == spender {
				return bank.InvalidAddressError{Address: owner + "/" + spender}
			}
			approved = coin
			return nil
		},
	}

	rec := serve(usecase, http.MethodPost, "/bank/approve", `{"owner":"alice","spender":"limitswap-engine","denom":"uusdc","amount":"2490000000"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "uusdc", approved.Denom)
	require.True(t, approved.Amount.Equal(osmomath.NewInt(2_490_000_000)))

	testcases := map[string]string{
		"missing spender": `{"owner":"alice","denom":"uusdc","amount":"1"}`,
		"invalid denom":   `{"owner":"alice","spender":"engine","denom":"1","amount":"1"}`,
		"invalid amount":  `{"owner":"alice","spender":"engine","denom":"uusdc","amount":"one"}`,
		"self approval":   `{"owner":"alice","spender":"alice","denom":"uusdc","amount":"1"}`,
	}
	for name, body := range testcases {
		t.Run(name, func(t *testing.T) {
			rec := serve(usecase, http.MethodPost, "/bank/approve", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
