package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	deliveryhttp "github.com/osmosis-labs/limitswap/delivery/http"
	"github.com/osmosis-labs/limitswap/domain"
)

type amountRequest struct {
	Amount string
}

func (r *amountRequest) UnmarshalHTTPRequest(c echo.Context) error {
	r.Amount = c.QueryParam("amount")
	if r.Amount == "bad" {
		return errors.New("cannot decode amount")
	}
	return nil
}

func (r *amountRequest) Validate() error {
	if r.Amount == "" {
		return errors.New("amount is required")
	}
	if r.Amount == "unknown-pool" {
		return domain.PoolNotFoundError{Key: domain.NewPoolKey("uusdc", "weth", 3000)}
	}
	return nil
}

type plainRequest struct{}

func (r *plainRequest) UnmarshalHTTPRequest(c echo.Context) error { return nil }

func TestParseRequest(t *testing.T) {
	testcases := []struct {
		name               string
		query              string
		expectedStatusCode int
	}{
		{name: "valid", query: "amount=10"},
		{name: "unmarshal failure", query: "amount=bad", expectedStatusCode: http.StatusBadRequest},
		{name: "validation failure", query: "", expectedStatusCode: http.StatusBadRequest},
		{name: "wrapped status is kept", query: "amount=unknown-pool", expectedStatusCode: http.StatusNotFound},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil), httptest.NewRecorder())

			err := deliveryhttp.ParseRequest(c, &amountRequest{})
			if tc.expectedStatusCode == 0 {
				require.NoError(t, err)
				return
			}

			var badRequest deliveryhttp.BadRequestError
			require.ErrorAs(t, err, &badRequest)
			require.Equal(t, tc.expectedStatusCode, domain.GetStatusCode(err))
		})
	}

	// requests without a Validate method are only unmarshalled
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, deliveryhttp.ParseRequest(c, &plainRequest{}))
}
