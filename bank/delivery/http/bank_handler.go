package http

import (
	"fmt"
	"io"
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	deliveryhttp "github.com/osmosis-labs/limitswap/delivery/http"
	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/domain/mvc"
	"github.com/osmosis-labs/limitswap/json"
	"github.com/osmosis-labs/limitswap/validator"
)

// BankHandler represent the httphandler for the token ledger
type BankHandler struct {
	BUsecase mvc.BankUsecase
}

const resourcePrefix = "/bank"

func formatBankResource(resource string) string {
	return resourcePrefix + resource
}

// NewBankHandler will initialize the /bank resources endpoint
func NewBankHandler(e *echo.Echo, us mvc.BankUsecase) {
	handler := &BankHandler{
		BUsecase: us,
	}

	e.GET(formatBankResource("/balances/:address"), handler.GetBalances)
	e.POST(formatBankResource("/approve"), handler.Approve)
}

// BalancesResponse represents the response of GET /bank/balances/:address.
type BalancesResponse struct {
	Address  string    `json:"address"`
	Balances sdk.Coins `json:"balances"`
}

// @Summary Get balances
// @ID get-balances
// @Produce  json
// @Param  address  path  string  true  "Account address"
// @Success 200  {object}  BalancesResponse  "Balances of the account"
// @Router /bank/balances/{address} [get]
func (a *BankHandler) GetBalances(c echo.Context) error {
	address := c.Param("address")

	balances, err := a.BUsecase.GetBalances(c.Request().Context(), address)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	if balances == nil {
		balances = sdk.Coins{}
	}

	return c.JSON(http.StatusOK, BalancesResponse{Address: address, Balances: balances})
}

// ApproveRequest represents the body of POST /bank/approve.
type ApproveRequest struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Denom   string `json:"denom"`
	Amount  string `json:"amount"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request body to ApproveRequest.
func (r *ApproveRequest) UnmarshalHTTPRequest(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, r)
}

// Validate validates the ApproveRequest.
func (r *ApproveRequest) Validate() error {
	if err := validator.Required("owner", r.Owner, "spender", r.Spender); err != nil {
		return err
	}
	if err := validator.Denom("denom", r.Denom); err != nil {
		return err
	}
	if _, ok := osmomath.NewIntFromString(r.Amount); !ok {
		return fmt.Errorf("invalid amount (%s)", r.Amount)
	}
	return nil
}

// Coin returns the approved coin of a validated request.
func (r *ApproveRequest) Coin() sdk.Coin {
	amount, _ := osmomath.NewIntFromString(r.Amount)
	return sdk.Coin{Denom: r.Denom, Amount: amount}
}

// @Summary Approve a spender
// @Description Sets the allowance of spender over the owner balance of denom. Zero revokes it.
// @ID approve
// @Accept  json
// @Success 204
// @Router /bank/approve [post]
func (a *BankHandler) Approve(c echo.Context) (err error) {
	ctx, span := deliveryhttp.Span(c)
	defer func() {
		if err != nil {
			deliveryhttp.RecordSpanError(ctx, span, err)
			// nolint:errcheck // ignore error
			c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
		}
	}()

	var req ApproveRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return err
	}

	if err := a.BUsecase.Approve(ctx, req.Owner, req.Spender, req.Coin()); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
