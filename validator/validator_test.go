package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/limitswap/validator"
)

func TestRequired(t *testing.T) {
	require.NoError(t, validator.Required())
	require.NoError(t, validator.Required("owner", "alice", "spender", "limitswap-engine"))

	err := validator.Required("owner", "alice", "spender", "")
	require.Equal(t, validator.FieldRequiredError{Field: "spender"}, err)
	require.EqualError(t, err, "spender is required")
}

func TestDenom(t *testing.T) {
	testcases := []struct {
		denom       string
		expectError bool
	}{
		{denom: "uusdc"},
		{denom: "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2"},
		{denom: "", expectError: true},
		{denom: "1usdc", expectError: true},
		{denom: "u", expectError: true},
	}

	for _, tc := range testcases {
		t.Run(tc.denom, func(t *testing.T) {
			err := validator.Denom("token_in", tc.denom)
			if !tc.expectError {
				require.NoError(t, err)
				return
			}

			var denomErr validator.InvalidDenomError
			require.ErrorAs(t, err, &denomErr)
			require.Equal(t, "token_in", denomErr.Field)
		})
	}
}

type request struct{ err error }

func (r request) Validate() error { return r.err }

func TestValidate(t *testing.T) {
	require.NoError(t, validator.Validate(request{}))
	require.Equal(t, validator.FieldRequiredError{Field: "caller"}, validator.Validate(request{err: validator.FieldRequiredError{Field: "caller"}}))
}
