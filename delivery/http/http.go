package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osmosis-labs/limitswap/validator"
)

// RequestUnmarshaler is any type capable to unmarshal data from HTTP request to itself.
type RequestUnmarshaler interface {
	UnmarshalHTTPRequest(c echo.Context) error
}

// UnmarshalRequest unmarshals HTTP request into m.
func UnmarshalRequest(c echo.Context, m RequestUnmarshaler) error {
	return m.UnmarshalHTTPRequest(c)
}

// ParseRequest encapsulates the request unmarshalling and validation logic.
// It unmarshals the request and validates it if the request implements the Validator interface.
func ParseRequest(c echo.Context, req RequestUnmarshaler) error {
	if err := UnmarshalRequest(c, req); err != nil {
		return BadRequestError{Err: err}
	}

	v, ok := req.(validator.Validator)
	if !ok {
		return nil
	}

	if err := validator.Validate(v); err != nil {
		return BadRequestError{Err: err}
	}
	return nil
}

// BadRequestError wraps request decoding and validation failures.
type BadRequestError struct {
	Err error
}

func (e BadRequestError) Error() string {
	return e.Err.Error()
}

func (e BadRequestError) Unwrap() error {
	return e.Err
}

// StatusCode is always 400 unless the wrapped error maps to a more specific status.
func (e BadRequestError) StatusCode() int {
	var statusCoder interface{ StatusCode() int }
	if errors.As(e.Err, &statusCoder) {
		return statusCoder.StatusCode()
	}
	return http.StatusBadRequest
}
