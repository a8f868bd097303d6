package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/limitswap/domain"
)

func TestInstrumentMiddleware(t *testing.T) {
	e := echo.New()
	m := InitMiddleware(nil)
	e.Use(m.CORS)
	e.Use(m.InstrumentMiddleware)
	e.Use(m.TraceWithParamsMiddleware("limitswap-test"))
	e.GET("/limit-orders/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("id"))
	})

	before := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/limit-orders/:id"))

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limit-orders/"+id+"?maker=alice", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, id, rec.Body.String())
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	// every order ID shares the route label
	require.Equal(t, before+3, testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/limit-orders/:id")))
	require.Equal(t, before+3, testutil.ToFloat64(responsesTotal.WithLabelValues(http.MethodGet, "/limit-orders/:id", "200")))
}

func TestCORS_Configured(t *testing.T) {
	e := echo.New()
	m := InitMiddleware(&domain.CORSConfig{
		AllowedHeaders: "Content-Type",
		AllowedMethods: "GET",
		AllowedOrigin:  "https://app.osmosis.zone",
	})
	e.Use(m.CORS)
	e.GET("/pools", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pools", nil))

	require.Equal(t, "https://app.osmosis.zone", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}
