package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/osmosis-labs/limitswap/domain"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	corsConfig domain.CORSConfig
}

var (
	// total number of requests counter
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limitswap_requests_total",
			Help: "Total number of requests.",
		},
		[]string{"method", "endpoint"},
	)

	// request latency histogram
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "limitswap_request_duration_seconds",
			Help:    "Histogram of request latencies.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// responses by status code
	responsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "limitswap_responses_total",
			Help: "Total number of responses by status code.",
		},
		[]string{"method", "endpoint", "code"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(responsesTotal)
}

// CORS will handle the CORS middleware
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", m.corsConfig.AllowedOrigin)
		c.Response().Header().Set("Access-Control-Allow-Headers", m.corsConfig.AllowedHeaders)
		c.Response().Header().Set("Access-Control-Allow-Methods", m.corsConfig.AllowedMethods)
		return next(c)
	}
}

// InitMiddleware initialize the middleware
// A nil corsConfig allows any origin.
func InitMiddleware(corsConfig *domain.CORSConfig) *GoMiddleware {
	if corsConfig == nil {
		corsConfig = &domain.CORSConfig{
			AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With",
			AllowedMethods: "HEAD, GET, POST, OPTIONS",
			AllowedOrigin:  "*",
		}
	}

	return &GoMiddleware{
		corsConfig: *corsConfig,
	}
}

// InstrumentMiddleware records request counts, latencies and response codes per route.
func (m *GoMiddleware) InstrumentMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		requestMethod := c.Request().Method
		route := domain.RequestRoute(c)

		requestsTotal.WithLabelValues(requestMethod, route).Inc()
		requestLatency.WithLabelValues(requestMethod, route).Observe(time.Since(start).Seconds())
		responsesTotal.WithLabelValues(requestMethod, route, strconv.Itoa(c.Response().Status)).Inc()

		return err
	}
}

// TraceWithParamsMiddleware starts a server span per request, continuing any propagated trace.
// Path and query parameters are recorded as span attributes.
func (m *GoMiddleware) TraceWithParamsMiddleware(tracerName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tracer := otel.Tracer(tracerName)

			parentCtx := otel.GetTextMapPropagator().Extract(c.Request().Context(), propagation.HeaderCarrier(c.Request().Header))

			ctx, span := tracer.Start(parentCtx, c.Request().Method+" "+c.Path(), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(attribute.String("http.method", c.Request().Method))
			c.SetRequest(c.Request().WithContext(ctx))

			for i, name := range c.ParamNames() {
				if i < len(c.ParamValues()) {
					span.SetAttributes(attribute.String("path."+name, c.ParamValues()[i]))
				}
			}
			// only the first value of repeated query parameters is kept
			for key, values := range c.QueryParams() {
				span.SetAttributes(attribute.String("query."+key, values[0]))
			}

			err := next(c)

			status := c.Response().Status
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			return err
		}
	}
}
