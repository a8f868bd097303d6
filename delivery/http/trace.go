package http

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osmosis-labs/limitswap/domain"
)

// Span returns the request context together with the span the tracing middleware started.
func Span(c echo.Context) (context.Context, trace.Span) {
	ctx := c.Request().Context()
	return ctx, trace.SpanFromContext(ctx)
}

// RecordSpanError marks the span as failed with the status the error maps to.
// The span is ended by the middleware.
func RecordSpanError(ctx context.Context, span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Int("http.status_code", domain.GetStatusCode(err)))
}
