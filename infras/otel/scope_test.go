package otel_test

import (
	"context"
	"errors"
	"testing"
	"villa/infras/otel"
	"villa/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
	}{
		{name: "server failure", err: errors.New("db down"), wantStatus: codes.Error},
		{name: "not found", err: failure.NotFound("faq"), wantStatus: codes.Unset},
		{name: "conflict", err: failure.Conflict("dates taken"), wantStatus: codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

			_, span := provider.Tracer("test").Start(context.Background(), "op")
			scope := otel.NewScope(span)

			scope.TraceIfError(nil)
			scope.TraceError(tt.err)
			scope.SetAttributes(map[string]any{"booking.guests": 4, "booking.id": "b-1"})
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)
			assert.Len(t, spans[0].Events(), 1)
			assert.Len(t, spans[0].Attributes(), 2)
		})
	}
}
