package observes

import (
	"context"
	"testing"
)

func TestNewTracerNilOption(t *testing.T) {
	if err := NewTracer(nil); err == nil {
		t.Error("Expected error for nil tracer option, got nil")
	}
}

func TestNewSentrySkipsWithoutDsn(t *testing.T) {
	if err := NewSentry(nil); err != nil {
		t.Errorf("NewSentry(nil) = %v, want nil", err)
	}
	if err := NewSentry(&SentryOptions{}); err != nil {
		t.Errorf("NewSentry(empty) = %v, want nil", err)
	}
}

func TestLayerString(t *testing.T) {
	cases := []struct {
		layer Layer
		want  string
	}{
		{LayerUnknown, "Unknown"},
		{LayerCommand, "Command"},
		{LayerCursor, "Cursor"},
		{LayerAdapter, "Adapter"},
	}
	for _, c := range cases {
		if got := c.layer.String(); got != c.want {
			t.Errorf("Layer(%d).String() = %q, want %q", c.layer, got, c.want)
		}
	}
}

func TestTracingContextRecordsCalls(t *testing.T) {
	tc := NewTracingContext(context.Background(), "walk", 8)
	tc.AddMethodCall(LayerCursor, "Cursor.Next")
	tc.AddMethodCall(LayerAdapter, "elasticsearch.Search")
	tc.AddMethodCall(LayerCursor, "Cursor.Document")

	if got := len(tc.calls); got != 3 {
		t.Errorf("recorded calls = %d, want 3", got)
	}
	if tc.Context() == nil {
		t.Error("Expected tracing context to carry a context")
	}

	// End with the default noop tracer provider must not panic.
	tc.End()
}
