package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is the key type for values stored in a request context.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters

	// TraceIDHeader carries the trace ID on requests and responses.
	TraceIDHeader = "X-Trace-ID"
)

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID stores the given trace ID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// IsValidTraceID reports whether s looks like an ID produced by this package,
// so client-supplied values can be propagated without trusting arbitrary input.
func IsValidTraceID(s string) bool {
	if len(s) != TraceIDLength*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func generateTraceID() string {
	return newTraceID(rand.Reader)
}

// newTraceID reads TraceIDLength bytes from src. If src fails it falls back
// to a random UUID, which has the same length once hex encoded.
func newTraceID(src io.Reader) string {
	b := make([]byte, TraceIDLength)
	if _, err := io.ReadFull(src, b); err != nil {
		slog.Warn("failed to read trace ID entropy, using uuid fallback", "error", err)
		id := uuid.New()
		return hex.EncodeToString(id[:])
	}
	return hex.EncodeToString(b)
}
