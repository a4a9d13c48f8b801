package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithLogger(t *testing.T) {
	ctx, rlog := ContextWithLogger(context.Background())
	require.NotNil(t, rlog)

	requestID := RequestIDFromContext(ctx)
	assert.NotEmpty(t, requestID)

	// a second call keeps the existing logger and request id
	ctx2, rlog2 := ContextWithLogger(ctx)
	assert.Equal(t, ctx, ctx2)
	assert.Equal(t, rlog, rlog2)
	assert.Equal(t, requestID, RequestIDFromContext(ctx2))
}

func TestFromContextNil(t *testing.T) {
	assert.NotNil(t, FromContext(nil))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestContextWithLoggerIdentity(t *testing.T) {
	ctx, rlog := ContextWithLoggerIdentity(context.Background(), "admin@example.com")
	require.NotNil(t, rlog)
	assert.Equal(t, "admin@example.com", rlog.Data[identityLoggerKey])
	assert.NotEmpty(t, RequestIDFromContext(ctx))
}
