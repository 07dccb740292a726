package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newBufferLogger returns a JSON logger writing into buf for output assertions
func newBufferLogger(buf *bytes.Buffer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "msg",
		LevelKey:   "level",
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	ctxWithLogger := WithContext(ctx, logger)

	retrievedLogger := FromContext(ctxWithLogger)
	assert.NotNil(t, retrievedLogger)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	// Without a valid span the logger is returned unchanged
	enriched := WithTraceContext(ctx, logger)
	assert.Equal(t, logger, enriched)
}

func TestContextLogger_InjectsRequestID(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newBufferLogger(&buf)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, baseLogger, "req-abc")

	WithLogger(ctx, baseLogger).Info("payment recorded")

	output := buf.String()
	assert.Contains(t, output, `"msg":"payment recorded"`)
	assert.Contains(t, output, `"request_id":"req-abc"`)
}

func TestContextLogger_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newBufferLogger(&buf)

	WithLogger(context.Background(), baseLogger).Info("plain entry")

	output := buf.String()
	assert.Contains(t, output, `"msg":"plain entry"`)
	assert.NotContains(t, output, `"request_id":""`)
	assert.NotContains(t, output, `"trace_id":""`)
}

func TestContextLogger_With(t *testing.T) {
	var buf bytes.Buffer
	baseLogger := newBufferLogger(&buf)

	WithLogger(context.Background(), baseLogger).
		With(zap.String("booking_id", "b-1")).
		Info("booking cancelled")

	output := buf.String()
	assert.Contains(t, output, `"booking_id":"b-1"`)
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	// Should not panic with a nil underlying logger
	cl.Info("message")
}
