package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextRoundTrip(t *testing.T) {
	base := slog.Default()
	attached := base.With(slog.String("request_id", "abc"))

	ctx := WithContext(context.Background(), attached)
	assert.Same(t, attached, FromContext(ctx))
	assert.Same(t, attached, FromContextOrDefault(ctx, base))
}

func TestFromContextFallsBack(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), FromContext(ctx))

	def := slog.Default().With(slog.String("component", "test"))
	assert.Same(t, def, FromContextOrDefault(ctx, def))
	assert.Same(t, slog.Default(), FromContextOrDefault(ctx, nil))
}

func TestSetupLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		log := Setup(level)
		assert.NotNil(t, log)
		assert.Same(t, log, slog.Default())
	}
}
