package mongodb

import (
	"context"
	"log/slog"

	"github.com/lexiglow/lexistore/internal/platform/logger"
)

// Step is one named operation of an ordered write sequence.
type Step struct {
	Name string
	Fn   func(ctx context.Context) error
}

// RunSequence executes steps strictly in order, stopping at the first
// failure. The document engine offers no multi-document transaction on
// a single node, so multi-step writes are instead ordered to keep
// invariants from breaking mid-sequence: checks run before any
// mutation, and destructive steps settle dependents before their
// targets. A failure leaves the completed prefix applied; the failed
// step is logged so the interruption point is known.
func RunSequence(ctx context.Context, steps []Step) error {
	log := logger.FromContext(ctx)

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.Fn(ctx); err != nil {
			log.Warn("write sequence interrupted",
				slog.String("step", step.Name),
				slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}
