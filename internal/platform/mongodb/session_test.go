package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSequenceRunsStepsInOrder(t *testing.T) {
	var order []string
	err := RunSequence(context.Background(), []Step{
		{Name: "first", Fn: func(ctx context.Context) error {
			order = append(order, "first")
			return nil
		}},
		{Name: "second", Fn: func(ctx context.Context) error {
			order = append(order, "second")
			return nil
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRunSequenceStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	var ranLater bool

	err := RunSequence(context.Background(), []Step{
		{Name: "fails", Fn: func(ctx context.Context) error { return boom }},
		{Name: "later", Fn: func(ctx context.Context) error {
			ranLater = true
			return nil
		}},
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, ranLater, "steps after a failure must not run")
}

func TestRunSequenceStopsAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ranFirst, ranSecond bool
	err := RunSequence(ctx, []Step{
		{Name: "first", Fn: func(ctx context.Context) error {
			ranFirst = true
			cancel()
			return nil
		}},
		{Name: "second", Fn: func(ctx context.Context) error {
			ranSecond = true
			return nil
		}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// The completed prefix stays applied; later steps never start.
	assert.True(t, ranFirst)
	assert.False(t, ranSecond, "cancellation between steps must stop the sequence")
}

func TestRunSequenceCancelledBeforeFirstStep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran bool
	err := RunSequence(ctx, []Step{
		{Name: "never", Fn: func(ctx context.Context) error {
			ran = true
			return nil
		}},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}
