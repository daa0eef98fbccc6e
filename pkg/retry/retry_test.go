package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func testPolicy(maxAttempts int) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		IsRetryable: func(err error) bool { return errors.Is(err, errTransient) },
		NewBackOff:  Exponential(time.Millisecond),
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	var waits []time.Duration
	p := testPolicy(4)
	p.OnRetry = func(_ error, wait time.Duration) { waits = append(waits, wait) }

	res, err := Do(context.Background(), p, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, waits)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), testPolicy(4), func(ctx context.Context) (int, error) {
		calls++
		return 0, errFatal
	})

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
}

func TestDoGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), testPolicy(4), func(ctx context.Context) (int, error) {
		calls++
		return 0, errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 4, calls)
}

func TestDoWithoutPredicateNeverRetries(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 5}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errTransient
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
