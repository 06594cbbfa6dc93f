package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	retries := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	},
		WithMaxAttempts(5),
		WithInitialDelay(time.Millisecond),
		WithJitter(0),
		WithOnRetry(func(int, error, time.Duration) { retries++ }),
	)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, retries)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	cause := errors.New("bad request")
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(cause)
	}, WithInitialDelay(time.Millisecond))

	assert.ErrorIs(t, err, cause)
	assert.False(t, IsPermanent(err))
	assert.Equal(t, 1, calls)
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("still down")
	}, WithMaxAttempts(2), WithInitialDelay(time.Millisecond), WithJitter(0))

	assert.EqualError(t, err, "still down")
	assert.Equal(t, 2, calls)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, func(ctx context.Context) error {
		t.Fatal("operation must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateDelay_Capped(t *testing.T) {
	r := New(WithInitialDelay(100*time.Millisecond), WithMaxDelay(150*time.Millisecond), WithJitter(0))
	assert.Equal(t, 100*time.Millisecond, r.calculateDelay(1))
	assert.Equal(t, 150*time.Millisecond, r.calculateDelay(2))
	assert.Equal(t, 150*time.Millisecond, r.calculateDelay(5))
}
