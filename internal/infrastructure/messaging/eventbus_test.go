package messaging

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventBus_DeliversByType(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{})
	defer bus.Close()

	var enrolled, graded, all []string
	require.NoError(t, bus.Subscribe(shared.EventStudentEnrolled, func(e shared.Event) error {
		enrolled = append(enrolled, e.AggregateID())
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventGradeRecorded, func(e shared.Event) error {
		graded = append(graded, e.AggregateID())
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(e shared.Event) error {
		all = append(all, string(e.EventType()))
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewStudentEnrolledEvent("Alice", 1)))
	require.NoError(t, bus.Publish(shared.NewGradeRecordedEvent("Alice", 90, 1, 90)))

	assert.Equal(t, []string{"Alice"}, enrolled)
	assert.Equal(t, []string{"Alice"}, graded)
	assert.Equal(t, []string{string(shared.EventStudentEnrolled), string(shared.EventGradeRecorded)}, all)

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.Published[shared.EventStudentEnrolled])
	assert.Equal(t, int64(4), snap.HandlerSuccesses)
}

func TestInMemoryEventBus_HandlerFailuresAreIsolated(t *testing.T) {
	var buf bytes.Buffer
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		Logger: logger.New(logger.Options{Output: &buf, Level: logger.LevelError}),
	})
	defer bus.Close()

	reached := false
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { return errors.New("mirror down") }))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { panic("boom") }))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { reached = true; return nil }))

	assert.NoError(t, bus.Publish(shared.NewStudentEnrolledEvent("Bob", 1)))
	assert.True(t, reached)
	assert.Contains(t, buf.String(), "mirror down")
	assert.Contains(t, buf.String(), "handler panic: boom")
	assert.Equal(t, int64(2), bus.Metrics().Snapshot().HandlerFailures)
}

func TestInMemoryEventBus_Async(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{AsyncMode: true, WorkerPoolSize: 2})

	var count atomic.Int64
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		count.Add(1)
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bus.Publish(shared.NewStudentEnrolledEvent("x", 1))
		}()
	}
	wg.Wait()
	require.NoError(t, bus.Close())

	assert.Equal(t, int64(10), count.Load())
}

func TestInMemoryEventBus_Validation(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{})

	assert.ErrorIs(t, bus.Subscribe(shared.EventGradeRecorded, nil), ErrNilHandler)
	assert.ErrorIs(t, bus.SubscribeAll(nil), ErrNilHandler)
	assert.ErrorIs(t, bus.Publish(nil), ErrNilEvent)

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close(), "close is idempotent")

	assert.ErrorIs(t, bus.Publish(shared.NewStudentEnrolledEvent("A", 1)), ErrEventBusClosed)
	assert.ErrorIs(t, bus.SubscribeAll(func(shared.Event) error { return nil }), ErrEventBusClosed)
}

func TestInMemoryEventBus_CloseDrainsQueuedAsyncHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{AsyncMode: true, WorkerPoolSize: 1})

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int64
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewStudentEnrolledEvent("A", 1)))
	<-started
	// The second handler queues behind the only worker.
	require.NoError(t, bus.Publish(shared.NewStudentEnrolledEvent("B", 2)))

	closed := make(chan error)
	go func() { closed <- bus.Close() }()
	close(release)

	require.NoError(t, <-closed)
	assert.Equal(t, int64(2), calls.Load())
}

func TestLogEvents(t *testing.T) {
	var buf bytes.Buffer
	handler := LogEvents(logger.New(logger.Options{Output: &buf, Level: logger.LevelDebug}))

	event := shared.NewGradeRecordedEvent("Alice", 90, 1, 90)
	require.NoError(t, handler(event))

	out := buf.String()
	assert.Contains(t, out, `"event_type":"student.grade_recorded"`)
	assert.Contains(t, out, `"aggregate_id":"Alice"`)
	assert.Contains(t, out, event.EventID())
	assert.Contains(t, out, `"component":"events"`)
}
