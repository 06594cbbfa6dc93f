// Package messaging implements the in-process event bus for GradeBook.
// The roster publishes domain events here; subscribers (logging, the Redis
// standings mirror) react without the roster knowing about them.
package messaging

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/pkg/logger"
)

var (
	// ErrEventBusClosed is returned when using a closed bus.
	ErrEventBusClosed = errors.New("event bus is closed")

	// ErrNilHandler is returned when subscribing a nil handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilEvent is returned when publishing a nil event.
	ErrNilEvent = errors.New("event cannot be nil")
)

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY EVENT BUS
// ══════════════════════════════════════════════════════════════════════════════

// InMemoryEventBus is an in-process implementation of shared.EventBus.
// Handler errors and panics are logged and never reach the publisher.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	asyncMode   bool
	workerPool  chan struct{}
	log         *logger.Logger
	metrics     *EventBusMetrics
	closed      bool
	wg          sync.WaitGroup
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

// InMemoryEventBusConfig contains configuration for InMemoryEventBus.
type InMemoryEventBusConfig struct {
	// AsyncMode dispatches each handler on its own goroutine.
	// Synchronous mode delivers events in publish order.
	AsyncMode bool

	// WorkerPoolSize bounds concurrent async handlers.
	WorkerPoolSize int

	// Logger for handler failures.
	Logger *logger.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(config InMemoryEventBusConfig) *InMemoryEventBus {
	if config.Logger == nil {
		config.Logger = logger.Nop()
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 4
	}

	return &InMemoryEventBus{
		handlers:   make(map[shared.EventType][]shared.EventHandler),
		asyncMode:  config.AsyncMode,
		workerPool: make(chan struct{}, config.WorkerPoolSize),
		log:        config.Logger.With(logger.Component("eventbus")),
		metrics:    NewEventBusMetrics(),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *InMemoryEventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) error {
	if handler == nil {
		return ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.log.Debug("subscribed handler", logger.EventType(string(eventType)))
	return nil
}

// SubscribeAll registers a handler for all events.
func (b *InMemoryEventBus) SubscribeAll(handler shared.EventHandler) error {
	if handler == nil {
		return ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.allHandlers = append(b.allHandlers, handler)
	b.log.Debug("subscribed global handler")
	return nil
}

// Publish sends an event to all subscribed handlers.
func (b *InMemoryEventBus) Publish(event shared.Event) error {
	if event == nil {
		return ErrNilEvent
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrEventBusClosed
	}
	handlers := make([]shared.EventHandler, 0, len(b.handlers[event.EventType()])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[event.EventType()]...)
	handlers = append(handlers, b.allHandlers...)
	if b.asyncMode {
		b.wg.Add(len(handlers))
	}
	b.mu.RUnlock()

	b.metrics.RecordPublish(event.EventType())

	for _, handler := range handlers {
		if b.asyncMode {
			go b.executeAsync(event, handler)
			continue
		}
		b.execute(event, handler)
	}
	return nil
}

func (b *InMemoryEventBus) executeAsync(event shared.Event, handler shared.EventHandler) {
	defer b.wg.Done()

	b.workerPool <- struct{}{}
	defer func() { <-b.workerPool }()

	b.execute(event, handler)
}

func (b *InMemoryEventBus) execute(event shared.Event, handler shared.EventHandler) {
	start := time.Now()
	err := safeCall(handler, event)
	duration := time.Since(start)

	b.metrics.RecordHandlerExecution(duration, err == nil)

	if err != nil {
		b.log.Error("handler error",
			logger.EventType(string(event.EventType())),
			logger.Duration("duration", duration),
			logger.Err(err),
		)
	}
}

// safeCall converts a handler panic into an error.
func safeCall(handler shared.EventHandler, event shared.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(event)
}

// Close stops accepting events and waits until every handler of an already
// accepted event has run, including async handlers still queued for a worker.
func (b *InMemoryEventBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.wg.Wait()

	b.log.Debug("event bus closed")
	return nil
}

// Metrics returns the bus metrics.
func (b *InMemoryEventBus) Metrics() *EventBusMetrics {
	return b.metrics
}

// LogEvents returns a handler that writes every event at debug level.
// Subscribe it with SubscribeAll to trace roster activity.
func LogEvents(l *logger.Logger) shared.EventHandler {
	l = l.With(logger.Component("events"))
	return func(event shared.Event) error {
		l.Debug("event",
			logger.EventType(string(event.EventType())),
			logger.String("event_id", event.EventID()),
			logger.String("aggregate_id", event.AggregateID()),
		)
		return nil
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// METRICS
// ══════════════════════════════════════════════════════════════════════════════

// EventBusMetrics counts published events and handler outcomes.
type EventBusMetrics struct {
	mu sync.RWMutex

	published            map[shared.EventType]int64
	handlerSuccesses     int64
	handlerFailures      int64
	handlerTotalDuration time.Duration
}

// NewEventBusMetrics creates an empty metrics collector.
func NewEventBusMetrics() *EventBusMetrics {
	return &EventBusMetrics{
		published: make(map[shared.EventType]int64),
	}
}

// RecordPublish counts a published event.
func (m *EventBusMetrics) RecordPublish(eventType shared.EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published[eventType]++
}

// RecordHandlerExecution counts a handler run.
func (m *EventBusMetrics) RecordHandlerExecution(duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if success {
		m.handlerSuccesses++
	} else {
		m.handlerFailures++
	}
	m.handlerTotalDuration += duration
}

// EventBusMetricsSnapshot is a point-in-time copy of the metrics.
type EventBusMetricsSnapshot struct {
	Published        map[shared.EventType]int64
	HandlerSuccesses int64
	HandlerFailures  int64
	AverageDuration  time.Duration
}

// Snapshot returns a copy of the current metrics.
func (m *EventBusMetrics) Snapshot() EventBusMetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	published := make(map[shared.EventType]int64, len(m.published))
	for k, v := range m.published {
		published[k] = v
	}

	var avg time.Duration
	if execs := m.handlerSuccesses + m.handlerFailures; execs > 0 {
		avg = m.handlerTotalDuration / time.Duration(execs)
	}

	return EventBusMetricsSnapshot{
		Published:        published,
		HandlerSuccesses: m.handlerSuccesses,
		HandlerFailures:  m.handlerFailures,
		AverageDuration:  avg,
	}
}
