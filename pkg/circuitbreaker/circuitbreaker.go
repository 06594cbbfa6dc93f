// Package circuitbreaker stops calling a failing dependency for a cooldown
// period, then lets a trial through to test recovery.
// No external dependencies - uses only standard library.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State represents the current state of the breaker.
type State int

const (
	// StateClosed - calls go through.
	StateClosed State = iota
	// StateOpen - calls are rejected until the cooldown ends.
	StateOpen
	// StateHalfOpen - a limited number of trial calls go through.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var (
	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyTrials is returned when every half-open trial slot is taken.
	ErrTooManyTrials = errors.New("too many trials in half-open state")
)

// Config holds breaker settings.
type Config struct {
	// Name identifies the breaker in logs.
	Name string

	// FailureThreshold consecutive failures open the breaker. Default: 3
	FailureThreshold int

	// SuccessThreshold consecutive trial successes close it again. Default: 1
	SuccessThreshold int

	// Cooldown is the time spent open before probing. Default: 30s
	Cooldown time.Duration

	// MaxTrials bounds concurrent calls in half-open state. Default: 1
	MaxTrials int

	// OnStateChange is called under the breaker lock; keep it short.
	OnStateChange func(name string, from, to State)
}

// Option configures a breaker.
type Option func(*Config)

// WithFailureThreshold sets the failure threshold.
func WithFailureThreshold(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.FailureThreshold = n
		}
	}
}

// WithCooldown sets the open-state duration.
func WithCooldown(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Cooldown = d
		}
	}
}

// WithOnStateChange sets the state change callback.
func WithOnStateChange(fn func(name string, from, to State)) Option {
	return func(c *Config) {
		c.OnStateChange = fn
	}
}

// Counts is a snapshot of breaker statistics.
type Counts struct {
	Calls                int
	Rejected             int
	TotalFailures        int
	ConsecutiveFailures  int
	ConsecutiveSuccesses int
}

// ══════════════════════════════════════════════════════════════════════════════
// BREAKER
// ══════════════════════════════════════════════════════════════════════════════

// CircuitBreaker is safe for concurrent use.
type CircuitBreaker struct {
	config Config
	now    func() time.Time

	mu       sync.Mutex
	state    State
	counts   Counts
	openedAt time.Time
	trials   int
}

// New creates a closed breaker.
func New(name string, opts ...Option) *CircuitBreaker {
	config := Config{
		Name:             name,
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Cooldown:         30 * time.Second,
		MaxTrials:        1,
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &CircuitBreaker{
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
}

// StandingsBreaker returns the breaker used in front of the Redis standings
// mirror: after three failed syncs it stops trying for ten seconds.
func StandingsBreaker(onStateChange func(name string, from, to State)) *CircuitBreaker {
	return New("standings-mirror",
		WithFailureThreshold(3),
		WithCooldown(10*time.Second),
		WithOnStateChange(onStateChange),
	)
}

// Execute runs fn if the breaker allows it and records the outcome.
// Context cancellation is not counted as a dependency failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.acquire(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.release(err)
	return err
}

func (cb *CircuitBreaker) acquire() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.config.Cooldown {
			cb.counts.Rejected++
			return ErrCircuitOpen
		}
		cb.setState(StateHalfOpen)
		fallthrough

	case StateHalfOpen:
		if cb.trials >= cb.config.MaxTrials {
			cb.counts.Rejected++
			return ErrTooManyTrials
		}
		cb.trials++
	}

	cb.counts.Calls++
	return nil
}

func (cb *CircuitBreaker) release(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen && cb.trials > 0 {
		cb.trials--
	}

	if err == nil || errors.Is(err, context.Canceled) {
		cb.counts.ConsecutiveFailures = 0
		cb.counts.ConsecutiveSuccesses++
		if cb.state == StateHalfOpen && cb.counts.ConsecutiveSuccesses >= cb.config.SuccessThreshold {
			cb.setState(StateClosed)
		}
		return
	}

	cb.counts.TotalFailures++
	cb.counts.ConsecutiveFailures++
	cb.counts.ConsecutiveSuccesses = 0

	switch cb.state {
	case StateClosed:
		if cb.counts.ConsecutiveFailures >= cb.config.FailureThreshold {
			cb.open()
		}
	case StateHalfOpen:
		// Trial failed.
		cb.open()
	}
}

func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.now()
	cb.setState(StateOpen)
}

func (cb *CircuitBreaker) setState(next State) {
	if cb.state == next {
		return
	}
	prev := cb.state
	cb.state = next
	cb.counts.ConsecutiveFailures = 0
	cb.counts.ConsecutiveSuccesses = 0
	cb.trials = 0

	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, prev, next)
	}
}

// State returns the current state. An open breaker whose cooldown has ended
// still reports open until the next call tests it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Counts returns a snapshot of the statistics.
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}
