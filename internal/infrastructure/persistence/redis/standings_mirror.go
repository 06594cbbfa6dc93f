package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alem-hub/gradebook/internal/domain/leaderboard"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/circuitbreaker"
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/alem-hub/gradebook/pkg/retry"
)

// StandingsStore receives a full replacement of the published standings.
// *Cache implements it.
type StandingsStore interface {
	ReplaceStandings(ctx context.Context, records []StandingRecord, meta StandingsMeta) error
}

// StandingsSource provides the current ranking, e.g. *memory.Roster.
type StandingsSource interface {
	Standings() []leaderboard.Entry
}

// ══════════════════════════════════════════════════════════════════════════════
// STANDINGS MIRROR
// ══════════════════════════════════════════════════════════════════════════════

// StandingsMirror republishes the roster ranking after every roster event.
// Each sync writes the whole ranking, so a missed event is repaired by the next one.
type StandingsMirror struct {
	store   StandingsStore
	source  StandingsSource
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	log     *logger.Logger
	now     func() time.Time
}

// MirrorOption configures a StandingsMirror.
type MirrorOption func(*StandingsMirror)

// WithRetrier overrides the retry policy for store writes.
func WithRetrier(r *retry.Retrier) MirrorOption {
	return func(m *StandingsMirror) {
		m.retrier = r
	}
}

// WithBreaker overrides the circuit breaker in front of the store.
func WithBreaker(cb *circuitbreaker.CircuitBreaker) MirrorOption {
	return func(m *StandingsMirror) {
		m.breaker = cb
	}
}

// WithTimeout bounds a single sync including retries.
func WithTimeout(d time.Duration) MirrorOption {
	return func(m *StandingsMirror) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithMirrorLogger sets the mirror logger.
func WithMirrorLogger(l *logger.Logger) MirrorOption {
	return func(m *StandingsMirror) {
		if l != nil {
			m.log = l
		}
	}
}

// NewStandingsMirror creates a mirror from source to store.
func NewStandingsMirror(store StandingsStore, source StandingsSource, opts ...MirrorOption) *StandingsMirror {
	m := &StandingsMirror{
		store:   store,
		source:  source,
		retrier: retry.MirrorRetrier(),
		timeout: 5 * time.Second,
		log:     logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("standings_mirror"))
	if m.breaker == nil {
		m.breaker = circuitbreaker.StandingsBreaker(m.onBreakerStateChange)
	}
	return m
}

// Register subscribes the mirror to every event that changes the ranking.
func (m *StandingsMirror) Register(sub shared.EventSubscriber) error {
	for _, t := range []shared.EventType{shared.EventStudentEnrolled, shared.EventGradeRecorded} {
		if err := sub.Subscribe(t, m.Handle); err != nil {
			return err
		}
	}
	return nil
}

// Handle is a shared.EventHandler that resyncs the standings.
func (m *StandingsMirror) Handle(event shared.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.log.Debug("sync triggered", logger.EventType(string(event.EventType())))
	return m.Sync(ctx)
}

// Sync writes the current standings to the store.
func (m *StandingsMirror) Sync(ctx context.Context) error {
	records, meta := m.snapshot()

	err := m.breaker.Execute(ctx, func(ctx context.Context) error {
		return m.retrier.Do(ctx, func(ctx context.Context) error {
			return m.store.ReplaceStandings(ctx, records, meta)
		})
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) || errors.Is(err, circuitbreaker.ErrTooManyTrials) {
		m.log.Debug("standings sync skipped", logger.Err(err))
		return fmt.Errorf("sync standings: %w", err)
	}
	if err != nil {
		m.log.Warn("standings sync failed", logger.Err(err))
		return fmt.Errorf("sync standings: %w", err)
	}

	m.log.Debug("standings synced",
		logger.Int("students", meta.TotalStudents),
		logger.Average(meta.ClassAverage),
	)
	return nil
}

func (m *StandingsMirror) onBreakerStateChange(name string, from, to circuitbreaker.State) {
	m.log.Warn("circuit breaker state changed",
		logger.String("breaker", name),
		logger.String("from", from.String()),
		logger.String("to", to.String()),
	)
}

// snapshot reads each student's grades once; the record average, the hash
// and the class average all come from that read.
func (m *StandingsMirror) snapshot() ([]StandingRecord, StandingsMeta) {
	entries := m.source.Standings()

	records := make([]StandingRecord, len(entries))
	var all []int
	for i, e := range entries {
		grades := e.Student.Grades()
		records[i] = StandingRecord{
			Position: e.Position,
			Name:     e.Name,
			Average:  student.Mean(grades),
			Grades:   grades,
		}
		all = append(all, grades...)
	}

	return records, StandingsMeta{
		UpdatedAt:     m.now().UTC(),
		TotalStudents: len(records),
		TotalGrades:   len(all),
		ClassAverage:  student.Mean(all),
	}
}
