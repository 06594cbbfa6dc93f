// Package memory implements the volatile roster store for GradeBook.
// All state lives in process memory and is lost on exit.
package memory

import (
	"sync"

	"github.com/alem-hub/gradebook/internal/domain/leaderboard"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// Roster implements student.Roster in memory.
// Students are keyed by trimmed name and enumerated in insertion order.
// Adds take an exclusive lock; reads share a lock and return fresh slices.
type Roster struct {
	mu     sync.RWMutex
	byName map[string]*student.Student
	order  []*student.Student

	bounds    student.GradeBounds
	publisher shared.EventPublisher
	log       *logger.Logger
}

var _ student.Roster = (*Roster)(nil)

// Option configures a Roster.
type Option func(*Roster)

// WithPublisher publishes StudentEnrolled and GradeRecorded events to p.
// Publish errors are logged and never fail the roster operation.
func WithPublisher(p shared.EventPublisher) Option {
	return func(r *Roster) {
		r.publisher = p
	}
}

// WithLogger sets the roster logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Roster) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRoster creates an empty roster whose students validate grades against bounds.
func NewRoster(bounds student.GradeBounds, opts ...Option) (*Roster, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	r := &Roster{
		byName: make(map[string]*student.Student),
		order:  make([]*student.Student, 0),
		bounds: bounds,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("roster"))
	return r, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────────────────────────────────────

// AddStudent adds a student under the trimmed name.
// Returns false without mutation for a blank or already present name.
func (r *Roster) AddStudent(name string) bool {
	key := student.NormalizeName(name)
	if key == "" {
		r.log.Debug("rejected blank name", logger.Operation("AddStudent"))
		return false
	}

	r.mu.Lock()
	if _, exists := r.byName[key]; exists {
		r.mu.Unlock()
		r.log.Debug("duplicate name", logger.Operation("AddStudent"), logger.StudentName(key))
		return false
	}

	s, err := student.NewStudent(key, r.bounds, student.WithGradeObserver(r.onGradeRecorded))
	if err != nil {
		// Unreachable: key is non-blank and bounds were validated in NewRoster.
		r.mu.Unlock()
		r.log.Error("create student", logger.StudentName(key), logger.Err(err))
		return false
	}

	r.byName[key] = s
	r.order = append(r.order, s)
	position := len(r.order)
	r.mu.Unlock()

	r.log.Info("student added", logger.StudentName(key), logger.Int("position", position))
	r.publish(shared.NewStudentEnrolledEvent(key, position))
	return true
}

func (r *Roster) onGradeRecorded(s *student.Student, grade, count int, average float64) {
	r.log.Info("grade recorded",
		logger.StudentName(s.Name()),
		logger.Grade(grade),
		logger.Average(average),
	)
	r.publish(shared.NewGradeRecordedEvent(s.Name(), grade, count, average))
}

func (r *Roster) publish(event shared.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(event); err != nil {
		r.log.Warn("publish event",
			logger.EventType(string(event.EventType())),
			logger.Err(err),
		)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────────────────────

// Find returns the student whose key equals the trimmed name exactly.
func (r *Roster) Find(name string) (*student.Student, bool) {
	key := student.NormalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byName[key]
	return s, ok
}

// ListAll returns all students in insertion order as a new slice.
func (r *Roster) ListAll() []*student.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*student.Student, len(r.order))
	copy(out, r.order)
	return out
}

// ClassAverage returns the mean of every grade of every student.
func (r *Roster) ClassAverage() float64 {
	return leaderboard.ClassAverage(r.ListAll())
}

// HasGrades reports whether any student has at least one grade.
func (r *Roster) HasGrades() bool {
	return leaderboard.HasGrades(r.ListAll())
}

// TopN returns up to n students by descending average, ties in insertion order.
func (r *Roster) TopN(n int) []*student.Student {
	return leaderboard.TopN(r.ListAll(), n)
}

// Standings returns the full ranking with positions.
func (r *Roster) Standings() []leaderboard.Entry {
	return leaderboard.Standings(r.ListAll())
}

// Len returns the number of students.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Bounds returns the grade bounds applied to every student.
func (r *Roster) Bounds() student.GradeBounds {
	return r.bounds
}
