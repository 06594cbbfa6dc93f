package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types.
const (
	EventStudentEnrolled EventType = "roster.student_enrolled"
	EventGradeRecorded   EventType = "student.grade_recorded"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventID returns the unique identifier of this occurrence.
	EventID() string

	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]any
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventID implements Event interface.
func (e BaseEvent) EventID() string {
	return e.ID
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event with a fresh identifier.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Roster Events
// ═══════════════════════════════════════════════════════════════════════════

// StudentEnrolledEvent is emitted when a new name is added to the roster.
// The aggregate is the roster entry, identified by the student's trimmed name.
type StudentEnrolledEvent struct {
	BaseEvent
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Payload implements Event interface.
func (e StudentEnrolledEvent) Payload() map[string]any {
	return map[string]any{
		"name":     e.Name,
		"position": e.Position,
	}
}

// NewStudentEnrolledEvent creates a new StudentEnrolledEvent.
// position is the 1-based insertion index of the student.
func NewStudentEnrolledEvent(name string, position int) StudentEnrolledEvent {
	return StudentEnrolledEvent{
		BaseEvent: NewBaseEvent(EventStudentEnrolled, name),
		Name:      name,
		Position:  position,
	}
}

// GradeRecordedEvent is emitted after a grade is appended to a student.
type GradeRecordedEvent struct {
	BaseEvent
	Name       string  `json:"name"`
	Grade      int     `json:"grade"`
	GradeCount int     `json:"grade_count"`
	Average    float64 `json:"average"`
}

// Payload implements Event interface.
func (e GradeRecordedEvent) Payload() map[string]any {
	return map[string]any{
		"name":        e.Name,
		"grade":       e.Grade,
		"grade_count": e.GradeCount,
		"average":     e.Average,
	}
}

// NewGradeRecordedEvent creates a new GradeRecordedEvent.
func NewGradeRecordedEvent(name string, grade, gradeCount int, average float64) GradeRecordedEvent {
	return GradeRecordedEvent{
		BaseEvent:  NewBaseEvent(EventGradeRecorded, name),
		Name:       name,
		Grade:      grade,
		GradeCount: gradeCount,
		Average:    average,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Bus contracts
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
