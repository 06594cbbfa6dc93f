package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudentEnrolledEvent(t *testing.T) {
	e := NewStudentEnrolledEvent("Alice", 1)

	assert.Equal(t, EventStudentEnrolled, e.EventType())
	assert.Equal(t, "Alice", e.AggregateID())
	assert.False(t, e.OccurredAt().IsZero())
	assert.Equal(t, map[string]any{"name": "Alice", "position": 1}, e.Payload())

	_, err := uuid.Parse(e.EventID())
	require.NoError(t, err)
}

func TestNewGradeRecordedEvent(t *testing.T) {
	e := NewGradeRecordedEvent("Bob", 85, 2, 80.5)

	assert.Equal(t, EventGradeRecorded, e.EventType())
	assert.Equal(t, "Bob", e.AggregateID())
	assert.Equal(t, 85, e.Payload()["grade"])
	assert.Equal(t, 80.5, e.Payload()["average"])
}

func TestEventIDsAreUnique(t *testing.T) {
	a := NewStudentEnrolledEvent("A", 1)
	b := NewStudentEnrolledEvent("A", 1)
	assert.NotEqual(t, a.EventID(), b.EventID())
}
