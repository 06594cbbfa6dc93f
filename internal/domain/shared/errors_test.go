package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_ErrorString(t *testing.T) {
	err := NewDomainError("student", "AddGrade", ErrInvalidArgument, "grade must be between 0 and 100")
	assert.Equal(t, "student.AddGrade: grade must be between 0 and 100", err.Error())

	wrapped := WrapError("roster", "Mirror", ErrInvalidArgument, "sync failed", errors.New("timeout"))
	assert.Equal(t, "roster.Mirror: sync failed: timeout", wrapped.Error())
}

func TestDomainError_MatchesKind(t *testing.T) {
	subKind := fmt.Errorf("%w: name", ErrInvalidArgument)
	err := NewDomainError("student", "Create", subKind, "name must not be blank")

	assert.True(t, errors.Is(err, subKind))
	assert.True(t, IsInvalidArgument(err))
	assert.False(t, IsNotFound(err))
}

func TestDomainError_MatchesUnderlying(t *testing.T) {
	cause := errors.New("io")
	err := WrapError("roster", "Load", ErrNotFound, "missing", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsNotFound(err))
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestRosterSentinels(t *testing.T) {
	wrapped := fmt.Errorf("record grade: %w", ErrStudentNotFound)
	assert.ErrorIs(t, wrapped, ErrStudentNotFound)
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsAlreadyExists(ErrStudentAlreadyExists))
	assert.False(t, errors.Is(ErrStudentNotFound, ErrStudentAlreadyExists))
}
