// Package command contains write operations (CQRS - Commands).
// Commands change the roster and report failures as typed errors,
// so the interface layer can choose its own wording.
package command

import (
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// Enrolls a new student under the trimmed name.
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand contains the data needed to enroll a student.
type AddStudentCommand struct {
	// Name as typed by the user. Surrounding whitespace is ignored.
	Name string
}

// Validate validates the command.
func (c AddStudentCommand) Validate() error {
	if student.NormalizeName(c.Name) == "" {
		return student.ErrInvalidName
	}
	return nil
}

// AddStudentResult contains the result of enrollment.
type AddStudentResult struct {
	// Name is the stored (trimmed) name.
	Name string

	// Total is the roster size after the add.
	Total int
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentHandler handles the AddStudentCommand.
type AddStudentHandler struct {
	roster student.Roster
	log    *logger.Logger
}

// NewAddStudentHandler creates a new handler.
func NewAddStudentHandler(roster student.Roster, log *logger.Logger) *AddStudentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AddStudentHandler{
		roster: roster,
		log:    log.With(logger.Operation("AddStudent")),
	}
}

// Handle executes the add student command.
// Returns student.ErrInvalidName for a blank name and
// shared.ErrStudentAlreadyExists when the trimmed name is taken.
func (h *AddStudentHandler) Handle(cmd AddStudentCommand) (*AddStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	name := student.NormalizeName(cmd.Name)
	if !h.roster.AddStudent(name) {
		h.log.Debug("student already exists", logger.StudentName(name))
		return nil, shared.ErrStudentAlreadyExists
	}

	return &AddStudentResult{
		Name:  name,
		Total: h.roster.Len(),
	}, nil
}
