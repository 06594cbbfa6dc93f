package command

import (
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD GRADE COMMAND
// Appends a grade to an enrolled student.
// ══════════════════════════════════════════════════════════════════════════════

// RecordGradeCommand contains the data needed to record a grade.
type RecordGradeCommand struct {
	// Name of the student. Matched exactly after trimming.
	Name string

	// Grade must lie inside the roster bounds.
	Grade int
}

// RecordGradeResult contains the student's state after the grade was added.
type RecordGradeResult struct {
	Name       string
	GradeCount int
	Average    float64
}

// RecordGradeHandler handles the RecordGradeCommand.
type RecordGradeHandler struct {
	roster student.Roster
	log    *logger.Logger
}

// NewRecordGradeHandler creates a new handler.
func NewRecordGradeHandler(roster student.Roster, log *logger.Logger) *RecordGradeHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordGradeHandler{
		roster: roster,
		log:    log.With(logger.Operation("RecordGrade")),
	}
}

// Lookup resolves the student before a grade is read, so the caller can
// report an unknown name without asking for the grade first.
func (h *RecordGradeHandler) Lookup(name string) (*student.Student, error) {
	s, ok := h.roster.Find(name)
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	return s, nil
}

// Handle executes the record grade command.
// Returns shared.ErrStudentNotFound for an unknown name and
// student.ErrGradeOutOfRange for a rejected grade. A rejected grade leaves
// the student unchanged.
func (h *RecordGradeHandler) Handle(cmd RecordGradeCommand) (*RecordGradeResult, error) {
	s, err := h.Lookup(cmd.Name)
	if err != nil {
		return nil, err
	}

	if err := s.AddGrade(cmd.Grade); err != nil {
		h.log.Debug("grade rejected",
			logger.StudentName(s.Name()),
			logger.Grade(cmd.Grade),
			logger.Err(err),
		)
		return nil, err
	}

	return &RecordGradeResult{
		Name:       s.Name(),
		GradeCount: s.GradeCount(),
		Average:    s.Average(),
	}, nil
}
