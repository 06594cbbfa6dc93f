// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// Возвращает всех студентов журнала в порядке добавления.
// ══════════════════════════════════════════════════════════════════════════════

// StudentDTO - снимок студента для слоя представления.
type StudentDTO struct {
	// Name - обрезанное имя студента.
	Name string `json:"name"`

	// Grades - оценки в порядке добавления.
	Grades []int `json:"grades"`

	// Average - средний балл, 0.0 если оценок нет.
	Average float64 `json:"average"`
}

// ListStudentsResult содержит результат запроса списка.
type ListStudentsResult struct {
	Students []StudentDTO `json:"students"`
}

// ListStudentsHandler обрабатывает запрос списка студентов.
type ListStudentsHandler struct {
	roster student.Roster
}

// NewListStudentsHandler создаёт новый обработчик.
func NewListStudentsHandler(roster student.Roster) *ListStudentsHandler {
	return &ListStudentsHandler{roster: roster}
}

// Handle выполняет запрос.
func (h *ListStudentsHandler) Handle() *ListStudentsResult {
	all := h.roster.ListAll()

	result := &ListStudentsResult{
		Students: make([]StudentDTO, len(all)),
	}
	for i, s := range all {
		result.Students[i] = toStudentDTO(s)
	}
	return result
}

// toStudentDTO берёт оценки один раз, чтобы среднее совпадало со списком.
func toStudentDTO(s *student.Student) StudentDTO {
	grades := s.Grades()
	return StudentDTO{
		Name:    s.Name(),
		Grades:  grades,
		Average: student.Mean(grades),
	}
}
