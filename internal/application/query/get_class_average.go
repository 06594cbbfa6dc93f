package query

import (
	"github.com/alem-hub/gradebook/internal/domain/leaderboard"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET CLASS AVERAGE QUERY
// Среднее по всем оценкам всех студентов.
// ══════════════════════════════════════════════════════════════════════════════

// GetClassAverageResult содержит результат запроса.
type GetClassAverageResult struct {
	// Average - среднее по всем оценкам, 0.0 если оценок нет.
	Average float64 `json:"average"`

	// HasGrades - есть ли хотя бы одна оценка. Отличает пустой журнал
	// от класса, где все получили 0.
	HasGrades bool `json:"has_grades"`

	// Students - количество студентов на момент запроса.
	Students int `json:"students"`
}

// GetClassAverageHandler обрабатывает запрос среднего балла класса.
type GetClassAverageHandler struct {
	roster student.Roster
}

// NewGetClassAverageHandler создаёт новый обработчик.
func NewGetClassAverageHandler(roster student.Roster) *GetClassAverageHandler {
	return &GetClassAverageHandler{roster: roster}
}

// Handle выполняет запрос по одному снимку журнала.
func (h *GetClassAverageHandler) Handle() *GetClassAverageResult {
	all := h.roster.ListAll()
	return &GetClassAverageResult{
		Average:   leaderboard.ClassAverage(all),
		HasGrades: leaderboard.HasGrades(all),
		Students:  len(all),
	}
}
