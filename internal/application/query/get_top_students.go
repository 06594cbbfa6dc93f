package query

import (
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TOP STUDENTS QUERY
// Топ-N студентов по среднему баллу.
// ══════════════════════════════════════════════════════════════════════════════

// GetTopStudentsQuery содержит параметры запроса.
type GetTopStudentsQuery struct {
	// N - сколько студентов вернуть. N <= 0 даёт пустой результат.
	N int
}

// TopEntryDTO - строка рейтинга.
type TopEntryDTO struct {
	// Rank - позиция, начиная с 1.
	Rank int `json:"rank"`

	Name    string  `json:"name"`
	Average float64 `json:"average"`
}

// GetTopStudentsResult содержит результат запроса.
type GetTopStudentsResult struct {
	// N - запрошенное количество, как его ввёл пользователь.
	N int `json:"n"`

	Entries []TopEntryDTO `json:"entries"`
}

// GetTopStudentsHandler обрабатывает запрос топа.
type GetTopStudentsHandler struct {
	roster student.Roster
}

// NewGetTopStudentsHandler создаёт новый обработчик.
func NewGetTopStudentsHandler(roster student.Roster) *GetTopStudentsHandler {
	return &GetTopStudentsHandler{roster: roster}
}

// Handle выполняет запрос.
func (h *GetTopStudentsHandler) Handle(q GetTopStudentsQuery) *GetTopStudentsResult {
	best := h.roster.TopN(q.N)

	result := &GetTopStudentsResult{
		N:       q.N,
		Entries: make([]TopEntryDTO, len(best)),
	}
	for i, s := range best {
		result.Entries[i] = TopEntryDTO{
			Rank:    i + 1,
			Name:    s.Name(),
			Average: s.Average(),
		}
	}
	return result
}
