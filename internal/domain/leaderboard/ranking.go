// Package leaderboard содержит запросы к журналу: средний балл класса и рейтинг.
// Все функции чистые: они только читают студентов и не меняют их.
package leaderboard

import (
	"cmp"
	"slices"

	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENTRY
// ══════════════════════════════════════════════════════════════════════════════

// Entry - позиция студента в рейтинге на момент построения.
type Entry struct {
	// Position - место в рейтинге, начиная с 1. Равные средние не делят место:
	// порядок между ними задаётся порядком добавления в журнал.
	Position int

	// Name - имя студента.
	Name string

	// Average - средний балл на момент построения.
	Average float64

	// GradeCount - количество оценок на момент построения.
	GradeCount int

	// Student - ссылка на самого студента.
	Student *student.Student
}

// ══════════════════════════════════════════════════════════════════════════════
// QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// ClassAverage возвращает среднее по всем оценкам всех студентов.
// Студент с большим числом оценок влияет на результат сильнее.
// Возвращает 0.0, если оценок нет ни у кого.
func ClassAverage(students []*student.Student) float64 {
	var (
		sum   int64
		count int64
	)
	for _, s := range students {
		for _, g := range s.Grades() {
			sum += int64(g)
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return float64(sum) / float64(count)
}

// HasGrades проверяет, есть ли хотя бы одна оценка.
func HasGrades(students []*student.Student) bool {
	for _, s := range students {
		if s.GradeCount() > 0 {
			return true
		}
	}
	return false
}

// TopN возвращает до n студентов по убыванию среднего балла.
// Сортировка стабильная: при равных средних сохраняется входной порядок.
// n <= 0 даёт пустой срез, n больше длины - всех студентов.
func TopN(students []*student.Student, n int) []*student.Student {
	if n <= 0 {
		return []*student.Student{}
	}

	ranked := rank(students)
	if n > len(ranked) {
		n = len(ranked)
	}

	result := make([]*student.Student, n)
	for i := range result {
		result[i] = ranked[i].Student
	}
	return result
}

// Standings возвращает полный рейтинг с позициями, в том же порядке, что и TopN.
func Standings(students []*student.Student) []Entry {
	return rank(students)
}

// rank фиксирует средние один раз, чтобы сортировка не видела оценки,
// добавленные во время её работы.
func rank(students []*student.Student) []Entry {
	entries := make([]Entry, len(students))
	for i, s := range students {
		entries[i] = Entry{
			Name:       s.Name(),
			Average:    s.Average(),
			GradeCount: s.GradeCount(),
			Student:    s,
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Average, a.Average)
	})

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}
