// Package student содержит доменную модель студента и журнала оценок.
// Это ядро бизнес-логики - здесь нет внешних зависимостей и ввода-вывода.
package student

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Границы оценок по умолчанию (включительно).
const (
	MinGrade = 0
	MaxGrade = 100
)

// GradeBounds - неизменяемый диапазон допустимых оценок [Min, Max].
// Передаётся в конструкторы явно, вместо глобальной конфигурации.
type GradeBounds struct {
	Min int
	Max int
}

// DefaultGradeBounds возвращает диапазон [MinGrade, MaxGrade].
func DefaultGradeBounds() GradeBounds {
	return GradeBounds{Min: MinGrade, Max: MaxGrade}
}

// Contains проверяет, что оценка попадает в диапазон.
func (b GradeBounds) Contains(grade int) bool {
	return grade >= b.Min && grade <= b.Max
}

// Validate проверяет, что диапазон не пустой.
func (b GradeBounds) Validate() error {
	if b.Min > b.Max {
		return shared.NewDomainError("student", "Bounds", ErrInvalidBounds,
			fmt.Sprintf("min grade %d exceeds max grade %d", b.Min, b.Max))
	}
	return nil
}

// String возвращает диапазон в виде "[0, 100]".
func (b GradeBounds) String() string {
	return fmt.Sprintf("[%d, %d]", b.Min, b.Max)
}

// NormalizeName приводит имя к ключу журнала: обрезает пробелы по краям.
// Регистр не меняется, внутренние пробелы не схлопываются.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidName - имя пустое после обрезки пробелов.
	ErrInvalidName = fmt.Errorf("%w: invalid student name", shared.ErrInvalidArgument)

	// ErrGradeOutOfRange - оценка вне допустимого диапазона.
	ErrGradeOutOfRange = fmt.Errorf("%w: grade out of range", shared.ErrInvalidArgument)

	// ErrInvalidBounds - нижняя граница больше верхней.
	ErrInvalidBounds = fmt.Errorf("%w: invalid grade bounds", shared.ErrInvalidArgument)
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// GradeObserver вызывается после успешного добавления оценки.
// count и average отражают состояние сразу после добавления.
type GradeObserver func(s *Student, grade, count int, average float64)

// Student - студент с упорядоченным списком оценок.
// Имя неизменяемо; оценки только добавляются.
type Student struct {
	name     string
	bounds   GradeBounds
	observer GradeObserver

	mu     sync.RWMutex
	grades []int
}

// Option настраивает Student при создании.
type Option func(*Student)

// WithGradeObserver подписывает observer на добавление оценок.
func WithGradeObserver(observer GradeObserver) Option {
	return func(s *Student) {
		s.observer = observer
	}
}

// NewStudent создаёт студента с обрезанным именем.
// Возвращает ошибку ErrInvalidName, если имя пустое после обрезки.
func NewStudent(name string, bounds GradeBounds, opts ...Option) (*Student, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	trimmed := NormalizeName(name)
	if trimmed == "" {
		return nil, shared.NewDomainError("student", "Create", ErrInvalidName, "name must not be blank")
	}

	s := &Student{
		name:   trimmed,
		bounds: bounds,
		grades: make([]int, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name возвращает обрезанное имя студента.
func (s *Student) Name() string {
	return s.name
}

// Bounds возвращает диапазон, по которому проверяются оценки.
func (s *Student) Bounds() GradeBounds {
	return s.bounds
}

// AddGrade добавляет оценку в конец списка.
// Оценка вне диапазона отклоняется, и список не меняется.
func (s *Student) AddGrade(grade int) error {
	if !s.bounds.Contains(grade) {
		return shared.NewDomainError("student", "AddGrade", ErrGradeOutOfRange,
			fmt.Sprintf("grade must be between %d and %d, got %d", s.bounds.Min, s.bounds.Max, grade))
	}

	s.mu.Lock()
	s.grades = append(s.grades, grade)
	count := len(s.grades)
	avg := Mean(s.grades)
	s.mu.Unlock()

	if s.observer != nil {
		s.observer(s, grade, count, avg)
	}
	return nil
}

// Grades возвращает копию списка оценок в порядке добавления.
func (s *Student) Grades() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int, len(s.grades))
	copy(out, s.grades)
	return out
}

// GradeCount возвращает количество оценок.
func (s *Student) GradeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.grades)
}

// Average возвращает среднее арифметическое оценок или 0.0, если их нет.
func (s *Student) Average() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Mean(s.grades)
}

// String возвращает имя студента.
func (s *Student) String() string {
	return s.name
}

// Mean возвращает среднее арифметическое grades или 0.0 для пустого среза.
// Сумма копится в int64, чтобы не переполниться.
func Mean(grades []int) float64 {
	if len(grades) == 0 {
		return 0.0
	}
	var sum int64
	for _, g := range grades {
		sum += int64(g)
	}
	return float64(sum) / float64(len(grades))
}
