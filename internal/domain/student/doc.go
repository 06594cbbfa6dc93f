// Package student содержит доменную модель журнала оценок.
//
// Пакет определяет:
//
//   - Сущность Student: имя и упорядоченный список оценок
//   - Value Object GradeBounds: допустимый диапазон оценок (по умолчанию 0..100)
//   - Интерфейс Roster: журнал студентов, реализуемый в infrastructure
//
// # Правила
//
// Имя обрезается по краям и больше не меняется. Сравнение имён точное,
// с учётом регистра: "Alice" и "alice" - разные студенты, а "  Alice  "
// находит "Alice".
//
// Оценки только добавляются. Оценка вне диапазона отклоняется целиком,
// ошибка совпадает с shared.ErrInvalidArgument через errors.Is:
//
//	s, err := NewStudent("  Alice ", DefaultGradeBounds())
//	if err != nil {
//	    return err
//	}
//	if err := s.AddGrade(95); err != nil {
//	    return err
//	}
//	avg := s.Average() // 95.0
//
// Студент без оценок имеет средний балл 0.0.
package student
