package student

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER INTERFACE
// Контракт журнала студентов. Реализация находится в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Roster - журнал студентов, уникальных по обрезанному имени.
// Журнал владеет всеми Student; вызывающий получает ссылки, чтобы читать
// и добавлять оценки, но не может удалить или заменить студента.
type Roster interface {
	// AddStudent добавляет студента. Возвращает false без изменений,
	// если имя пустое после обрезки или уже есть в журнале.
	AddStudent(name string) bool

	// Find ищет студента по точному совпадению обрезанного имени.
	// Второе значение false, если студента нет.
	Find(name string) (*Student, bool)

	// ListAll возвращает всех студентов в порядке добавления.
	// Каждый вызов возвращает новый срез.
	ListAll() []*Student

	// ClassAverage возвращает среднее по всем оценкам всех студентов.
	ClassAverage() float64

	// TopN возвращает до n студентов по убыванию среднего балла.
	TopN(n int) []*Student

	// Len возвращает количество студентов.
	Len() int

	// Bounds возвращает диапазон оценок журнала.
	Bounds() GradeBounds
}
