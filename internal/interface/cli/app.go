// Package cli implements the interactive GradeBook menu.
// The app reads one line per prompt and writes plain lines, so it can be
// driven by a terminal, a pipe or a test buffer alike.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alem-hub/gradebook/internal/application/command"
	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/internal/interface/cli/presenter"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// Title is printed once when the app starts.
const Title = "GradeBook (Refactored)"

// Menu messages.
const (
	msgExistsOrBadName = "Exists or bad name."
	msgNoSuchStudent   = "No such student."
	msgNotANumber      = "Not a number."
	msgOK              = "OK."
	msgNone            = " (none)"
	msgNoGrades        = "No grades."
	msgInvalid         = "Invalid."
	msgBye             = "Bye."
)

// maxLineBytes caps one input line. Longer lines are read to the end and
// rejected like any other bad value.
const maxLineBytes = 1 << 20

// errLineTooLong is returned by readLine for a line over maxLineBytes.
var errLineTooLong = errors.New("input line too long")

// errInput marks a rejected value; the message is shown and the menu continues.
type errInput string

func (e errInput) Error() string { return string(e) }

// ══════════════════════════════════════════════════════════════════════════════
// APP
// ══════════════════════════════════════════════════════════════════════════════

// App is the menu loop over one roster.
type App struct {
	in     *bufio.Reader
	out    io.Writer
	styles *presenter.Styles
	bounds student.GradeBounds
	log    *logger.Logger

	addStudent   *command.AddStudentHandler
	recordGrade  *command.RecordGradeHandler
	listStudents *query.ListStudentsHandler
	classAverage *query.GetClassAverageHandler
	topStudents  *query.GetTopStudentsHandler
}

// NewApp wires the command and query handlers for roster.
func NewApp(roster student.Roster, in io.Reader, out io.Writer, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(logger.Component("cli"))

	return &App{
		in:     bufio.NewReader(in),
		out:    out,
		styles: presenter.NewStyles(out),
		bounds: roster.Bounds(),
		log:    log,

		addStudent:   command.NewAddStudentHandler(roster, log),
		recordGrade:  command.NewRecordGradeHandler(roster, log),
		listStudents: query.NewListStudentsHandler(roster),
		classAverage: query.NewGetClassAverageHandler(roster),
		topStudents:  query.NewGetTopStudentsHandler(roster),
	}
}

// Run shows the menu until the user picks 0 or input ends.
// End of input is a normal exit; any other read error is returned.
func (a *App) Run() error {
	a.println(a.styles.Title(Title))

	for {
		a.printMenu()

		choice, err := a.prompt("Choose: ", msgInvalid)
		if err == nil {
			if choice == "0" {
				break
			}
			err = a.dispatch(choice)
		}

		var input errInput
		switch {
		case err == nil:
		case errors.As(err, &input):
			a.println(a.styles.Failure(input.Error()))
		case errors.Is(err, io.EOF):
			a.println("")
			a.println(msgBye)
			return nil
		default:
			a.log.Error("read input", logger.Err(err))
			return fmt.Errorf("read input: %w", err)
		}
	}

	a.println(msgBye)
	return nil
}

func (a *App) dispatch(choice string) error {
	switch choice {
	case "1":
		return a.doAddStudent()
	case "2":
		return a.doRecordGrade()
	case "3":
		a.doListStudents()
	case "4":
		a.doClassAverage()
	case "5":
		return a.doTopN()
	default:
		a.log.Debug("unknown menu choice", logger.String("choice", choice))
		return errInput(msgInvalid)
	}
	return nil
}

func (a *App) printMenu() {
	a.println("")
	a.println(a.styles.Header("Menu:"))
	a.println("1) Add student")
	a.println("2) Record grade")
	a.println("3) List students")
	a.println("4) Class average")
	a.println("5) Top N students")
	a.println("0) Exit")
}

// ─────────────────────────────────────────────────────────────────────────────
// Actions
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) doAddStudent() error {
	name, err := a.prompt("Student name: ", msgExistsOrBadName)
	if err != nil {
		return err
	}

	res, err := a.addStudent.Handle(command.AddStudentCommand{Name: name})
	if err != nil {
		return errInput(msgExistsOrBadName)
	}
	a.println(a.styles.Success("Added: " + res.Name))
	return nil
}

func (a *App) doRecordGrade() error {
	name, err := a.prompt("Student name: ", msgNoSuchStudent)
	if err != nil {
		return err
	}
	if _, err := a.recordGrade.Lookup(name); err != nil {
		return errInput(msgNoSuchStudent)
	}

	grade, err := a.promptInt(fmt.Sprintf("Grade (%d-%d): ", a.bounds.Min, a.bounds.Max))
	if err != nil {
		return err
	}

	_, err = a.recordGrade.Handle(command.RecordGradeCommand{Name: name, Grade: grade})
	switch {
	case err == nil:
		a.println(a.styles.Success(msgOK))
		return nil
	case errors.Is(err, student.ErrGradeOutOfRange):
		return errInput("Out of range " + a.bounds.String() + ".")
	case shared.IsNotFound(err):
		return errInput(msgNoSuchStudent)
	default:
		return errInput(err.Error())
	}
}

func (a *App) doListStudents() {
	res := a.listStudents.Handle()

	a.println(a.styles.Header("Students:"))
	if len(res.Students) == 0 {
		a.println(msgNone)
		return
	}
	for _, s := range res.Students {
		a.println(presenter.StudentLine(s))
	}
}

func (a *App) doClassAverage() {
	res := a.classAverage.Handle()
	if !res.HasGrades {
		a.println(msgNoGrades)
		return
	}
	a.println("Class average = " + presenter.FormatAverage(res.Average))
}

func (a *App) doTopN() error {
	n, err := a.promptInt("N: ")
	if err != nil {
		return err
	}

	res := a.topStudents.Handle(query.GetTopStudentsQuery{N: n})
	a.println(a.styles.Header(fmt.Sprintf("Top %d:", res.N)))
	for _, e := range res.Entries {
		a.println(presenter.TopLine(e))
	}
	if len(res.Entries) == 0 {
		a.println(msgNone)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Input
// ─────────────────────────────────────────────────────────────────────────────

// prompt writes msg and returns the next trimmed line. An overlong line is
// reported as errInput(rejected). Returns io.EOF when input is exhausted.
func (a *App) prompt(msg, rejected string) (string, error) {
	fmt.Fprint(a.out, msg)

	line, err := a.readLine()
	if errors.Is(err, errLineTooLong) {
		a.log.Debug("input line too long", logger.Int("limit", maxLineBytes))
		return "", errInput(rejected)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt reads a 32-bit decimal integer.
func (a *App) promptInt(msg string) (int, error) {
	line, err := a.prompt(msg, msgNotANumber)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(line, 10, 32)
	if err != nil {
		return 0, errInput(msgNotANumber)
	}
	return int(v), nil
}

// readLine returns one line without its line ending. A last line without a
// newline is still returned; io.EOF comes only when nothing is left. The
// remainder of an overlong line is consumed so the next prompt starts clean.
func (a *App) readLine() (string, error) {
	var (
		sb      strings.Builder
		tooLong bool
		read    bool
	)
	for {
		chunk, isPrefix, err := a.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				break
			}
			return "", err
		}
		read = true

		if !tooLong {
			if sb.Len()+len(chunk) > maxLineBytes {
				tooLong = true
				sb.Reset()
			} else {
				sb.Write(chunk)
			}
		}
		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", errLineTooLong
	}
	return sb.String(), nil
}

func (a *App) println(line string) {
	fmt.Fprintln(a.out, line)
}
