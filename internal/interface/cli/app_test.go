package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menu = "\nMenu:\n1) Add student\n2) Record grade\n3) List students\n4) Class average\n5) Top N students\n0) Exit\nChoose: "

func run(t *testing.T, input string) (string, *memory.Roster) {
	t.Helper()
	r, err := memory.NewRoster(student.DefaultGradeBounds())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewApp(r, strings.NewReader(input), &out, nil).Run())
	return out.String(), r
}

// chunks splits the transcript after the banner into per-menu chunks.
func chunks(out string) []string {
	out = strings.TrimPrefix(out, Title+"\n")
	parts := strings.Split(out, menu)
	return parts[1:]
}

func TestRun_ExitImmediately(t *testing.T) {
	out, _ := run(t, "0\n")
	assert.Equal(t, Title+"\n"+menu+"Bye.\n", out)
}

func TestRun_EndOfInputExits(t *testing.T) {
	out, _ := run(t, "")
	assert.Equal(t, Title+"\n"+menu+"\nBye.\n", out)
}

func TestRun_AddStudent(t *testing.T) {
	out, r := run(t, "1\n  Alice  \n1\nAlice\n1\n   \n0\n")

	got := chunks(out)
	require.Len(t, got, 4)
	assert.Equal(t, "Student name: Added: Alice\n", got[0])
	assert.Equal(t, "Student name: Exists or bad name.\n", got[1])
	assert.Equal(t, "Student name: Exists or bad name.\n", got[2])
	assert.Equal(t, "Bye.\n", got[3])
	assert.Equal(t, 1, r.Len())
}

func TestRun_RecordGrade(t *testing.T) {
	out, r := run(t, "1\nBob\n2\nBob\n85\n2\nNobody\n2\nBob\nabc\n2\nBob\n101\n2\n Bob \n-1\n0\n")

	got := chunks(out)
	require.Len(t, got, 7)
	assert.Equal(t, "Student name: Grade (0-100): OK.\n", got[1])
	assert.Equal(t, "Student name: No such student.\n", got[2])
	assert.Equal(t, "Student name: Grade (0-100): Not a number.\n", got[3])
	assert.Equal(t, "Student name: Grade (0-100): Out of range [0, 100].\n", got[4])
	assert.Equal(t, "Student name: Grade (0-100): Out of range [0, 100].\n", got[5])

	s, ok := r.Find("Bob")
	require.True(t, ok)
	assert.Equal(t, []int{85}, s.Grades())
}

func TestRun_ListStudents(t *testing.T) {
	out, _ := run(t, "3\n1\nWendy\n1\nBob\n2\nBob\n85\n2\nBob\n75\n3\n0\n")

	got := chunks(out)
	require.Len(t, got, 7)
	assert.Equal(t, "Students:\n (none)\n", got[0])
	assert.Equal(t, "Students:\n - Wendy | grades=[] | avg=0.00\n - Bob | grades=[85, 75] | avg=80.00\n", got[5])
}

func TestRun_ClassAverage(t *testing.T) {
	out, _ := run(t, "4\n1\nA\n4\n2\nA\n0\n4\n1\nB\n2\nB\n90\n4\n0\n")

	got := chunks(out)
	require.Len(t, got, 9)
	assert.Equal(t, "No grades.\n", got[0])
	assert.Equal(t, "No grades.\n", got[2])
	assert.Equal(t, "Class average = 0.00\n", got[4], "a zero grade is still a grade")
	assert.Equal(t, "Class average = 45.00\n", got[7])
}

func TestRun_TopN(t *testing.T) {
	input := "1\nAlice\n1\nBob\n1\nWendy\n" +
		"2\nAlice\n95\n2\nBob\n85\n2\nWendy\n75\n" +
		"5\n2\n5\n0\n5\nx\n0\n"
	out, _ := run(t, input)

	got := chunks(out)
	require.Len(t, got, 10)
	assert.Equal(t, "N: Top 2:\n 1. Alice avg=95.00\n 2. Bob avg=85.00\n", got[6])
	assert.Equal(t, "N: Top 0:\n (none)\n", got[7])
	assert.Equal(t, "N: Not a number.\n", got[8])
}

func TestRun_InvalidChoice(t *testing.T) {
	out, _ := run(t, "9\n\n0\n")

	got := chunks(out)
	require.Len(t, got, 3)
	assert.Equal(t, "Invalid.\n", got[0])
	assert.Equal(t, "Invalid.\n", got[1])
}

func TestRun_EndOfInputInsideAction(t *testing.T) {
	out, _ := run(t, "1\n")
	assert.True(t, strings.HasSuffix(out, "Student name: \nBye.\n"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestRun_ReadErrorIsReturned(t *testing.T) {
	r, err := memory.NewRoster(student.DefaultGradeBounds())
	require.NoError(t, err)

	err = NewApp(r, failingReader{}, io.Discard, nil).Run()
	assert.ErrorContains(t, err, "disk on fire")
}

func TestRun_CustomBounds(t *testing.T) {
	r, err := memory.NewRoster(student.GradeBounds{Min: 1, Max: 5})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewApp(r, strings.NewReader("1\nA\n2\nA\n6\n0\n"), &out, nil).Run())
	assert.Contains(t, out.String(), "Grade (1-5): Out of range [1, 5].\n")
}

func TestRun_LongNameIsAccepted(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	out, r := run(t, "1\n"+long+"\n3\n0\n")

	got := chunks(out)
	require.Len(t, got, 3)
	assert.Equal(t, "Student name: Added: "+long+"\n", got[0])
	assert.Equal(t, "Students:\n - "+long+" | grades=[] | avg=0.00\n", got[1])
	assert.Equal(t, 1, r.Len())
}

func TestRun_OverlongLinesAreRejectedAndSessionContinues(t *testing.T) {
	huge := strings.Repeat("x", maxLineBytes+1)
	input := "1\n" + huge + "\n" +
		"1\nBob\n" +
		"2\nBob\n" + huge + "\n" +
		"2\n" + huge + "\n" +
		huge + "\n" +
		"3\n0\n"
	out, r := run(t, input)

	got := chunks(out)
	require.Len(t, got, 7)
	assert.Equal(t, "Student name: Exists or bad name.\n", got[0])
	assert.Equal(t, "Student name: Added: Bob\n", got[1])
	assert.Equal(t, "Student name: Grade (0-100): Not a number.\n", got[2])
	assert.Equal(t, "Student name: No such student.\n", got[3])
	assert.Equal(t, "Invalid.\n", got[4])
	assert.Equal(t, "Students:\n - Bob | grades=[] | avg=0.00\n", got[5])
	assert.Equal(t, 1, r.Len())
}

func TestRun_IntegersOutside32BitsAreNotNumbers(t *testing.T) {
	out, _ := run(t, "1\nBob\n2\nBob\n3000000000\n5\n-3000000000\n2\nBob\n2147483647\n0\n")

	got := chunks(out)
	require.Len(t, got, 5)
	assert.Equal(t, "Student name: Grade (0-100): Not a number.\n", got[1])
	assert.Equal(t, "N: Not a number.\n", got[2])
	assert.Equal(t, "Student name: Grade (0-100): Out of range [0, 100].\n", got[3])
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	out, r := run(t, "1\nAlice\n0")
	assert.True(t, strings.HasSuffix(out, "Bye.\n"))
	assert.Equal(t, 1, r.Len())
}

func TestRun_WindowsLineEndings(t *testing.T) {
	out, r := run(t, "1\r\nAlice\r\n0\r\n")
	assert.Contains(t, out, "Added: Alice\n")
	assert.Equal(t, 1, r.Len())
}
