package platform

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduplatform/models"
)

func TestSubmitAssignment(t *testing.T) {
	t.Run("on-time submission", func(t *testing.T) {
		p, _, teacher, student1, _, _ := seedPlatform(t)
		a, err := p.CreateAssignment(teacher.ID, "HW", "d",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err)

		status, err := p.SubmitAssignment(student1.ID, a.ID, "my work")
		require.NoError(t, err)
		assert.Equal(t, models.StatusSubmitted, status)

		stored, _ := p.AssignmentByID(a.ID)
		assert.Equal(t, "my work", stored.Submissions[student1.ID])
		u, _ := p.UserByID(student1.ID)
		assert.Equal(t, models.StatusSubmitted, u.Student.Assignments[a.ID])
	})

	t.Run("late submission is accepted but marked", func(t *testing.T) {
		p, _, teacher, student1, _, _ := seedPlatform(t)
		a, err := p.CreateAssignment(teacher.ID, "HW", "d",
			time.Now().Add(-time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err)

		status, err := p.SubmitAssignment(student1.ID, a.ID, "late work")
		require.NoError(t, err)
		assert.Equal(t, models.StatusLateSubmitted, status)
	})

	t.Run("oversized content rejected", func(t *testing.T) {
		p, _, teacher, student1, _, _ := seedPlatform(t)
		a, err := p.CreateAssignment(teacher.ID, "HW", "d",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err)

		_, err = p.SubmitAssignment(student1.ID, a.ID, strings.Repeat("x", MaxSubmissionLength+1))
		assert.ErrorIs(t, err, ErrSubmissionTooLong)
		stored, _ := p.AssignmentByID(a.ID)
		assert.Empty(t, stored.Submissions)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		p, _, _, student1, _, _ := seedPlatform(t)
		_, err := p.SubmitAssignment(student1.ID, 9999, "work")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSetSubjectTeacher(t *testing.T) {
	p, _, teacher, student1, _, _ := seedPlatform(t)

	require.NoError(t, p.SetSubjectTeacher(student1.ID, "Math", teacher.ID))
	u, _ := p.UserByID(student1.ID)
	assert.Equal(t, teacher.ID, u.Student.Subjects["Math"])

	assert.ErrorIs(t, p.SetSubjectTeacher(student1.ID, "Math", 9999), ErrNotFound)
	assert.ErrorIs(t, p.SetSubjectTeacher(teacher.ID, "Math", teacher.ID), ErrNotFound)
}

func TestStudentGrades(t *testing.T) {
	p, _, teacher, student1, _, _ := seedPlatform(t)
	a := submittedAssignment(t, p, teacher.ID, student1.ID)
	_, err := p.GradeAssignment(teacher.ID, a.ID, student1.ID, 4, "")
	require.NoError(t, err)

	all, err := p.StudentGrades(student1.ID, "")
	require.NoError(t, err)
	assert.Equal(t, map[string][]int{"Math": {4}}, all)

	math, err := p.StudentGrades(student1.ID, "Math")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, math["Math"])

	other, err := p.StudentGrades(student1.ID, "History")
	require.NoError(t, err)
	assert.Empty(t, other)

	// The returned sequences are copies, not views into the store.
	all["Math"][0] = 1
	again, err := p.StudentGrades(student1.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, again["Math"])
}
