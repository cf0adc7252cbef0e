package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduplatform/models"
)

func notificationsOf(t *testing.T, p *Platform, userID int) []*models.Notification {
	t.Helper()
	ns, err := p.Notifications(userID, NotificationFilter{})
	require.NoError(t, err)
	return ns
}

func TestCreateAssignment(t *testing.T) {
	t.Run("authorization", func(t *testing.T) {
		p, _, teacher, student1, _, _ := seedPlatform(t)
		deadline := time.Now().Add(24 * time.Hour)

		_, err := p.CreateAssignment(teacher.ID, "t", "d", deadline, "History", "10-A", models.DifficultyEasy)
		assert.ErrorIs(t, err, ErrNotAuthorized, "subject not taught")

		_, err = p.CreateAssignment(teacher.ID, "t", "d", deadline, "Math", "9-C", models.DifficultyEasy)
		assert.ErrorIs(t, err, ErrNotAuthorized, "class not taught")

		_, err = p.CreateAssignment(student1.ID, "t", "d", deadline, "Math", "10-A", models.DifficultyEasy)
		assert.ErrorIs(t, err, ErrNotAuthorized, "not a teacher")

		assert.Equal(t, 0, p.GenerateReport().TotalAssignments)
	})

	t.Run("fan-out to class and linked parents", func(t *testing.T) {
		p, _, teacher, student1, student2, parent := seedPlatform(t)

		a, err := p.CreateAssignment(teacher.ID, "Algebra Homework 1", "Solve problems 1-5.",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err)
		require.NotNil(t, a)

		n1 := notificationsOf(t, p, student1.ID)
		require.Len(t, n1, 1)
		assert.Contains(t, n1[0].Message, "Algebra Homework 1")
		assert.Equal(t, 0, n1[0].Priority)

		n2 := notificationsOf(t, p, student2.ID)
		require.Len(t, n2, 1)

		np := notificationsOf(t, p, parent.ID)
		require.Len(t, np, 1, "parent linked to student1 gets exactly one notification")
		assert.Contains(t, np[0].Message, student1.FullName)
	})

	t.Run("records authorship and workload", func(t *testing.T) {
		p, _, teacher, _, _, _ := seedPlatform(t)
		a, err := p.CreateAssignment(teacher.ID, "HW", "d",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err)

		u, _ := p.UserByID(teacher.ID)
		assert.Same(t, a, u.Teacher.AssignmentsGiven[a.ID])
		assert.Equal(t, 1, u.Teacher.Workload)
	})
}

func TestGradeAssignment(t *testing.T) {
	t.Run("grade below 3 alerts linked parents", func(t *testing.T) {
		p, _, teacher, student1, _, parent := seedPlatform(t)
		a := submittedAssignment(t, p, teacher.ID, student1.ID)
		studentBefore := len(notificationsOf(t, p, student1.ID))
		parentBefore := len(notificationsOf(t, p, parent.ID))

		g, err := p.GradeAssignment(teacher.ID, a.ID, student1.ID, 2, "see me")
		require.NoError(t, err)
		assert.Equal(t, 2, g.Value)

		u, _ := p.UserByID(student1.ID)
		assert.Equal(t, []int{2}, u.Student.Grades["Math"])

		ns := notificationsOf(t, p, student1.ID)
		require.Len(t, ns, studentBefore+1)
		assert.Equal(t, 2, ns[0].Priority)

		np := notificationsOf(t, p, parent.ID)
		require.Len(t, np, parentBefore+1)
		assert.Equal(t, 3, np[0].Priority)
		assert.Contains(t, np[0].Message, "Urgent")
	})

	t.Run("grade of 3 does not alert parents", func(t *testing.T) {
		p, _, teacher, student1, _, parent := seedPlatform(t)
		a := submittedAssignment(t, p, teacher.ID, student1.ID)
		parentBefore := len(notificationsOf(t, p, parent.ID))
		studentBefore := len(notificationsOf(t, p, student1.ID))

		_, err := p.GradeAssignment(teacher.ID, a.ID, student1.ID, 3, "")
		require.NoError(t, err)

		assert.Len(t, notificationsOf(t, p, parent.ID), parentBefore)
		assert.Len(t, notificationsOf(t, p, student1.ID), studentBefore+1)
	})

	t.Run("unlinked student's grade never reaches the parent", func(t *testing.T) {
		p, _, teacher, _, student2, parent := seedPlatform(t)
		a := submittedAssignment(t, p, teacher.ID, student2.ID)
		parentBefore := len(notificationsOf(t, p, parent.ID))

		_, err := p.GradeAssignment(teacher.ID, a.ID, student2.ID, 1, "")
		require.NoError(t, err)
		assert.Len(t, notificationsOf(t, p, parent.ID), parentBefore)
	})

	t.Run("out-of-range value leaves everything unchanged", func(t *testing.T) {
		p, _, teacher, student1, _, _ := seedPlatform(t)
		a := submittedAssignment(t, p, teacher.ID, student1.ID)

		for _, v := range []int{0, 6, -1} {
			_, err := p.GradeAssignment(teacher.ID, a.ID, student1.ID, v, "")
			assert.ErrorIs(t, err, ErrInvalidGradeValue)
		}
		u, _ := p.UserByID(student1.ID)
		assert.Empty(t, u.Student.Grades["Math"])
		assert.Equal(t, 0, p.GenerateReport().TotalGrades)
	})

	t.Run("grading without submission rejected", func(t *testing.T) {
		p, _, teacher, student1, _, _ := seedPlatform(t)
		a, err := p.CreateAssignment(teacher.ID, "HW", "d",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err)

		_, err = p.GradeAssignment(teacher.ID, a.ID, student1.ID, 4, "")
		assert.ErrorIs(t, err, ErrNotSubmitted)
	})

	t.Run("only the authoring teacher may grade", func(t *testing.T) {
		p, _, teacher, student1, _, _ := seedPlatform(t)
		other, err := p.CreateTeacher("Other Teacher", "other@edu.com", "pw",
			[]string{"Math"}, []string{"10-A"})
		require.NoError(t, err)
		a := submittedAssignment(t, p, teacher.ID, student1.ID)

		_, err = p.GradeAssignment(other.ID, a.ID, student1.ID, 4, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGradingScenario(t *testing.T) {
	// Teacher T teaches Math to 10-A with students S1 and S2; a parent
	// is linked to S1. Creating an assignment notifies both students
	// and the parent. Grading S1 with 2 alerts the parent urgently;
	// grading S2 with 4 does not reach the parent.
	p, _, teacher, s1, s2, parent := seedPlatform(t)

	a, err := p.CreateAssignment(teacher.ID, "Algebra Homework 1", "Solve problems 1-5.",
		time.Now().Add(7*24*time.Hour), "Math", "10-A", models.DifficultyMedium)
	require.NoError(t, err)

	require.Len(t, notificationsOf(t, p, s1.ID), 1)
	require.Len(t, notificationsOf(t, p, s2.ID), 1)
	require.Len(t, notificationsOf(t, p, parent.ID), 1)

	_, err = p.SubmitAssignment(s1.ID, a.ID, "solutions")
	require.NoError(t, err)
	_, err = p.SubmitAssignment(s2.ID, a.ID, "solutions")
	require.NoError(t, err)

	g, err := p.GradeAssignment(teacher.ID, a.ID, s1.ID, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Value)

	u1, _ := p.UserByID(s1.ID)
	assert.Equal(t, []int{2}, u1.Student.Grades["Math"])
	assert.Len(t, notificationsOf(t, p, s1.ID), 2)
	np := notificationsOf(t, p, parent.ID)
	require.Len(t, np, 2)
	assert.Equal(t, 3, np[0].Priority, "urgent alert sorts first")

	_, err = p.GradeAssignment(teacher.ID, a.ID, s2.ID, 4, "")
	require.NoError(t, err)
	assert.Len(t, notificationsOf(t, p, s2.ID), 2)
	assert.Len(t, notificationsOf(t, p, parent.ID), 2, "no parent alert for a grade of 4")
}

func TestUpdateGrade(t *testing.T) {
	p, _, teacher, student1, _, _ := seedPlatform(t)
	a := submittedAssignment(t, p, teacher.ID, student1.ID)
	g, err := p.GradeAssignment(teacher.ID, a.ID, student1.ID, 4, "good")
	require.NoError(t, err)

	t.Run("valid update", func(t *testing.T) {
		require.NoError(t, p.UpdateGrade(g.ID, 5, "excellent"))
		stored, ok := p.GradeByID(g.ID)
		require.True(t, ok)
		assert.Equal(t, 5, stored.Value)
		assert.Equal(t, "excellent", stored.Comment)
	})

	t.Run("out-of-range update keeps prior value", func(t *testing.T) {
		assert.ErrorIs(t, p.UpdateGrade(g.ID, 6, "x"), ErrInvalidGradeValue)
		assert.ErrorIs(t, p.UpdateGrade(g.ID, 0, "x"), ErrInvalidGradeValue)
		stored, _ := p.GradeByID(g.ID)
		assert.Equal(t, 5, stored.Value)
		assert.Equal(t, "excellent", stored.Comment)
	})

	t.Run("unknown grade", func(t *testing.T) {
		assert.ErrorIs(t, p.UpdateGrade(9999, 4, ""), ErrNotFound)
	})
}

func TestProgress(t *testing.T) {
	p, _, teacher, student1, _, _ := seedPlatform(t)
	require.NoError(t, p.SetSubjectTeacher(student1.ID, "Math", teacher.ID))
	a := submittedAssignment(t, p, teacher.ID, student1.ID)
	_, err := p.GradeAssignment(teacher.ID, a.ID, student1.ID, 4, "")
	require.NoError(t, err)

	prog, err := p.Progress(student1.ID)
	require.NoError(t, err)
	assert.Equal(t, "10-A", prog.Class)
	assert.True(t, prog.HasGrades)
	assert.InDelta(t, 4.0, prog.Average, 1e-9)
	require.Len(t, prog.Subjects, 1)
	assert.Equal(t, teacher.FullName, prog.Subjects[0].TeacherName)
	require.Len(t, prog.Assignments, 1)
	assert.Equal(t, a.Title, prog.Assignments[0].Title)

	_, err = p.Progress(teacher.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
