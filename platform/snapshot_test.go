package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduplatform/models"
)

// recordingExporter counts exports and can be made to fail.
type recordingExporter struct {
	calls int
	fail  bool
}

func (e *recordingExporter) Export(snap *Snapshot) error {
	e.calls++
	if e.fail {
		return errors.New("sink unavailable")
	}
	return nil
}

func TestSnapshot(t *testing.T) {
	p, _, teacher, student1, _, _ := seedPlatform(t)
	a := submittedAssignment(t, p, teacher.ID, student1.ID)
	_, err := p.GradeAssignment(teacher.ID, a.ID, student1.ID, 4, "")
	require.NoError(t, err)

	snap := p.Snapshot()

	t.Run("collections are complete and sorted", func(t *testing.T) {
		assert.Len(t, snap.Users, 5)
		assert.Len(t, snap.Assignments, 1)
		assert.Len(t, snap.Grades, 1)
		for i := 1; i < len(snap.Users); i++ {
			assert.Less(t, snap.Users[i-1].ID, snap.Users[i].ID)
		}
	})

	t.Run("snapshot is frozen against later mutation", func(t *testing.T) {
		usersBefore := len(snap.Users)
		gradesSeq := snap.Users[2].Student.Grades["Math"]

		_, err := p.CreateStudent("Late Arrival", "late@edu.com", "pw", "10-A")
		require.NoError(t, err)
		g2, err := p.CreateAssignment(teacher.ID, "HW2", "d",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyEasy)
		require.NoError(t, err)
		_, err = p.SubmitAssignment(student1.ID, g2.ID, "more work")
		require.NoError(t, err)
		_, err = p.GradeAssignment(teacher.ID, g2.ID, student1.ID, 1, "")
		require.NoError(t, err)

		assert.Len(t, snap.Users, usersBefore)
		assert.Equal(t, []int{4}, gradesSeq)
		assert.Len(t, snap.Grades, 1)
	})
}

func TestAutoExport(t *testing.T) {
	t.Run("assignment and grade inserts trigger the sink", func(t *testing.T) {
		p, _, teacher, student1, _, _ := seedPlatform(t)
		sink := &recordingExporter{}
		p.SetExporter(sink)

		a, err := p.CreateAssignment(teacher.ID, "HW", "d",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err)
		assert.Equal(t, 1, sink.calls)

		_, err = p.SubmitAssignment(student1.ID, a.ID, "work")
		require.NoError(t, err)
		assert.Equal(t, 1, sink.calls, "submissions do not auto-export")

		_, err = p.GradeAssignment(teacher.ID, a.ID, student1.ID, 4, "")
		require.NoError(t, err)
		assert.Equal(t, 2, sink.calls)

		log := p.ExportLog()
		require.Len(t, log, 2)
		assert.Equal(t, "Auto Export", log[0].Action)
	})

	t.Run("failed export is not logged and does not affect state", func(t *testing.T) {
		p, _, teacher, _, _, _ := seedPlatform(t)
		p.SetExporter(&recordingExporter{fail: true})

		_, err := p.CreateAssignment(teacher.ID, "HW", "d",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err, "export failure never fails the mutation")
		assert.Empty(t, p.ExportLog())
		assert.Equal(t, 1, p.GenerateReport().TotalAssignments)
	})

	t.Run("no exporter installed", func(t *testing.T) {
		p, _, teacher, _, _, _ := seedPlatform(t)
		_, err := p.CreateAssignment(teacher.ID, "HW", "d",
			time.Now().Add(24*time.Hour), "Math", "10-A", models.DifficultyMedium)
		require.NoError(t, err)
		assert.Empty(t, p.ExportLog())
	})
}
