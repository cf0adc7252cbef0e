package platform

import (
	"time"

	"go.uber.org/zap"

	"eduplatform/models"
)

// MaxSubmissionLength bounds the content of a single submission.
const MaxSubmissionLength = 500

// SubmitAssignment records a student's submission on the assignment and
// the resulting status on the student. Submissions after the deadline
// are accepted but marked late.
func (p *Platform) SubmitAssignment(studentID, assignmentID int, content string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	student, ok := p.users[studentID]
	if !ok || student.Role != models.RoleStudent {
		return "", ErrNotFound
	}
	a, ok := p.assignments[assignmentID]
	if !ok {
		return "", ErrNotFound
	}
	if len(content) > MaxSubmissionLength {
		return "", ErrSubmissionTooLong
	}

	status := models.StatusSubmitted
	if time.Now().After(a.Deadline) {
		status = models.StatusLateSubmitted
	}
	a.Submissions[studentID] = content
	student.Student.Assignments[assignmentID] = status

	p.log.Info("assignment submitted",
		zap.Int("assignment", assignmentID),
		zap.Int("student", studentID),
		zap.String("status", status))
	return status, nil
}

// SetSubjectTeacher records which teacher teaches the subject to the
// student.
func (p *Platform) SetSubjectTeacher(studentID int, subject string, teacherID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	student, ok := p.users[studentID]
	if !ok || student.Role != models.RoleStudent {
		return ErrNotFound
	}
	if t, ok := p.users[teacherID]; !ok || t.Role != models.RoleTeacher {
		return ErrNotFound
	}
	student.Student.Subjects[subject] = teacherID
	return nil
}

// StudentGrades returns the student's grade sequences, optionally
// narrowed to one subject. The empty subject selects all subjects.
func (p *Platform) StudentGrades(studentID int, subject string) (map[string][]int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	student, ok := p.users[studentID]
	if !ok || student.Role != models.RoleStudent {
		return nil, ErrNotFound
	}
	out := make(map[string][]int)
	for s, values := range student.Student.Grades {
		if subject != "" && s != subject {
			continue
		}
		seq := make([]int, len(values))
		copy(seq, values)
		out[s] = seq
	}
	return out, nil
}
