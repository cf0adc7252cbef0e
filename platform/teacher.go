package platform

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"eduplatform/models"
)

// Teacher-side operations. Authorization (does this teacher teach the
// subject and the class-group) happens here, before any state changes;
// the cascading notification fan-out is owned by the platform so that
// entity records stay plain data.

// CreateAssignment creates an assignment authored by the teacher and
// notifies every student in the target class-group, plus every parent
// linked to one of those students. Students are notified in class
// bucket order, parents in registration order.
func (p *Platform) CreateAssignment(teacherID int, title, description string, deadline time.Time, subject, classID string, difficulty models.Difficulty) (*models.Assignment, error) {
	a, err := p.createAssignment(teacherID, title, description, deadline, subject, classID, difficulty)
	if err != nil {
		return nil, err
	}
	p.autoExport()
	return a, nil
}

func (p *Platform) createAssignment(teacherID int, title, description string, deadline time.Time, subject, classID string, difficulty models.Difficulty) (*models.Assignment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	teacher, ok := p.users[teacherID]
	if !ok {
		return nil, ErrNotFound
	}
	if teacher.Role != models.RoleTeacher {
		return nil, ErrNotAuthorized
	}
	if !teacher.Teacher.Teaches(subject) || !teacher.Teacher.TeachesClass(classID) {
		return nil, ErrNotAuthorized
	}

	a := &models.Assignment{
		ID:          p.ids.Next(KindAssignment),
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Subject:     subject,
		TeacherID:   teacherID,
		ClassID:     classID,
		Difficulty:  difficulty,
		Submissions: make(map[int]string),
		Grades:      make(map[int]int),
	}
	p.assignments[a.ID] = a
	teacher.Teacher.AssignmentsGiven[a.ID] = a
	teacher.Teacher.Workload++

	p.log.Info("assignment created",
		zap.Int("id", a.ID),
		zap.Int("teacher", teacherID),
		zap.String("subject", subject),
		zap.String("class", classID))

	for _, studentID := range p.studentsByClass[classID] {
		student := p.users[studentID]
		if student == nil {
			continue
		}
		p.notifyLocked(studentID,
			fmt.Sprintf("New assignment: '%s' for %s. Deadline: %s", title, subject, deadline.Format(time.RFC3339)), 0)
		for _, parentID := range p.parentIDs {
			parent := p.users[parentID]
			if parent.Parent.HasChild(studentID) {
				p.notifyLocked(parentID,
					fmt.Sprintf("Your child, %s, has a new assignment: '%s'.", student.FullName, title), 0)
			}
		}
	}
	return a, nil
}

// GradeAssignment grades a student's submission. The grade value must
// be within [1,5] and the student must have submitted; nothing is
// mutated otherwise. On success the value is appended to the student's
// per-subject grade sequence, a Grade record is created, the student is
// notified at priority 2, and for values below 3 every parent linked to
// the student receives an urgent priority-3 alert.
func (p *Platform) GradeAssignment(teacherID, assignmentID, studentID, value int, comment string) (*models.Grade, error) {
	g, err := p.gradeAssignment(teacherID, assignmentID, studentID, value, comment)
	if err != nil {
		return nil, err
	}
	p.autoExport()
	return g, nil
}

func (p *Platform) gradeAssignment(teacherID, assignmentID, studentID, value int, comment string) (*models.Grade, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	teacher, ok := p.users[teacherID]
	if !ok {
		return nil, ErrNotFound
	}
	if teacher.Role != models.RoleTeacher {
		return nil, ErrNotAuthorized
	}
	a, ok := teacher.Teacher.AssignmentsGiven[assignmentID]
	if !ok {
		return nil, ErrNotFound
	}
	if _, ok := a.Submissions[studentID]; !ok {
		return nil, ErrNotSubmitted
	}
	if value < 1 || value > 5 {
		return nil, ErrInvalidGradeValue
	}
	student, ok := p.users[studentID]
	if !ok || student.Role != models.RoleStudent {
		return nil, ErrNotFound
	}

	a.Grades[studentID] = value
	student.Student.Grades[a.Subject] = append(student.Student.Grades[a.Subject], value)

	g := &models.Grade{
		ID:        p.ids.Next(KindGrade),
		StudentID: studentID,
		Subject:   a.Subject,
		Value:     value,
		Date:      time.Now(),
		TeacherID: teacherID,
		Comment:   comment,
	}
	p.grades[g.ID] = g

	p.log.Info("grade recorded",
		zap.Int("id", g.ID),
		zap.Int("student", studentID),
		zap.String("subject", g.Subject),
		zap.Int("value", value))

	p.notifyLocked(studentID,
		fmt.Sprintf("You received a grade of %d for '%s' in %s.", value, a.Title, a.Subject), 2)
	if value < 3 {
		for _, parentID := range p.parentIDs {
			parent := p.users[parentID]
			if parent.Parent.HasChild(studentID) {
				p.notifyLocked(parentID,
					fmt.Sprintf("Urgent: Your child, %s, received a low grade (%d) for '%s' in %s.",
						student.FullName, value, a.Title, a.Subject), 3)
			}
		}
	}
	return g, nil
}

// UpdateGrade changes a grade record's value and comment and refreshes
// its date. Out-of-range values are rejected and leave the record
// untouched. The student's per-subject sequence keeps the original
// value; the Grade record is the authoritative edit history.
func (p *Platform) UpdateGrade(gradeID, value int, comment string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	g, ok := p.grades[gradeID]
	if !ok {
		return ErrNotFound
	}
	if value < 1 || value > 5 {
		return ErrInvalidGradeValue
	}
	g.Value = value
	g.Comment = comment
	g.Date = time.Now()
	p.log.Info("grade updated", zap.Int("id", gradeID), zap.Int("value", value))
	return nil
}

// SubjectTeacher names one subject/teacher pair on a progress report.
type SubjectTeacher struct {
	Subject     string
	TeacherID   int
	TeacherName string
}

// AssignmentStatus is one assignment line on a progress report.
type AssignmentStatus struct {
	AssignmentID int
	Title        string
	Status       string
}

// StudentProgress is a read-only snapshot of one student's standing.
type StudentProgress struct {
	StudentID   int
	FullName    string
	Class       string
	Subjects    []SubjectTeacher
	Assignments []AssignmentStatus
	Grades      map[string][]int
	Average     float64
	HasGrades   bool
}

// Progress assembles a progress report for the student. It performs no
// mutation and may be called at any time.
func (p *Platform) Progress(studentID int) (*StudentProgress, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	student, ok := p.users[studentID]
	if !ok || student.Role != models.RoleStudent {
		return nil, ErrNotFound
	}

	prog := &StudentProgress{
		StudentID: studentID,
		FullName:  student.FullName,
		Class:     student.Student.Class,
		Grades:    make(map[string][]int, len(student.Student.Grades)),
	}
	for subject, teacherID := range student.Student.Subjects {
		st := SubjectTeacher{Subject: subject, TeacherID: teacherID}
		if t, ok := p.users[teacherID]; ok {
			st.TeacherName = t.FullName
		}
		prog.Subjects = append(prog.Subjects, st)
	}
	for assignmentID, status := range student.Student.Assignments {
		as := AssignmentStatus{AssignmentID: assignmentID, Status: status}
		if a, ok := p.assignments[assignmentID]; ok {
			as.Title = a.Title
		}
		prog.Assignments = append(prog.Assignments, as)
	}
	for subject, values := range student.Student.Grades {
		seq := make([]int, len(values))
		copy(seq, values)
		prog.Grades[subject] = seq
	}
	sort.Slice(prog.Subjects, func(i, j int) bool { return prog.Subjects[i].Subject < prog.Subjects[j].Subject })
	sort.Slice(prog.Assignments, func(i, j int) bool { return prog.Assignments[i].AssignmentID < prog.Assignments[j].AssignmentID })
	prog.Average, prog.HasGrades = averageOf(student.Student.Grades, "")
	return prog, nil
}
