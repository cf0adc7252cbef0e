package platform

import (
	"eduplatform/models"
)

// Reporting helpers are pure reads over the registry; they never mutate
// a record or an index and are safe to call at any time.

// StudentOverview is one student line in a system report.
type StudentOverview struct {
	StudentID int
	FullName  string
	Class     string
	Average   float64
	HasGrades bool
}

// Report summarizes the platform's population and record counts.
type Report struct {
	TotalUsers         int
	Admins             int
	Teachers           int
	Students           int
	Parents            int
	TotalAssignments   int
	TotalGrades        int
	TotalSchedules     int
	TotalNotifications int
	StudentPerformance []StudentOverview
}

// GenerateReport computes the counts and a per-student performance
// overview, in student registration order.
func (p *Platform) GenerateReport() Report {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r := Report{
		TotalUsers:         len(p.users),
		Admins:             len(p.adminIDs),
		Teachers:           len(p.teacherIDs),
		Students:           len(p.studentIDs),
		Parents:            len(p.parentIDs),
		TotalAssignments:   len(p.assignments),
		TotalGrades:        len(p.grades),
		TotalSchedules:     len(p.schedules),
		TotalNotifications: len(p.notifications),
	}
	for _, id := range p.studentIDs {
		student := p.users[id]
		avg, ok := averageOf(student.Student.Grades, "")
		r.StudentPerformance = append(r.StudentPerformance, StudentOverview{
			StudentID: id,
			FullName:  student.FullName,
			Class:     student.Student.Class,
			Average:   avg,
			HasGrades: ok,
		})
	}
	return r
}

// AverageGrade returns the mean of the student's grades, over one
// subject or over all subjects when subject is empty. The second return
// is false when the student has no grades to average; that is not an
// error.
func (p *Platform) AverageGrade(studentID int, subject string) (float64, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	student, ok := p.users[studentID]
	if !ok || student.Role != models.RoleStudent {
		return 0, false, ErrNotFound
	}
	avg, hasData := averageOf(student.Student.Grades, subject)
	return avg, hasData, nil
}

// SubjectStats holds min/max/average over one subject's grade sequence.
type SubjectStats struct {
	Min     int
	Max     int
	Average float64
}

// StudentSubjectStats computes min, max and average of the student's
// grades in one subject. The second return is false when the student
// has no grades in that subject.
func (p *Platform) StudentSubjectStats(studentID int, subject string) (SubjectStats, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	student, ok := p.users[studentID]
	if !ok || student.Role != models.RoleStudent {
		return SubjectStats{}, false, ErrNotFound
	}
	values := student.Student.Grades[subject]
	if len(values) == 0 {
		return SubjectStats{}, false, nil
	}
	stats := SubjectStats{Min: values[0], Max: values[0]}
	sum := 0
	for _, v := range values {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sum += v
	}
	stats.Average = float64(sum) / float64(len(values))
	return stats, true, nil
}

// averageOf computes the mean over one subject's sequence, or over the
// flattened sequences of all subjects when subject is empty. The caller
// must hold at least a read lock.
func averageOf(grades map[string][]int, subject string) (float64, bool) {
	sum, count := 0, 0
	for s, values := range grades {
		if subject != "" && s != subject {
			continue
		}
		for _, v := range values {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}
