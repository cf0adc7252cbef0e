// Package export formats platform snapshots as XLSX workbooks, CSV
// files and SQL scripts. It is a pure formatting layer: every writer
// validates the snapshot first and never reaches back into the
// registry.
package export

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"eduplatform/platform"
)

// table is one exported collection: a name, a header row and data rows.
type table struct {
	name    string
	headers []string
	rows    [][]string
}

// tables projects the snapshot onto the fixed export columns. The same
// projection feeds the XLSX and CSV writers.
func tables(snap *platform.Snapshot) []table {
	users := table{
		name:    "Users",
		headers: []string{"id", "full_name", "email", "role", "created_at", "phone", "address"},
	}
	students := table{
		name:    "Students",
		headers: []string{"user_id", "full_name", "grade", "subjects", "assignments", "grades_data"},
	}
	teachers := table{
		name:    "Teachers",
		headers: []string{"user_id", "full_name", "subjects", "classes", "workload"},
	}
	parents := table{
		name:    "Parents",
		headers: []string{"user_id", "full_name", "children_ids", "notification_preferences"},
	}
	for _, u := range snap.Users {
		users.rows = append(users.rows, []string{
			strconv.Itoa(u.ID), u.FullName, u.Email, string(u.Role),
			formatTime(u.CreatedAt), optional(u.Phone), optional(u.Address),
		})
		switch {
		case u.Student != nil:
			students.rows = append(students.rows, []string{
				strconv.Itoa(u.ID), u.FullName, u.Student.Class,
				jsonString(u.Student.Subjects),
				jsonString(u.Student.Assignments),
				jsonString(u.Student.Grades),
			})
		case u.Teacher != nil:
			teachers.rows = append(teachers.rows, []string{
				strconv.Itoa(u.ID), u.FullName,
				joinStrings(u.Teacher.Subjects),
				joinStrings(u.Teacher.Classes),
				strconv.Itoa(u.Teacher.Workload),
			})
		case u.Parent != nil:
			parents.rows = append(parents.rows, []string{
				strconv.Itoa(u.ID), u.FullName,
				joinInts(u.Parent.Children),
				jsonString(u.Parent.NotificationPrefs),
			})
		}
	}

	assignments := table{
		name: "Assignments",
		headers: []string{"id", "title", "description", "deadline", "subject",
			"teacher_id", "class_id", "difficulty", "submissions_count", "grades_count"},
	}
	for _, a := range snap.Assignments {
		assignments.rows = append(assignments.rows, []string{
			strconv.Itoa(a.ID), a.Title, a.Description, formatTime(a.Deadline),
			a.Subject, strconv.Itoa(a.TeacherID), a.ClassID, string(a.Difficulty),
			strconv.Itoa(len(a.Submissions)), strconv.Itoa(len(a.Grades)),
		})
	}

	grades := table{
		name:    "Grades",
		headers: []string{"id", "student_id", "subject", "value", "date", "teacher_id", "comment"},
	}
	for _, g := range snap.Grades {
		grades.rows = append(grades.rows, []string{
			strconv.Itoa(g.ID), strconv.Itoa(g.StudentID), g.Subject,
			strconv.Itoa(g.Value), formatTime(g.Date), strconv.Itoa(g.TeacherID), g.Comment,
		})
	}

	schedules := table{
		name:    "Schedules",
		headers: []string{"id", "class_id", "day", "lessons_json"},
	}
	for _, s := range snap.Schedules {
		schedules.rows = append(schedules.rows, []string{
			strconv.Itoa(s.ID), s.ClassID, s.Day, jsonString(s.Lessons),
		})
	}

	notifications := table{
		name:    "Notifications",
		headers: []string{"id", "message", "recipient_id", "created_at", "is_read", "priority"},
	}
	for _, n := range snap.Notifications {
		notifications.rows = append(notifications.rows, []string{
			strconv.Itoa(n.ID), n.Message, strconv.Itoa(n.RecipientID),
			formatTime(n.CreatedAt), strconv.FormatBool(n.IsRead), strconv.Itoa(n.Priority),
		})
	}

	return []table{users, students, teachers, parents, assignments, grades, schedules, notifications}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func jsonString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func joinStrings(values []string) string {
	return strings.Join(values, ", ")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
