package models

import (
	"strconv"
	"time"
)

// Role identifies a user's role on the platform
type Role string

// The closed set of user roles
const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
	RoleParent  Role = "Parent"
)

// Difficulty of an assignment
type Difficulty string

// Assignment difficulty levels
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Submission status values recorded on a student's profile
const (
	StatusSubmitted     = "Submitted"
	StatusLateSubmitted = "Late Submitted"
)

// User model. Exactly one of the role profile pointers is non-nil,
// matching Role.
type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`

	// Notifications holds the ids of this user's notifications in
	// delivery order. The platform owns the Notification records.
	Notifications []int `json:"notifications"`

	Admin   *AdminProfile   `json:"admin,omitempty"`
	Teacher *TeacherProfile `json:"teacher,omitempty"`
	Student *StudentProfile `json:"student,omitempty"`
	Parent  *ParentProfile  `json:"parent,omitempty"`
}

// AdminProfile holds admin-specific data
type AdminProfile struct {
	Permissions []string `json:"permissions"`
}

// TeacherProfile holds teacher-specific data
type TeacherProfile struct {
	Subjects         []string            `json:"subjects"`
	Classes          []string            `json:"classes"`
	AssignmentsGiven map[int]*Assignment `json:"-"`
	Workload         int                 `json:"workload"`
}

// StudentProfile holds student-specific data
type StudentProfile struct {
	// Class is the class-group the student belongs to, e.g. "10-A".
	Class string `json:"class"`
	// Subjects maps subject name to the id of the teacher teaching it.
	Subjects map[string]int `json:"subjects"`
	// Assignments maps assignment id to its submission status.
	Assignments map[int]string `json:"assignments"`
	// Grades maps subject name to the ordered sequence of grade values.
	Grades map[string][]int `json:"grades"`
}

// ParentProfile holds parent-specific data
type ParentProfile struct {
	// Children holds linked student ids in the order they were added.
	Children []int `json:"children"`
	// NotificationPrefs switches alert categories on or off.
	NotificationPrefs map[string]bool `json:"notification_preferences"`
}

// Teaches reports whether the teacher teaches the given subject.
func (t *TeacherProfile) Teaches(subject string) bool {
	for _, s := range t.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// TeachesClass reports whether the teacher teaches the given class-group.
func (t *TeacherProfile) TeachesClass(classID string) bool {
	for _, c := range t.Classes {
		if c == classID {
			return true
		}
	}
	return false
}

// HasChild reports whether the student id is linked to this parent.
func (p *ParentProfile) HasChild(studentID int) bool {
	for _, id := range p.Children {
		if id == studentID {
			return true
		}
	}
	return false
}

// Assignment model
type Assignment struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    time.Time  `json:"deadline"`
	Subject     string     `json:"subject"`
	TeacherID   int        `json:"teacher_id"`
	ClassID     string     `json:"class_id"`
	Difficulty  Difficulty `json:"difficulty"`
	// Submissions maps student id to submitted content.
	Submissions map[int]string `json:"submissions"`
	// Grades maps student id to the grade value set by the teacher.
	Grades map[int]int `json:"grades"`
}

// StudentStatus describes the assignment from one student's point of view.
func (a *Assignment) StudentStatus(studentID int) string {
	if v, ok := a.Grades[studentID]; ok {
		return "Graded: " + strconv.Itoa(v)
	}
	if _, ok := a.Submissions[studentID]; ok {
		return "Submitted (Not Graded)"
	}
	return "Not Submitted"
}

// Status reports whether the assignment is still open for submissions.
func (a *Assignment) Status(now time.Time) string {
	if now.After(a.Deadline) {
		return "Closed (Past Deadline)"
	}
	return "Open"
}

// Grade model. Value is always within [1,5]; the platform rejects
// out-of-range values before they reach the store.
type Grade struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Subject   string    `json:"subject"`
	Value     int       `json:"value"`
	Date      time.Time `json:"date"`
	TeacherID int       `json:"teacher_id"`
	Comment   string    `json:"comment"`
}

// Lesson is one slot of a class-group's day schedule
type Lesson struct {
	Subject   string `json:"subject"`
	TeacherID int    `json:"teacher_id"`
}

// Schedule holds one class-group's timetable for a single day
type Schedule struct {
	ID      int    `json:"id"`
	ClassID string `json:"class_id"`
	Day     string `json:"day"`
	// Lessons maps a time slot such as "09:00" to the lesson held then.
	Lessons map[string]Lesson `json:"lessons"`
}

// Notification model. Priority 0 is normal; higher values are more urgent.
type Notification struct {
	ID          int       `json:"id"`
	Message     string    `json:"message"`
	RecipientID int       `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
	IsRead      bool      `json:"is_read"`
	Priority    int       `json:"priority"`
}
