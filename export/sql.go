package export

import (
	"fmt"
	"os"
	"strings"

	"eduplatform/platform"
)

var sqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS Users (
    id INT PRIMARY KEY,
    full_name VARCHAR(255) NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(50) NOT NULL,
    created_at VARCHAR(255) NOT NULL,
    phone VARCHAR(20),
    address TEXT
);`,
	`CREATE TABLE IF NOT EXISTS Students (
    user_id INT PRIMARY KEY,
    grade VARCHAR(10) NOT NULL,
    subjects TEXT,
    assignments TEXT,
    grades_data TEXT,
    FOREIGN KEY (user_id) REFERENCES Users(id) ON DELETE CASCADE
);`,
	`CREATE TABLE IF NOT EXISTS Teachers (
    user_id INT PRIMARY KEY,
    subjects TEXT,
    classes TEXT,
    workload INT,
    FOREIGN KEY (user_id) REFERENCES Users(id) ON DELETE CASCADE
);`,
	`CREATE TABLE IF NOT EXISTS Parents (
    user_id INT PRIMARY KEY,
    children_ids TEXT,
    notification_preferences TEXT,
    FOREIGN KEY (user_id) REFERENCES Users(id) ON DELETE CASCADE
);`,
	`CREATE TABLE IF NOT EXISTS Assignments (
    id INT PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    deadline VARCHAR(255) NOT NULL,
    subject VARCHAR(100) NOT NULL,
    teacher_id INT NOT NULL,
    class_id VARCHAR(10) NOT NULL,
    difficulty VARCHAR(50) NOT NULL,
    submissions TEXT,
    grades TEXT,
    FOREIGN KEY (teacher_id) REFERENCES Users(id) ON DELETE CASCADE
);`,
	`CREATE TABLE IF NOT EXISTS Grades (
    id INT PRIMARY KEY,
    student_id INT NOT NULL,
    subject VARCHAR(100) NOT NULL,
    value INT NOT NULL CHECK (value >= 1 AND value <= 5),
    date VARCHAR(255) NOT NULL,
    teacher_id INT NOT NULL,
    comment TEXT,
    FOREIGN KEY (student_id) REFERENCES Users(id) ON DELETE CASCADE,
    FOREIGN KEY (teacher_id) REFERENCES Users(id) ON DELETE CASCADE
);`,
	`CREATE TABLE IF NOT EXISTS Schedules (
    id INT PRIMARY KEY,
    class_id VARCHAR(10) NOT NULL,
    day VARCHAR(20) NOT NULL,
    lessons TEXT
);`,
	`CREATE TABLE IF NOT EXISTS Notifications (
    id INT PRIMARY KEY,
    message TEXT NOT NULL,
    recipient_id INT NOT NULL,
    created_at VARCHAR(255) NOT NULL,
    is_read BOOLEAN NOT NULL,
    priority INT NOT NULL,
    FOREIGN KEY (recipient_id) REFERENCES Users(id) ON DELETE CASCADE
);`,
}

// WriteSQL writes the snapshot as a script of CREATE TABLE and INSERT
// statements. The snapshot is validated first; on validation failure no
// file is written.
func WriteSQL(snap *platform.Snapshot, filename string) error {
	if err := Validate(snap); err != nil {
		return err
	}

	var b strings.Builder
	for _, stmt := range sqlSchema {
		b.WriteString(stmt)
		b.WriteString("\n\n")
	}

	for _, u := range snap.Users {
		fmt.Fprintf(&b,
			"INSERT INTO Users (id, full_name, email, password_hash, role, created_at, phone, address)\nVALUES (%d, %s, %s, %s, %s, %s, %s, %s);\n\n",
			u.ID, sqlEscape(u.FullName), sqlEscape(u.Email), sqlEscape(u.PasswordHash),
			sqlEscape(string(u.Role)), sqlEscape(formatTime(u.CreatedAt)),
			sqlEscapePtr(u.Phone), sqlEscapePtr(u.Address))
	}
	for _, u := range snap.Users {
		switch {
		case u.Student != nil:
			fmt.Fprintf(&b,
				"INSERT INTO Students (user_id, grade, subjects, assignments, grades_data)\nVALUES (%d, %s, %s, %s, %s);\n\n",
				u.ID, sqlEscape(u.Student.Class), sqlEscape(jsonString(u.Student.Subjects)),
				sqlEscape(jsonString(u.Student.Assignments)), sqlEscape(jsonString(u.Student.Grades)))
		case u.Teacher != nil:
			fmt.Fprintf(&b,
				"INSERT INTO Teachers (user_id, subjects, classes, workload)\nVALUES (%d, %s, %s, %d);\n\n",
				u.ID, sqlEscape(joinStrings(u.Teacher.Subjects)),
				sqlEscape(joinStrings(u.Teacher.Classes)), u.Teacher.Workload)
		case u.Parent != nil:
			fmt.Fprintf(&b,
				"INSERT INTO Parents (user_id, children_ids, notification_preferences)\nVALUES (%d, %s, %s);\n\n",
				u.ID, sqlEscape(joinInts(u.Parent.Children)),
				sqlEscape(jsonString(u.Parent.NotificationPrefs)))
		}
	}
	for _, a := range snap.Assignments {
		fmt.Fprintf(&b,
			"INSERT INTO Assignments (id, title, description, deadline, subject, teacher_id, class_id, difficulty, submissions, grades)\nVALUES (%d, %s, %s, %s, %s, %d, %s, %s, %s, %s);\n\n",
			a.ID, sqlEscape(a.Title), sqlEscape(a.Description), sqlEscape(formatTime(a.Deadline)),
			sqlEscape(a.Subject), a.TeacherID, sqlEscape(a.ClassID), sqlEscape(string(a.Difficulty)),
			sqlEscape(jsonString(a.Submissions)), sqlEscape(jsonString(a.Grades)))
	}
	for _, g := range snap.Grades {
		fmt.Fprintf(&b,
			"INSERT INTO Grades (id, student_id, subject, value, date, teacher_id, comment)\nVALUES (%d, %d, %s, %d, %s, %d, %s);\n\n",
			g.ID, g.StudentID, sqlEscape(g.Subject), g.Value,
			sqlEscape(formatTime(g.Date)), g.TeacherID, sqlEscape(g.Comment))
	}
	for _, s := range snap.Schedules {
		fmt.Fprintf(&b,
			"INSERT INTO Schedules (id, class_id, day, lessons)\nVALUES (%d, %s, %s, %s);\n\n",
			s.ID, sqlEscape(s.ClassID), sqlEscape(s.Day), sqlEscape(jsonString(s.Lessons)))
	}
	for _, n := range snap.Notifications {
		isRead := 0
		if n.IsRead {
			isRead = 1
		}
		fmt.Fprintf(&b,
			"INSERT INTO Notifications (id, message, recipient_id, created_at, is_read, priority)\nVALUES (%d, %s, %d, %s, %d, %d);\n\n",
			n.ID, sqlEscape(n.Message), n.RecipientID,
			sqlEscape(formatTime(n.CreatedAt)), isRead, n.Priority)
	}

	if err := os.WriteFile(filename, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// sqlEscape quotes a string literal, doubling embedded single quotes.
func sqlEscape(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func sqlEscapePtr(v *string) string {
	if v == nil {
		return "NULL"
	}
	return sqlEscape(*v)
}
