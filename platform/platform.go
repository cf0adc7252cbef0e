package platform

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"eduplatform/models"
	"eduplatform/utils"
)

// Platform is the registry and consistency engine. It owns every
// canonical record and every secondary index; all mutation goes through
// its methods so the two can never diverge. A single RWMutex guards the
// whole registry: writers take the write lock for the full
// check-then-mutate span, readers may race only against other readers.
type Platform struct {
	mu  sync.RWMutex
	ids *IDAllocator
	log *zap.Logger

	users        map[int]*models.User
	usersByEmail map[string]*models.User

	// Role indexes hold user ids in insertion order. Fan-out order
	// across parents depends on this.
	adminIDs   []int
	teacherIDs []int
	studentIDs []int
	parentIDs  []int

	// studentsByClass buckets student ids by class-group, in
	// insertion order.
	studentsByClass map[string][]int

	assignments   map[int]*models.Assignment
	grades        map[int]*models.Grade
	schedules     map[int]*models.Schedule
	notifications map[int]*models.Notification

	exporter  Exporter
	exportLog []ExportLogEntry
}

// New returns an empty platform with its own id allocator.
func New() *Platform {
	return &Platform{
		ids:             NewIDAllocator(),
		log:             zap.NewNop(),
		users:           make(map[int]*models.User),
		usersByEmail:    make(map[string]*models.User),
		studentsByClass: make(map[string][]int),
		assignments:     make(map[int]*models.Assignment),
		grades:          make(map[int]*models.Grade),
		schedules:       make(map[int]*models.Schedule),
		notifications:   make(map[int]*models.Notification),
	}
}

// SetLogger replaces the platform's logger. New platforms log nowhere.
func (p *Platform) SetLogger(log *zap.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = log
}

// SetExporter installs the sink that receives an automatic export after
// assignment and grade inserts. A nil exporter disables the hook.
func (p *Platform) SetExporter(e Exporter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exporter = e
}

// CreateAdmin registers a new admin user.
func (p *Platform) CreateAdmin(fullName, email, password string) (*models.User, error) {
	return p.createUser(fullName, email, password, models.RoleAdmin, func(u *models.User) {
		u.Admin = &models.AdminProfile{
			Permissions: []string{"manage_users", "generate_reports", "manage_system_settings"},
		}
	})
}

// CreateTeacher registers a new teacher user.
func (p *Platform) CreateTeacher(fullName, email, password string, subjects, classes []string) (*models.User, error) {
	return p.createUser(fullName, email, password, models.RoleTeacher, func(u *models.User) {
		u.Teacher = &models.TeacherProfile{
			Subjects:         subjects,
			Classes:          classes,
			AssignmentsGiven: make(map[int]*models.Assignment),
		}
	})
}

// CreateStudent registers a new student user in the given class-group.
func (p *Platform) CreateStudent(fullName, email, password, class string) (*models.User, error) {
	return p.createUser(fullName, email, password, models.RoleStudent, func(u *models.User) {
		u.Student = &models.StudentProfile{
			Class:       class,
			Subjects:    make(map[string]int),
			Assignments: make(map[int]string),
			Grades:      make(map[string][]int),
		}
	})
}

// CreateParent registers a new parent user with default alert
// preferences enabled.
func (p *Platform) CreateParent(fullName, email, password string) (*models.User, error) {
	return p.createUser(fullName, email, password, models.RoleParent, func(u *models.User) {
		u.Parent = &models.ParentProfile{
			NotificationPrefs: map[string]bool{
				"low_grade_alert":      true,
				"new_assignment_alert": true,
			},
		}
	})
}

// createUser hashes the password outside the lock, then checks email
// uniqueness and inserts the user and all of its index entries as one
// atomic step. The id is minted only after the uniqueness check passes.
func (p *Platform) createUser(fullName, email, password string, role models.Role, fill func(*models.User)) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.usersByEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	u := &models.User{
		ID:           p.ids.Next(KindUser),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	fill(u)

	p.users[u.ID] = u
	p.usersByEmail[u.Email] = u
	switch role {
	case models.RoleAdmin:
		p.adminIDs = append(p.adminIDs, u.ID)
	case models.RoleTeacher:
		p.teacherIDs = append(p.teacherIDs, u.ID)
	case models.RoleStudent:
		p.studentIDs = append(p.studentIDs, u.ID)
		p.studentsByClass[u.Student.Class] = append(p.studentsByClass[u.Student.Class], u.ID)
	case models.RoleParent:
		p.parentIDs = append(p.parentIDs, u.ID)
	}

	p.log.Info("user registered",
		zap.Int("id", u.ID),
		zap.String("role", string(role)),
		zap.String("email", email))
	return u, nil
}

// RemoveUser removes a user and every index entry pointing at it.
// It does not touch assignments, grades or notifications that mention
// the removed id; historical records keep their references.
func (p *Platform) RemoveUser(userID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removeUserLocked(userID)
}

func (p *Platform) removeUserLocked(userID int) error {
	u, ok := p.users[userID]
	if !ok {
		return ErrNotFound
	}

	delete(p.users, userID)
	delete(p.usersByEmail, u.Email)
	switch u.Role {
	case models.RoleAdmin:
		p.adminIDs = removeID(p.adminIDs, userID)
	case models.RoleTeacher:
		p.teacherIDs = removeID(p.teacherIDs, userID)
	case models.RoleStudent:
		p.studentIDs = removeID(p.studentIDs, userID)
		p.studentsByClass[u.Student.Class] = removeID(p.studentsByClass[u.Student.Class], userID)
	case models.RoleParent:
		p.parentIDs = removeID(p.parentIDs, userID)
	}

	p.log.Info("user removed", zap.Int("id", userID), zap.String("role", string(u.Role)))
	return nil
}

func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// UserByID returns the user with the given id, if any.
func (p *Platform) UserByID(userID int) (*models.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.users[userID]
	return u, ok
}

// UserByEmail returns the user with the given email, if any.
func (p *Platform) UserByEmail(email string) (*models.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.usersByEmail[email]
	return u, ok
}

// Authenticate verifies the credentials and returns the matching user.
// An unknown email and a wrong password both return
// ErrAuthenticationFailed; callers cannot tell the cases apart.
func (p *Platform) Authenticate(email, password string) (*models.User, error) {
	p.mu.RLock()
	u, ok := p.usersByEmail[email]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrAuthenticationFailed
	}
	if err := utils.ComparePassword(u.PasswordHash, password); err != nil {
		return nil, ErrAuthenticationFailed
	}
	p.log.Info("authentication successful",
		zap.Int("id", u.ID),
		zap.String("role", string(u.Role)))
	return u, nil
}

// ProfileUpdate carries the updatable profile fields. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	FullName *string
	Email    *string
	Phone    *string
	Address  *string
}

// UpdateProfile applies the update to the user. An email change is
// checked against the email index before anything is modified.
func (p *Platform) UpdateProfile(userID int, upd ProfileUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	u, ok := p.users[userID]
	if !ok {
		return ErrNotFound
	}
	if upd.Email != nil && *upd.Email != u.Email {
		if _, exists := p.usersByEmail[*upd.Email]; exists {
			return ErrDuplicateEmail
		}
		delete(p.usersByEmail, u.Email)
		u.Email = *upd.Email
		p.usersByEmail[u.Email] = u
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Phone != nil {
		u.Phone = upd.Phone
	}
	if upd.Address != nil {
		u.Address = upd.Address
	}
	p.log.Info("profile updated", zap.Int("id", userID))
	return nil
}

// AssignmentByID returns the assignment with the given id, if any.
func (p *Platform) AssignmentByID(assignmentID int) (*models.Assignment, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	a, ok := p.assignments[assignmentID]
	return a, ok
}

// GradeByID returns the grade record with the given id, if any.
func (p *Platform) GradeByID(gradeID int) (*models.Grade, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.grades[gradeID]
	return g, ok
}

// ScheduleByID returns the schedule with the given id, if any.
func (p *Platform) ScheduleByID(scheduleID int) (*models.Schedule, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.schedules[scheduleID]
	return s, ok
}

// NotificationByID returns the notification with the given id, if any.
func (p *Platform) NotificationByID(notificationID int) (*models.Notification, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	n, ok := p.notifications[notificationID]
	return n, ok
}

// StudentsInClass returns the ids of the students in the class-group,
// in registration order.
func (p *Platform) StudentsInClass(classID string) []int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	bucket := p.studentsByClass[classID]
	out := make([]int, len(bucket))
	copy(out, bucket)
	return out
}
