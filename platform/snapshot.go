package platform

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"eduplatform/models"
)

// Snapshot is a frozen, consistent copy of every entity collection,
// taken under the registry lock. Writers can format it at leisure
// without holding up or observing further mutation. The notification
// collection is the platform-owned set, so it needs no deduplication
// against per-user views.
type Snapshot struct {
	TakenAt       time.Time
	Users         []models.User
	Assignments   []models.Assignment
	Grades        []models.Grade
	Schedules     []models.Schedule
	Notifications []models.Notification
}

// Exporter receives a snapshot after assignment and grade inserts when
// installed through SetExporter. It must validate the snapshot before
// writing and abort cleanly on failure; the registry itself is never
// affected by an export.
type Exporter interface {
	Export(snap *Snapshot) error
}

// ExportLogEntry records one completed export.
type ExportLogEntry struct {
	Timestamp time.Time
	Action    string
	Formats   []string
	Filename  string
}

// Snapshot copies all five collections, each sorted by id.
func (p *Platform) Snapshot() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := &Snapshot{TakenAt: time.Now()}

	snap.Users = make([]models.User, 0, len(p.users))
	for _, u := range p.users {
		snap.Users = append(snap.Users, copyUser(u))
	}
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i].ID < snap.Users[j].ID })

	snap.Assignments = make([]models.Assignment, 0, len(p.assignments))
	for _, a := range p.assignments {
		snap.Assignments = append(snap.Assignments, copyAssignment(a))
	}
	sort.Slice(snap.Assignments, func(i, j int) bool { return snap.Assignments[i].ID < snap.Assignments[j].ID })

	snap.Grades = make([]models.Grade, 0, len(p.grades))
	for _, g := range p.grades {
		snap.Grades = append(snap.Grades, *g)
	}
	sort.Slice(snap.Grades, func(i, j int) bool { return snap.Grades[i].ID < snap.Grades[j].ID })

	snap.Schedules = make([]models.Schedule, 0, len(p.schedules))
	for _, s := range p.schedules {
		cp := *s
		cp.Lessons = make(map[string]models.Lesson, len(s.Lessons))
		for slot, lesson := range s.Lessons {
			cp.Lessons[slot] = lesson
		}
		snap.Schedules = append(snap.Schedules, cp)
	}
	sort.Slice(snap.Schedules, func(i, j int) bool { return snap.Schedules[i].ID < snap.Schedules[j].ID })

	snap.Notifications = make([]models.Notification, 0, len(p.notifications))
	for _, n := range p.notifications {
		snap.Notifications = append(snap.Notifications, *n)
	}
	sort.Slice(snap.Notifications, func(i, j int) bool { return snap.Notifications[i].ID < snap.Notifications[j].ID })

	return snap
}

func copyUser(u *models.User) models.User {
	cp := *u
	cp.Notifications = append([]int(nil), u.Notifications...)
	switch {
	case u.Admin != nil:
		a := *u.Admin
		a.Permissions = append([]string(nil), u.Admin.Permissions...)
		cp.Admin = &a
	case u.Teacher != nil:
		t := *u.Teacher
		t.Subjects = append([]string(nil), u.Teacher.Subjects...)
		t.Classes = append([]string(nil), u.Teacher.Classes...)
		// Assignments are carried in the snapshot's own collection.
		t.AssignmentsGiven = nil
		cp.Teacher = &t
	case u.Student != nil:
		s := *u.Student
		s.Subjects = make(map[string]int, len(u.Student.Subjects))
		for k, v := range u.Student.Subjects {
			s.Subjects[k] = v
		}
		s.Assignments = make(map[int]string, len(u.Student.Assignments))
		for k, v := range u.Student.Assignments {
			s.Assignments[k] = v
		}
		s.Grades = make(map[string][]int, len(u.Student.Grades))
		for k, v := range u.Student.Grades {
			s.Grades[k] = append([]int(nil), v...)
		}
		cp.Student = &s
	case u.Parent != nil:
		par := *u.Parent
		par.Children = append([]int(nil), u.Parent.Children...)
		par.NotificationPrefs = make(map[string]bool, len(u.Parent.NotificationPrefs))
		for k, v := range u.Parent.NotificationPrefs {
			par.NotificationPrefs[k] = v
		}
		cp.Parent = &par
	}
	return cp
}

func copyAssignment(a *models.Assignment) models.Assignment {
	cp := *a
	cp.Submissions = make(map[int]string, len(a.Submissions))
	for k, v := range a.Submissions {
		cp.Submissions[k] = v
	}
	cp.Grades = make(map[int]int, len(a.Grades))
	for k, v := range a.Grades {
		cp.Grades[k] = v
	}
	return cp
}

// autoExport ships a fresh snapshot to the configured exporter. It runs
// after the triggering mutation has released the write lock, so the
// exporter can take its own consistent snapshot view.
func (p *Platform) autoExport() {
	p.mu.RLock()
	exporter := p.exporter
	p.mu.RUnlock()
	if exporter == nil {
		return
	}

	snap := p.Snapshot()
	if err := exporter.Export(snap); err != nil {
		p.log.Warn("automatic export failed", zap.Error(err))
		return
	}
	p.RecordExport(ExportLogEntry{
		Timestamp: time.Now(),
		Action:    "Auto Export",
		Formats:   []string{"xlsx", "csv", "sql"},
	})
}

// RecordExport appends an entry to the export log.
func (p *Platform) RecordExport(entry ExportLogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exportLog = append(p.exportLog, entry)
}

// ExportLog returns a copy of the export log.
func (p *Platform) ExportLog() []ExportLogEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]ExportLogEntry, len(p.exportLog))
	copy(out, p.exportLog)
	return out
}
