package platform

import (
	"sort"

	"go.uber.org/zap"

	"eduplatform/models"
)

// CreateSchedule registers an empty timetable for one class-group on
// one day.
func (p *Platform) CreateSchedule(classID, day string) (*models.Schedule, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := &models.Schedule{
		ID:      p.ids.Next(KindSchedule),
		ClassID: classID,
		Day:     day,
		Lessons: make(map[string]models.Lesson),
	}
	p.schedules[s.ID] = s
	p.log.Info("schedule created",
		zap.Int("id", s.ID),
		zap.String("class", classID),
		zap.String("day", day))
	return s, nil
}

// AddLesson inserts a lesson into the schedule's time slot. The slot
// must be free in the target schedule, and the teacher must not already
// be booked at the same slot on the same day in any other schedule,
// regardless of class-group. Nothing is inserted on rejection.
func (p *Platform) AddLesson(scheduleID int, timeSlot, subject string, teacherID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	target, ok := p.schedules[scheduleID]
	if !ok {
		return ErrNotFound
	}
	if _, occupied := target.Lessons[timeSlot]; occupied {
		return ErrSlotOccupied
	}
	// Linear scan over same-day schedules; schedule mutation volume is
	// low enough that a (day, slot) index is not worth maintaining.
	for _, other := range p.schedules {
		if other.ID == scheduleID || other.Day != target.Day {
			continue
		}
		if lesson, ok := other.Lessons[timeSlot]; ok && lesson.TeacherID == teacherID {
			return ErrTeacherDoubleBooked
		}
	}

	target.Lessons[timeSlot] = models.Lesson{Subject: subject, TeacherID: teacherID}
	p.log.Info("lesson added",
		zap.Int("schedule", scheduleID),
		zap.String("slot", timeSlot),
		zap.String("subject", subject),
		zap.Int("teacher", teacherID))
	return nil
}

// RemoveLesson deletes the lesson at the time slot. Removal has no
// cascading effects.
func (p *Platform) RemoveLesson(scheduleID int, timeSlot string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.schedules[scheduleID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := s.Lessons[timeSlot]; !ok {
		return ErrNoLessonAtSlot
	}
	delete(s.Lessons, timeSlot)
	p.log.Info("lesson removed", zap.Int("schedule", scheduleID), zap.String("slot", timeSlot))
	return nil
}

// ScheduleSlot is one time slot of a schedule listing.
type ScheduleSlot struct {
	Time   string
	Lesson models.Lesson
}

// ScheduleLessons returns the schedule's lessons sorted by time slot.
func (p *Platform) ScheduleLessons(scheduleID int) ([]ScheduleSlot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.schedules[scheduleID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]ScheduleSlot, 0, len(s.Lessons))
	for slot, lesson := range s.Lessons {
		out = append(out, ScheduleSlot{Time: slot, Lesson: lesson})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}
