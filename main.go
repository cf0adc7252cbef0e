package main

import (
	"log"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"eduplatform/config"
	"eduplatform/export"
	"eduplatform/models"
	"eduplatform/platform"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	p := platform.New()
	p.SetLogger(logger)

	if cfg.AutoExport {
		exporter, err := export.NewFileExporter(cfg.AutoExportDir)
		if err != nil {
			logger.Fatal("failed to set up auto export", zap.Error(err))
		}
		p.SetExporter(exporter)
	}

	admin, teacher, student1, student2, parent := seed(p, logger)

	// Authentication round-trip, including a deliberate failure.
	if _, err := p.Authenticate(admin.Email, "adminpass"); err != nil {
		logger.Fatal("admin authentication failed", zap.Error(err))
	}
	if _, err := p.Authenticate("fake@edu.com", "wrongpass"); err != nil {
		logger.Info("rejected bad credentials", zap.Error(err))
	}

	// Admin actions.
	if _, err := p.CreateStudent("Cristiano Ronaldo", "cristiano@edu.com", "evepass", "9-B"); err != nil {
		logger.Error("failed to add student", zap.Error(err))
	}
	phone := "998-94-123-45-67"
	address := "123 Tashkent Rd"
	if err := p.UpdateProfile(teacher.ID, platform.ProfileUpdate{Phone: &phone, Address: &address}); err != nil {
		logger.Error("failed to update profile", zap.Error(err))
	}
	report := p.GenerateReport()
	logger.Info("system report",
		zap.Int("users", report.TotalUsers),
		zap.Int("students", report.Students),
		zap.Int("assignments", report.TotalAssignments),
		zap.Int("grades", report.TotalGrades))

	// Teacher creates assignments; the class fan-out notifies students
	// and their linked parents.
	deadline := time.Now().Add(7 * 24 * time.Hour)
	assignment, err := p.CreateAssignment(teacher.ID,
		"Algebra Homework 1", "Solve problems 1-5 from Chapter 3.",
		deadline, "Math", "10-A", models.DifficultyMedium)
	if err != nil {
		logger.Fatal("failed to create assignment", zap.Error(err))
	}
	if _, err := p.CreateAssignment(teacher.ID,
		"Informatics Lab Report", "Write a report on the group project.",
		time.Now().Add(14*24*time.Hour), "Informatics", "11-B", models.DifficultyHard); err != nil {
		logger.Error("failed to create assignment", zap.Error(err))
	}

	// Student submits, teacher grades. A value below 3 would also alert
	// the parents.
	if _, err := p.SubmitAssignment(student1.ID, assignment.ID, "My detailed solutions for Algebra HW1."); err != nil {
		logger.Error("submission failed", zap.Error(err))
	}
	if _, err := p.GradeAssignment(teacher.ID, assignment.ID, student1.ID, 4, "Good effort, check problem 3."); err != nil {
		logger.Error("grading failed", zap.Error(err))
	}

	if avg, ok, err := p.AverageGrade(student1.ID, ""); err == nil && ok {
		logger.Info("student average", zap.Int("student", student1.ID), zap.Float64("average", avg))
	}
	if stats, ok, err := p.StudentSubjectStats(student1.ID, "Math"); err == nil && ok {
		logger.Info("math stats",
			zap.Int("min", stats.Min), zap.Int("max", stats.Max), zap.Float64("average", stats.Average))
	}

	// Notification management.
	if _, err := p.AddNotification(student1.ID, "Don't forget your upcoming Informatics test!", 1); err != nil {
		logger.Error("notification failed", zap.Error(err))
	}
	if notifs, err := p.Notifications(student1.ID, platform.NotificationFilter{}); err == nil && len(notifs) > 0 {
		_ = p.MarkNotificationRead(student1.ID, notifs[0].ID)
	}

	// Schedule management, including a deliberate double-booking.
	sched10A, _ := p.CreateSchedule("10-A", "Monday")
	sched11B, _ := p.CreateSchedule("11-B", "Monday")
	mustAddLesson(p, logger, sched10A.ID, "09:00", "Math", teacher.ID)
	mustAddLesson(p, logger, sched10A.ID, "10:00", "Chemistry", teacher.ID)
	mustAddLesson(p, logger, sched10A.ID, "11:00", "History", 999)
	if err := p.AddLesson(sched11B.ID, "09:00", "Informatics", teacher.ID); err != nil {
		logger.Info("double booking rejected", zap.Error(err))
	}
	mustAddLesson(p, logger, sched11B.ID, "10:00", "Informatics", teacher.ID)

	// Parent actions.
	if grades, err := p.ChildGrades(parent.ID, student1.ID); err == nil {
		logger.Info("child grades", zap.Int("parent", parent.ID), zap.Any("grades", grades))
	}
	if _, err := p.ChildGrades(parent.ID, student2.ID); err != nil {
		logger.Info("unlinked child rejected", zap.Error(err))
	}

	// Manual export of the final state.
	snap := p.Snapshot()
	exportManually(p, snap, cfg.ExportDir, logger)

	logger.Info("demo finished")
}

func seed(p *platform.Platform, logger *zap.Logger) (admin, teacher, student1, student2, parent *models.User) {
	var err error
	if admin, err = p.CreateAdmin("Super Admin", "admin@edu.com", "adminpass"); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	if teacher, err = p.CreateTeacher("Husanboy Mansuraliyev", "husanboy@edu.com", "teachpass",
		[]string{"Math", "Informatics"}, []string{"10-A", "11-B"}); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	if student1, err = p.CreateStudent("Mardon Hazratov", "mardon@edu.com", "studentpass", "10-A"); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	if student2, err = p.CreateStudent("Shahriyor Yuldashev", "shahriyor@edu.com", "studentpass", "10-A"); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	if parent, err = p.CreateParent("David Johnson", "david@edu.com", "parentpass"); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	_ = p.SetSubjectTeacher(student1.ID, "Math", teacher.ID)
	_ = p.SetSubjectTeacher(student1.ID, "Informatics", teacher.ID)
	_ = p.SetSubjectTeacher(student2.ID, "Math", teacher.ID)
	if err := p.AddChild(parent.ID, student1.ID); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	return admin, teacher, student1, student2, parent
}

func mustAddLesson(p *platform.Platform, logger *zap.Logger, scheduleID int, slot, subject string, teacherID int) {
	if err := p.AddLesson(scheduleID, slot, subject, teacherID); err != nil {
		logger.Error("failed to add lesson",
			zap.Int("schedule", scheduleID), zap.String("slot", slot), zap.Error(err))
	}
}

func exportManually(p *platform.Platform, snap *platform.Snapshot, dir string, logger *zap.Logger) {
	exporter, err := export.NewFileExporter(dir)
	if err != nil {
		logger.Error("export setup failed", zap.Error(err))
		return
	}
	xlsxPath := filepath.Join(exporter.Dir, "eduplatform_data.xlsx")
	if err := export.WriteXLSX(snap, xlsxPath); err != nil {
		logger.Error("xlsx export failed", zap.Error(err))
		return
	}
	p.RecordExport(platform.ExportLogEntry{
		Timestamp: time.Now(), Action: "Manual XLSX Export", Filename: xlsxPath,
	})

	csvPrefix := filepath.Join(exporter.Dir, "eduplatform_data_")
	if err := export.WriteCSV(snap, csvPrefix); err != nil {
		logger.Error("csv export failed", zap.Error(err))
		return
	}
	p.RecordExport(platform.ExportLogEntry{
		Timestamp: time.Now(), Action: "Manual CSV Export", Filename: csvPrefix,
	})

	sqlPath := filepath.Join(exporter.Dir, "eduplatform_data.sql")
	if err := export.WriteSQL(snap, sqlPath); err != nil {
		logger.Error("sql export failed", zap.Error(err))
		return
	}
	p.RecordExport(platform.ExportLogEntry{
		Timestamp: time.Now(), Action: "Manual SQL Export", Filename: sqlPath,
	})
	logger.Info("manual export complete", zap.String("dir", dir))
}
