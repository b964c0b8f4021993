package database

import (
	"gorm.io/gorm"

	attendanceModel "kampusku_backend/internals/features/attendance/sessions/model"
	calendarModel "kampusku_backend/internals/features/academics/calendar/model"
	masterModel "kampusku_backend/internals/features/academics/masterdata/model"
	timetableModel "kampusku_backend/internals/features/academics/timetable/model"
)

// Backstop indexes are raw DDL: gorm tags cannot express partial unique
// indexes, and the double-booking guarantee must hold even if two writers
// race past the in-transaction conflict check.
var backstopIndexes = []string{
	// one live active entry per batch cell; weekly rows (NULL date) collapse
	// onto a sentinel so they collide with each other but not with pinned dates
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_timetable_entries_batch_cell
		ON timetable_entries (timetable_entry_batch_id, timetable_entry_time_slot_id, timetable_entry_day_of_week, COALESCE(timetable_entry_date, '0001-01-01'))
		WHERE timetable_entry_is_active AND timetable_entry_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_timetable_entries_faculty_cell
		ON timetable_entries (timetable_entry_faculty_id, timetable_entry_time_slot_id, timetable_entry_day_of_week, COALESCE(timetable_entry_date, '0001-01-01'))
		WHERE timetable_entry_is_active AND timetable_entry_deleted_at IS NULL AND timetable_entry_faculty_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_sessions_key
		ON attendance_sessions (attendance_session_batch_id, attendance_session_subject_id, attendance_session_date)
		WHERE attendance_session_deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_records_pair
		ON attendance_records (attendance_record_session_id, attendance_record_student_id)
		WHERE attendance_record_deleted_at IS NULL`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&masterModel.DepartmentModel{},
		&masterModel.BatchModel{},
		&masterModel.SubjectModel{},
		&masterModel.FacultyModel{},
		&masterModel.StudentModel{},
		&masterModel.TimeSlotModel{},
		&calendarModel.HolidayModel{},
		&calendarModel.AcademicCalendarModel{},
		&calendarModel.ExamPeriodModel{},
		&timetableModel.TimetableEntryModel{},
		&attendanceModel.AttendanceSessionModel{},
		&attendanceModel.AttendanceRecordModel{},
	); err != nil {
		return err
	}

	for _, ddl := range backstopIndexes {
		if err := db.Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}
