package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/testdb"
	calModel "kampusku_backend/internals/features/academics/calendar/model"
	masterModel "kampusku_backend/internals/features/academics/masterdata/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
)

// monday is 2026-03-02, a Monday (ISO day 1).
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	dept    masterModel.DepartmentModel
	batchA  masterModel.BatchModel
	batchB  masterModel.BatchModel
	faculty masterModel.FacultyModel
	slots   []masterModel.TimeSlotModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: testdb.Open(t)}

	f.dept = masterModel.DepartmentModel{DepartmentCode: "CS", DepartmentName: "Computer Science", DepartmentIsActive: true}
	require.NoError(t, f.db.Create(&f.dept).Error)

	f.batchA = masterModel.BatchModel{BatchDepartmentID: f.dept.DepartmentID, BatchName: "CS-2026-A", BatchAcademicYear: "2025-2026", BatchIsActive: true}
	f.batchB = masterModel.BatchModel{BatchDepartmentID: f.dept.DepartmentID, BatchName: "CS-2026-B", BatchAcademicYear: "2025-2026", BatchIsActive: true}
	require.NoError(t, f.db.Create(&f.batchA).Error)
	require.NoError(t, f.db.Create(&f.batchB).Error)

	f.faculty = masterModel.FacultyModel{FacultyDepartmentID: f.dept.DepartmentID, FacultyName: "Dr. Rao", FacultyIsActive: true}
	require.NoError(t, f.db.Create(&f.faculty).Error)

	labels := []string{"09:30-10:30", "10:30-11:30", "11:30-12:30"}
	for i, label := range labels {
		slot := masterModel.TimeSlotModel{
			TimeSlotLabel:     label,
			TimeSlotStartTime: label[:5],
			TimeSlotEndTime:   label[6:],
			TimeSlotSortOrder: i + 1,
			TimeSlotIsActive:  true,
		}
		require.NoError(t, f.db.Create(&slot).Error)
		f.slots = append(f.slots, slot)
	}
	return f
}

func (f *fixture) addEntry(t *testing.T, batchID uuid.UUID, facultyID *uuid.UUID, slotID uuid.UUID, day int, date *time.Time) ttModel.TimetableEntryModel {
	t.Helper()
	m := ttModel.TimetableEntryModel{
		TimetableEntryBatchID:    batchID,
		TimetableEntryFacultyID:  facultyID,
		TimetableEntryTimeSlotID: slotID,
		TimetableEntryDayOfWeek:  day,
		TimetableEntryDate:       date,
		TimetableEntryType:       ttModel.EntryTypeRegular,
		TimetableEntryIsActive:   true,
	}
	require.NoError(t, f.db.Create(&m).Error)
	return m
}

func conflictTypes(r ConflictReport) []ConflictType {
	out := make([]ConflictType, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		out = append(out, c.Type)
	}
	return out
}

func TestCheckBatchDoubleBooking(t *testing.T) {
	f := newFixture(t)
	svc := NewConflictService(f.db)

	f.addEntry(t, f.batchA.BatchID, nil, f.slots[0].TimeSlotID, 1, nil)

	report, err := svc.Check(context.Background(), CheckConflictsInput{
		BatchID:    f.batchA.BatchID,
		TimeSlotID: f.slots[0].TimeSlotID,
		DayOfWeek:  1,
		EntryType:  ttModel.EntryTypeRegular,
	})
	require.NoError(t, err)

	assert.True(t, report.HasBlocking())
	assert.Contains(t, conflictTypes(report), ConflictBatchDoubleBooking)

	// both later slots on the same day are free, in sort order
	require.Len(t, report.Alternatives, 2)
	assert.Equal(t, f.slots[1].TimeSlotID, report.Alternatives[0].TimeSlotID)
	assert.Equal(t, f.slots[2].TimeSlotID, report.Alternatives[1].TimeSlotID)
	for _, alt := range report.Alternatives {
		assert.True(t, alt.SameDay)
		assert.Equal(t, 1, alt.DayOfWeek)
	}
}

func TestCheckFacultyConflictAcrossBatches(t *testing.T) {
	f := newFixture(t)
	svc := NewConflictService(f.db)

	// faculty teaches batch B in the slot; batch A itself is free there
	f.addEntry(t, f.batchB.BatchID, &f.faculty.FacultyID, f.slots[0].TimeSlotID, 1, nil)

	report, err := svc.Check(context.Background(), CheckConflictsInput{
		BatchID:    f.batchA.BatchID,
		FacultyID:  &f.faculty.FacultyID,
		TimeSlotID: f.slots[0].TimeSlotID,
		DayOfWeek:  1,
		EntryType:  ttModel.EntryTypeRegular,
	})
	require.NoError(t, err)

	require.True(t, report.HasBlocking())
	assert.Equal(t, []ConflictType{ConflictFaculty}, conflictTypes(report))
	assert.NotEmpty(t, report.Alternatives)

	// without that faculty the same placement is clean
	report, err = svc.Check(context.Background(), CheckConflictsInput{
		BatchID:    f.batchA.BatchID,
		TimeSlotID: f.slots[0].TimeSlotID,
		DayOfWeek:  1,
		EntryType:  ttModel.EntryTypeRegular,
	})
	require.NoError(t, err)
	assert.False(t, report.HasBlocking())
	assert.Empty(t, report.Conflicts)
}

func TestCheckExcludesEntryUnderEdit(t *testing.T) {
	f := newFixture(t)
	svc := NewConflictService(f.db)

	entry := f.addEntry(t, f.batchA.BatchID, &f.faculty.FacultyID, f.slots[0].TimeSlotID, 1, nil)

	report, err := svc.Check(context.Background(), CheckConflictsInput{
		BatchID:        f.batchA.BatchID,
		FacultyID:      &f.faculty.FacultyID,
		TimeSlotID:     f.slots[0].TimeSlotID,
		DayOfWeek:      1,
		EntryType:      ttModel.EntryTypeRegular,
		ExcludeEntryID: &entry.TimetableEntryID,
	})
	require.NoError(t, err)
	assert.False(t, report.HasBlocking(), "an entry must never conflict with itself")
	assert.Empty(t, report.Conflicts)
}

func TestCheckInactiveEntriesIgnored(t *testing.T) {
	f := newFixture(t)
	svc := NewConflictService(f.db)

	entry := f.addEntry(t, f.batchA.BatchID, nil, f.slots[0].TimeSlotID, 1, nil)
	require.NoError(t, f.db.Model(&entry).Update("timetable_entry_is_active", false).Error)

	report, err := svc.Check(context.Background(), CheckConflictsInput{
		BatchID:    f.batchA.BatchID,
		TimeSlotID: f.slots[0].TimeSlotID,
		DayOfWeek:  1,
		EntryType:  ttModel.EntryTypeRegular,
	})
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
}

func TestCheckHolidayIsWarningOnly(t *testing.T) {
	f := newFixture(t)
	svc := NewConflictService(f.db)

	require.NoError(t, f.db.Create(&calModel.HolidayModel{
		HolidayDate:     monday,
		HolidayName:     "Founders Day",
		HolidayIsActive: true,
	}).Error)

	date := monday
	report, err := svc.Check(context.Background(), CheckConflictsInput{
		BatchID:    f.batchA.BatchID,
		TimeSlotID: f.slots[0].TimeSlotID,
		DayOfWeek:  1,
		Date:       &date,
		EntryType:  ttModel.EntryTypeRegular,
	})
	require.NoError(t, err)

	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, ConflictHoliday, report.Conflicts[0].Type)
	assert.Equal(t, SeverityWarning, report.Conflicts[0].Severity)
	assert.False(t, report.HasBlocking())
	assert.Empty(t, report.Alternatives, "warnings alone do not trigger the alternative search")
}

func TestCheckExamPeriodBlocksRegularOnly(t *testing.T) {
	f := newFixture(t)
	svc := NewConflictService(f.db)

	cal := calModel.AcademicCalendarModel{
		AcademicCalendarDepartmentID:  f.dept.DepartmentID,
		AcademicCalendarName:          "Even Semester 2026",
		AcademicCalendarSemesterStart: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		AcademicCalendarSemesterEnd:   time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC),
		AcademicCalendarIsActive:      true,
	}
	require.NoError(t, f.db.Create(&cal).Error)
	require.NoError(t, f.db.Create(&calModel.ExamPeriodModel{
		ExamPeriodCalendarID:          cal.AcademicCalendarID,
		ExamPeriodName:                "Midterms",
		ExamPeriodStartDate:           monday,
		ExamPeriodEndDate:             monday.AddDate(0, 0, 8),
		ExamPeriodBlockRegularClasses: true,
	}).Error)

	date := monday.AddDate(0, 0, 2) // Wednesday inside the period
	report, err := svc.Check(context.Background(), CheckConflictsInput{
		BatchID:    f.batchA.BatchID,
		TimeSlotID: f.slots[0].TimeSlotID,
		DayOfWeek:  3,
		Date:       &date,
		EntryType:  ttModel.EntryTypeRegular,
	})
	require.NoError(t, err)
	require.True(t, report.HasBlocking())
	assert.Equal(t, []ConflictType{ConflictExamPeriod}, conflictTypes(report))

	// a makeup class during exams is allowed
	report, err = svc.Check(context.Background(), CheckConflictsInput{
		BatchID:    f.batchA.BatchID,
		TimeSlotID: f.slots[0].TimeSlotID,
		DayOfWeek:  3,
		Date:       &date,
		EntryType:  ttModel.EntryTypeMakeup,
	})
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
}

func TestCheckDayShiftAlternativesWhenDayFull(t *testing.T) {
	f := newFixture(t)
	svc := NewConflictService(f.db)

	// batch A occupies every slot on Monday
	for _, slot := range f.slots {
		f.addEntry(t, f.batchA.BatchID, nil, slot.TimeSlotID, 1, nil)
	}

	report, err := svc.Check(context.Background(), CheckConflictsInput{
		BatchID:    f.batchA.BatchID,
		TimeSlotID: f.slots[0].TimeSlotID,
		DayOfWeek:  1,
		EntryType:  ttModel.EntryTypeRegular,
	})
	require.NoError(t, err)
	require.True(t, report.HasBlocking())

	// nothing free the same day, fall back to the same slot on other days
	require.Len(t, report.Alternatives, 3)
	for _, alt := range report.Alternatives {
		assert.False(t, alt.SameDay)
		assert.Equal(t, f.slots[0].TimeSlotID, alt.TimeSlotID)
		assert.NotEqual(t, 1, alt.DayOfWeek)
	}
	assert.Equal(t, 2, report.Alternatives[0].DayOfWeek)
}
