package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/testdb"
	masterModel "kampusku_backend/internals/features/academics/masterdata/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	attModel "kampusku_backend/internals/features/attendance/sessions/model"
)

// wednesday is 2026-03-04, ISO day 3.
var wednesday = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

type attFixture struct {
	db       *gorm.DB
	batch    masterModel.BatchModel
	subject  masterModel.SubjectModel
	students []masterModel.StudentModel
	slots    []masterModel.TimeSlotModel
}

// newAttFixture seeds a batch with three students and a subject scheduled
// in the first two slots every Wednesday.
func newAttFixture(t *testing.T) *attFixture {
	t.Helper()
	f := &attFixture{db: testdb.Open(t)}

	dept := masterModel.DepartmentModel{DepartmentCode: "EE", DepartmentName: "Electrical", DepartmentIsActive: true}
	require.NoError(t, f.db.Create(&dept).Error)

	f.batch = masterModel.BatchModel{BatchDepartmentID: dept.DepartmentID, BatchName: "EE-2026", BatchAcademicYear: "2025-2026", BatchIsActive: true}
	require.NoError(t, f.db.Create(&f.batch).Error)

	f.subject = masterModel.SubjectModel{SubjectBatchID: f.batch.BatchID, SubjectCode: "EE-201", SubjectName: "Circuits", SubjectIsActive: true}
	require.NoError(t, f.db.Create(&f.subject).Error)

	for i, name := range []string{"Asha", "Bismo", "Citra"} {
		st := masterModel.StudentModel{
			StudentBatchID:  f.batch.BatchID,
			StudentRollNo:   "EE-" + string(rune('0'+i+1)),
			StudentName:     name,
			StudentIsActive: true,
		}
		require.NoError(t, f.db.Create(&st).Error)
		f.students = append(f.students, st)
	}

	for i, label := range []string{"09:30-10:30", "10:30-11:30", "11:30-12:30"} {
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

	for _, slot := range f.slots[:2] {
		entry := ttModel.TimetableEntryModel{
			TimetableEntryBatchID:    f.batch.BatchID,
			TimetableEntrySubjectID:  &f.subject.SubjectID,
			TimetableEntryTimeSlotID: slot.TimeSlotID,
			TimetableEntryDayOfWeek:  3,
			TimetableEntryType:       ttModel.EntryTypeRegular,
			TimetableEntryIsActive:   true,
		}
		require.NoError(t, f.db.Create(&entry).Error)
	}
	return f
}

func (f *attFixture) marksAll(status attModel.AttendanceStatus) []StudentMark {
	out := make([]StudentMark, 0, len(f.students))
	for _, st := range f.students {
		out = append(out, StudentMark{StudentID: st.StudentID, Status: status})
	}
	return out
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %v", err)
	return fe.Code
}

func TestMarkBulkSlotScope(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	res, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:    f.batch.BatchID,
		SubjectID:  f.subject.SubjectID,
		Date:       wednesday,
		Scope:      ScopeSlot,
		TimeSlotID: &f.slots[0].TimeSlotID,
		Marks:      f.marksAll(attModel.AttendancePresent),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 3, res.Succeeded)
	assert.Equal(t, 0, res.Failed)

	// slot marks do not complete the session
	var sess attModel.AttendanceSessionModel
	require.NoError(t, f.db.First(&sess, "attendance_session_id = ?", res.SessionID).Error)
	assert.False(t, sess.AttendanceSessionIsCompleted)

	view, err := svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	require.Len(t, view.Students, 3)
	for _, sv := range view.Students {
		assert.Equal(t, attModel.AttendancePresent, sv.SlotStatuses[f.slots[0].TimeSlotID.String()])
		assert.Equal(t, attModel.AttendancePresent, sv.FullDayStatus)
	}
}

func TestMarkBulkFullDayCoversAllScheduledSlots(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	res, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:   f.batch.BatchID,
		SubjectID: f.subject.SubjectID,
		Date:      wednesday,
		Scope:     ScopeFullDay,
		Marks:     f.marksAll(attModel.AttendancePresent),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Succeeded)

	var sess attModel.AttendanceSessionModel
	require.NoError(t, f.db.First(&sess, "attendance_session_id = ?", res.SessionID).Error)
	assert.True(t, sess.AttendanceSessionIsCompleted)

	view, err := svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	for _, sv := range view.Students {
		// the subject meets in two slots on Wednesday, both get the status
		assert.Len(t, sv.SlotStatuses, 2)
		assert.Equal(t, attModel.AttendancePresent, sv.FullDayStatus)
	}
}

func TestMarkBulkStatusFansOutToWholeBatch(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	// no explicit marks: the single status covers every active student
	res, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:   f.batch.BatchID,
		SubjectID: f.subject.SubjectID,
		Date:      wednesday,
		Scope:     ScopeFullDay,
		Status:    attModel.AttendancePresent,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 3, res.Succeeded)

	view, err := svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	for _, sv := range view.Students {
		assert.Equal(t, attModel.AttendancePresent, sv.FullDayStatus)
	}
}

func TestMarkBulkUnscheduledSlotRejected(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	_, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:    f.batch.BatchID,
		SubjectID:  f.subject.SubjectID,
		Date:       wednesday,
		Scope:      ScopeSlot,
		TimeSlotID: &f.slots[2].TimeSlotID, // subject never meets in slot 3
		Marks:      f.marksAll(attModel.AttendancePresent),
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestMarkBulkSubjectBatchMismatch(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	other := masterModel.BatchModel{BatchDepartmentID: f.batch.BatchDepartmentID, BatchName: "EE-2027", BatchAcademicYear: "2026-2027", BatchIsActive: true}
	require.NoError(t, f.db.Create(&other).Error)

	_, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:   other.BatchID,
		SubjectID: f.subject.SubjectID, // belongs to f.batch, not other
		Date:      wednesday,
		Scope:     ScopeFullDay,
		Marks:     f.marksAll(attModel.AttendancePresent),
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestMarkBulkUnknownStudentFailsRowNotRequest(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	marks := f.marksAll(attModel.AttendancePresent)
	stray := uuid.New()
	marks = append(marks, StudentMark{StudentID: stray, Status: attModel.AttendancePresent})

	res, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:    f.batch.BatchID,
		SubjectID:  f.subject.SubjectID,
		Date:       wednesday,
		Scope:      ScopeSlot,
		TimeSlotID: &f.slots[0].TimeSlotID,
		Marks:      marks,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Processed)
	assert.Equal(t, 3, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, stray, res.Failures[0].StudentID)
}

func TestMarkBulkStoreFailureDoesNotRollBackSiblings(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	// reject writes for one student at the store level
	blocked := f.students[2].StudentID
	require.NoError(t, f.db.Exec(fmt.Sprintf(`
		CREATE TRIGGER reject_one_student BEFORE INSERT ON attendance_records
		WHEN NEW.attendance_record_student_id = '%s'
		BEGIN
			SELECT RAISE(ABORT, 'record write rejected');
		END`, blocked)).Error)

	res, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:    f.batch.BatchID,
		SubjectID:  f.subject.SubjectID,
		Date:       wednesday,
		Scope:      ScopeSlot,
		TimeSlotID: &f.slots[0].TimeSlotID,
		Marks:      f.marksAll(attModel.AttendancePresent),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, blocked, res.Failures[0].StudentID)

	// the siblings committed despite the failed row
	var n int64
	require.NoError(t, f.db.Model(&attModel.AttendanceRecordModel{}).
		Where("attendance_record_session_id = ?", res.SessionID).
		Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestMarkBulkMergesSlots(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	mark := func(slotID uuid.UUID, status attModel.AttendanceStatus) {
		t.Helper()
		_, err := svc.MarkBulk(context.Background(), MarkBulkInput{
			BatchID:    f.batch.BatchID,
			SubjectID:  f.subject.SubjectID,
			Date:       wednesday,
			Scope:      ScopeSlot,
			TimeSlotID: &slotID,
			Marks:      []StudentMark{{StudentID: f.students[0].StudentID, Status: status}},
		})
		require.NoError(t, err)
	}

	mark(f.slots[0].TimeSlotID, attModel.AttendancePresent)
	mark(f.slots[1].TimeSlotID, attModel.AttendanceAbsent)

	view, err := svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	sv := view.Students[0]
	assert.Equal(t, attModel.AttendancePresent, sv.SlotStatuses[f.slots[0].TimeSlotID.String()])
	assert.Equal(t, attModel.AttendanceAbsent, sv.SlotStatuses[f.slots[1].TimeSlotID.String()])
	assert.Equal(t, attModel.AttendanceMixed, sv.FullDayStatus)

	// re-marking the first slot overwrites, not duplicates
	mark(f.slots[0].TimeSlotID, attModel.AttendanceAbsent)
	view, err = svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	sv = view.Students[0]
	assert.Len(t, sv.SlotStatuses, 2)
	assert.Equal(t, attModel.AttendanceAbsent, sv.FullDayStatus)
}

func TestResetSlotThenRemark(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	_, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:   f.batch.BatchID,
		SubjectID: f.subject.SubjectID,
		Date:      wednesday,
		Scope:     ScopeFullDay,
		Marks:     f.marksAll(attModel.AttendancePresent),
	})
	require.NoError(t, err)

	res, err := svc.Reset(context.Background(), ResetInput{
		BatchID:    f.batch.BatchID,
		SubjectID:  f.subject.SubjectID,
		Date:       wednesday,
		Scope:      ScopeSlot,
		TimeSlotID: &f.slots[0].TimeSlotID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 3, res.Reset)
	assert.Equal(t, 0, res.Skipped)

	view, err := svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	for _, sv := range view.Students {
		_, has := sv.SlotStatuses[f.slots[0].TimeSlotID.String()]
		assert.False(t, has)
		// slot 2 survives the slot-1 reset
		assert.Equal(t, attModel.AttendancePresent, sv.SlotStatuses[f.slots[1].TimeSlotID.String()])
		assert.Equal(t, attModel.AttendancePresent, sv.FullDayStatus)
	}

	// resetting the same slot again skips everyone
	res, err = svc.Reset(context.Background(), ResetInput{
		BatchID:    f.batch.BatchID,
		SubjectID:  f.subject.SubjectID,
		Date:       wednesday,
		Scope:      ScopeSlot,
		TimeSlotID: &f.slots[0].TimeSlotID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Reset)
	assert.Equal(t, 3, res.Skipped)

	// remarking after the reset lands the same state as a fresh mark
	_, err = svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:    f.batch.BatchID,
		SubjectID:  f.subject.SubjectID,
		Date:       wednesday,
		Scope:      ScopeSlot,
		TimeSlotID: &f.slots[0].TimeSlotID,
		Marks:      f.marksAll(attModel.AttendanceLate),
	})
	require.NoError(t, err)

	view, err = svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	for _, sv := range view.Students {
		assert.Equal(t, attModel.AttendanceLate, sv.SlotStatuses[f.slots[0].TimeSlotID.String()])
		assert.Equal(t, attModel.AttendancePresent, sv.SlotStatuses[f.slots[1].TimeSlotID.String()])
		assert.Equal(t, attModel.AttendanceMixed, sv.FullDayStatus)
	}
}

func TestResetFullDayReopensSession(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	marked, err := svc.MarkBulk(context.Background(), MarkBulkInput{
		BatchID:   f.batch.BatchID,
		SubjectID: f.subject.SubjectID,
		Date:      wednesday,
		Scope:     ScopeFullDay,
		Marks:     f.marksAll(attModel.AttendanceLate),
	})
	require.NoError(t, err)

	res, err := svc.Reset(context.Background(), ResetInput{
		BatchID:   f.batch.BatchID,
		SubjectID: f.subject.SubjectID,
		Date:      wednesday,
		Scope:     ScopeFullDay,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Reset)

	var sess attModel.AttendanceSessionModel
	require.NoError(t, f.db.First(&sess, "attendance_session_id = ?", marked.SessionID).Error)
	assert.False(t, sess.AttendanceSessionIsCompleted)

	// everyone is back to unmarked, which reads as absent
	view, err := svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	for _, sv := range view.Students {
		assert.Empty(t, sv.SlotStatuses)
		assert.Equal(t, attModel.AttendanceAbsent, sv.FullDayStatus)
	}
}

func TestResetWithoutSessionNotFound(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	_, err := svc.Reset(context.Background(), ResetInput{
		BatchID:   f.batch.BatchID,
		SubjectID: f.subject.SubjectID,
		Date:      wednesday,
		Scope:     ScopeFullDay,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestGetAttendanceViewWithoutSession(t *testing.T) {
	f := newAttFixture(t)
	svc := NewLedgerService(f.db)

	view, err := svc.GetAttendanceView(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday)
	require.NoError(t, err)
	assert.Nil(t, view.SessionID)
	require.Len(t, view.Students, 3)
	for _, sv := range view.Students {
		assert.Empty(t, sv.SlotStatuses)
		assert.Equal(t, attModel.AttendanceAbsent, sv.FullDayStatus)
	}
}

func TestGetOrCreateSessionIdempotent(t *testing.T) {
	f := newAttFixture(t)
	svc := NewSessionService(f.db)

	first, err := svc.GetOrCreate(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday, nil)
	require.NoError(t, err)
	second, err := svc.GetOrCreate(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday, nil)
	require.NoError(t, err)
	assert.Equal(t, first.AttendanceSessionID, second.AttendanceSessionID)

	var n int64
	require.NoError(t, f.db.Model(&attModel.AttendanceSessionModel{}).
		Where("attendance_session_batch_id = ?", f.batch.BatchID).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestGetOrCreateSessionConcurrentFirstMark(t *testing.T) {
	f := newAttFixture(t)
	svc := NewSessionService(f.db)

	ids := make([]uuid.UUID, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := svc.GetOrCreate(context.Background(), f.batch.BatchID, f.subject.SubjectID, wednesday, nil)
			errs[i] = err
			if err == nil {
				ids[i] = sess.AttendanceSessionID
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, ids[0], ids[1])

	var n int64
	require.NoError(t, f.db.Model(&attModel.AttendanceSessionModel{}).
		Where("attendance_session_batch_id = ?", f.batch.BatchID).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
