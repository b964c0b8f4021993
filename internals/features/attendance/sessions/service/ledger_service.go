// internals/features/attendance/sessions/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	masterModel "kampusku_backend/internals/features/academics/masterdata/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	attModel "kampusku_backend/internals/features/attendance/sessions/model"
	helper "kampusku_backend/internals/helpers"
)

/* =========================
   Inputs & results
========================= */

type MarkScope string

const (
	ScopeSlot    MarkScope = "slot"
	ScopeFullDay MarkScope = "fullday"
)

func (s MarkScope) Valid() bool {
	return s == ScopeSlot || s == ScopeFullDay
}

type StudentMark struct {
	StudentID uuid.UUID
	Status    attModel.AttendanceStatus
}

type MarkBulkInput struct {
	BatchID   uuid.UUID
	SubjectID uuid.UUID
	Date      time.Time
	Scope     MarkScope
	// Required when Scope == ScopeSlot; ignored otherwise.
	TimeSlotID *uuid.UUID
	// Status fans out to every active student of the batch when Marks is
	// empty; Marks wins when both are set.
	Status attModel.AttendanceStatus
	Marks  []StudentMark
	Note   string
	Actor  *uuid.UUID
}

type MarkFailure struct {
	StudentID uuid.UUID `json:"student_id"`
	Reason    string    `json:"reason"`
}

// MarkResult carries per-student outcomes. A bulk mark with some failed
// rows is still a success at the operation level; callers report the
// counts instead of rolling everything back.
type MarkResult struct {
	SessionID uuid.UUID     `json:"session_id"`
	Processed int           `json:"processed"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []MarkFailure `json:"failures,omitempty"`
}

type ResetInput struct {
	BatchID    uuid.UUID
	SubjectID  uuid.UUID
	Date       time.Time
	Scope      MarkScope
	TimeSlotID *uuid.UUID
	Actor      *uuid.UUID
}

type ResetResult struct {
	SessionID uuid.UUID `json:"session_id"`
	Processed int       `json:"processed"`
	Reset     int       `json:"reset"`
	Skipped   int       `json:"skipped"`
}

type StudentAttendanceView struct {
	StudentID     uuid.UUID                 `json:"student_id"`
	StudentRollNo string                    `json:"student_roll_no"`
	StudentName   string                    `json:"student_name"`
	SlotStatuses  attModel.SlotStatusMap    `json:"slot_statuses"`
	FullDayStatus attModel.AttendanceStatus `json:"full_day_status"`
}

type AttendanceView struct {
	SessionID   *uuid.UUID              `json:"session_id"`
	IsCompleted bool                    `json:"is_completed"`
	Date        string                  `json:"date"`
	Students    []StudentAttendanceView `json:"students"`
}

/* =========================
   Service
========================= */

// LedgerService owns the per-slot attendance ledger: bulk marking, resets
// and the derived full-day view.
type LedgerService struct {
	DB       *gorm.DB
	Sessions *SessionService
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db, Sessions: NewSessionService(db)}
}

// MarkBulk writes one status per student, either into a single slot or
// across every slot the subject is scheduled for on that date. Bad rows
// are counted and skipped; the valid siblings still commit.
func (s *LedgerService) MarkBulk(ctx context.Context, in MarkBulkInput) (*MarkResult, error) {
	if !in.Scope.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "scope must be slot or fullday")
	}
	if in.Scope == ScopeSlot && in.TimeSlotID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "time_slot_id is required for slot scope")
	}
	if len(in.Marks) == 0 && !in.Status.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "either marks or a valid status is required")
	}

	date := helper.NormalizeDate(in.Date)

	var out MarkResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkPair(tx, in.BatchID, in.SubjectID); err != nil {
			return err
		}

		targetSlots, err := s.targetSlots(tx, in, date)
		if err != nil {
			return err
		}

		roster, err := s.activeRoster(tx, in.BatchID)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "batch has no active students")
		}

		marks := in.Marks
		if len(marks) == 0 {
			marks = make([]StudentMark, 0, len(roster))
			for id := range roster {
				marks = append(marks, StudentMark{StudentID: id, Status: in.Status})
			}
		}

		sessSvc := &SessionService{DB: tx}
		sess, err := sessSvc.GetOrCreate(ctx, in.BatchID, in.SubjectID, date, in.Actor)
		if err != nil {
			return err
		}
		out.SessionID = sess.AttendanceSessionID

		for i, mk := range marks {
			out.Processed++

			if !mk.Status.Valid() {
				out.Failed++
				out.Failures = append(out.Failures, MarkFailure{
					StudentID: mk.StudentID,
					Reason:    fmt.Sprintf("unknown status %q", mk.Status),
				})
				continue
			}
			if _, ok := roster[mk.StudentID]; !ok {
				out.Failed++
				out.Failures = append(out.Failures, MarkFailure{
					StudentID: mk.StudentID,
					Reason:    "not an active student of this batch",
				})
				continue
			}

			// Savepoint per student: one failed write must not roll back
			// the siblings already marked in this batch.
			sp := fmt.Sprintf("mark_%d", i)
			if err := tx.SavePoint(sp).Error; err != nil {
				return err
			}
			if err := s.upsertRecord(tx, sess.AttendanceSessionID, mk, targetSlots, in.Actor); err != nil {
				if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
					return rbErr
				}
				out.Failed++
				out.Failures = append(out.Failures, MarkFailure{
					StudentID: mk.StudentID,
					Reason:    err.Error(),
				})
				continue
			}
			out.Succeeded++
		}

		return s.stampSession(tx, sess, in, date)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset undoes marks. Full-day wipes every record of the session and
// reopens it; slot scope removes just that slot's key per student, and
// drops records that end up empty.
func (s *LedgerService) Reset(ctx context.Context, in ResetInput) (*ResetResult, error) {
	if !in.Scope.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "scope must be slot or fullday")
	}
	if in.Scope == ScopeSlot && in.TimeSlotID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "time_slot_id is required for slot scope")
	}

	date := helper.NormalizeDate(in.Date)

	var out ResetResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessSvc := &SessionService{DB: tx}
		sess, err := sessSvc.Find(ctx, in.BatchID, in.SubjectID, date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "attendance session not found")
			}
			return err
		}
		out.SessionID = sess.AttendanceSessionID

		var records []attModel.AttendanceRecordModel
		if err := tx.
			Where("attendance_record_session_id = ?", sess.AttendanceSessionID).
			Find(&records).Error; err != nil {
			return err
		}
		out.Processed = len(records)

		if in.Scope == ScopeFullDay {
			if len(records) > 0 {
				if err := tx.
					Where("attendance_record_session_id = ?", sess.AttendanceSessionID).
					Delete(&attModel.AttendanceRecordModel{}).Error; err != nil {
					return err
				}
			}
			out.Reset = len(records)

			sess.AttendanceSessionIsCompleted = false
			sess.AttendanceSessionNotes = appendNote(sess.AttendanceSessionNotes,
				fmt.Sprintf("reset fullday %s", date.Format(helper.DateLayout)))
			return tx.Save(sess).Error
		}

		slotKey := in.TimeSlotID.String()
		for i := range records {
			rec := &records[i]
			m := rec.AttendanceRecordSlotStatuses.Data()
			if _, ok := m[slotKey]; !ok {
				out.Skipped++
				continue
			}
			delete(m, slotKey)

			if len(m) == 0 {
				if err := tx.Delete(rec).Error; err != nil {
					return err
				}
			} else {
				rec.AttendanceRecordSlotStatuses = datatypes.NewJSONType(m)
				rec.AttendanceRecordOverallStatus = ResolveFullDay(m)
				rec.AttendanceRecordMarkedBy = in.Actor
				if err := tx.Save(rec).Error; err != nil {
					return err
				}
			}
			out.Reset++
		}

		sess.AttendanceSessionNotes = appendNote(sess.AttendanceSessionNotes,
			fmt.Sprintf("reset slot %s", slotKey))
		return tx.Save(sess).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAttendanceView lists every active student of the batch with their
// slot map and the derived full-day status. The view also works before
// any mark exists: every student shows an empty map and absent.
func (s *LedgerService) GetAttendanceView(ctx context.Context, batchID, subjectID uuid.UUID, date time.Time) (*AttendanceView, error) {
	date = helper.NormalizeDate(date)

	db := s.DB.WithContext(ctx)
	if err := s.checkPair(db, batchID, subjectID); err != nil {
		return nil, err
	}

	var students []masterModel.StudentModel
	if err := db.
		Where("student_batch_id = ? AND student_is_active", batchID).
		Order("student_roll_no ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	view := AttendanceView{Date: date.Format(helper.DateLayout)}

	byStudent := map[uuid.UUID]attModel.SlotStatusMap{}
	sess, err := s.Sessions.Find(ctx, batchID, subjectID, date)
	switch {
	case err == nil:
		view.SessionID = &sess.AttendanceSessionID
		view.IsCompleted = sess.AttendanceSessionIsCompleted

		var records []attModel.AttendanceRecordModel
		if err := db.
			Where("attendance_record_session_id = ?", sess.AttendanceSessionID).
			Find(&records).Error; err != nil {
			return nil, err
		}
		for i := range records {
			byStudent[records[i].AttendanceRecordStudentID] = records[i].AttendanceRecordSlotStatuses.Data()
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no session yet, everyone resolves to absent
	default:
		return nil, err
	}

	view.Students = make([]StudentAttendanceView, 0, len(students))
	for i := range students {
		st := &students[i]
		m := byStudent[st.StudentID]
		if m == nil {
			m = attModel.SlotStatusMap{}
		}
		view.Students = append(view.Students, StudentAttendanceView{
			StudentID:     st.StudentID,
			StudentRollNo: st.StudentRollNo,
			StudentName:   st.StudentName,
			SlotStatuses:  m,
			FullDayStatus: ResolveFullDay(m),
		})
	}
	return &view, nil
}

/* =========================
   Internals
========================= */

// checkPair verifies the batch is active and the subject is an active
// subject of that batch.
func (s *LedgerService) checkPair(tx *gorm.DB, batchID, subjectID uuid.UUID) error {
	var batch masterModel.BatchModel
	if err := tx.Where("batch_id = ? AND batch_is_active", batchID).Take(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "batch not found or inactive")
		}
		return err
	}

	var subject masterModel.SubjectModel
	if err := tx.Where("subject_id = ? AND subject_is_active", subjectID).Take(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "subject not found or inactive")
		}
		return err
	}
	if subject.SubjectBatchID != batchID {
		return fiber.NewError(fiber.StatusNotFound, "subject does not belong to this batch")
	}
	return nil
}

// targetSlots resolves which slot keys a mark writes to. Slot scope must
// point at a slot the subject is actually scheduled in on that date;
// full-day scope covers every slot the subject has any active entry in,
// not just that day's, so a day with rescheduled slots still rolls up.
func (s *LedgerService) targetSlots(tx *gorm.DB, in MarkBulkInput, date time.Time) ([]string, error) {
	sched := tx.Model(&ttModel.TimetableEntryModel{}).
		Where("timetable_entry_batch_id = ? AND timetable_entry_subject_id = ?", in.BatchID, in.SubjectID).
		Where("timetable_entry_type = ? AND timetable_entry_is_active", ttModel.EntryTypeRegular)

	if in.Scope == ScopeSlot {
		dow := helper.ISODayOfWeek(date)
		var n int64
		if err := sched.
			Where("((timetable_entry_date IS NULL AND timetable_entry_day_of_week = ?) OR timetable_entry_date = ?)", dow, date).
			Where("timetable_entry_time_slot_id = ?", *in.TimeSlotID).
			Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fiber.NewError(fiber.StatusNotFound,
				"subject is not scheduled in that slot on this date")
		}
		return []string{in.TimeSlotID.String()}, nil
	}

	var slotIDs []uuid.UUID
	if err := sched.
		Distinct("timetable_entry_time_slot_id").
		Pluck("timetable_entry_time_slot_id", &slotIDs).Error; err != nil {
		return nil, err
	}
	if len(slotIDs) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound,
			"subject has no scheduled slots")
	}
	keys := make([]string, 0, len(slotIDs))
	for _, id := range slotIDs {
		keys = append(keys, id.String())
	}
	return keys, nil
}

func (s *LedgerService) upsertRecord(tx *gorm.DB, sessionID uuid.UUID, mk StudentMark, slotKeys []string, actor *uuid.UUID) error {
	var rec attModel.AttendanceRecordModel
	err := tx.
		Where("attendance_record_session_id = ? AND attendance_record_student_id = ?", sessionID, mk.StudentID).
		Take(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m := attModel.SlotStatusMap{}
		for _, k := range slotKeys {
			m[k] = mk.Status
		}
		rec = attModel.AttendanceRecordModel{
			AttendanceRecordSessionID:     sessionID,
			AttendanceRecordStudentID:     mk.StudentID,
			AttendanceRecordSlotStatuses:  datatypes.NewJSONType(m),
			AttendanceRecordOverallStatus: ResolveFullDay(m),
			AttendanceRecordMarkedBy:      actor,
		}
		return tx.Create(&rec).Error
	case err != nil:
		return err
	}

	m := rec.AttendanceRecordSlotStatuses.Data()
	if m == nil {
		m = attModel.SlotStatusMap{}
	}
	for _, k := range slotKeys {
		m[k] = mk.Status
	}
	rec.AttendanceRecordSlotStatuses = datatypes.NewJSONType(m)
	rec.AttendanceRecordOverallStatus = ResolveFullDay(m)
	rec.AttendanceRecordMarkedBy = actor
	return tx.Save(&rec).Error
}

// stampSession records who marked and, for full-day marks, completes the
// session. Slot marks only append an audit line so later slots can still
// be written.
func (s *LedgerService) stampSession(tx *gorm.DB, sess *attModel.AttendanceSessionModel, in MarkBulkInput, date time.Time) error {
	sess.AttendanceSessionMarkedBy = in.Actor

	line := fmt.Sprintf("mark %s %s", in.Scope, date.Format(helper.DateLayout))
	if in.Scope == ScopeSlot {
		line = fmt.Sprintf("mark slot %s %s", in.TimeSlotID.String(), date.Format(helper.DateLayout))
	}
	if in.Note != "" {
		line += ": " + in.Note
	}
	sess.AttendanceSessionNotes = appendNote(sess.AttendanceSessionNotes, line)

	if in.Scope == ScopeFullDay {
		sess.AttendanceSessionIsCompleted = true
	}
	return tx.Save(sess).Error
}

func (s *LedgerService) activeRoster(tx *gorm.DB, batchID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := tx.Model(&masterModel.StudentModel{}).
		Where("student_batch_id = ? AND student_is_active", batchID).
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	roster := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		roster[id] = struct{}{}
	}
	return roster, nil
}

func appendNote(existing, line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return existing
	}
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}
