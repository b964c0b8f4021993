// internals/features/academics/timetable/service/conflict_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	calService "kampusku_backend/internals/features/academics/calendar/service"
	masterModel "kampusku_backend/internals/features/academics/masterdata/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
)

/* =========================
   Report types
========================= */

type ConflictSeverity string

const (
	SeverityError   ConflictSeverity = "error"
	SeverityWarning ConflictSeverity = "warning"
)

type ConflictType string

const (
	ConflictBatchDoubleBooking ConflictType = "BATCH_DOUBLE_BOOKING"
	ConflictFaculty            ConflictType = "FACULTY_CONFLICT"
	ConflictHoliday            ConflictType = "HOLIDAY"
	ConflictExamPeriod         ConflictType = "EXAM_PERIOD"
)

type Conflict struct {
	Type     ConflictType                  `json:"type"`
	Severity ConflictSeverity              `json:"severity"`
	Message  string                        `json:"message"`
	Entries  []ttModel.TimetableEntryModel `json:"entries,omitempty"`
}

// Alternative is a placement the detector found free for both the batch and
// the faculty. SameDay alternatives carry a different slot on the requested
// day; the day-shift fallback keeps the requested slot on another day.
type Alternative struct {
	TimeSlotID    uuid.UUID `json:"time_slot_id"`
	TimeSlotLabel string    `json:"time_slot_label"`
	DayOfWeek     int       `json:"day_of_week"`
	SameDay       bool      `json:"same_day"`
}

type ConflictReport struct {
	Conflicts    []Conflict    `json:"conflicts"`
	Alternatives []Alternative `json:"alternatives"`
}

// HasBlocking reports whether any error-severity conflict is present.
// Warnings are advisory; the caller lets them through.
func (r ConflictReport) HasBlocking() bool {
	for _, c := range r.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

type CheckConflictsInput struct {
	BatchID        uuid.UUID
	FacultyID      *uuid.UUID
	TimeSlotID     uuid.UUID
	DayOfWeek      int // 1..7 ISO
	Date           *time.Time
	EntryType      ttModel.EntryType
	ExcludeEntryID *uuid.UUID // set when editing so the entry never flags itself
}

/* =========================
   Service
========================= */

type ConflictService struct {
	DB *gorm.DB
}

func NewConflictService(db *gorm.DB) *ConflictService {
	return &ConflictService{DB: db}
}

// Check is the side-effect-free entry point (dry runs, repeated calls are
// safe). Writers must use CheckTx inside the same transaction as the write.
func (s *ConflictService) Check(ctx context.Context, in CheckConflictsInput) (ConflictReport, error) {
	return s.CheckTx(s.DB.WithContext(ctx), in)
}

// CheckTx runs the full conflict algorithm on the given handle:
// batch double-booking and faculty double-booking (blocking), holiday
// (advisory) and exam blackout (blocking, regular entries only) when a
// concrete date is present, then the alternative search if anything blocks.
func (s *ConflictService) CheckTx(tx *gorm.DB, in CheckConflictsInput) (ConflictReport, error) {
	report := ConflictReport{
		Conflicts:    []Conflict{},
		Alternatives: []Alternative{},
	}

	// 1) Batch double-booking
	var batchHits []ttModel.TimetableEntryModel
	if err := s.matchWindow(tx, in).
		Where("timetable_entry_batch_id = ?", in.BatchID).
		Find(&batchHits).Error; err != nil {
		return report, err
	}
	if len(batchHits) > 0 {
		report.Conflicts = append(report.Conflicts, Conflict{
			Type:     ConflictBatchDoubleBooking,
			Severity: SeverityError,
			Message:  "batch already has an active entry in this slot",
			Entries:  batchHits,
		})
	}

	// 2) Faculty double-booking — global across batches
	if in.FacultyID != nil {
		var facultyHits []ttModel.TimetableEntryModel
		if err := s.matchWindow(tx, in).
			Where("timetable_entry_faculty_id = ?", *in.FacultyID).
			Find(&facultyHits).Error; err != nil {
			return report, err
		}
		if len(facultyHits) > 0 {
			report.Conflicts = append(report.Conflicts, Conflict{
				Type:     ConflictFaculty,
				Severity: SeverityError,
				Message:  "faculty already teaches in this slot",
				Entries:  facultyHits,
			})
		}
	}

	// 3) Calendar rules need a concrete date; weekly-template checks skip them.
	if in.Date != nil {
		var batch masterModel.BatchModel
		if err := tx.Where("batch_id = ?", in.BatchID).Take(&batch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return report, fiber.NewError(fiber.StatusNotFound, "batch not found")
			}
			return report, err
		}

		cal := &calService.CalendarService{DB: tx}

		holiday, err := cal.HolidayOn(tx.Statement.Context, *in.Date, batch.BatchDepartmentID)
		if err != nil {
			return report, err
		}
		if holiday != nil {
			report.Conflicts = append(report.Conflicts, Conflict{
				Type:     ConflictHoliday,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("date falls on holiday %q", holiday.HolidayName),
			})
		}

		if in.EntryType == ttModel.EntryTypeRegular {
			exam, err := cal.BlockingExamPeriodOn(tx.Statement.Context, *in.Date, batch.BatchDepartmentID)
			if err != nil {
				return report, err
			}
			if exam != nil {
				report.Conflicts = append(report.Conflicts, Conflict{
					Type:     ConflictExamPeriod,
					Severity: SeverityError,
					Message:  fmt.Sprintf("regular classes are blocked during %q", exam.ExamPeriodName),
				})
			}
		}
	}

	// 4) Alternatives only when something would actually block the write.
	if report.HasBlocking() {
		alts, err := s.findAlternatives(tx, in)
		if err != nil {
			return report, err
		}
		report.Alternatives = alts
	}

	return report, nil
}

// matchWindow builds the base query: same slot + day-of-week, active, alive,
// excluding the entry under edit. With a concrete date both weekly rows
// (NULL date) and rows pinned to that date are in the window.
func (s *ConflictService) matchWindow(tx *gorm.DB, in CheckConflictsInput) *gorm.DB {
	q := tx.Model(&ttModel.TimetableEntryModel{}).
		Where("timetable_entry_time_slot_id = ?", in.TimeSlotID).
		Where("timetable_entry_day_of_week = ?", in.DayOfWeek).
		Where("timetable_entry_is_active = ?", true)
	if in.Date != nil {
		q = q.Where("(timetable_entry_date IS NULL OR timetable_entry_date = ?)", *in.Date)
	}
	if in.ExcludeEntryID != nil {
		q = q.Where("timetable_entry_id <> ?", *in.ExcludeEntryID)
	}
	return q
}

// findAlternatives mirrors the batch/faculty occupancy rules (calendar rules
// are deliberately not applied here). Same-day candidates come first, in
// slot sort order, uncapped; only when the whole day is full does it shift
// days, keeping the requested slot, capped at 3.
func (s *ConflictService) findAlternatives(tx *gorm.DB, in CheckConflictsInput) ([]Alternative, error) {
	var slots []masterModel.TimeSlotModel
	if err := tx.
		Where("time_slot_is_active = ?", true).
		Order("time_slot_sort_order ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	busy := func(slotID uuid.UUID, day int) (bool, error) {
		q := tx.Model(&ttModel.TimetableEntryModel{}).
			Where("timetable_entry_time_slot_id = ?", slotID).
			Where("timetable_entry_day_of_week = ?", day).
			Where("timetable_entry_is_active = ?", true)
		if in.Date != nil && day == in.DayOfWeek {
			q = q.Where("(timetable_entry_date IS NULL OR timetable_entry_date = ?)", *in.Date)
		}
		if in.ExcludeEntryID != nil {
			q = q.Where("timetable_entry_id <> ?", *in.ExcludeEntryID)
		}
		if in.FacultyID != nil {
			q = q.Where("(timetable_entry_batch_id = ? OR timetable_entry_faculty_id = ?)", in.BatchID, *in.FacultyID)
		} else {
			q = q.Where("timetable_entry_batch_id = ?", in.BatchID)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	}

	alts := []Alternative{}

	// a) same day, every other slot
	for _, slot := range slots {
		if slot.TimeSlotID == in.TimeSlotID {
			continue
		}
		taken, err := busy(slot.TimeSlotID, in.DayOfWeek)
		if err != nil {
			return nil, err
		}
		if !taken {
			alts = append(alts, Alternative{
				TimeSlotID:    slot.TimeSlotID,
				TimeSlotLabel: slot.TimeSlotLabel,
				DayOfWeek:     in.DayOfWeek,
				SameDay:       true,
			})
		}
	}
	if len(alts) > 0 {
		return alts, nil
	}

	// b) day shift, same slot, up to 3
	label := ""
	for _, slot := range slots {
		if slot.TimeSlotID == in.TimeSlotID {
			label = slot.TimeSlotLabel
			break
		}
	}
	for day := 1; day <= 7 && len(alts) < 3; day++ {
		if day == in.DayOfWeek {
			continue
		}
		taken, err := busy(in.TimeSlotID, day)
		if err != nil {
			return nil, err
		}
		if !taken {
			alts = append(alts, Alternative{
				TimeSlotID:    in.TimeSlotID,
				TimeSlotLabel: label,
				DayOfWeek:     day,
				SameDay:       false,
			})
		}
	}
	return alts, nil
}
