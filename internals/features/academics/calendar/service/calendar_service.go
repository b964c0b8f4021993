// internals/features/academics/calendar/service/calendar_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	calModel "kampusku_backend/internals/features/academics/calendar/model"
)

// CalendarService is the read side of the resource calendar: holiday and
// exam-blackout lookups for a department/date, plus the write-time
// invariants for exam periods.
type CalendarService struct {
	DB *gorm.DB
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{DB: db}
}

// HolidayOn returns the active holiday covering date for the department
// (department-scoped or university-wide), or nil when the date is teachable.
func (s *CalendarService) HolidayOn(ctx context.Context, date time.Time, departmentID uuid.UUID) (*calModel.HolidayModel, error) {
	var row calModel.HolidayModel
	err := s.DB.WithContext(ctx).
		Where("holiday_date = ? AND holiday_is_active = ?", date, true).
		Where("(holiday_department_id IS NULL OR holiday_department_id = ?)", departmentID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// BlockingExamPeriodOn returns the exam period of the department's calendar
// whose range contains date and which blocks regular classes, or nil.
func (s *CalendarService) BlockingExamPeriodOn(ctx context.Context, date time.Time, departmentID uuid.UUID) (*calModel.ExamPeriodModel, error) {
	var row calModel.ExamPeriodModel
	err := s.DB.WithContext(ctx).
		Joins("JOIN academic_calendars ON academic_calendars.academic_calendar_id = exam_periods.exam_period_calendar_id AND academic_calendars.academic_calendar_deleted_at IS NULL").
		Where("academic_calendars.academic_calendar_department_id = ?", departmentID).
		Where("exam_periods.exam_period_start_date <= ? AND exam_periods.exam_period_end_date >= ?", date, date).
		Where("exam_periods.exam_period_block_regular_classes = ?", true).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ValidateExamPeriod enforces the exam-period invariants before a write:
// start < end, the range sits inside the parent calendar's semester, and it
// does not overlap another period of the same calendar.
func (s *CalendarService) ValidateExamPeriod(ctx context.Context, m *calModel.ExamPeriodModel, excludeID *uuid.UUID) error {
	if !m.ExamPeriodStartDate.Before(m.ExamPeriodEndDate) {
		return fiber.NewError(fiber.StatusBadRequest, "exam period start date must be before end date")
	}

	var cal calModel.AcademicCalendarModel
	if err := s.DB.WithContext(ctx).
		Where("academic_calendar_id = ?", m.ExamPeriodCalendarID).
		Take(&cal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "academic calendar not found")
		}
		return err
	}
	if m.ExamPeriodStartDate.Before(cal.AcademicCalendarSemesterStart) ||
		m.ExamPeriodEndDate.After(cal.AcademicCalendarSemesterEnd) {
		return fiber.NewError(fiber.StatusBadRequest, "exam period must fall inside the calendar's semester range")
	}

	overlap := s.DB.WithContext(ctx).
		Model(&calModel.ExamPeriodModel{}).
		Where("exam_period_calendar_id = ?", m.ExamPeriodCalendarID).
		Where("exam_period_start_date <= ? AND exam_period_end_date >= ?", m.ExamPeriodEndDate, m.ExamPeriodStartDate)
	if excludeID != nil {
		overlap = overlap.Where("exam_period_id <> ?", *excludeID)
	}
	var n int64
	if err := overlap.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fiber.NewError(fiber.StatusConflict, "exam period overlaps another period in the same calendar")
	}
	return nil
}
