// internals/features/academics/calendar/dto/calendar_dto.go
package dto

import (
	"github.com/google/uuid"

	calModel "kampusku_backend/internals/features/academics/calendar/model"
	helper "kampusku_backend/internals/helpers"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CreateHolidayRequest struct {
	HolidayDepartmentID *uuid.UUID `json:"holiday_department_id" validate:"omitempty"`
	HolidayDate         string     `json:"holiday_date" validate:"required,datetime=2006-01-02"`
	HolidayName         string     `json:"holiday_name" validate:"required,max=200"`
}

func (r CreateHolidayRequest) ToModel() calModel.HolidayModel {
	date, _ := helper.ParseDateYYYYMMDD(r.HolidayDate)
	return calModel.HolidayModel{
		HolidayDepartmentID: r.HolidayDepartmentID,
		HolidayDate:         date,
		HolidayName:         r.HolidayName,
		HolidayIsActive:     true,
	}
}

// Update (partial)
type UpdateHolidayRequest struct {
	HolidayDate     *string `json:"holiday_date"      validate:"omitempty,datetime=2006-01-02"`
	HolidayName     *string `json:"holiday_name"      validate:"omitempty,max=200"`
	HolidayIsActive *bool   `json:"holiday_is_active" validate:"omitempty"`
}

func (r UpdateHolidayRequest) Apply(m *calModel.HolidayModel) {
	if r.HolidayDate != nil {
		if t, ok := helper.ParseDateYYYYMMDD(*r.HolidayDate); ok {
			m.HolidayDate = t
		}
	}
	if r.HolidayName != nil {
		m.HolidayName = *r.HolidayName
	}
	if r.HolidayIsActive != nil {
		m.HolidayIsActive = *r.HolidayIsActive
	}
}

type CreateAcademicCalendarRequest struct {
	AcademicCalendarDepartmentID  uuid.UUID `json:"academic_calendar_department_id" validate:"required"`
	AcademicCalendarName          string    `json:"academic_calendar_name" validate:"required,max=160"`
	AcademicCalendarSemesterStart string    `json:"academic_calendar_semester_start" validate:"required,datetime=2006-01-02"`
	AcademicCalendarSemesterEnd   string    `json:"academic_calendar_semester_end" validate:"required,datetime=2006-01-02"`
}

func (r CreateAcademicCalendarRequest) ToModel() calModel.AcademicCalendarModel {
	start, _ := helper.ParseDateYYYYMMDD(r.AcademicCalendarSemesterStart)
	end, _ := helper.ParseDateYYYYMMDD(r.AcademicCalendarSemesterEnd)
	return calModel.AcademicCalendarModel{
		AcademicCalendarDepartmentID:  r.AcademicCalendarDepartmentID,
		AcademicCalendarName:          r.AcademicCalendarName,
		AcademicCalendarSemesterStart: start,
		AcademicCalendarSemesterEnd:   end,
		AcademicCalendarIsActive:      true,
	}
}

type CreateExamPeriodRequest struct {
	ExamPeriodCalendarID          uuid.UUID `json:"exam_period_calendar_id" validate:"required"`
	ExamPeriodName                string    `json:"exam_period_name" validate:"required,max=160"`
	ExamPeriodStartDate           string    `json:"exam_period_start_date" validate:"required,datetime=2006-01-02"`
	ExamPeriodEndDate             string    `json:"exam_period_end_date" validate:"required,datetime=2006-01-02"`
	ExamPeriodBlockRegularClasses *bool     `json:"exam_period_block_regular_classes" validate:"omitempty"`
	ExamPeriodAllowReviewClasses  *bool     `json:"exam_period_allow_review_classes" validate:"omitempty"`
}

func (r CreateExamPeriodRequest) ToModel() calModel.ExamPeriodModel {
	start, _ := helper.ParseDateYYYYMMDD(r.ExamPeriodStartDate)
	end, _ := helper.ParseDateYYYYMMDD(r.ExamPeriodEndDate)

	block := true
	if r.ExamPeriodBlockRegularClasses != nil {
		block = *r.ExamPeriodBlockRegularClasses
	}
	review := false
	if r.ExamPeriodAllowReviewClasses != nil {
		review = *r.ExamPeriodAllowReviewClasses
	}

	return calModel.ExamPeriodModel{
		ExamPeriodCalendarID:          r.ExamPeriodCalendarID,
		ExamPeriodName:                r.ExamPeriodName,
		ExamPeriodStartDate:           start,
		ExamPeriodEndDate:             end,
		ExamPeriodBlockRegularClasses: block,
		ExamPeriodAllowReviewClasses:  review,
	}
}

// Update (partial)
type UpdateExamPeriodRequest struct {
	ExamPeriodName                *string `json:"exam_period_name"       validate:"omitempty,max=160"`
	ExamPeriodStartDate           *string `json:"exam_period_start_date" validate:"omitempty,datetime=2006-01-02"`
	ExamPeriodEndDate             *string `json:"exam_period_end_date"   validate:"omitempty,datetime=2006-01-02"`
	ExamPeriodBlockRegularClasses *bool   `json:"exam_period_block_regular_classes" validate:"omitempty"`
	ExamPeriodAllowReviewClasses  *bool   `json:"exam_period_allow_review_classes"  validate:"omitempty"`
}

func (r UpdateExamPeriodRequest) Apply(m *calModel.ExamPeriodModel) {
	if r.ExamPeriodName != nil {
		m.ExamPeriodName = *r.ExamPeriodName
	}
	if r.ExamPeriodStartDate != nil {
		if t, ok := helper.ParseDateYYYYMMDD(*r.ExamPeriodStartDate); ok {
			m.ExamPeriodStartDate = t
		}
	}
	if r.ExamPeriodEndDate != nil {
		if t, ok := helper.ParseDateYYYYMMDD(*r.ExamPeriodEndDate); ok {
			m.ExamPeriodEndDate = t
		}
	}
	if r.ExamPeriodBlockRegularClasses != nil {
		m.ExamPeriodBlockRegularClasses = *r.ExamPeriodBlockRegularClasses
	}
	if r.ExamPeriodAllowReviewClasses != nil {
		m.ExamPeriodAllowReviewClasses = *r.ExamPeriodAllowReviewClasses
	}
}
