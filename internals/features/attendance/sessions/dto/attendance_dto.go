// internals/features/attendance/sessions/dto/attendance_dto.go
package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	attModel "kampusku_backend/internals/features/attendance/sessions/model"
	attService "kampusku_backend/internals/features/attendance/sessions/service"
	helper "kampusku_backend/internals/helpers"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type StudentMarkRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status"     validate:"required,oneof=present absent late medical excused"`
}

type MarkBulkRequest struct {
	AttendanceBatchID   uuid.UUID  `json:"attendance_batch_id"   validate:"required"`
	AttendanceSubjectID uuid.UUID  `json:"attendance_subject_id" validate:"required"`
	AttendanceDate      string     `json:"attendance_date"       validate:"required,datetime=2006-01-02"`
	Scope               string     `json:"scope"                 validate:"required,oneof=slot fullday"`
	TimeSlotID          *uuid.UUID `json:"time_slot_id"          validate:"omitempty"`

	// Either a single status fanned out to the whole batch, or an explicit
	// per-student list.
	Status string               `json:"status" validate:"omitempty,oneof=present absent late medical excused"`
	Marks  []StudentMarkRequest `json:"marks"  validate:"omitempty,max=500,dive"`
	Note   string               `json:"note"   validate:"omitempty,max=500"`
}

func (r MarkBulkRequest) ToInput(actor *uuid.UUID) (attService.MarkBulkInput, error) {
	in := attService.MarkBulkInput{
		BatchID:    r.AttendanceBatchID,
		SubjectID:  r.AttendanceSubjectID,
		Scope:      attService.MarkScope(strings.ToLower(strings.TrimSpace(r.Scope))),
		TimeSlotID: r.TimeSlotID,
		Status:     attModel.AttendanceStatus(strings.ToLower(strings.TrimSpace(r.Status))),
		Note:       strings.TrimSpace(r.Note),
		Actor:      actor,
	}
	date, ok := helper.ParseDateYYYYMMDD(r.AttendanceDate)
	if !ok {
		return in, fiber.NewError(fiber.StatusBadRequest, "attendance_date invalid format, expected YYYY-MM-DD")
	}
	in.Date = date

	in.Marks = make([]attService.StudentMark, 0, len(r.Marks))
	for _, mk := range r.Marks {
		in.Marks = append(in.Marks, attService.StudentMark{
			StudentID: mk.StudentID,
			Status:    attModel.AttendanceStatus(strings.ToLower(strings.TrimSpace(mk.Status))),
		})
	}
	return in, nil
}

type ResetRequest struct {
	AttendanceBatchID   uuid.UUID  `json:"attendance_batch_id"   validate:"required"`
	AttendanceSubjectID uuid.UUID  `json:"attendance_subject_id" validate:"required"`
	AttendanceDate      string     `json:"attendance_date"       validate:"required,datetime=2006-01-02"`
	Scope               string     `json:"scope"                 validate:"required,oneof=slot fullday"`
	TimeSlotID          *uuid.UUID `json:"time_slot_id"          validate:"omitempty"`
}

func (r ResetRequest) ToInput(actor *uuid.UUID) (attService.ResetInput, error) {
	in := attService.ResetInput{
		BatchID:    r.AttendanceBatchID,
		SubjectID:  r.AttendanceSubjectID,
		Scope:      attService.MarkScope(strings.ToLower(strings.TrimSpace(r.Scope))),
		TimeSlotID: r.TimeSlotID,
		Actor:      actor,
	}
	date, ok := helper.ParseDateYYYYMMDD(r.AttendanceDate)
	if !ok {
		return in, fiber.NewError(fiber.StatusBadRequest, "attendance_date invalid format, expected YYYY-MM-DD")
	}
	in.Date = date
	return in, nil
}

/* =========================================================
   2) QUERIES
   ========================================================= */

type AttendanceViewQuery struct {
	BatchID   uuid.UUID `query:"batch_id"   validate:"required"`
	SubjectID uuid.UUID `query:"subject_id" validate:"required"`
	Date      string    `query:"date"       validate:"required,datetime=2006-01-02"`
}

type ListSessionsQuery struct {
	BatchID   *uuid.UUID `query:"batch_id"   validate:"omitempty"`
	SubjectID *uuid.UUID `query:"subject_id" validate:"omitempty"`
	DateFrom  *string    `query:"date_from"  validate:"omitempty,datetime=2006-01-02"`
	DateTo    *string    `query:"date_to"    validate:"omitempty,datetime=2006-01-02"`
}
