// internals/features/academics/timetable/dto/timetable_entry_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	ttService "kampusku_backend/internals/features/academics/timetable/service"
	helper "kampusku_backend/internals/helpers"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CheckConflictsRequest struct {
	TimetableEntryBatchID    uuid.UUID  `json:"timetable_entry_batch_id"     validate:"required"`
	TimetableEntryFacultyID  *uuid.UUID `json:"timetable_entry_faculty_id"   validate:"omitempty"`
	TimetableEntryTimeSlotID uuid.UUID  `json:"timetable_entry_time_slot_id" validate:"required"`
	TimetableEntryDayOfWeek  int        `json:"timetable_entry_day_of_week"  validate:"required,min=1,max=7"`
	TimetableEntryDate       *string    `json:"timetable_entry_date"         validate:"omitempty,datetime=2006-01-02"`
	TimetableEntryType       *string    `json:"timetable_entry_type"         validate:"omitempty,oneof=regular makeup extra special event"`
	ExcludeEntryID           *uuid.UUID `json:"exclude_entry_id"             validate:"omitempty"`
}

// ToInput normalizes the request. A concrete date must agree with the
// declared day of week, otherwise holiday/exam checks would silently apply
// to the wrong day.
func (r CheckConflictsRequest) ToInput() (ttService.CheckConflictsInput, error) {
	in := ttService.CheckConflictsInput{
		BatchID:        r.TimetableEntryBatchID,
		FacultyID:      r.TimetableEntryFacultyID,
		TimeSlotID:     r.TimetableEntryTimeSlotID,
		DayOfWeek:      r.TimetableEntryDayOfWeek,
		EntryType:      ttModel.EntryTypeRegular,
		ExcludeEntryID: r.ExcludeEntryID,
	}
	if r.TimetableEntryType != nil {
		in.EntryType = ttModel.EntryType(strings.ToLower(strings.TrimSpace(*r.TimetableEntryType)))
	}
	if r.TimetableEntryDate != nil {
		date, ok := helper.ParseDateYYYYMMDD(*r.TimetableEntryDate)
		if !ok {
			return in, fiber.NewError(fiber.StatusBadRequest, "timetable_entry_date invalid format, expected YYYY-MM-DD")
		}
		if helper.ISODayOfWeek(date) != in.DayOfWeek {
			return in, fiber.NewError(fiber.StatusBadRequest, "timetable_entry_date does not fall on timetable_entry_day_of_week")
		}
		in.Date = &date
	}
	return in, nil
}

type CreateTimetableEntryRequest struct {
	TimetableEntryBatchID    uuid.UUID  `json:"timetable_entry_batch_id"     validate:"required"`
	TimetableEntryFacultyID  *uuid.UUID `json:"timetable_entry_faculty_id"   validate:"omitempty"`
	TimetableEntrySubjectID  *uuid.UUID `json:"timetable_entry_subject_id"   validate:"omitempty"`
	TimetableEntryTimeSlotID uuid.UUID  `json:"timetable_entry_time_slot_id" validate:"required"`
	TimetableEntryDayOfWeek  int        `json:"timetable_entry_day_of_week"  validate:"required,min=1,max=7"`
	TimetableEntryDate       *string    `json:"timetable_entry_date"         validate:"omitempty,datetime=2006-01-02"`
	TimetableEntryType       *string    `json:"timetable_entry_type"         validate:"omitempty,oneof=regular makeup extra special event"`
}

func (r CreateTimetableEntryRequest) ToModel(createdBy *uuid.UUID) (ttModel.TimetableEntryModel, error) {
	m := ttModel.TimetableEntryModel{
		TimetableEntryBatchID:    r.TimetableEntryBatchID,
		TimetableEntryFacultyID:  r.TimetableEntryFacultyID,
		TimetableEntrySubjectID:  r.TimetableEntrySubjectID,
		TimetableEntryTimeSlotID: r.TimetableEntryTimeSlotID,
		TimetableEntryDayOfWeek:  r.TimetableEntryDayOfWeek,
		TimetableEntryType:       ttModel.EntryTypeRegular,
		TimetableEntryIsActive:   true,
		TimetableEntryCreatedBy:  createdBy,
	}
	if r.TimetableEntryType != nil {
		m.TimetableEntryType = ttModel.EntryType(strings.ToLower(strings.TrimSpace(*r.TimetableEntryType)))
	}
	if r.TimetableEntryDate != nil {
		date, ok := helper.ParseDateYYYYMMDD(*r.TimetableEntryDate)
		if !ok {
			return m, fiber.NewError(fiber.StatusBadRequest, "timetable_entry_date invalid format, expected YYYY-MM-DD")
		}
		if helper.ISODayOfWeek(date) != m.TimetableEntryDayOfWeek {
			return m, fiber.NewError(fiber.StatusBadRequest, "timetable_entry_date does not fall on timetable_entry_day_of_week")
		}
		m.TimetableEntryDate = &date
	}
	return m, nil
}

func (r CreateTimetableEntryRequest) ToCheckInput(m ttModel.TimetableEntryModel) ttService.CheckConflictsInput {
	return ttService.CheckConflictsInput{
		BatchID:    m.TimetableEntryBatchID,
		FacultyID:  m.TimetableEntryFacultyID,
		TimeSlotID: m.TimetableEntryTimeSlotID,
		DayOfWeek:  m.TimetableEntryDayOfWeek,
		Date:       m.TimetableEntryDate,
		EntryType:  m.TimetableEntryType,
	}
}

// Update (partial). Editing reruns the conflict check with the entry's own
// id excluded.
type UpdateTimetableEntryRequest struct {
	TimetableEntryFacultyID  *uuid.UUID `json:"timetable_entry_faculty_id"   validate:"omitempty"`
	TimetableEntrySubjectID  *uuid.UUID `json:"timetable_entry_subject_id"   validate:"omitempty"`
	TimetableEntryTimeSlotID *uuid.UUID `json:"timetable_entry_time_slot_id" validate:"omitempty"`
	TimetableEntryDayOfWeek  *int       `json:"timetable_entry_day_of_week"  validate:"omitempty,min=1,max=7"`
	TimetableEntryDate       *string    `json:"timetable_entry_date"         validate:"omitempty,datetime=2006-01-02"`
	TimetableEntryType       *string    `json:"timetable_entry_type"         validate:"omitempty,oneof=regular makeup extra special event"`
	TimetableEntryIsActive   *bool      `json:"timetable_entry_is_active"    validate:"omitempty"`
}

func (r UpdateTimetableEntryRequest) Apply(m *ttModel.TimetableEntryModel) error {
	if r.TimetableEntryFacultyID != nil {
		m.TimetableEntryFacultyID = r.TimetableEntryFacultyID
	}
	if r.TimetableEntrySubjectID != nil {
		m.TimetableEntrySubjectID = r.TimetableEntrySubjectID
	}
	if r.TimetableEntryTimeSlotID != nil {
		m.TimetableEntryTimeSlotID = *r.TimetableEntryTimeSlotID
	}
	if r.TimetableEntryDayOfWeek != nil {
		m.TimetableEntryDayOfWeek = *r.TimetableEntryDayOfWeek
	}
	if r.TimetableEntryDate != nil {
		if strings.TrimSpace(*r.TimetableEntryDate) == "" {
			m.TimetableEntryDate = nil
		} else {
			date, ok := helper.ParseDateYYYYMMDD(*r.TimetableEntryDate)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "timetable_entry_date invalid format, expected YYYY-MM-DD")
			}
			m.TimetableEntryDate = &date
		}
	}
	if r.TimetableEntryType != nil {
		m.TimetableEntryType = ttModel.EntryType(strings.ToLower(strings.TrimSpace(*r.TimetableEntryType)))
	}
	if r.TimetableEntryIsActive != nil {
		m.TimetableEntryIsActive = *r.TimetableEntryIsActive
	}
	if m.TimetableEntryDate != nil && helper.ISODayOfWeek(*m.TimetableEntryDate) != m.TimetableEntryDayOfWeek {
		return fiber.NewError(fiber.StatusBadRequest, "timetable_entry_date does not fall on timetable_entry_day_of_week")
	}
	return nil
}

/* =========================================================
   2) LIST QUERY
   ========================================================= */

type ListTimetableEntryQuery struct {
	BatchID    *uuid.UUID `query:"batch_id"     validate:"omitempty"`
	FacultyID  *uuid.UUID `query:"faculty_id"   validate:"omitempty"`
	TimeSlotID *uuid.UUID `query:"time_slot_id" validate:"omitempty"`
	DayOfWeek  *int       `query:"day_of_week"  validate:"omitempty,min=1,max=7"`
	ActiveOnly *bool      `query:"active_only"  validate:"omitempty"`
}

/* =========================================================
   3) RESPONSES
   ========================================================= */

type CreateEntryResponse struct {
	Entry    ttModel.TimetableEntryModel `json:"entry"`
	Warnings []ttService.Conflict        `json:"warnings,omitempty"`
}

func DateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(helper.DateLayout)
	return &s
}
