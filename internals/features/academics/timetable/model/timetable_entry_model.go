// internals/features/academics/timetable/model/timetable_entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum
========================= */

type EntryType string

const (
	EntryTypeRegular EntryType = "regular"
	EntryTypeMakeup  EntryType = "makeup"
	EntryTypeExtra   EntryType = "extra"
	EntryTypeSpecial EntryType = "special"
	EntryTypeEvent   EntryType = "event"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeRegular, EntryTypeMakeup, EntryTypeExtra, EntryTypeSpecial, EntryTypeEvent:
		return true
	default:
		return false
	}
}

/* =========================
   Model: TimetableEntryModel
========================= */

// TimetableEntryModel occupies one (batch, time slot, day-of-week) cell.
// A non-NULL date pins the entry to a single calendar date, overriding the
// weekly template for that date. Entries are deactivated, never hard
// deleted, so history survives.
type TimetableEntryModel struct {
	TimetableEntryID uuid.UUID `json:"timetable_entry_id" gorm:"column:timetable_entry_id;type:uuid;primaryKey"`

	TimetableEntryBatchID    uuid.UUID  `json:"timetable_entry_batch_id"     gorm:"column:timetable_entry_batch_id;type:uuid;not null;index:idx_timetable_entries_batch"`
	TimetableEntryFacultyID  *uuid.UUID `json:"timetable_entry_faculty_id"   gorm:"column:timetable_entry_faculty_id;type:uuid;index:idx_timetable_entries_faculty"` // NULL for non-teaching events
	TimetableEntrySubjectID  *uuid.UUID `json:"timetable_entry_subject_id"   gorm:"column:timetable_entry_subject_id;type:uuid;index:idx_timetable_entries_subject"`
	TimetableEntryTimeSlotID uuid.UUID  `json:"timetable_entry_time_slot_id" gorm:"column:timetable_entry_time_slot_id;type:uuid;not null;index:idx_timetable_entries_slot"`

	TimetableEntryDayOfWeek int        `json:"timetable_entry_day_of_week" gorm:"column:timetable_entry_day_of_week;not null"` // 1..7 ISO (Monday=1)
	TimetableEntryDate      *time.Time `json:"timetable_entry_date"        gorm:"column:timetable_entry_date;type:date;index"`

	TimetableEntryType     EntryType `json:"timetable_entry_type"      gorm:"column:timetable_entry_type;type:varchar(16);not null;default:regular"`
	TimetableEntryIsActive bool      `json:"timetable_entry_is_active" gorm:"column:timetable_entry_is_active;not null;default:true"`

	TimetableEntryCreatedBy *uuid.UUID `json:"timetable_entry_created_by" gorm:"column:timetable_entry_created_by;type:uuid"`

	TimetableEntryCreatedAt time.Time      `json:"timetable_entry_created_at" gorm:"column:timetable_entry_created_at;autoCreateTime"`
	TimetableEntryUpdatedAt time.Time      `json:"timetable_entry_updated_at" gorm:"column:timetable_entry_updated_at;autoUpdateTime"`
	TimetableEntryDeletedAt gorm.DeletedAt `json:"timetable_entry_deleted_at,omitempty" gorm:"column:timetable_entry_deleted_at;index"`
}

func (TimetableEntryModel) TableName() string { return "timetable_entries" }

func (m *TimetableEntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.TimetableEntryID == uuid.Nil {
		m.TimetableEntryID = uuid.New()
	}
	return nil
}
