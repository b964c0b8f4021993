// internals/features/attendance/sessions/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceMedical AttendanceStatus = "medical"
	AttendanceExcused AttendanceStatus = "excused"

	// AttendanceMixed is aggregate-only: the resolver returns it when the
	// per-slot statuses disagree and nothing dominates. It is never stored
	// in a slot map.
	AttendanceMixed AttendanceStatus = "mixed"
)

// Valid reports whether s may be written into a slot map.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceMedical, AttendanceExcused:
		return true
	default:
		return false
	}
}

// SlotStatusMap keys are time-slot UUID strings. Stored as a typed JSONB
// column, not stringified into a notes field.
type SlotStatusMap map[string]AttendanceStatus

// AttendanceRecordModel is one row per (session, student). The overall
// status is a legacy compatibility shim; every read path derives the
// full-day status from the slot map instead.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `json:"attendance_record_id" gorm:"column:attendance_record_id;type:uuid;primaryKey"`

	AttendanceRecordSessionID uuid.UUID `json:"attendance_record_session_id" gorm:"column:attendance_record_session_id;type:uuid;not null;index:idx_attendance_records_session"`
	AttendanceRecordStudentID uuid.UUID `json:"attendance_record_student_id" gorm:"column:attendance_record_student_id;type:uuid;not null;index:idx_attendance_records_student"`

	AttendanceRecordOverallStatus AttendanceStatus                  `json:"attendance_record_overall_status" gorm:"column:attendance_record_overall_status;type:varchar(16);not null;default:absent"`
	AttendanceRecordSlotStatuses  datatypes.JSONType[SlotStatusMap] `json:"attendance_record_slot_statuses"  gorm:"column:attendance_record_slot_statuses"`

	AttendanceRecordMarkedBy *uuid.UUID `json:"attendance_record_marked_by" gorm:"column:attendance_record_marked_by;type:uuid"`

	AttendanceRecordCreatedAt time.Time      `json:"attendance_record_created_at" gorm:"column:attendance_record_created_at;autoCreateTime"`
	AttendanceRecordUpdatedAt time.Time      `json:"attendance_record_updated_at" gorm:"column:attendance_record_updated_at;autoUpdateTime"`
	AttendanceRecordDeletedAt gorm.DeletedAt `json:"attendance_record_deleted_at,omitempty" gorm:"column:attendance_record_deleted_at;index"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

func (m *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceRecordID == uuid.Nil {
		m.AttendanceRecordID = uuid.New()
	}
	return nil
}
