// internals/features/attendance/sessions/model/attendance_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceSessionModel is the unit of "a subject met with a batch on a
// date". The (batch, subject, date) triple is unique among live rows;
// creation is always an atomic find-or-create on that key.
type AttendanceSessionModel struct {
	AttendanceSessionID uuid.UUID `json:"attendance_session_id" gorm:"column:attendance_session_id;type:uuid;primaryKey"`

	AttendanceSessionBatchID   uuid.UUID `json:"attendance_session_batch_id"   gorm:"column:attendance_session_batch_id;type:uuid;not null;index:idx_attendance_sessions_batch"`
	AttendanceSessionSubjectID uuid.UUID `json:"attendance_session_subject_id" gorm:"column:attendance_session_subject_id;type:uuid;not null;index:idx_attendance_sessions_subject"`
	AttendanceSessionDate      time.Time `json:"attendance_session_date"       gorm:"column:attendance_session_date;type:date;not null;index"`

	// Set by a finished full-day bulk operation; a reset may reopen.
	AttendanceSessionIsCompleted bool `json:"attendance_session_is_completed" gorm:"column:attendance_session_is_completed;not null;default:false"`

	AttendanceSessionCreatedBy *uuid.UUID `json:"attendance_session_created_by" gorm:"column:attendance_session_created_by;type:uuid"`
	AttendanceSessionMarkedBy  *uuid.UUID `json:"attendance_session_marked_by"  gorm:"column:attendance_session_marked_by;type:uuid"`

	// Free-text audit trail; partial updates and resets append here.
	AttendanceSessionNotes string `json:"attendance_session_notes" gorm:"column:attendance_session_notes;type:text;not null;default:''"`

	AttendanceSessionCreatedAt time.Time      `json:"attendance_session_created_at" gorm:"column:attendance_session_created_at;autoCreateTime"`
	AttendanceSessionUpdatedAt time.Time      `json:"attendance_session_updated_at" gorm:"column:attendance_session_updated_at;autoUpdateTime"`
	AttendanceSessionDeletedAt gorm.DeletedAt `json:"attendance_session_deleted_at,omitempty" gorm:"column:attendance_session_deleted_at;index"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

func (m *AttendanceSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceSessionID == uuid.Nil {
		m.AttendanceSessionID = uuid.New()
	}
	return nil
}
