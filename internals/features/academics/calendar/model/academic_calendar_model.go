// internals/features/academics/calendar/model/academic_calendar_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicCalendarModel frames one semester for a department. Exam periods
// must fall inside its range.
type AcademicCalendarModel struct {
	AcademicCalendarID           uuid.UUID `json:"academic_calendar_id"            gorm:"column:academic_calendar_id;type:uuid;primaryKey"`
	AcademicCalendarDepartmentID uuid.UUID `json:"academic_calendar_department_id" gorm:"column:academic_calendar_department_id;type:uuid;not null;index"`

	AcademicCalendarName          string    `json:"academic_calendar_name"           gorm:"column:academic_calendar_name;type:varchar(160);not null"`
	AcademicCalendarSemesterStart time.Time `json:"academic_calendar_semester_start" gorm:"column:academic_calendar_semester_start;type:date;not null"`
	AcademicCalendarSemesterEnd   time.Time `json:"academic_calendar_semester_end"   gorm:"column:academic_calendar_semester_end;type:date;not null"`

	AcademicCalendarIsActive bool `json:"academic_calendar_is_active" gorm:"column:academic_calendar_is_active;not null;default:true"`

	AcademicCalendarCreatedAt time.Time      `json:"academic_calendar_created_at" gorm:"column:academic_calendar_created_at;autoCreateTime"`
	AcademicCalendarUpdatedAt time.Time      `json:"academic_calendar_updated_at" gorm:"column:academic_calendar_updated_at;autoUpdateTime"`
	AcademicCalendarDeletedAt gorm.DeletedAt `json:"academic_calendar_deleted_at,omitempty" gorm:"column:academic_calendar_deleted_at;index"`
}

func (AcademicCalendarModel) TableName() string { return "academic_calendars" }

func (m *AcademicCalendarModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicCalendarID == uuid.Nil {
		m.AcademicCalendarID = uuid.New()
	}
	return nil
}
