// internals/features/academics/calendar/model/holiday_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HolidayModel is a non-teaching date. A NULL department id means the
// holiday is university-wide.
type HolidayModel struct {
	HolidayID           uuid.UUID  `json:"holiday_id"            gorm:"column:holiday_id;type:uuid;primaryKey"`
	HolidayDepartmentID *uuid.UUID `json:"holiday_department_id" gorm:"column:holiday_department_id;type:uuid;index"`

	HolidayDate time.Time `json:"holiday_date" gorm:"column:holiday_date;type:date;not null;index"`
	HolidayName string    `json:"holiday_name" gorm:"column:holiday_name;type:varchar(200);not null"`

	HolidayIsActive bool `json:"holiday_is_active" gorm:"column:holiday_is_active;not null;default:true"`

	HolidayCreatedAt time.Time      `json:"holiday_created_at" gorm:"column:holiday_created_at;autoCreateTime"`
	HolidayUpdatedAt time.Time      `json:"holiday_updated_at" gorm:"column:holiday_updated_at;autoUpdateTime"`
	HolidayDeletedAt gorm.DeletedAt `json:"holiday_deleted_at,omitempty" gorm:"column:holiday_deleted_at;index"`
}

func (HolidayModel) TableName() string { return "holidays" }

func (m *HolidayModel) BeforeCreate(tx *gorm.DB) error {
	if m.HolidayID == uuid.Nil {
		m.HolidayID = uuid.New()
	}
	return nil
}
