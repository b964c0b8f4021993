// internals/features/academics/masterdata/model/time_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeSlotModel is a named, ordered interval of the teaching day, shared
// across all batches. Sort order is the canonical order used when the
// conflict detector proposes alternatives.
type TimeSlotModel struct {
	TimeSlotID uuid.UUID `json:"time_slot_id" gorm:"column:time_slot_id;type:uuid;primaryKey"`

	TimeSlotLabel     string `json:"time_slot_label"      gorm:"column:time_slot_label;type:varchar(40);not null"` // e.g. 09:30-10:30
	TimeSlotStartTime string `json:"time_slot_start_time" gorm:"column:time_slot_start_time;type:varchar(5);not null"` // HH:MM
	TimeSlotEndTime   string `json:"time_slot_end_time"   gorm:"column:time_slot_end_time;type:varchar(5);not null"`
	TimeSlotSortOrder int    `json:"time_slot_sort_order" gorm:"column:time_slot_sort_order;not null;index"`

	TimeSlotIsActive bool `json:"time_slot_is_active" gorm:"column:time_slot_is_active;not null;default:true"`

	TimeSlotCreatedAt time.Time      `json:"time_slot_created_at" gorm:"column:time_slot_created_at;autoCreateTime"`
	TimeSlotUpdatedAt time.Time      `json:"time_slot_updated_at" gorm:"column:time_slot_updated_at;autoUpdateTime"`
	TimeSlotDeletedAt gorm.DeletedAt `json:"time_slot_deleted_at,omitempty" gorm:"column:time_slot_deleted_at;index"`
}

func (TimeSlotModel) TableName() string { return "time_slots" }

func (m *TimeSlotModel) BeforeCreate(tx *gorm.DB) error {
	if m.TimeSlotID == uuid.Nil {
		m.TimeSlotID = uuid.New()
	}
	return nil
}
