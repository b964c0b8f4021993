// internals/features/academics/masterdata/model/batch_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BatchModel struct {
	BatchID           uuid.UUID `json:"batch_id"            gorm:"column:batch_id;type:uuid;primaryKey"`
	BatchDepartmentID uuid.UUID `json:"batch_department_id" gorm:"column:batch_department_id;type:uuid;not null;index"`

	BatchName         string `json:"batch_name"          gorm:"column:batch_name;type:varchar(160);not null"`
	BatchAcademicYear string `json:"batch_academic_year" gorm:"column:batch_academic_year;type:varchar(20);not null"` // e.g. 2025-2026

	BatchIsActive bool `json:"batch_is_active" gorm:"column:batch_is_active;not null;default:true"`

	BatchCreatedAt time.Time      `json:"batch_created_at" gorm:"column:batch_created_at;autoCreateTime"`
	BatchUpdatedAt time.Time      `json:"batch_updated_at" gorm:"column:batch_updated_at;autoUpdateTime"`
	BatchDeletedAt gorm.DeletedAt `json:"batch_deleted_at,omitempty" gorm:"column:batch_deleted_at;index"`
}

func (BatchModel) TableName() string { return "batches" }

func (m *BatchModel) BeforeCreate(tx *gorm.DB) error {
	if m.BatchID == uuid.Nil {
		m.BatchID = uuid.New()
	}
	return nil
}
