// internals/features/academics/masterdata/model/department_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentModel struct {
	DepartmentID   uuid.UUID `json:"department_id"   gorm:"column:department_id;type:uuid;primaryKey"`
	DepartmentCode string    `json:"department_code" gorm:"column:department_code;type:varchar(20);not null"`
	DepartmentName string    `json:"department_name" gorm:"column:department_name;type:varchar(160);not null"`

	DepartmentIsActive bool `json:"department_is_active" gorm:"column:department_is_active;not null;default:true"`

	DepartmentCreatedAt time.Time      `json:"department_created_at" gorm:"column:department_created_at;autoCreateTime"`
	DepartmentUpdatedAt time.Time      `json:"department_updated_at" gorm:"column:department_updated_at;autoUpdateTime"`
	DepartmentDeletedAt gorm.DeletedAt `json:"department_deleted_at,omitempty" gorm:"column:department_deleted_at;index"`
}

func (DepartmentModel) TableName() string { return "departments" }

func (m *DepartmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.DepartmentID == uuid.Nil {
		m.DepartmentID = uuid.New()
	}
	return nil
}
