// internals/features/academics/masterdata/model/faculty_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacultyModel struct {
	FacultyID           uuid.UUID `json:"faculty_id"            gorm:"column:faculty_id;type:uuid;primaryKey"`
	FacultyDepartmentID uuid.UUID `json:"faculty_department_id" gorm:"column:faculty_department_id;type:uuid;not null;index"`

	FacultyName string `json:"faculty_name" gorm:"column:faculty_name;type:varchar(160);not null"`

	FacultyIsActive bool `json:"faculty_is_active" gorm:"column:faculty_is_active;not null;default:true"`

	FacultyCreatedAt time.Time      `json:"faculty_created_at" gorm:"column:faculty_created_at;autoCreateTime"`
	FacultyUpdatedAt time.Time      `json:"faculty_updated_at" gorm:"column:faculty_updated_at;autoUpdateTime"`
	FacultyDeletedAt gorm.DeletedAt `json:"faculty_deleted_at,omitempty" gorm:"column:faculty_deleted_at;index"`
}

func (FacultyModel) TableName() string { return "faculties" }

func (m *FacultyModel) BeforeCreate(tx *gorm.DB) error {
	if m.FacultyID == uuid.Nil {
		m.FacultyID = uuid.New()
	}
	return nil
}
