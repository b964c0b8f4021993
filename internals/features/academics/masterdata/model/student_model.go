// internals/features/academics/masterdata/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID      uuid.UUID `json:"student_id"       gorm:"column:student_id;type:uuid;primaryKey"`
	StudentBatchID uuid.UUID `json:"student_batch_id" gorm:"column:student_batch_id;type:uuid;not null;index"`

	StudentRollNo string `json:"student_roll_no" gorm:"column:student_roll_no;type:varchar(40);not null"`
	StudentName   string `json:"student_name"    gorm:"column:student_name;type:varchar(160);not null"`

	// Only active students may receive attendance records.
	StudentIsActive bool `json:"student_is_active" gorm:"column:student_is_active;not null;default:true"`

	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;autoCreateTime"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;autoUpdateTime"`
	StudentDeletedAt gorm.DeletedAt `json:"student_deleted_at,omitempty" gorm:"column:student_deleted_at;index"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
