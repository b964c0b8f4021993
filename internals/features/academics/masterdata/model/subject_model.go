// internals/features/academics/masterdata/model/subject_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID      uuid.UUID `json:"subject_id"       gorm:"column:subject_id;type:uuid;primaryKey"`
	SubjectBatchID uuid.UUID `json:"subject_batch_id" gorm:"column:subject_batch_id;type:uuid;not null;index"`

	SubjectCode string `json:"subject_code" gorm:"column:subject_code;type:varchar(20);not null"`
	SubjectName string `json:"subject_name" gorm:"column:subject_name;type:varchar(160);not null"`

	SubjectIsActive bool `json:"subject_is_active" gorm:"column:subject_is_active;not null;default:true"`

	SubjectCreatedAt time.Time      `json:"subject_created_at" gorm:"column:subject_created_at;autoCreateTime"`
	SubjectUpdatedAt time.Time      `json:"subject_updated_at" gorm:"column:subject_updated_at;autoUpdateTime"`
	SubjectDeletedAt gorm.DeletedAt `json:"subject_deleted_at,omitempty" gorm:"column:subject_deleted_at;index"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}
