// internals/features/academics/calendar/model/exam_period_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExamPeriodModel is a blackout window inside a department's academic
// calendar. When block_regular_classes is set, regular entries may not be
// placed on dates inside the range.
type ExamPeriodModel struct {
	ExamPeriodID         uuid.UUID `json:"exam_period_id"          gorm:"column:exam_period_id;type:uuid;primaryKey"`
	ExamPeriodCalendarID uuid.UUID `json:"exam_period_calendar_id" gorm:"column:exam_period_calendar_id;type:uuid;not null;index"`

	ExamPeriodName      string    `json:"exam_period_name"       gorm:"column:exam_period_name;type:varchar(160);not null"`
	ExamPeriodStartDate time.Time `json:"exam_period_start_date" gorm:"column:exam_period_start_date;type:date;not null"`
	ExamPeriodEndDate   time.Time `json:"exam_period_end_date"   gorm:"column:exam_period_end_date;type:date;not null"`

	ExamPeriodBlockRegularClasses bool `json:"exam_period_block_regular_classes" gorm:"column:exam_period_block_regular_classes;not null;default:true"`
	ExamPeriodAllowReviewClasses  bool `json:"exam_period_allow_review_classes"  gorm:"column:exam_period_allow_review_classes;not null;default:false"`

	ExamPeriodCreatedAt time.Time      `json:"exam_period_created_at" gorm:"column:exam_period_created_at;autoCreateTime"`
	ExamPeriodUpdatedAt time.Time      `json:"exam_period_updated_at" gorm:"column:exam_period_updated_at;autoUpdateTime"`
	ExamPeriodDeletedAt gorm.DeletedAt `json:"exam_period_deleted_at,omitempty" gorm:"column:exam_period_deleted_at;index"`

	// Optional relation to the parent calendar.
	Calendar *AcademicCalendarModel `json:"-" gorm:"foreignKey:ExamPeriodCalendarID;references:AcademicCalendarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ExamPeriodModel) TableName() string { return "exam_periods" }

func (m *ExamPeriodModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExamPeriodID == uuid.Nil {
		m.ExamPeriodID = uuid.New()
	}
	return nil
}
