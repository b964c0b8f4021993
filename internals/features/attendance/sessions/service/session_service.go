// internals/features/attendance/sessions/service/session_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attModel "kampusku_backend/internals/features/attendance/sessions/model"
)

// SessionService owns the one-session-per-(batch, subject, date) rule.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// GetOrCreate is an atomic find-or-create keyed on the unique triple:
// INSERT .. ON CONFLICT DO NOTHING, then fetch. Concurrent first-time marks
// for the same key land on the same row, never two.
func (s *SessionService) GetOrCreate(ctx context.Context, batchID, subjectID uuid.UUID, date time.Time, actor *uuid.UUID) (*attModel.AttendanceSessionModel, error) {
	m := attModel.AttendanceSessionModel{
		AttendanceSessionBatchID:   batchID,
		AttendanceSessionSubjectID: subjectID,
		AttendanceSessionDate:      date,
		AttendanceSessionCreatedBy: actor,
	}
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_session_batch_id"},
				{Name: "attendance_session_subject_id"},
				{Name: "attendance_session_date"},
			},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "attendance_session_deleted_at IS NULL"},
			}},
			DoNothing: true,
		}).
		Create(&m).Error; err != nil {
		return nil, err
	}

	// Always re-fetch: on conflict the insert is a no-op and m carries a
	// throwaway id from BeforeCreate.
	var out attModel.AttendanceSessionModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_session_batch_id = ? AND attendance_session_subject_id = ? AND attendance_session_date = ?",
			batchID, subjectID, date).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Find returns the session for the key, or gorm.ErrRecordNotFound.
func (s *SessionService) Find(ctx context.Context, batchID, subjectID uuid.UUID, date time.Time) (*attModel.AttendanceSessionModel, error) {
	var out attModel.AttendanceSessionModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_session_batch_id = ? AND attendance_session_subject_id = ? AND attendance_session_date = ?",
			batchID, subjectID, date).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
