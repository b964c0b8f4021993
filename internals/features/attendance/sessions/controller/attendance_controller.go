// internals/features/attendance/sessions/controller/attendance_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attDTO "kampusku_backend/internals/features/attendance/sessions/dto"
	attModel "kampusku_backend/internals/features/attendance/sessions/model"
	attService "kampusku_backend/internals/features/attendance/sessions/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Ledger    *attService.LedgerService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		Validator: validator.New(),
		Ledger:    attService.NewLedgerService(db),
	}
}

// POST /attendance/mark-bulk — mark one slot or the whole day. Per-student
// failures are reported in the counts, not turned into a request error.
func (ctl *AttendanceController) MarkBulk(c *fiber.Ctx) error {
	var req attDTO.MarkBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	in, err := req.ToInput(helperAuth.UserIDPtrFromLocals(c))
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	res, err := ctl.Ledger.MarkBulk(c.Context(), in)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "attendance marked", res)
}

// POST /attendance/reset
func (ctl *AttendanceController) Reset(c *fiber.Ctx) error {
	var req attDTO.ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	in, err := req.ToInput(helperAuth.UserIDPtrFromLocals(c))
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	res, err := ctl.Ledger.Reset(c.Context(), in)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "attendance reset", res)
}

// GET /attendance/view?batch_id=&subject_id=&date= — the full-day status
// is derived from the slot maps on every read, never read back from a
// stored aggregate.
func (ctl *AttendanceController) GetView(c *fiber.Ctx) error {
	var q attDTO.AttendanceViewQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	date, ok := helper.ParseDateYYYYMMDD(q.Date)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "date invalid format, expected YYYY-MM-DD")
	}

	view, err := ctl.Ledger.GetAttendanceView(c.Context(), q.BatchID, q.SubjectID, date)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "attendance view", view)
}

// GET /attendance/sessions
func (ctl *AttendanceController) ListSessions(c *fiber.Ctx) error {
	var q attDTO.ListSessionsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p := helper.ResolvePaging(c, 50, 500)

	tx := ctl.DB.WithContext(c.Context()).Model(&attModel.AttendanceSessionModel{})
	if q.BatchID != nil {
		tx = tx.Where("attendance_session_batch_id = ?", *q.BatchID)
	}
	if q.SubjectID != nil {
		tx = tx.Where("attendance_session_subject_id = ?", *q.SubjectID)
	}
	if q.DateFrom != nil {
		if from, ok := helper.ParseDateYYYYMMDD(*q.DateFrom); ok {
			tx = tx.Where("attendance_session_date >= ?", from)
		}
	}
	if q.DateTo != nil {
		if to, ok := helper.ParseDateYYYYMMDD(*q.DateTo); ok {
			tx = tx.Where("attendance_session_date <= ?", to)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []attModel.AttendanceSessionModel
	if err := tx.
		Order("attendance_session_date DESC, attendance_session_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "attendance sessions", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
