// internals/features/academics/calendar/controller/exam_period_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	calDTO "kampusku_backend/internals/features/academics/calendar/dto"
	calModel "kampusku_backend/internals/features/academics/calendar/model"
	calService "kampusku_backend/internals/features/academics/calendar/service"
	helper "kampusku_backend/internals/helpers"
)

type ExamPeriodController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Calendar  *calService.CalendarService
}

func NewExamPeriodController(db *gorm.DB) *ExamPeriodController {
	return &ExamPeriodController{
		DB:        db,
		Validator: validator.New(),
		Calendar:  calService.NewCalendarService(db),
	}
}

// POST /academic-calendars
func (ctl *ExamPeriodController) CreateCalendar(c *fiber.Ctx) error {
	var req calDTO.CreateAcademicCalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if !m.AcademicCalendarSemesterStart.Before(m.AcademicCalendarSemesterEnd) {
		return helper.JsonError(c, fiber.StatusBadRequest, "semester start must be before semester end")
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "academic calendar created", m)
}

// GET /academic-calendars?department_id=
func (ctl *ExamPeriodController) ListCalendars(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.Context()).Model(&calModel.AcademicCalendarModel{})
	if v := strings.TrimSpace(c.Query("department_id")); v != "" {
		depID, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id is not a valid UUID")
		}
		tx = tx.Where("academic_calendar_department_id = ?", depID)
	}
	var rows []calModel.AcademicCalendarModel
	if err := tx.Order("academic_calendar_semester_start DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "academic calendars", rows)
}

// POST /exam-periods
func (ctl *ExamPeriodController) Create(c *fiber.Ctx) error {
	var req calDTO.CreateExamPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := ctl.Calendar.ValidateExamPeriod(c.Context(), &m, nil); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "exam period created", m)
}

// GET /exam-periods?calendar_id=
func (ctl *ExamPeriodController) List(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.Context()).Model(&calModel.ExamPeriodModel{})
	if v := strings.TrimSpace(c.Query("calendar_id")); v != "" {
		calID, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "calendar_id is not a valid UUID")
		}
		tx = tx.Where("exam_period_calendar_id = ?", calID)
	}
	var rows []calModel.ExamPeriodModel
	if err := tx.Order("exam_period_start_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "exam periods", rows)
}

// PUT /exam-periods/:id
func (ctl *ExamPeriodController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam period id is not a valid UUID")
	}

	var req calDTO.UpdateExamPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m calModel.ExamPeriodModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("exam_period_id = ?", id).
		Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "exam period not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	req.Apply(&m)
	if err := ctl.Calendar.ValidateExamPeriod(c.Context(), &m, &id); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "exam period updated", m)
}

// DELETE /exam-periods/:id (soft delete)
func (ctl *ExamPeriodController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam period id is not a valid UUID")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("exam_period_id = ?", id).
		Delete(&calModel.ExamPeriodModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "exam period not found")
	}
	return helper.JsonDeleted(c, "exam period deleted", fiber.Map{"exam_period_id": id})
}
