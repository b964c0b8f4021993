// internals/features/academics/calendar/controller/holiday_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	calDTO "kampusku_backend/internals/features/academics/calendar/dto"
	calModel "kampusku_backend/internals/features/academics/calendar/model"
	helper "kampusku_backend/internals/helpers"
)

type HolidayController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewHolidayController(db *gorm.DB) *HolidayController {
	return &HolidayController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /holidays
func (ctl *HolidayController) Create(c *fiber.Ctx) error {
	var req calDTO.CreateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "holiday created", m)
}

// GET /holidays?date_from=&date_to=&department_id=
func (ctl *HolidayController) List(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.Context()).Model(&calModel.HolidayModel{})

	if v := strings.TrimSpace(c.Query("date_from")); v != "" {
		t, ok := helper.ParseDateYYYYMMDD(v)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_from invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("holiday_date >= ?", t)
	}
	if v := strings.TrimSpace(c.Query("date_to")); v != "" {
		t, ok := helper.ParseDateYYYYMMDD(v)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_to invalid format, expected YYYY-MM-DD")
		}
		tx = tx.Where("holiday_date <= ?", t)
	}
	if v := strings.TrimSpace(c.Query("department_id")); v != "" {
		depID, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id is not a valid UUID")
		}
		tx = tx.Where("(holiday_department_id IS NULL OR holiday_department_id = ?)", depID)
	}

	var rows []calModel.HolidayModel
	if err := tx.Order("holiday_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "holidays", rows)
}

// PUT /holidays/:id
func (ctl *HolidayController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "holiday id is not a valid UUID")
	}

	var req calDTO.UpdateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m calModel.HolidayModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("holiday_id = ?", id).
		Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "holiday not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Past holidays are immutable.
	if m.HolidayDate.Before(helper.NormalizeDate(time.Now().UTC())) {
		return helper.JsonError(c, fiber.StatusConflict, "past holidays cannot be modified")
	}

	req.Apply(&m)
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "holiday updated", m)
}

// DELETE /holidays/:id (soft delete)
func (ctl *HolidayController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "holiday id is not a valid UUID")
	}

	var m calModel.HolidayModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("holiday_id = ?", id).
		Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "holiday not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m.HolidayDate.Before(helper.NormalizeDate(time.Now().UTC())) {
		return helper.JsonError(c, fiber.StatusConflict, "past holidays cannot be deleted")
	}

	if err := ctl.DB.WithContext(c.Context()).Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "holiday deleted", fiber.Map{"holiday_id": id})
}
