// internals/features/academics/masterdata/controller/masterdata_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	masterModel "kampusku_backend/internals/features/academics/masterdata/model"
	helper "kampusku_backend/internals/helpers"
)

// Master data is owned elsewhere; this controller only exposes the read
// surface the scheduling/attendance UIs need.
type MasterDataController struct {
	DB *gorm.DB
}

func NewMasterDataController(db *gorm.DB) *MasterDataController {
	return &MasterDataController{DB: db}
}

// GET /time-slots
func (ctl *MasterDataController) ListTimeSlots(c *fiber.Ctx) error {
	var rows []masterModel.TimeSlotModel
	q := ctl.DB.WithContext(c.Context()).
		Order("time_slot_sort_order ASC")
	if strings.EqualFold(strings.TrimSpace(c.Query("active_only", "true")), "true") {
		q = q.Where("time_slot_is_active = ?", true)
	}
	if err := q.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "time slots", rows)
}

// GET /batches
func (ctl *MasterDataController) ListBatches(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctl.DB.WithContext(c.Context()).Model(&masterModel.BatchModel{})
	if dep := strings.TrimSpace(c.Query("department_id")); dep != "" {
		depID, err := uuid.Parse(dep)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id is not a valid UUID")
		}
		tx = tx.Where("batch_department_id = ?", depID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []masterModel.BatchModel
	if err := tx.Order("batch_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "batches", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /batches/:id/students — active students only, the markable set.
func (ctl *MasterDataController) ListBatchStudents(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "batch id is not a valid UUID")
	}

	var rows []masterModel.StudentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("student_batch_id = ? AND student_is_active = ?", batchID, true).
		Order("student_roll_no ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "active students", rows)
}
