// internals/features/academics/timetable/controller/timetable_entry_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	ttDTO "kampusku_backend/internals/features/academics/timetable/dto"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	ttService "kampusku_backend/internals/features/academics/timetable/service"
	helper "kampusku_backend/internals/helpers"
	helperAuth "kampusku_backend/internals/helpers/auth"
)

type TimetableEntryController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Conflicts *ttService.ConflictService
}

func NewTimetableEntryController(db *gorm.DB) *TimetableEntryController {
	return &TimetableEntryController{
		DB:        db,
		Validator: validator.New(),
		Conflicts: ttService.NewConflictService(db),
	}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}

// errBlockedByConflict signals the transaction closure aborted because the
// check found blocking conflicts; the report travels out of band.
var errBlockedByConflict = errors.New("blocked by conflict")

// POST /timetable/check-conflicts — dry run, no side effects.
func (ctl *TimetableEntryController) CheckConflicts(c *fiber.Ctx) error {
	var req ttDTO.CheckConflictsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	in, err := req.ToInput()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	report, err := ctl.Conflicts.Check(c.Context(), in)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "conflict check", report)
}

// POST /timetable/entries — check + insert inside one transaction so no
// competing write can slip between them; the partial unique indexes back
// that up at the storage layer.
func (ctl *TimetableEntryController) Create(c *fiber.Ctx) error {
	var req ttDTO.CreateTimetableEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := req.ToModel(helperAuth.UserIDPtrFromLocals(c))
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var report ttService.ConflictReport
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var err error
		report, err = ctl.Conflicts.CheckTx(tx, req.ToCheckInput(m))
		if err != nil {
			return err
		}
		if report.HasBlocking() {
			return errBlockedByConflict
		}
		if err := tx.Create(&m).Error; err != nil {
			if isDuplicateKey(err) {
				// a concurrent writer won the cell between check and insert
				return fiber.NewError(fiber.StatusConflict, "slot was taken by a concurrent booking")
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, errBlockedByConflict) {
			return helper.JsonErrorWithData(c, fiber.StatusConflict, "placement conflicts with existing entries", report)
		}
		if fe, ok := txErr.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}

	resp := ttDTO.CreateEntryResponse{Entry: m}
	for _, cf := range report.Conflicts {
		if cf.Severity == ttService.SeverityWarning {
			resp.Warnings = append(resp.Warnings, cf)
		}
	}
	return helper.JsonCreated(c, "timetable entry created", resp)
}

// PUT /timetable/entries/:id — same transaction discipline as Create; the
// entry's own id is excluded so it never flags itself.
func (ctl *TimetableEntryController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entry id is not a valid UUID")
	}

	var req ttDTO.UpdateTimetableEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m ttModel.TimetableEntryModel
	var report ttService.ConflictReport
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("timetable_entry_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "timetable entry not found")
			}
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}

		if m.TimetableEntryIsActive {
			var err error
			report, err = ctl.Conflicts.CheckTx(tx, ttService.CheckConflictsInput{
				BatchID:        m.TimetableEntryBatchID,
				FacultyID:      m.TimetableEntryFacultyID,
				TimeSlotID:     m.TimetableEntryTimeSlotID,
				DayOfWeek:      m.TimetableEntryDayOfWeek,
				Date:           m.TimetableEntryDate,
				EntryType:      m.TimetableEntryType,
				ExcludeEntryID: &id,
			})
			if err != nil {
				return err
			}
			if report.HasBlocking() {
				return errBlockedByConflict
			}
		}

		if err := tx.Save(&m).Error; err != nil {
			if isDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "slot was taken by a concurrent booking")
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, errBlockedByConflict) {
			return helper.JsonErrorWithData(c, fiber.StatusConflict, "placement conflicts with existing entries", report)
		}
		if fe, ok := txErr.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, txErr.Error())
	}
	return helper.JsonUpdated(c, "timetable entry updated", m)
}

// DELETE /timetable/entries/:id — deactivate, never hard delete: history
// behind attendance sessions must survive.
func (ctl *TimetableEntryController) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "entry id is not a valid UUID")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&ttModel.TimetableEntryModel{}).
		Where("timetable_entry_id = ? AND timetable_entry_is_active = ?", id, true).
		Update("timetable_entry_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "active timetable entry not found")
	}
	return helper.JsonDeleted(c, "timetable entry deactivated", fiber.Map{"timetable_entry_id": id})
}

// GET /timetable/entries
func (ctl *TimetableEntryController) List(c *fiber.Ctx) error {
	var q ttDTO.ListTimetableEntryQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p := helper.ResolvePaging(c, 50, 500)

	tx := ctl.DB.WithContext(c.Context()).Model(&ttModel.TimetableEntryModel{})
	if q.BatchID != nil {
		tx = tx.Where("timetable_entry_batch_id = ?", *q.BatchID)
	}
	if q.FacultyID != nil {
		tx = tx.Where("timetable_entry_faculty_id = ?", *q.FacultyID)
	}
	if q.TimeSlotID != nil {
		tx = tx.Where("timetable_entry_time_slot_id = ?", *q.TimeSlotID)
	}
	if q.DayOfWeek != nil {
		tx = tx.Where("timetable_entry_day_of_week = ?", *q.DayOfWeek)
	}
	if q.ActiveOnly == nil || *q.ActiveOnly {
		tx = tx.Where("timetable_entry_is_active = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []ttModel.TimetableEntryModel
	if err := tx.
		Order("timetable_entry_day_of_week ASC, timetable_entry_created_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "timetable entries", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
