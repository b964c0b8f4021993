// internals/features/attendance/sessions/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	attCtrl "kampusku_backend/internals/features/attendance/sessions/controller"
	"kampusku_backend/internals/middlewares"
	"kampusku_backend/internals/middlewares/auth"
)

// AttendanceTeacherRoutes mounts the mutating ledger endpoints. Marking
// and resets are gated to faculty and admin and ride the bulk-write
// limiter since one request can fan out to hundreds of rows.
func AttendanceTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := attCtrl.NewAttendanceController(db)

	writers := auth.RequireRoles(constants.AttendanceWriterRoles...)

	r.Post("/attendance/mark-bulk", writers, middlewares.BulkWriteRateLimiter(), ctl.MarkBulk)
	r.Post("/attendance/reset", writers, middlewares.BulkWriteRateLimiter(), ctl.Reset)
}
