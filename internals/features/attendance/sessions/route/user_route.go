// internals/features/attendance/sessions/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtrl "kampusku_backend/internals/features/attendance/sessions/controller"
)

// AttendanceUserRoutes mounts the read-only attendance views.
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := attCtrl.NewAttendanceController(db)

	r.Get("/attendance/view", ctl.GetView)
	r.Get("/attendance/sessions", ctl.ListSessions)
}
