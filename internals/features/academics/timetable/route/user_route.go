// internals/features/academics/timetable/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ttCtrl "kampusku_backend/internals/features/academics/timetable/controller"
)

// TimetableUserRoutes mounts the read-only timetable surface plus the
// side-effect-free conflict dry run.
func TimetableUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := ttCtrl.NewTimetableEntryController(db)

	r.Get("/timetable/entries", ctl.List)
	r.Post("/timetable/check-conflicts", ctl.CheckConflicts)
}
