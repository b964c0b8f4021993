// internals/features/academics/timetable/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ttCtrl "kampusku_backend/internals/features/academics/timetable/controller"
)

// TimetableAdminRoutes mounts the mutating timetable endpoints.
func TimetableAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := ttCtrl.NewTimetableEntryController(db)

	r.Post("/timetable/entries", ctl.Create)
	r.Put("/timetable/entries/:id", ctl.Update)
	r.Delete("/timetable/entries/:id", ctl.Deactivate)
}
