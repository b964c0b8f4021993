// internals/features/academics/calendar/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	calCtrl "kampusku_backend/internals/features/academics/calendar/controller"
)

// CalendarAdminRoutes mounts the mutating calendar endpoints (admin group).
func CalendarAdminRoutes(r fiber.Router, db *gorm.DB) {
	holidayCtl := calCtrl.NewHolidayController(db)
	examCtl := calCtrl.NewExamPeriodController(db)

	r.Post("/holidays", holidayCtl.Create)
	r.Put("/holidays/:id", holidayCtl.Update)
	r.Delete("/holidays/:id", holidayCtl.Delete)

	r.Post("/academic-calendars", examCtl.CreateCalendar)
	r.Post("/exam-periods", examCtl.Create)
	r.Put("/exam-periods/:id", examCtl.Update)
	r.Delete("/exam-periods/:id", examCtl.Delete)
}
