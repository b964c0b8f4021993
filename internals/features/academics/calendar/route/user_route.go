// internals/features/academics/calendar/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	calCtrl "kampusku_backend/internals/features/academics/calendar/controller"
)

// CalendarUserRoutes mounts the read-only calendar lookups.
func CalendarUserRoutes(r fiber.Router, db *gorm.DB) {
	holidayCtl := calCtrl.NewHolidayController(db)
	examCtl := calCtrl.NewExamPeriodController(db)

	r.Get("/holidays", holidayCtl.List)
	r.Get("/academic-calendars", examCtl.ListCalendars)
	r.Get("/exam-periods", examCtl.List)
}
