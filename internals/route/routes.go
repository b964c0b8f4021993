// internals/route/routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/configs"
	"kampusku_backend/internals/constants"
	calRoute "kampusku_backend/internals/features/academics/calendar/route"
	masterRoute "kampusku_backend/internals/features/academics/masterdata/route"
	ttRoute "kampusku_backend/internals/features/academics/timetable/route"
	attRoute "kampusku_backend/internals/features/attendance/sessions/route"
	"kampusku_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the whole API surface.
//
//	/api/u — any authenticated user (reads, dry runs)
//	/api/a — admin-only mutations
//
// Attendance writes live under /api/u because faculty mark their own
// classes; the route itself gates on the writer roles.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authJWT := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	api := app.Group("/api")

	user := api.Group("/u", authJWT)
	masterRoute.MasterDataUserRoutes(user, db)
	calRoute.CalendarUserRoutes(user, db)
	ttRoute.TimetableUserRoutes(user, db)
	attRoute.AttendanceUserRoutes(user, db)
	attRoute.AttendanceTeacherRoutes(user, db)

	admin := api.Group("/a", authJWT, auth.RequireRoles(constants.RoleAdmin))
	calRoute.CalendarAdminRoutes(admin, db)
	ttRoute.TimetableAdminRoutes(admin, db)
}
