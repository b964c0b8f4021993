// internals/features/academics/masterdata/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	masterCtrl "kampusku_backend/internals/features/academics/masterdata/controller"
)

// MasterDataUserRoutes mounts the read-only master data lookups on an
// authenticated group.
func MasterDataUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := masterCtrl.NewMasterDataController(db)

	r.Get("/time-slots", ctl.ListTimeSlots)
	r.Get("/batches", ctl.ListBatches)
	r.Get("/batches/:id/students", ctl.ListBatchStudents)
}
