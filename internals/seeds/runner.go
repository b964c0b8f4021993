package seeds

import (
	"gorm.io/gorm"

	masterdata "kampusku_backend/internals/seeds/masterdata"
)

// RunAllSeeds loads the baseline master data. Every seeder is idempotent,
// so reruns on an already-seeded database are safe.
func RunAllSeeds(db *gorm.DB) {
	masterdata.SeedDepartmentsFromJSON(db, "internals/seeds/masterdata/data_departments.json")
	masterdata.SeedTimeSlotsFromJSON(db, "internals/seeds/masterdata/data_time_slots.json")
}
