package masterdata

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"kampusku_backend/internals/features/academics/masterdata/model"
)

type DepartmentSeed struct {
	DepartmentCode string `json:"department_code"`
	DepartmentName string `json:"department_name"`
}

func SeedDepartmentsFromJSON(db *gorm.DB, filePath string) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("seed departments: read %s: %v", filePath, err)
	}

	var depts []DepartmentSeed
	if err := json.Unmarshal(file, &depts); err != nil {
		log.Fatalf("seed departments: decode %s: %v", filePath, err)
	}

	for _, d := range depts {
		var existing model.DepartmentModel
		if err := db.Where("department_code = ?", d.DepartmentCode).First(&existing).Error; err == nil {
			continue
		}

		row := model.DepartmentModel{
			DepartmentCode:     d.DepartmentCode,
			DepartmentName:     d.DepartmentName,
			DepartmentIsActive: true,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("seed departments: insert %s: %v", d.DepartmentCode, err)
		} else {
			log.Printf("seed departments: inserted %s", d.DepartmentCode)
		}
	}
}
