package masterdata

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"kampusku_backend/internals/features/academics/masterdata/model"
)

type TimeSlotSeed struct {
	TimeSlotLabel     string `json:"time_slot_label"`
	TimeSlotStartTime string `json:"time_slot_start_time"`
	TimeSlotEndTime   string `json:"time_slot_end_time"`
	TimeSlotSortOrder int    `json:"time_slot_sort_order"`
}

func SeedTimeSlotsFromJSON(db *gorm.DB, filePath string) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("seed time slots: read %s: %v", filePath, err)
	}

	var slots []TimeSlotSeed
	if err := json.Unmarshal(file, &slots); err != nil {
		log.Fatalf("seed time slots: decode %s: %v", filePath, err)
	}

	for _, s := range slots {
		var existing model.TimeSlotModel
		if err := db.Where("time_slot_label = ?", s.TimeSlotLabel).First(&existing).Error; err == nil {
			continue
		}

		row := model.TimeSlotModel{
			TimeSlotLabel:     s.TimeSlotLabel,
			TimeSlotStartTime: s.TimeSlotStartTime,
			TimeSlotEndTime:   s.TimeSlotEndTime,
			TimeSlotSortOrder: s.TimeSlotSortOrder,
			TimeSlotIsActive:  true,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("seed time slots: insert %s: %v", s.TimeSlotLabel, err)
		} else {
			log.Printf("seed time slots: inserted %s", s.TimeSlotLabel)
		}
	}
}
