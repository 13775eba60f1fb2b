package migration

import (
	"QR-Menu-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"menu", &entities.Menu{}},
		{"menu version", &entities.MenuVersion{}},
		{"section", &entities.Section{}},
		{"product", &entities.Product{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Printf("Error migrating %s database: %v", m.name, err)
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}

	log.Println("Database migration complete")
	return nil
}
