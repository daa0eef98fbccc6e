package main

import (
	"log"

	"ai-writing-be/internal/config"
	"ai-writing-be/internal/model"
	"ai-writing-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Driver != database.DriverPostgres && cfg.Database.Driver != database.DriverSqlite {
		log.Fatalf("Error: nothing to migrate for DB_DRIVER=%q", cfg.Database.Driver)
	}

	db, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	models := model.All()
	log.Printf("Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Migration completed.")
}
