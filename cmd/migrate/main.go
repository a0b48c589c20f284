package main

import (
	"os"

	"report-automation-be/internal/config"
	"report-automation-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	color.Cyan("Migrating %s database", cfg.Database.Driver)

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// 3. Tables, indexes, the cascading foreign key and the decision check
	if err := database.Migrate(db); err != nil {
		color.Red("Migration failed: %v", err)
		os.Exit(1)
	}
	color.Green("Tables reports and answers are up to date")

	// 4. Working folders
	if err := cfg.EnsureDirectories(); err != nil {
		color.Red("Failed to create working folders: %v", err)
		os.Exit(1)
	}
	color.Green("Folders ready: %s, %s, %s", cfg.Storage.FormsDir, cfg.Storage.ReportsDir, cfg.Storage.TemplatesDir)
}
