package database

import (
	"fmt"

	"websewa_backend/internal/config"
	"websewa_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm initializes GORM with the DSN from the loaded config.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Membership{},
		&models.Service{},
		&models.Bundle{},
		&models.Class{},
		&models.HostingPlan{},
		&models.Order{},
		&models.HostingOrder{},
		&models.Domain{},
		&models.CreditTransaction{},
		&models.PaymentGateway{},
	)
}
