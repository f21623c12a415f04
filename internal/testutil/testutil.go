package testutil

import (
	"testing"

	"websewa_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory database migrated with the full schema.
// MaxOpenConns is pinned to 1 because every new sqlite :memory: connection
// is a separate empty database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))

	return db
}

// CreateUser inserts a user with the given role and credit balance.
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.UserRole, credits int) *models.User {
	t.Helper()

	user := &models.User{
		Email:           email,
		PasswordHash:    "x",
		Role:            role,
		AdvancedCredits: credits,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateMembership inserts a catalog membership plan.
func CreateMembership(t *testing.T, db *gorm.DB, name string, price float64, durationDays, credits int) *models.Membership {
	t.Helper()

	membership := &models.Membership{
		Name:            name,
		Slug:            name,
		Price:           price,
		Currency:        "NPR",
		DurationDays:    durationDays,
		AdvancedCredits: credits,
		IsActive:        true,
	}
	require.NoError(t, db.Create(membership).Error)
	return membership
}
