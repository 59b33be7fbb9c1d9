package db

import (
	"errors"

	"github.com/petroapi-dev/petroapi/internal/auth"
	"github.com/petroapi-dev/petroapi/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Sample{},
		&models.Spot{},
		&models.Area{},
		&models.Profile{},
		&models.ProfileSpot{},
	)
}

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
// On a fresh database it is the first row inserted, so it receives id 1,
// the id the admin-only routes check against.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var admin models.User

	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Username:       "admin",
		Email:          email,
		HashedPassword: hashed,
	}).Error
}
