// Package testutil provides the shared fixtures for handler and database
// tests: an in-memory sqlite database carrying the full schema, and helpers
// to mint users and tokens.
package testutil

import (
	"testing"
	"time"

	"github.com/petroapi-dev/petroapi/db"
	"github.com/petroapi-dev/petroapi/internal/auth"
	"github.com/petroapi-dev/petroapi/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	AdminPassword = "admin-password"
	UserPassword  = "user-password"
)

// OpenDB opens a fresh in-memory database, migrates the schema and seeds the
// bootstrap admin (id 1). Foreign keys are switched on so cascade deletes
// behave like the production database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to access test database: %v", err)
	}
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	if err := db.SeedAdmin(gdb, "admin@example.com", AdminPassword); err != nil {
		t.Fatalf("Failed to seed admin: %v", err)
	}

	return gdb
}

func NewTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("Failed to build token service: %v", err)
	}

	return tokens
}

// CreateUser inserts a user with UserPassword as its password.
func CreateUser(t *testing.T, gdb *gorm.DB, username string) models.User {
	t.Helper()

	hashed, err := auth.HashPassword(UserPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hashed,
	}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}

	return user
}
