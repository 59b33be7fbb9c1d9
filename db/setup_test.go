package db

import (
	"testing"

	"github.com/petroapi-dev/petroapi/internal/auth"
	"github.com/petroapi-dev/petroapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(gdb))

	return gdb
}

func TestSeedAdminCreatesFirstUser(t *testing.T) {
	gdb := openTestDB(t)

	require.NoError(t, SeedAdmin(gdb, "admin@example.com", "secret"))

	var admin models.User
	require.NoError(t, gdb.Where("username = ?", "admin").First(&admin).Error)

	assert.Equal(t, uint(1), admin.ID)
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.True(t, auth.VerifyPassword("secret", admin.HashedPassword))
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)

	require.NoError(t, SeedAdmin(gdb, "admin@example.com", "secret"))
	require.NoError(t, SeedAdmin(gdb, "other@example.com", "changed"))

	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The existing admin is left untouched.
	var admin models.User
	require.NoError(t, gdb.First(&admin, 1).Error)
	assert.True(t, auth.VerifyPassword("secret", admin.HashedPassword))
}
