package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"github.com/zhangmm/zblog/pkg/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDatabase(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.C = db
	require.NoError(t, database.RunMigration(db))
	require.NoError(t, services.SeedRoles())
}

func createTestAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account, err := services.CreateAccount(name, name+"@example.com", "changeme")
	require.NoError(t, err)
	return account
}

func countJoinRows(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.C.Model(&models.PostTag{}).Count(&count).Error)
	return count
}
