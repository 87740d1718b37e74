package repository

import (
	"path/filepath"
	"testing"
	"time"

	"attendance-report-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestUserRepository(t *testing.T) {
	repo, err := NewGormUserRepository(openTestDB(t))
	require.NoError(t, err)

	user, err := repo.GetByChatID(100)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, repo.Create(&models.User{ChatID: 100, Username: "ana"}))
	assert.Error(t, repo.Create(&models.User{ChatID: 100}))

	weekStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetWeekStart(100, weekStart))
	assert.ErrorIs(t, repo.SetWeekStart(200, weekStart), ErrUserNotFound)

	user, err = repo.GetByChatID(100)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, user.WeekStart)
	assert.Equal(t, "2024-01-01", user.WeekStart.Format("2006-01-02"))
	assert.Equal(t, models.RoleClient, user.Role)

	require.NoError(t, repo.UpdateRole(100, models.Role(models.RoleAdmin)))
	admins, err := repo.GetAdmins()
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsAdmin())

	total, adminCount, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, adminCount)
}

func TestReportRunRepository(t *testing.T) {
	repo, err := NewGormReportRunRepository(openTestDB(t))
	require.NoError(t, err)

	last, err := repo.GetLastByChatID(1)
	require.NoError(t, err)
	assert.Nil(t, last)

	weekStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := &models.ReportRun{ChatID: 1, FileName: "a.xlsx", WeekStart: weekStart, Status: models.RunStatusSucceeded, Employees: 3}
	require.NoError(t, repo.Create(first))
	assert.Len(t, first.ID, 36)

	failed := &models.ReportRun{ChatID: 1, FileName: "b.xlsx", WeekStart: weekStart, Status: models.RunStatusFailed, Error: "boom"}
	require.NoError(t, repo.Create(failed))
	require.NoError(t, repo.Create(&models.ReportRun{ChatID: 2, WeekStart: weekStart, Status: models.RunStatusSucceeded}))

	last, err = repo.GetLastByChatID(1)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, first.ID, last.ID)
	assert.Equal(t, 3, last.Employees)

	runs, err := repo.GetByChatID(1, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	recent, err := repo.GetRecent(2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[models.RunStatusSucceeded])
	assert.Equal(t, int64(1), counts[models.RunStatusFailed])
}
