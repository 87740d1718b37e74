package repository

import (
	"errors"

	"attendance-report-bot/internal/models"

	"gorm.io/gorm"
)

type ReportRunRepository interface {
	Create(run *models.ReportRun) error
	GetLastByChatID(chatID int64) (*models.ReportRun, error)
	GetByChatID(chatID int64, limit int) ([]models.ReportRun, error)
	GetRecent(limit int) ([]models.ReportRun, error)
	CountByStatus() (map[string]int64, error)
}

type GormReportRunRepository struct {
	db *gorm.DB
}

func NewGormReportRunRepository(db *gorm.DB) (ReportRunRepository, error) {
	if err := db.AutoMigrate(&models.ReportRun{}); err != nil {
		return nil, err
	}
	return &GormReportRunRepository{db: db}, nil
}

func (r *GormReportRunRepository) Create(run *models.ReportRun) error {
	return r.db.Create(run).Error
}

func (r *GormReportRunRepository) GetLastByChatID(chatID int64) (*models.ReportRun, error) {
	var run models.ReportRun
	err := r.db.Where("chat_id = ? AND status = ?", chatID, models.RunStatusSucceeded).
		Order("created_at DESC").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *GormReportRunRepository) GetByChatID(chatID int64, limit int) ([]models.ReportRun, error) {
	var runs []models.ReportRun
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}

func (r *GormReportRunRepository) GetRecent(limit int) ([]models.ReportRun, error) {
	var runs []models.ReportRun
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}

func (r *GormReportRunRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&models.ReportRun{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
