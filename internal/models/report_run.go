package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Статусы обработки файла
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// ReportRun - запись об обработке одного загруженного табеля
type ReportRun struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ChatID    int64     `gorm:"not null;index" json:"chat_id"`
	FileName  string    `json:"file_name"`
	WeekStart time.Time `gorm:"type:date;not null" json:"week_start"`
	Status    string    `gorm:"type:varchar(20);not null;index" json:"status"`
	Error     string    `json:"error"`

	Records        int     `gorm:"not null;default:0" json:"records"`
	Employees      int     `gorm:"not null;default:0" json:"employees"`
	TotalAbsences  int     `gorm:"not null;default:0" json:"total_absences"`
	AbsenceSpans   int     `gorm:"not null;default:0" json:"absence_spans"`
	AverageHours   float64 `gorm:"not null;default:0" json:"average_hours"`
	DurationMillis int64   `gorm:"not null;default:0" json:"duration_millis"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ReportRun) TableName() string {
	return "report_runs"
}

// BeforeCreate хук: выдает идентификатор, если он не задан
func (r *ReportRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Succeeded проверяет, завершилась ли обработка успешно
func (r *ReportRun) Succeeded() bool {
	return r.Status == RunStatusSucceeded
}

// ShortID короткий идентификатор для сообщений
func (r *ReportRun) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}
