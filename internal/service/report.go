package service

import (
	"bytes"
	"fmt"
	"time"

	"attendance-report-bot/internal/metrics"
	"attendance-report-bot/internal/models"
	"attendance-report-bot/internal/repository"
	"attendance-report-bot/internal/sheet"
	"attendance-report-bot/pkg/attendance"

	"github.com/sirupsen/logrus"
)

// Document - готовый файл отчета для отправки
type Document struct {
	FileName string
	Data     []byte
}

// ReportResult - результат обработки одного табеля
type ReportResult struct {
	RunID     string
	WeekStart time.Time
	Input     attendance.InputStats
	Summaries []attendance.WeeklySummary
	Spans     []attendance.AbsenceSpan
	Stats     attendance.Stats

	SummaryDocument Document
	// SpansDocument nil, если периодов отсутствия нет
	SpansDocument *Document
}

type ReportService struct {
	runRepo repository.ReportRunRepository
	metrics *metrics.Metrics
	logger  *logrus.Logger
	now     func() time.Time
}

func NewReportService(runRepo repository.ReportRunRepository, m *metrics.Metrics) *ReportService {
	return &ReportService{
		runRepo: runRepo,
		metrics: m,
		logger:  logrus.StandardLogger(),
		now:     time.Now,
	}
}

// Generate строит оба отчета по загруженной книге и сохраняет запись об обработке.
// При любой ошибке частичный результат не возвращается.
func (s *ReportService) Generate(chatID int64, fileName string, data []byte, weekStart time.Time) (*ReportResult, error) {
	started := s.now()

	result, err := s.build(data, weekStart)
	elapsed := s.now().Sub(started)

	run := &models.ReportRun{
		ChatID:         chatID,
		FileName:       fileName,
		WeekStart:      weekStart,
		DurationMillis: elapsed.Milliseconds(),
	}

	if err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		s.saveRun(run)
		if s.metrics != nil {
			s.metrics.ObserveFailure(elapsed)
		}

		s.logger.WithFields(logrus.Fields{
			"chat_id": chatID,
			"file":    fileName,
		}).WithError(err).Warn("Failed to generate attendance reports")
		return nil, err
	}

	run.Status = models.RunStatusSucceeded
	run.Records = result.Input.TotalRecords
	run.Employees = len(result.Summaries)
	run.TotalAbsences = result.Stats.TotalAbsences
	run.AbsenceSpans = result.Stats.SpanCount
	run.AverageHours = result.Stats.AverageWeeklyHours
	s.saveRun(run)
	result.RunID = run.ID

	if s.metrics != nil {
		s.metrics.ObserveSuccess(result.Input.TotalRecords, result.Stats.TotalAbsences, result.Stats.SpanCount, elapsed)
	}

	s.logger.WithFields(logrus.Fields{
		"chat_id":   chatID,
		"file":      fileName,
		"employees": len(result.Summaries),
		"spans":     len(result.Spans),
		"elapsed":   elapsed,
	}).Info("Attendance reports generated")

	return result, nil
}

func (s *ReportService) build(data []byte, weekStart time.Time) (*ReportResult, error) {
	records, err := sheet.ReadRecords(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	summaries, err := attendance.Consolidate(records)
	if err != nil {
		return nil, err
	}

	spans, err := attendance.DetectSpans(summaries, weekStart)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{
		WeekStart: weekStart,
		Input:     attendance.DescribeInput(records),
		Summaries: summaries,
		Spans:     spans,
		Stats:     attendance.Summarize(summaries, spans),
	}

	summaryData, err := sheet.WriteSummaries(summaries)
	if err != nil {
		return nil, fmt.Errorf("failed to render weekly summary: %w", err)
	}
	result.SummaryDocument = Document{FileName: sheet.SummaryFileName, Data: summaryData}

	if len(spans) > 0 {
		spansData, err := sheet.WriteSpans(spans)
		if err != nil {
			return nil, fmt.Errorf("failed to render absence spans: %w", err)
		}
		result.SpansDocument = &Document{FileName: sheet.SpansFileName, Data: spansData}
	}

	return result, nil
}

// История хранится для справки; ошибка записи не должна ломать ответ пользователю
func (s *ReportService) saveRun(run *models.ReportRun) {
	if err := s.runRepo.Create(run); err != nil {
		s.logger.WithError(err).WithField("chat_id", run.ChatID).Error("Failed to save report run")
	}
}

// LastRun последняя успешная обработка в чате
func (s *ReportService) LastRun(chatID int64) (*models.ReportRun, error) {
	return s.runRepo.GetLastByChatID(chatID)
}

// History последние обработки в чате
func (s *ReportService) History(chatID int64, limit int) ([]models.ReportRun, error) {
	return s.runRepo.GetByChatID(chatID, limit)
}

// AllHistory последние обработки во всех чатах (для администраторов)
func (s *ReportService) AllHistory(limit int) ([]models.ReportRun, map[string]int64, error) {
	runs, err := s.runRepo.GetRecent(limit)
	if err != nil {
		return nil, nil, err
	}

	counts, err := s.runRepo.CountByStatus()
	if err != nil {
		return nil, nil, err
	}

	return runs, counts, nil
}
