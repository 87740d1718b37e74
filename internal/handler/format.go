package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"attendance-report-bot/internal/models"
	"attendance-report-bot/internal/service"
	"attendance-report-bot/internal/sheet"
	"attendance-report-bot/pkg/attendance"
)

const displayDateLayout = "02.01.2006"

var russianWeekdays = map[time.Weekday]string{
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
	time.Sunday:    "воскресенье",
}

func weekdayName(t time.Time) string {
	return russianWeekdays[t.Weekday()]
}

// userError переводит ошибку обработки в понятное пользователю сообщение
func userError(err error) string {
	var colErr *sheet.MissingColumnsError
	var inputErr *attendance.MalformedInputError
	var dateErr *attendance.InvalidDateError

	switch {
	case errors.As(err, &colErr):
		return "в файле нет обязательных столбцов: " + strings.Join(colErr.Columns, ", ")
	case errors.As(err, &inputErr):
		if inputErr.Field == "" {
			return fmt.Sprintf("строка %d: %s", inputErr.Row, inputErr.Reason)
		}
		return fmt.Sprintf("строка %d, столбец %q: %s", inputErr.Row, inputErr.Field, inputErr.Reason)
	case errors.As(err, &dateErr):
		return "неверная дата начала недели. Используйте ДД.ММ.ГГГГ или ДД.ММ"
	case errors.Is(err, sheet.ErrNoSheets):
		return "в файле нет листов"
	default:
		return "не удалось прочитать файл Excel"
	}
}

// formatReport текстовая сводка по обоим отчетам
func formatReport(r *service.ReportResult) string {
	var lines []string
	stats := r.Stats
	weekEnd := r.WeekStart.AddDate(0, 0, attendance.DaysInWeek-1)

	lines = append(lines, fmt.Sprintf("✅ Табель обработан: неделя %s – %s",
		r.WeekStart.Format(displayDateLayout), weekEnd.Format(displayDateLayout)))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("📋 Записей: %d | Сотрудников: %d | Дней в файле: %d",
		r.Input.TotalRecords, r.Input.TotalEmployees, r.Input.UniqueDays))
	lines = append(lines, "")
	lines = append(lines, "📈 Посещаемость:")
	lines = append(lines, fmt.Sprintf("• С отсутствиями: %d", stats.EmployeesWithAbsences))
	lines = append(lines, fmt.Sprintf("• Без отсутствий: %d", stats.EmployeesWithoutAbsences))
	lines = append(lines, fmt.Sprintf("• Среднее часов в неделю: %.1f", stats.AverageWeeklyHours))
	lines = append(lines, fmt.Sprintf("• Всего отсутствий: %d", stats.TotalAbsences))

	if len(stats.TopAbsentees) > 0 {
		lines = append(lines, "")
		lines = append(lines, "⚠️ Больше всего отсутствий:")
		for i, s := range stats.TopAbsentees {
			lines = append(lines, fmt.Sprintf("%d. %s (%s) - %d, часов: %s",
				i+1, s.EmployeeName, s.EmployeeID, s.TotalAbsences, formatHours(s.TotalHours)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, "📅 Отсутствия по дням:")
	for _, d := range stats.AbsencesByDay {
		lines = append(lines, fmt.Sprintf("• %s: %d", d.Weekday.Label(), d.Count))
	}

	lines = append(lines, "")
	if stats.SpanCount == 0 {
		lines = append(lines, "🎉 Периодов отсутствия подряд не найдено.")
	} else {
		lines = append(lines, "📊 Периоды отсутствия:")
		lines = append(lines, fmt.Sprintf("• Всего периодов: %d", stats.SpanCount))
		lines = append(lines, fmt.Sprintf("• В среднем дней: %.1f", stats.AverageSpanDays))
		lines = append(lines, fmt.Sprintf("• Максимум дней подряд: %d", stats.MaxSpanDays))
	}

	return strings.Join(lines, "\n")
}

func formatRun(run models.ReportRun) string {
	lines := []string{
		fmt.Sprintf("📊 Последний отчет (%s)", run.CreatedAt.Local().Format("02.01.2006 15:04")),
		"",
		fmt.Sprintf("📁 Файл: %s", run.FileName),
		fmt.Sprintf("📅 Неделя с: %s", run.WeekStart.Format(displayDateLayout)),
		fmt.Sprintf("📋 Записей: %d", run.Records),
		fmt.Sprintf("👥 Сотрудников: %d", run.Employees),
		fmt.Sprintf("⏰ Среднее часов в неделю: %.1f", run.AverageHours),
		fmt.Sprintf("❌ Всего отсутствий: %d", run.TotalAbsences),
		fmt.Sprintf("📊 Периодов отсутствия: %d", run.AbsenceSpans),
	}
	return strings.Join(lines, "\n")
}

func formatHistory(title string, runs []models.ReportRun) string {
	if len(runs) == 0 {
		return "📭 История пуста."
	}

	lines := []string{title, ""}
	for i, run := range runs {
		status := "✅"
		details := fmt.Sprintf("сотрудников: %d, отсутствий: %d, периодов: %d",
			run.Employees, run.TotalAbsences, run.AbsenceSpans)
		if !run.Succeeded() {
			status = "❌"
			details = run.Error
		}

		lines = append(lines, fmt.Sprintf("%d. %s %s %s [%s]",
			i+1, status, run.CreatedAt.Local().Format("02.01 15:04"), run.FileName, run.ShortID()))
		lines = append(lines, "    неделя с "+run.WeekStart.Format(displayDateLayout)+": "+details)
	}

	return strings.Join(lines, "\n")
}

// formatHours без лишних нулей: 40, 37.5
func failedRunNotice(chatID int64, fileName string, err error) string {
	return fmt.Sprintf("⚠️ Табель не обработан\nЧат: %d\nФайл: %s\nПричина: %s", chatID, fileName, userError(err))
}

func formatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".")
}
