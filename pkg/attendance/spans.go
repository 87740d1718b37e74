package attendance

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Форматы даты начала недели, которые принимает ParseWeekStart
var weekStartLayouts = []string{
	"02.01.2006",
	"2006-01-02",
	"02/01/2006",
}

// ParseWeekStart разбирает дату начала недели из пользовательского ввода
func ParseWeekStart(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &InvalidDateError{Reason: "date is empty"}
	}

	for _, layout := range weekStartLayouts {
		if date, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return date, nil
		}
	}

	return time.Time{}, &InvalidDateError{
		Value:  value,
		Reason: fmt.Sprintf("expected one of %s", strings.Join(weekStartLayouts, ", ")),
	}
}

// MondayOf возвращает понедельник недели, в которую входит дата
func MondayOf(date time.Time) time.Time {
	date = truncateToDate(date)
	shift := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -shift)
}

// DetectSpans находит непрерывные периоды отсутствия по каждому сотруднику.
// Строка с незаполненным днем прерывает весь расчет.
func DetectSpans(summaries []WeeklySummary, weekStart time.Time) ([]AbsenceSpan, error) {
	if weekStart.IsZero() {
		return nil, &InvalidDateError{Reason: "week start date is not set"}
	}
	weekStart = truncateToDate(weekStart)

	spans := make([]AbsenceSpan, 0)
	for i, summary := range summaries {
		rowSpans, err := detectRowSpans(summary, weekStart)
		if err != nil {
			var mErr *MalformedInputError
			if errors.As(err, &mErr) {
				mErr.Row = i + 1
			}
			return nil, err
		}
		spans = append(spans, rowSpans...)
	}

	return spans, nil
}

func detectRowSpans(summary WeeklySummary, weekStart time.Time) ([]AbsenceSpan, error) {
	var spans []AbsenceSpan
	runStart, runLen := 0, 0

	closeRun := func() {
		if runLen == 0 {
			return
		}
		spans = append(spans, AbsenceSpan{
			EmployeeID:   summary.EmployeeID,
			EmployeeName: summary.EmployeeName,
			StartDate:    weekStart.AddDate(0, 0, runStart),
			EndDate:      weekStart.AddDate(0, 0, runStart+runLen-1),
			DayCount:     runLen,
		})
		runLen = 0
	}

	for _, day := range Weekdays {
		value := summary.Days[day]
		if !value.IsSet() {
			return nil, &MalformedInputError{Field: day.Label(), Reason: "weekday value is missing"}
		}

		if value.IsAbsent() {
			if runLen == 0 {
				runStart = day.Offset()
			}
			runLen++
			continue
		}
		closeRun()
	}
	// Период, не закрытый к концу недели
	closeRun()

	return spans, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
