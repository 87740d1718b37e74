package attendance

import "sort"

// TopAbsenteesLimit сколько сотрудников попадает в список с наибольшим числом отсутствий
const TopAbsenteesLimit = 5

// InputStats - сведения об исходной таблице
type InputStats struct {
	TotalEmployees int
	TotalRecords   int
	UniqueDays     int
}

// DescribeInput считает сотрудников (по DNI), записи и различные дни во входных данных
func DescribeInput(records []Record) InputStats {
	employees := make(map[string]struct{})
	days := make(map[Weekday]struct{})
	for _, rec := range records {
		employees[rec.EmployeeID] = struct{}{}
		days[rec.Weekday] = struct{}{}
	}

	return InputStats{
		TotalEmployees: len(employees),
		TotalRecords:   len(records),
		UniqueDays:     len(days),
	}
}

// DayAbsences количество отсутствий в конкретный день
type DayAbsences struct {
	Weekday Weekday
	Count   int
}

// Stats - итоговая статистика по обоим отчетам
type Stats struct {
	EmployeesWithAbsences    int
	EmployeesWithoutAbsences int
	AverageWeeklyHours       float64
	TotalAbsences            int
	TopAbsentees             []WeeklySummary
	AbsencesByDay            []DayAbsences

	SpanCount       int
	AverageSpanDays float64
	MaxSpanDays     int
}

// Summarize собирает статистику по сводке и периодам отсутствия
func Summarize(summaries []WeeklySummary, spans []AbsenceSpan) Stats {
	var stats Stats
	var totalHours float64

	byDay := make([]DayAbsences, 0, DaysInWeek-1)
	for _, day := range Weekdays {
		if day.ExpectsAttendance() {
			byDay = append(byDay, DayAbsences{Weekday: day})
		}
	}

	absentees := make([]WeeklySummary, 0)
	for _, s := range summaries {
		totalHours += s.TotalHours
		stats.TotalAbsences += s.TotalAbsences

		if s.TotalAbsences > 0 {
			stats.EmployeesWithAbsences++
			absentees = append(absentees, s)
		} else {
			stats.EmployeesWithoutAbsences++
		}

		for i := range byDay {
			if s.Days[byDay[i].Weekday].IsAbsent() {
				byDay[i].Count++
			}
		}
	}

	if len(summaries) > 0 {
		stats.AverageWeeklyHours = totalHours / float64(len(summaries))
	}

	sort.SliceStable(absentees, func(i, j int) bool {
		return absentees[i].TotalAbsences > absentees[j].TotalAbsences
	})
	if len(absentees) > TopAbsenteesLimit {
		absentees = absentees[:TopAbsenteesLimit]
	}
	stats.TopAbsentees = absentees
	stats.AbsencesByDay = byDay

	stats.SpanCount = len(spans)
	totalDays := 0
	for _, span := range spans {
		totalDays += span.DayCount
		if span.DayCount > stats.MaxSpanDays {
			stats.MaxSpanDays = span.DayCount
		}
	}
	if len(spans) > 0 {
		stats.AverageSpanDays = float64(totalDays) / float64(len(spans))
	}

	return stats
}
