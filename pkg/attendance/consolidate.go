package attendance

import (
	"math"
	"sort"
	"strings"
)

type employeeKey struct {
	id   string
	name string
}

// Consolidate сводит записи табеля в одну строку на сотрудника.
// Сотрудники группируются по точной паре (DNI, ФИО): при расхождении в написании
// имени для одного DNI получится несколько строк.
func Consolidate(records []Record) ([]WeeklySummary, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	hours := make(map[employeeKey]*[DaysInWeek]float64)
	keys := make([]employeeKey, 0)

	for _, rec := range records {
		key := employeeKey{id: rec.EmployeeID, name: rec.EmployeeName}
		week, ok := hours[key]
		if !ok {
			week = &[DaysInWeek]float64{}
			hours[key] = week
			keys = append(keys, key)
		}
		// Дубликаты одного дня суммируются
		week[rec.Weekday] += rec.Hours
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}
		return keys[i].name < keys[j].name
	})

	summaries := make([]WeeklySummary, 0, len(keys))
	for _, key := range keys {
		summaries = append(summaries, summarizeWeek(key, hours[key]))
	}

	return summaries, nil
}

func summarizeWeek(key employeeKey, week *[DaysInWeek]float64) WeeklySummary {
	summary := WeeklySummary{
		EmployeeID:   key.id,
		EmployeeName: key.name,
	}

	for _, day := range Weekdays {
		h := week[day]
		// Итог считается по часам до замены нулей на отсутствие, включая воскресенье
		summary.TotalHours += h

		if h == 0 && day.ExpectsAttendance() {
			summary.Days[day] = Absent()
			summary.TotalAbsences++
			continue
		}
		summary.Days[day] = Worked(h)
	}

	return summary
}

func validateRecords(records []Record) error {
	for i, rec := range records {
		row := i + 1
		if strings.TrimSpace(rec.EmployeeID) == "" {
			return &MalformedInputError{Row: row, Field: "employee_id", Reason: "value is required"}
		}
		if strings.TrimSpace(rec.EmployeeName) == "" {
			return &MalformedInputError{Row: row, Field: "employee_name", Reason: "value is required"}
		}
		if !rec.Weekday.Valid() {
			return &MalformedInputError{Row: row, Field: "weekday", Reason: "unknown weekday"}
		}
		if math.IsNaN(rec.Hours) || math.IsInf(rec.Hours, 0) {
			return &MalformedInputError{Row: row, Field: "hours_worked", Reason: "value is not a number"}
		}
		if rec.Hours < 0 {
			return &MalformedInputError{Row: row, Field: "hours_worked", Reason: "value must not be negative"}
		}
	}
	return nil
}
