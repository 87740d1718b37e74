package attendance

import "time"

// Record - одна строка табеля: сотрудник, день, отработанные часы
type Record struct {
	EmployeeID   string
	EmployeeName string
	Weekday      Weekday
	Hours        float64
}

type dayKind uint8

const (
	dayUnset dayKind = iota
	dayWorked
	dayAbsent
)

// DayValue - значение дня в сводке: либо отработанные часы, либо отсутствие.
// Нулевое значение означает незаполненный день.
type DayValue struct {
	kind  dayKind
	hours float64
}

// Worked день с отработанными часами (в том числе 0 для воскресенья)
func Worked(hours float64) DayValue {
	return DayValue{kind: dayWorked, hours: hours}
}

// Absent день, отмеченный как отсутствие
func Absent() DayValue {
	return DayValue{kind: dayAbsent}
}

func (v DayValue) IsAbsent() bool {
	return v.kind == dayAbsent
}

func (v DayValue) IsSet() bool {
	return v.kind != dayUnset
}

// Hours возвращает часы; для отсутствия всегда 0
func (v DayValue) Hours() float64 {
	if v.kind != dayWorked {
		return 0
	}
	return v.hours
}

// WeeklySummary - сводка по сотруднику за неделю
type WeeklySummary struct {
	EmployeeID    string
	EmployeeName  string
	Days          [DaysInWeek]DayValue
	TotalHours    float64
	TotalAbsences int
}

// Day значение для конкретного дня недели
func (s WeeklySummary) Day(d Weekday) DayValue {
	return s.Days[d]
}

// AbsenceSpan - непрерывный период отсутствия сотрудника
type AbsenceSpan struct {
	EmployeeID   string
	EmployeeName string
	StartDate    time.Time
	EndDate      time.Time
	DayCount     int
}
