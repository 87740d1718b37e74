package attendance

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Weekday - день недели в каноническом порядке (понедельник = 0)
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek количество колонок дней в отчете
const DaysInWeek = 7

// Weekdays возвращает дни недели в каноническом порядке
var Weekdays = [DaysInWeek]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Метки дней в исходных таблицах (испанский, с ударениями)
var weekdayLabels = [DaysInWeek]string{
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábado",
	"domingo",
}

// ParseWeekday разбирает метку дня без учета регистра
func ParseWeekday(label string) (Weekday, error) {
	key := foldLabel(label)
	if key == "" {
		return 0, fmt.Errorf("empty weekday label")
	}

	for i, l := range weekdayLabels {
		if key == foldLabel(l) {
			return Weekday(i), nil
		}
	}

	return 0, fmt.Errorf("unknown weekday label %q", label)
}

// Caser не потокобезопасен, поэтому создается на каждый вызов
func foldLabel(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Label возвращает метку дня, используемую как заголовок колонки
func (d Weekday) Label() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayLabels[d]
}

func (d Weekday) String() string {
	return d.Label()
}

// Offset смещение дня от начала недели
func (d Weekday) Offset() int {
	return int(d)
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ExpectsAttendance - воскресенье нерабочий день, в нем отсутствие не фиксируется
func (d Weekday) ExpectsAttendance() bool {
	return d != Sunday
}
