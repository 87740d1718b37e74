package attendance

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func week(id, name string, hours [DaysInWeek]float64) []Record {
	records := make([]Record, 0, DaysInWeek)
	for _, day := range Weekdays {
		records = append(records, Record{EmployeeID: id, EmployeeName: name, Weekday: day, Hours: hours[day]})
	}
	return records
}

func TestConsolidateTotalsUsePreMarkerHours(t *testing.T) {
	records := week("10", "Quispe Mamani, Ana", [DaysInWeek]float64{8, 0, 8, 8, 8, 0, 0})

	summaries, err := Consolidate(records)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 32.0, s.TotalHours)
	assert.Equal(t, 2, s.TotalAbsences)
	assert.True(t, s.Day(Tuesday).IsAbsent())
	assert.True(t, s.Day(Saturday).IsAbsent())
	assert.False(t, s.Day(Monday).IsAbsent())
	assert.Equal(t, 8.0, s.Day(Monday).Hours())
}

func TestConsolidateSundayNeverAbsent(t *testing.T) {
	records := week("10", "Ana", [DaysInWeek]float64{8, 8, 8, 8, 8, 8, 0})

	summaries, err := Consolidate(records)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	sunday := summaries[0].Day(Sunday)
	assert.True(t, sunday.IsSet())
	assert.False(t, sunday.IsAbsent())
	assert.Equal(t, 0.0, sunday.Hours())
	assert.Equal(t, 0, summaries[0].TotalAbsences)
}

func TestConsolidateSundayHoursCountInTotal(t *testing.T) {
	records := week("10", "Ana", [DaysInWeek]float64{0, 0, 0, 0, 0, 0, 6})

	summaries, err := Consolidate(records)
	require.NoError(t, err)

	assert.Equal(t, 6.0, summaries[0].TotalHours)
	assert.Equal(t, 6, summaries[0].TotalAbsences)
}

func TestConsolidateFillsMissingWeekdays(t *testing.T) {
	records := []Record{
		{EmployeeID: "20", EmployeeName: "Luis", Weekday: Wednesday, Hours: 4},
	}

	summaries, err := Consolidate(records)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	for _, day := range Weekdays {
		assert.True(t, s.Day(day).IsSet(), "day %s must be present", day)
	}
	assert.Equal(t, 4.0, s.Day(Wednesday).Hours())
	assert.Equal(t, 5, s.TotalAbsences)
	assert.Equal(t, 4.0, s.TotalHours)
}

func TestConsolidateSumsDuplicateDays(t *testing.T) {
	records := []Record{
		{EmployeeID: "20", EmployeeName: "Luis", Weekday: Monday, Hours: 4},
		{EmployeeID: "20", EmployeeName: "Luis", Weekday: Monday, Hours: 3.5},
		{EmployeeID: "20", EmployeeName: "Luis", Weekday: Tuesday, Hours: 0},
		{EmployeeID: "20", EmployeeName: "Luis", Weekday: Tuesday, Hours: 2},
	}

	summaries, err := Consolidate(records)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, 7.5, summaries[0].Day(Monday).Hours())
	assert.Equal(t, 2.0, summaries[0].Day(Tuesday).Hours())
	assert.Equal(t, 9.5, summaries[0].TotalHours)
}

func TestConsolidateGroupsByExactIDAndName(t *testing.T) {
	records := []Record{
		{EmployeeID: "30", EmployeeName: "Perez Juan", Weekday: Monday, Hours: 8},
		{EmployeeID: "30", EmployeeName: "Pérez Juan", Weekday: Tuesday, Hours: 8},
		{EmployeeID: "05", EmployeeName: "Zegarra Rosa", Weekday: Monday, Hours: 8},
	}

	summaries, err := Consolidate(records)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "05", summaries[0].EmployeeID)
	assert.Equal(t, "Perez Juan", summaries[1].EmployeeName)
	assert.Equal(t, "Pérez Juan", summaries[2].EmployeeName)
}

func TestConsolidateEmptyInput(t *testing.T) {
	summaries, err := Consolidate(nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	spans, err := DetectSpans(summaries, MondayOf(mustDate(t, "2024-01-01")))
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestConsolidateRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		field  string
	}{
		{"missing id", Record{EmployeeName: "Ana", Weekday: Monday, Hours: 8}, "employee_id"},
		{"missing name", Record{EmployeeID: "1", Weekday: Monday, Hours: 8}, "employee_name"},
		{"bad weekday", Record{EmployeeID: "1", EmployeeName: "Ana", Weekday: Weekday(9), Hours: 8}, "weekday"},
		{"negative hours", Record{EmployeeID: "1", EmployeeName: "Ana", Weekday: Monday, Hours: -1}, "hours_worked"},
		{"nan hours", Record{EmployeeID: "1", EmployeeName: "Ana", Weekday: Monday, Hours: math.NaN()}, "hours_worked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []Record{
				{EmployeeID: "2", EmployeeName: "Luis", Weekday: Friday, Hours: 8},
				tt.record,
			}

			summaries, err := Consolidate(records)
			require.Error(t, err)
			assert.Nil(t, summaries)
			assert.True(t, errors.Is(err, ErrMalformedInput))

			var mErr *MalformedInputError
			require.True(t, errors.As(err, &mErr))
			assert.Equal(t, 2, mErr.Row)
			assert.Equal(t, tt.field, mErr.Field)
		})
	}
}
