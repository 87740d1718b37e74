package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeInput(t *testing.T) {
	records := []Record{
		{EmployeeID: "1", EmployeeName: "Ana", Weekday: Monday, Hours: 8},
		{EmployeeID: "1", EmployeeName: "Ana María", Weekday: Tuesday, Hours: 8},
		{EmployeeID: "2", EmployeeName: "Luis", Weekday: Monday, Hours: 8},
	}

	stats := DescribeInput(records)
	assert.Equal(t, 2, stats.TotalEmployees)
	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 2, stats.UniqueDays)
}

func TestSummarize(t *testing.T) {
	var records []Record
	records = append(records, week("1", "Ana", [DaysInWeek]float64{8, 8, 8, 8, 8, 8, 0})...)
	records = append(records, week("2", "Luis", [DaysInWeek]float64{0, 0, 8, 8, 8, 8, 0})...)
	records = append(records, week("3", "Rosa", [DaysInWeek]float64{0, 8, 0, 8, 8, 0, 0})...)

	summaries, err := Consolidate(records)
	require.NoError(t, err)
	spans, err := DetectSpans(summaries, mustDate(t, "2024-01-01"))
	require.NoError(t, err)

	stats := Summarize(summaries, spans)
	assert.Equal(t, 2, stats.EmployeesWithAbsences)
	assert.Equal(t, 1, stats.EmployeesWithoutAbsences)
	assert.Equal(t, 5, stats.TotalAbsences)
	assert.InDelta(t, (48.0+32.0+24.0)/3, stats.AverageWeeklyHours, 1e-9)

	require.Len(t, stats.TopAbsentees, 2)
	assert.Equal(t, "3", stats.TopAbsentees[0].EmployeeID)
	assert.Equal(t, "2", stats.TopAbsentees[1].EmployeeID)

	require.Len(t, stats.AbsencesByDay, 6)
	assert.Equal(t, DayAbsences{Weekday: Monday, Count: 2}, stats.AbsencesByDay[0])
	assert.Equal(t, DayAbsences{Weekday: Saturday, Count: 1}, stats.AbsencesByDay[5])

	assert.Equal(t, 4, stats.SpanCount)
	assert.Equal(t, 2, stats.MaxSpanDays)
	assert.InDelta(t, 5.0/4, stats.AverageSpanDays, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil, nil)
	assert.Zero(t, stats.AverageWeeklyHours)
	assert.Zero(t, stats.SpanCount)
	assert.Empty(t, stats.TopAbsentees)
	assert.Len(t, stats.AbsencesByDay, 6)
}

func TestSummarizeLimitsTopAbsentees(t *testing.T) {
	var records []Record
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		records = append(records, Record{EmployeeID: id, EmployeeName: "E" + id, Weekday: Monday, Hours: 8})
	}
	summaries, err := Consolidate(records)
	require.NoError(t, err)

	stats := Summarize(summaries, nil)
	require.Len(t, stats.TopAbsentees, TopAbsenteesLimit)
	assert.Equal(t, "1", stats.TopAbsentees[0].EmployeeID)
	assert.Equal(t, "5", stats.TopAbsentees[4].EmployeeID)
}
