package sheet

import (
	"fmt"

	"attendance-report-bot/pkg/attendance"

	"github.com/xuri/excelize/v2"
)

// Имена листов и файлов отчетов
const (
	SummarySheet    = "Tareo_Semanal"
	SpansSheet      = "Tramos_Faltas"
	SummaryFileName = "tareo_semanal_consolidado.xlsx"
	SpansFileName   = "reporte_faltas_semanales_fechas.xlsx"
)

// AbsenceMarker отметка отсутствия в выгружаемом отчете
const AbsenceMarker = "F"

// DateLayout формат дат в отчете о периодах отсутствия
const DateLayout = "02/01/2006"

const (
	columnTotalHours    = "Total Semanal"
	columnTotalAbsences = "Total Faltas"
	columnSpanStart     = "Fecha Inicial"
	columnSpanDays      = "Cantidad de Días"
	columnSpanEnd       = "Fecha Final"
)

// SummaryHeader заголовок сводного отчета
func SummaryHeader() []string {
	header := []string{ColumnID, ColumnName}
	for _, day := range attendance.Weekdays {
		header = append(header, day.Label())
	}
	return append(header, columnTotalHours, columnTotalAbsences)
}

// SpansHeader заголовок отчета о периодах отсутствия
func SpansHeader() []string {
	return []string{ColumnID, ColumnName, columnSpanStart, columnSpanDays, columnSpanEnd}
}

// DayCell значение ячейки дня: часы или отметка отсутствия
func DayCell(v attendance.DayValue) interface{} {
	if v.IsAbsent() {
		return AbsenceMarker
	}
	return v.Hours()
}

// WriteSummaries формирует книгу со сводкой по сотрудникам
func WriteSummaries(summaries []attendance.WeeklySummary) ([]byte, error) {
	rows := make([][]interface{}, 0, len(summaries))
	for _, s := range summaries {
		row := []interface{}{s.EmployeeID, s.EmployeeName}
		for _, day := range attendance.Weekdays {
			row = append(row, DayCell(s.Day(day)))
		}
		row = append(row, s.TotalHours, s.TotalAbsences)
		rows = append(rows, row)
	}

	return writeWorkbook(SummarySheet, SummaryHeader(), rows)
}

// WriteSpans формирует книгу с периодами отсутствия
func WriteSpans(spans []attendance.AbsenceSpan) ([]byte, error) {
	rows := make([][]interface{}, 0, len(spans))
	for _, span := range spans {
		rows = append(rows, []interface{}{
			span.EmployeeID,
			span.EmployeeName,
			span.StartDate.Format(DateLayout),
			span.DayCount,
			span.EndDate.Format(DateLayout),
		})
	}

	return writeWorkbook(SpansSheet, SpansHeader(), rows)
}

func writeWorkbook(sheet string, header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buffer.Bytes(), nil
}
