package sheet

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"attendance-report-bot/pkg/attendance"

	"github.com/xuri/excelize/v2"
)

// Колонки входной таблицы
const (
	ColumnID      = "DNI"
	ColumnName    = "Apellidos y Nombres"
	ColumnWeekday = "DIA"
	ColumnHours   = "HORAS TRABAJ."
)

// RequiredColumns обязательные колонки входного файла
var RequiredColumns = []string{ColumnID, ColumnName, ColumnWeekday, ColumnHours}

// MissingColumnsError - во входном файле нет обязательных колонок
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return attendance.ErrMalformedInput
}

// ErrNoSheets файл не содержит ни одного листа
var ErrNoSheets = errors.New("workbook has no sheets")

// ReadRecords читает записи табеля с первого листа книги.
// Первая строка листа - заголовок, пустые строки пропускаются.
func ReadRecords(r io.Reader) ([]attendance.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	// Сырые значения: формат ячейки не должен округлять часы
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: RequiredColumns}
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]attendance.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		// Номер строки в таблице (с учетом заголовка, с единицы)
		rowNumber := i + 2
		rec, err := parseRow(row, columns, rowNumber)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(RequiredColumns))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return columns, nil
}

func parseRow(row []string, columns map[string]int, rowNumber int) (attendance.Record, error) {
	rec := attendance.Record{
		EmployeeID:   cellValue(row, columns[ColumnID]),
		EmployeeName: cellValue(row, columns[ColumnName]),
	}

	if rec.EmployeeID == "" {
		return rec, &attendance.MalformedInputError{Row: rowNumber, Field: ColumnID, Reason: "value is required"}
	}
	if rec.EmployeeName == "" {
		return rec, &attendance.MalformedInputError{Row: rowNumber, Field: ColumnName, Reason: "value is required"}
	}

	day, err := attendance.ParseWeekday(cellValue(row, columns[ColumnWeekday]))
	if err != nil {
		return rec, &attendance.MalformedInputError{Row: rowNumber, Field: ColumnWeekday, Reason: err.Error()}
	}
	rec.Weekday = day

	hours, err := parseHours(cellValue(row, columns[ColumnHours]))
	if err != nil {
		return rec, &attendance.MalformedInputError{Row: rowNumber, Field: ColumnHours, Reason: err.Error()}
	}
	rec.Hours = hours

	return rec, nil
}

// parseHours пустая ячейка означает, что часы не указаны (0)
func parseHours(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}

	hours, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%q is not a number", value)
	}
	if hours < 0 {
		return 0, fmt.Errorf("%q must not be negative", value)
	}

	return hours, nil
}

func cellValue(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
