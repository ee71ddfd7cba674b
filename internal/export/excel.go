// Package export renders booking history into external formats: an Excel
// workbook for the order-history screen and a Google Sheet for back-office.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter writes tabular data into a workbook, one sheet at a time.
type ExcelWriter interface {
	AddSheet(name string) error
	WriteHeader(columns []string) error
	WriteRow(row []interface{}) error
	Save(w io.Writer) error
	SaveToFile(path string) error
	Close() error
}

type excelizeWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

// NewExcelWriter creates a workbook writer backed by excelize.
func NewExcelWriter() ExcelWriter {
	return &excelizeWriter{file: excelize.NewFile()}
}

func (w *excelizeWriter) AddSheet(name string) error {
	// Excel caps sheet names at 31 characters.
	if len(name) > 31 {
		name = name[:31]
	}

	if w.sheet == "" {
		w.file.SetSheetName("Sheet1", name)
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	w.sheet = name
	w.row = 1
	return nil
}

func (w *excelizeWriter) WriteHeader(columns []string) error {
	if w.sheet == "" {
		return fmt.Errorf("no active sheet")
	}

	headerRow := w.row
	if err := w.setRow(toInterfaceRow(columns)); err != nil {
		return err
	}

	if style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		first, _ := excelize.CoordinatesToCellName(1, headerRow)
		last, _ := excelize.CoordinatesToCellName(len(columns), headerRow)
		_ = w.file.SetCellStyle(w.sheet, first, last, style)
	}
	return nil
}

func (w *excelizeWriter) WriteRow(row []interface{}) error {
	if w.sheet == "" {
		return fmt.Errorf("no active sheet")
	}
	return w.setRow(row)
}

func (w *excelizeWriter) setRow(values []interface{}) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, val); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

func (w *excelizeWriter) Save(dst io.Writer) error {
	return w.file.Write(dst)
}

func (w *excelizeWriter) SaveToFile(path string) error {
	return w.file.SaveAs(path)
}

func (w *excelizeWriter) Close() error {
	return w.file.Close()
}
