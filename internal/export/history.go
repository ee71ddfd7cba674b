package export

import (
	"fmt"
	"io"
	"strings"

	"lacquer/internal/domain"
)

var historyColumns = []string{
	"ID", "Store", "Services", "Date", "Time", "Staff", "Total", "Duration (min)", "Booked at",
}

// WriteHistory renders booking history as an Excel workbook.
func WriteHistory(w io.Writer, bookings []domain.Booking) error {
	xl := NewExcelWriter()
	defer xl.Close()

	if err := writeHistorySheet(xl, bookings); err != nil {
		return err
	}
	return xl.Save(w)
}

// WriteHistoryFile renders booking history to an xlsx file at path.
func WriteHistoryFile(path string, bookings []domain.Booking) error {
	xl := NewExcelWriter()
	defer xl.Close()

	if err := writeHistorySheet(xl, bookings); err != nil {
		return err
	}
	return xl.SaveToFile(path)
}

func writeHistorySheet(xl ExcelWriter, bookings []domain.Booking) error {
	if err := xl.AddSheet("Order History"); err != nil {
		return err
	}
	if err := xl.WriteHeader(historyColumns); err != nil {
		return err
	}
	for _, b := range bookings {
		if err := xl.WriteRow(historyRowValues(&b)); err != nil {
			return err
		}
	}
	return nil
}

func historyRowValues(b *domain.Booking) []interface{} {
	names := make([]string, 0, len(b.Services))
	for _, svc := range b.Services {
		names = append(names, svc.Name)
	}

	return []interface{}{
		b.ID,
		b.StoreName,
		strings.Join(names, ", "),
		b.Date.Format("2006-01-02"),
		string(b.Time),
		string(b.Staff),
		formatCents(b.TotalPriceCents),
		b.TotalDurationMinutes,
		b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
