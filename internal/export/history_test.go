package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lacquer/internal/domain"
)

func sampleBooking() domain.Booking {
	return domain.Booking{
		ID:        "b-1",
		StoreID:   2,
		StoreName: "Luxe Nail Spa",
		Services: []domain.Service{
			{ID: "gel-mani", Name: "Gel Manicure", PriceCents: 3000, DurationMinutes: 40},
			{ID: "gel-remove", Name: "Gel Removal", PriceCents: 800, DurationMinutes: 15},
		},
		Date:                 time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Time:                 "14:00",
		Staff:                "2",
		TotalPriceCents:      3800,
		TotalDurationMinutes: 55,
		CreatedAt:            time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
	}
}

func TestHistoryRowValues(t *testing.T) {
	b := sampleBooking()
	row := historyRowValues(&b)

	require.Len(t, row, len(historyColumns))
	assert.Equal(t, "b-1", row[0])
	assert.Equal(t, "Luxe Nail Spa", row[1])
	assert.Equal(t, "Gel Manicure, Gel Removal", row[2])
	assert.Equal(t, "2026-09-04", row[3])
	assert.Equal(t, "14:00", row[4])
	assert.Equal(t, "2", row[5])
	assert.Equal(t, "$38.00", row[6])
	assert.Equal(t, 55, row[7])
	assert.Equal(t, "2026-08-29 10:30:00", row[8])
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{800, "$8.00"},
		{2050, "$20.50"},
		{3805, "$38.05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCents(tt.cents))
	}
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, []domain.Booking{sampleBooking()}))

	xl, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows("Order History")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, historyColumns, rows[0])
	assert.Equal(t, "b-1", rows[1][0])
	assert.Equal(t, "$38.00", rows[1][6])
}

func TestWriteHistoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, WriteHistoryFile(path, []domain.Booking{sampleBooking()}))

	xl, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows("Order History")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b-1", rows[1][0])
}

func TestWriteHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, nil))

	xl, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows("Order History")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, historyColumns, rows[0])
}
