package export

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"lacquer/internal/domain"
)

const sheetRange = "Bookings!A:I"

// SheetsService mirrors confirmed bookings into a Google Sheet.
type SheetsService struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        zerolog.Logger

	mu       sync.Mutex
	rowCache map[string]int
	nextRow  int
}

// NewSheetsService builds a service from a service-account credentials file.
func NewSheetsService(ctx context.Context, credentialsFile, spreadsheetID string, logger zerolog.Logger) (*SheetsService, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsService{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger.With().Str("component", "sheets").Logger(),
		rowCache:      make(map[string]int),
		nextRow:       2, // row 1 is the header
	}, nil
}

// AppendBooking appends one booking to the sheet.
func (s *SheetsService) AppendBooking(ctx context.Context, b domain.Booking) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{historyRowValues(&b)},
	}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, sheetRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append booking %s: %w", b.ID, err)
	}

	s.mu.Lock()
	s.rowCache[b.ID] = s.nextRow
	s.nextRow++
	s.mu.Unlock()

	s.logger.Debug().Str("booking_id", b.ID).Msg("booking exported to sheet")
	return nil
}

// SyncBookings rewrites the sheet from the full history.
func (s *SheetsService) SyncBookings(ctx context.Context, bookings []domain.Booking) error {
	values := [][]interface{}{toInterfaceRow(historyColumns)}
	for _, b := range bookings {
		values = append(values, historyRowValues(&b))
	}

	vr := &sheets.ValueRange{Values: values}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, sheetRange, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sync bookings: %w", err)
	}

	s.mu.Lock()
	s.rowCache = make(map[string]int, len(bookings))
	for i, b := range bookings {
		s.rowCache[b.ID] = i + 2
	}
	s.nextRow = len(bookings) + 2
	s.mu.Unlock()

	s.logger.Info().Int("count", len(bookings)).Msg("booking history synced to sheet")
	return nil
}

// RemoveBooking blanks the row of a cancelled booking. Rows appended by
// other processes are not tracked; those are left for the next full sync.
func (s *SheetsService) RemoveBooking(ctx context.Context, id string) error {
	row, ok := s.cachedRow(id)
	if !ok {
		s.logger.Debug().Str("booking_id", id).Msg("booking not in row cache, skipping sheet removal")
		return nil
	}

	clearRange := fmt.Sprintf("Bookings!A%d:I%d", row, row)
	_, err := s.svc.Spreadsheets.Values.
		Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("remove booking %s: %w", id, err)
	}

	s.mu.Lock()
	delete(s.rowCache, id)
	s.mu.Unlock()
	return nil
}

func (s *SheetsService) cachedRow(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func toInterfaceRow(cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}
