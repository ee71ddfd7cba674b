package storage

import (
	"context"
	"encoding/json"

	"lacquer/internal/domain"
)

// SaveBooking appends a confirmed booking to the history table.
func (db *DB) SaveBooking(ctx context.Context, b domain.Booking) error {
	services, err := json.Marshal(b.Services)
	if err != nil {
		return &domain.StorageError{Op: "save booking", Err: err}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO bookings (id, store_id, store_name, date, time_slot, staff_id,
			total_price_cents, total_duration_minutes, services, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.StoreID, b.StoreName, b.Date, string(b.Time), string(b.Staff),
		b.TotalPriceCents, b.TotalDurationMinutes, string(services), b.CreatedAt)
	if err != nil {
		return &domain.StorageError{Op: "save booking", Err: err}
	}
	return nil
}

// ListBookings returns booking history, newest first.
func (db *DB) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, store_id, store_name, date, time_slot, staff_id,
		       total_price_cents, total_duration_minutes, services, created_at
		FROM bookings
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list bookings", Err: err}
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var slot, staff, services string
		if err := rows.Scan(&b.ID, &b.StoreID, &b.StoreName, &b.Date, &slot, &staff,
			&b.TotalPriceCents, &b.TotalDurationMinutes, &services, &b.CreatedAt); err != nil {
			return nil, &domain.StorageError{Op: "list bookings", Err: err}
		}
		b.Time = domain.TimeSlot(slot)
		b.Staff = domain.StaffID(staff)
		if err := json.Unmarshal([]byte(services), &b.Services); err != nil {
			return nil, &domain.StorageError{Op: "list bookings", Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list bookings", Err: err}
	}
	return out, nil
}

// DeleteBooking removes a booking from history by id.
func (db *DB) DeleteBooking(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return &domain.StorageError{Op: "delete booking", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "delete booking", Err: err}
	}
	if n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}
