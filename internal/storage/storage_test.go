package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lacquer/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_GetSetDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, ok, err := db.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set(ctx, "access_token", "tok-1"))

	val, ok, err := db.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", val)

	// upsert replaces
	require.NoError(t, db.Set(ctx, "access_token", "tok-2"))
	val, _, err = db.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", val)

	require.NoError(t, db.Delete(ctx, "access_token"))
	_, ok, err = db.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent key is fine
	require.NoError(t, db.Delete(ctx, "access_token"))
}

func testBooking(id string, createdAt time.Time) domain.Booking {
	return domain.Booking{
		ID:        id,
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
		CreatedAt:            createdAt,
	}
}

func TestDB_SaveAndListBookings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, db.SaveBooking(ctx, testBooking("b-1", now.Add(-time.Hour))))
	require.NoError(t, db.SaveBooking(ctx, testBooking("b-2", now)))

	got, err := db.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// newest first
	assert.Equal(t, "b-2", got[0].ID)
	assert.Equal(t, "b-1", got[1].ID)

	b := got[0]
	assert.Equal(t, int64(2), b.StoreID)
	assert.Equal(t, "Luxe Nail Spa", b.StoreName)
	assert.Equal(t, domain.TimeSlot("14:00"), b.Time)
	assert.Equal(t, domain.StaffID("2"), b.Staff)
	assert.Equal(t, int64(3800), b.TotalPriceCents)
	assert.Equal(t, 55, b.TotalDurationMinutes)
	require.Len(t, b.Services, 2)
	assert.Equal(t, domain.ServiceID("gel-mani"), b.Services[0].ID)
	assert.Equal(t, int64(3000), b.Services[0].PriceCents)
}

func TestDB_DeleteBooking(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveBooking(ctx, testBooking("b-1", time.Now())))
	require.NoError(t, db.DeleteBooking(ctx, "b-1"))

	got, err := db.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDB_DeleteBookingNotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteBooking(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestDB_Backup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "access_token", "tok"))

	dest := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, db.Backup(dest))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	restored, err := NewDB(dest)
	require.NoError(t, err)
	defer restored.Close()

	val, ok, err := restored.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", val)
}
