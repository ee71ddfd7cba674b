// Package booking implements the in-progress appointment selection state
// machine: one store, a set of services, a date, a time slot and an
// optional technician, confirmed into an immutable booking.
package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"lacquer/internal/domain"
	"lacquer/internal/metrics"
)

// Recorder receives confirmed bookings.
type Recorder interface {
	RecordBooking(b domain.Booking)
}

// Catalog resolves selections against a store's menu.
type Catalog interface {
	Service(storeID int64, id domain.ServiceID) (*domain.Service, error)
	Staff(storeID int64, id domain.StaffID) (*domain.Staff, error)
	HasTimeSlot(storeID int64, slot domain.TimeSlot) bool
}

// Session is the booking dialog state. At most one session is active per
// client; Start fails until the previous one is confirmed or cancelled.
type Session struct {
	catalog  Catalog
	recorder Recorder
	logger   zerolog.Logger

	active   bool
	store    domain.Store
	services []domain.Service
	date     time.Time
	slot     domain.TimeSlot
	staff    domain.StaffID
}

// NewSession creates an idle booking session.
func NewSession(catalog Catalog, recorder Recorder, logger zerolog.Logger) *Session {
	return &Session{
		catalog:  catalog,
		recorder: recorder,
		logger:   logger.With().Str("component", "booking").Logger(),
	}
}

// Start begins a session for store. Fails with ErrSessionActive when one
// is already in progress.
func (s *Session) Start(store domain.Store) error {
	if s.active {
		return domain.ErrSessionActive
	}
	s.active = true
	s.store = store
	s.services = nil
	s.date = time.Time{}
	s.slot = ""
	s.staff = ""
	s.logger.Info().Int64("store_id", store.ID).Str("store", store.Name).Msg("booking session started")
	return nil
}

// Active reports whether a session is in progress.
func (s *Session) Active() bool {
	return s.active
}

// Store returns the store the session was started for.
func (s *Session) Store() domain.Store {
	return s.store
}

// ToggleService adds the service if absent and removes it if present.
// The service is snapshotted from the catalog at toggle time; selection
// order is preserved for display.
func (s *Session) ToggleService(id domain.ServiceID) error {
	if !s.active {
		return domain.ErrSessionNotStarted
	}

	for i, svc := range s.services {
		if svc.ID == id {
			s.services = append(s.services[:i], s.services[i+1:]...)
			return nil
		}
	}

	svc, err := s.catalog.Service(s.store.ID, id)
	if err != nil {
		return err
	}
	s.services = append(s.services, *svc)
	return nil
}

// SetDate selects the appointment date.
func (s *Session) SetDate(date time.Time) error {
	if !s.active {
		return domain.ErrSessionNotStarted
	}
	s.date = date
	return nil
}

// SetTime selects one of the store's fixed time slots.
func (s *Session) SetTime(slot domain.TimeSlot) error {
	if !s.active {
		return domain.ErrSessionNotStarted
	}
	if !s.catalog.HasTimeSlot(s.store.ID, slot) {
		return domain.ErrUnknownTimeSlot
	}
	s.slot = slot
	return nil
}

// SetStaff selects a technician. An empty id means "any available".
func (s *Session) SetStaff(id domain.StaffID) error {
	if !s.active {
		return domain.ErrSessionNotStarted
	}
	if id == "" {
		s.staff = ""
		return nil
	}
	if _, err := s.catalog.Staff(s.store.ID, id); err != nil {
		return err
	}
	s.staff = id
	return nil
}

// SelectedServices returns the selection in toggle order.
func (s *Session) SelectedServices() []domain.Service {
	return append([]domain.Service(nil), s.services...)
}

// TotalPriceCents folds the selected service prices. Recomputed on every
// call; nothing is cached.
func (s *Session) TotalPriceCents() int64 {
	var total int64
	for _, svc := range s.services {
		total += svc.PriceCents
	}
	return total
}

// TotalDurationMinutes folds the selected service durations.
func (s *Session) TotalDurationMinutes() int {
	var total int
	for _, svc := range s.services {
		total += svc.DurationMinutes
	}
	return total
}

// CanConfirm reports whether the session satisfies the confirmation
// invariant: at least one service, a date and a time slot.
func (s *Session) CanConfirm() bool {
	return s.active && len(s.services) > 0 && !s.date.IsZero() && s.slot != ""
}

// Confirm snapshots the selections into an immutable booking, hands it
// to the recorder and resets the session. Fails with
// ErrBookingIncomplete when CanConfirm is false.
func (s *Session) Confirm() (*domain.Booking, error) {
	if !s.active {
		return nil, domain.ErrSessionNotStarted
	}
	if !s.CanConfirm() {
		return nil, domain.ErrBookingIncomplete
	}

	b := domain.Booking{
		ID:                   uuid.NewString(),
		StoreID:              s.store.ID,
		StoreName:            s.store.Name,
		Services:             append([]domain.Service(nil), s.services...),
		Date:                 s.date,
		Time:                 s.slot,
		Staff:                s.staff,
		TotalPriceCents:      s.TotalPriceCents(),
		TotalDurationMinutes: s.TotalDurationMinutes(),
		CreatedAt:            time.Now(),
	}

	s.recorder.RecordBooking(b)
	metrics.IncBookingConfirmed()
	s.logger.Info().
		Str("booking_id", b.ID).
		Int64("store_id", b.StoreID).
		Int64("total_cents", b.TotalPriceCents).
		Int("services", len(b.Services)).
		Msg("booking confirmed")

	s.reset()
	return &b, nil
}

// Cancel discards the session without emitting a booking.
func (s *Session) Cancel() {
	if !s.active {
		return
	}
	metrics.IncBookingCancelled("session")
	s.logger.Info().Int64("store_id", s.store.ID).Msg("booking session cancelled")
	s.reset()
}

func (s *Session) reset() {
	s.active = false
	s.store = domain.Store{}
	s.services = nil
	s.date = time.Time{}
	s.slot = ""
	s.staff = ""
}
