// Package dispatch is the single-threaded command loop of the client:
// intents are processed one at a time, to completion, in arrival order,
// so the navigation and booking state machines never see parallel mutation.
package dispatch

import (
	"context"

	"github.com/rs/zerolog"

	"lacquer/internal/auth"
	"lacquer/internal/booking"
	"lacquer/internal/domain"
	"lacquer/internal/events"
	"lacquer/internal/export"
	"lacquer/internal/metrics"
	"lacquer/internal/nav"
)

// History persists confirmed bookings.
type History interface {
	SaveBooking(ctx context.Context, b domain.Booking) error
	DeleteBooking(ctx context.Context, id string) error
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

// Dispatcher routes intents to the navigation controller, the booking
// session and the auth service.
type Dispatcher struct {
	controller *nav.Controller
	session    *booking.Session
	authSvc    *auth.Service
	stores     nav.StoreLookup
	history    History
	bus        *events.EventBus
	logger     zerolog.Logger

	intents chan Intent
}

// NewDispatcher wires the dispatcher. history may be nil when no durable
// booking history is configured.
func NewDispatcher(
	controller *nav.Controller,
	session *booking.Session,
	authSvc *auth.Service,
	stores nav.StoreLookup,
	history History,
	bus *events.EventBus,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		controller: controller,
		session:    session,
		authSvc:    authSvc,
		stores:     stores,
		history:    history,
		bus:        bus,
		logger:     logger.With().Str("component", "dispatch").Logger(),
		intents:    make(chan Intent, 64),
	}
}

// Dispatch enqueues an intent for processing.
func (d *Dispatcher) Dispatch(intent Intent) {
	d.intents <- intent
}

// Run processes intents until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case intent := <-d.intents:
			d.Process(ctx, intent)
		}
	}
}

// Process handles a single intent to completion. Contract violations
// (confirming an incomplete session, starting a second one) are logged
// and dropped rather than crashing the loop.
func (d *Dispatcher) Process(ctx context.Context, intent Intent) {
	switch in := intent.(type) {
	case OpenPath:
		d.controller.Open(ctx, in.Path, in.Scroll)
		d.syncBookingSession()

	case NavigateTo:
		d.controller.Navigate(ctx, in.View, in.Scroll, nil)

	case Back:
		d.controller.Back(ctx, in.Scroll)

	case OpenPin:
		pin := in.Pin
		d.controller.Navigate(ctx, domain.ViewPinDetail, in.Scroll, &nav.Payload{Pin: &pin})

	case SelectStore:
		d.selectStore(ctx, in)

	case ToggleService:
		d.warnOnContract(d.session.ToggleService(in.ServiceID), intent)

	case SetDate:
		d.warnOnContract(d.session.SetDate(in.Date), intent)

	case SetTimeSlot:
		d.warnOnContract(d.session.SetTime(in.Slot), intent)

	case SetStaff:
		d.warnOnContract(d.session.SetStaff(in.StaffID), intent)

	case OpenSettings:
		section := in.Section
		if section == "" {
			section = domain.SettingsMain
		}
		d.controller.Navigate(ctx, domain.ViewSettings, in.Scroll, &nav.Payload{Section: section})

	case ConfirmBooking:
		d.confirmBooking(ctx)

	case CancelBookingSession:
		d.session.Cancel()

	case DismissLatestBooking:
		if latest := d.controller.LatestBooking(); latest != nil {
			d.controller.ClearLatestBooking()
			metrics.IncBookingCancelled("pending")
			d.bus.Publish(events.Event{Type: events.TypeBookingCancelled, Payload: *latest})
		}

	case CancelBooking:
		d.cancelBooking(ctx, in.ID)

	case ExportHistory:
		d.exportHistory(ctx, in.Path)

	case Login:
		if err := d.authSvc.Login(ctx, in.Email, in.Password); err != nil {
			d.logger.Warn().Err(err).Msg("login rejected")
			return
		}
		event := events.Event{Type: events.TypeLoggedIn}
		if user, err := d.authSvc.CurrentUser(ctx); err != nil {
			d.logger.Warn().Err(err).Msg("profile fetch after login failed")
		} else {
			event.Payload = *user
		}
		d.bus.Publish(event)
		d.controller.Navigate(ctx, domain.ViewHome, 0, nil)

	case Logout:
		if err := d.authSvc.Logout(ctx); err != nil {
			d.logger.Error().Err(err).Msg("logout failed")
			return
		}
		d.session.Cancel()
		d.bus.Publish(events.Event{Type: events.TypeLoggedOut})
		d.controller.Navigate(ctx, domain.ViewLogin, 0, nil)

	default:
		d.logger.Error().Str("intent", intent.intentName()).Msg("unhandled intent")
	}
}

func (d *Dispatcher) selectStore(ctx context.Context, in SelectStore) {
	store, err := d.stores.Store(in.StoreID)
	if err != nil {
		d.logger.Warn().Int64("store_id", in.StoreID).Err(err).Msg("store selection failed")
		return
	}
	if d.controller.Navigate(ctx, domain.ViewServices, in.Scroll, &nav.Payload{Store: store}) != nav.Allow {
		return
	}
	d.syncBookingSession()
}

// syncBookingSession keeps the booking session bound to the store whose
// details are open. Entering discovery with details open begins a booking;
// switching to a different store drops the stale selections and starts over,
// since they belong to the old store's menu.
func (d *Dispatcher) syncBookingSession() {
	store := d.controller.SelectedStore()
	if store == nil {
		return
	}
	if d.session.Active() {
		if d.session.Store().ID == store.ID {
			return
		}
		d.logger.Warn().
			Int64("old_store_id", d.session.Store().ID).
			Int64("store_id", store.ID).
			Msg("store changed, restarting booking session")
		d.session.Cancel()
	}
	if err := d.session.Start(*store); err != nil {
		d.logger.Warn().Err(err).Msg("booking session start failed")
	}
}

func (d *Dispatcher) confirmBooking(ctx context.Context) {
	b, err := d.session.Confirm()
	if err != nil {
		d.warnOnContract(err, ConfirmBooking{})
		return
	}

	if d.history != nil {
		if err := d.history.SaveBooking(ctx, *b); err != nil {
			d.logger.Error().Err(err).Str("booking_id", b.ID).Msg("booking history write failed")
		}
	}
	d.bus.Publish(events.Event{Type: events.TypeBookingConfirmed, Payload: *b})
	d.controller.Navigate(ctx, domain.ViewAppointments, 0, nil)
}

func (d *Dispatcher) cancelBooking(ctx context.Context, id string) {
	if err := d.controller.CancelBooking(id); err != nil {
		d.logger.Warn().Str("booking_id", id).Err(err).Msg("cancel failed")
		return
	}
	if d.history != nil {
		if err := d.history.DeleteBooking(ctx, id); err != nil && err != domain.ErrBookingNotFound {
			d.logger.Error().Err(err).Str("booking_id", id).Msg("booking history delete failed")
		}
	}
	metrics.IncBookingCancelled("pending")
	d.bus.Publish(events.Event{Type: events.TypeBookingCancelled, Payload: id})
}

func (d *Dispatcher) exportHistory(ctx context.Context, path string) {
	if d.history == nil {
		d.logger.Warn().Msg("no booking history configured, export skipped")
		return
	}
	bookings, err := d.history.ListBookings(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("listing bookings for export failed")
		return
	}
	if err := export.WriteHistoryFile(path, bookings); err != nil {
		d.logger.Error().Err(err).Str("path", path).Msg("history export failed")
		return
	}
	d.logger.Info().Str("path", path).Int("count", len(bookings)).Msg("history exported")
}

func (d *Dispatcher) warnOnContract(err error, intent Intent) {
	if err == nil {
		return
	}
	d.logger.Warn().Str("intent", intent.intentName()).Err(err).Msg("intent dropped")
}
