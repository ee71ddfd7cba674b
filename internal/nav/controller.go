// Package nav holds the navigation state machine: the current view, per-view
// scroll memory, cross-view payloads and the pending booking queue.
package nav

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"lacquer/internal/domain"
	"lacquer/internal/route"
)

// StoreLookup resolves stores referenced by route parameters.
type StoreLookup interface {
	Store(id int64) (*domain.Store, error)
}

// Payload carries cross-view state applied atomically with a view switch.
type Payload struct {
	Pin     *domain.Pin
	Store   *domain.Store
	Section domain.SettingsSection
}

// Sub-pages return to a single well-defined parent on back. No sub-page
// can navigate directly to another sub-page.
var backTargets = map[domain.View]domain.View{
	domain.ViewPinDetail:      domain.ViewHome,
	domain.ViewDeals:          domain.ViewHome,
	domain.ViewEditProfile:    domain.ViewProfile,
	domain.ViewOrderHistory:   domain.ViewProfile,
	domain.ViewMyPoints:       domain.ViewProfile,
	domain.ViewMyCoupons:      domain.ViewProfile,
	domain.ViewMyGiftCards:    domain.ViewProfile,
	domain.ViewSettings:       domain.ViewProfile,
	domain.ViewVipDescription: domain.ViewProfile,
}

// Controller owns the whole navigation state. All mutation goes through
// its methods; rendering collaborators only read.
type Controller struct {
	gate     *Gate
	resolver *route.Resolver
	stores   StoreLookup
	logger   zerolog.Logger

	mu              sync.Mutex
	current         domain.View
	scroll          map[domain.View]int
	selectedPin     *domain.Pin
	selectedStore   *domain.Store
	pending         []domain.Booking
	settingsSection domain.SettingsSection
}

// NewController creates a controller starting at the login view.
func NewController(gate *Gate, resolver *route.Resolver, stores StoreLookup, logger zerolog.Logger) *Controller {
	return &Controller{
		gate:            gate,
		resolver:        resolver,
		stores:          stores,
		logger:          logger.With().Str("component", "nav").Logger(),
		current:         domain.ViewLogin,
		scroll:          make(map[domain.View]int),
		settingsSection: domain.SettingsMain,
	}
}

// Navigate switches to target after passing the access gate. The caller
// supplies its current scroll offset, which is snapshotted for the view
// being left. A denied navigation leaves all state untouched except
// redirecting the current view to login.
func (c *Controller) Navigate(ctx context.Context, target domain.View, scroll int, payload *Payload) Decision {
	if decision := c.gate.Authorize(ctx, target); decision != Allow {
		c.mu.Lock()
		c.current = domain.ViewLogin
		c.mu.Unlock()
		return RedirectToLogin
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if scroll < 0 {
		scroll = 0
	}
	c.scroll[c.current] = scroll
	c.apply(target, payload)
	return Allow
}

// apply performs the view switch and payload application as one step.
// Caller holds the lock.
func (c *Controller) apply(target domain.View, payload *Payload) {
	if c.current == domain.ViewSettings && target != domain.ViewSettings {
		c.settingsSection = domain.SettingsMain
	}

	c.current = target

	if payload != nil {
		if payload.Pin != nil {
			c.selectedPin = payload.Pin
		}
		if payload.Store != nil {
			c.selectedStore = payload.Store
		}
		if payload.Section != "" {
			c.settingsSection = payload.Section
		}
	}

	// selectedStore is route-derived state: it exists only while the
	// services view has store details open.
	if target != domain.ViewServices {
		c.selectedStore = nil
	} else if payload == nil || payload.Store == nil {
		c.selectedStore = nil
	}
	if target != domain.ViewPinDetail {
		c.selectedPin = nil
	}

	c.logger.Debug().Str("view", string(target)).Msg("navigated")
}

// Open resolves a URL path and navigates to the resulting view. A
// services route carrying an unknown or malformed store id falls back to
// the services list, mirroring a deep link to a store that no longer exists.
func (c *Controller) Open(ctx context.Context, path string, scroll int) Decision {
	view, params := c.resolver.Resolve(path, c.gate.Authenticated(ctx))

	var payload *Payload
	if view == domain.ViewServices {
		if raw, present := params["storeId"]; present {
			id, ok := params.StoreID()
			if !ok {
				c.logger.Warn().Str("store_id", raw).Msg("malformed store id in path")
				return c.Navigate(ctx, domain.ViewServices, scroll, nil)
			}
			store, err := c.stores.Store(id)
			if err != nil {
				c.logger.Warn().Int64("store_id", id).Msg("unknown store in path")
				return c.Navigate(ctx, domain.ViewServices, scroll, nil)
			}
			payload = &Payload{Store: store}
		}
	}

	return c.Navigate(ctx, view, scroll, payload)
}

// Back returns to the current view's parent. Store details back out to
// the services list; views without a parent return to home.
func (c *Controller) Back(ctx context.Context, scroll int) Decision {
	c.mu.Lock()
	parent, ok := backTargets[c.current]
	if c.current == domain.ViewServices && c.selectedStore != nil {
		parent, ok = domain.ViewServices, true
	}
	c.mu.Unlock()
	if !ok {
		parent = domain.ViewHome
	}
	return c.Navigate(ctx, parent, scroll, nil)
}

// RestoreScroll returns the last recorded offset for view, or 0 if none
// was recorded. It must be consulted before the view is presented.
func (c *Controller) RestoreScroll(view domain.View) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scroll[view]
}

// RecordBooking appends a confirmed booking to the pending queue.
func (c *Controller) RecordBooking(b domain.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, b)
}

// LatestBooking returns the most recently recorded pending booking.
func (c *Controller) LatestBooking() *domain.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return nil
	}
	b := c.pending[len(c.pending)-1]
	return &b
}

// ClearLatestBooking pops the last pending booking. Removal is LIFO, not
// identity-based: with several bookings queued this drops whichever was
// recorded last, not necessarily the one being viewed. Kept for parity
// with the dismissal flow; CancelBooking is the id-addressed variant.
func (c *Controller) ClearLatestBooking() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return
	}
	c.pending = c.pending[:len(c.pending)-1]
}

// CancelBooking removes the pending booking with the given id.
func (c *Controller) CancelBooking(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, b := range c.pending {
		if b.ID == id {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return nil
		}
	}
	return domain.ErrBookingNotFound
}

// PendingBookings returns a copy of the pending queue in record order.
func (c *Controller) PendingBookings() []domain.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Booking(nil), c.pending...)
}

// CurrentView returns the active view.
func (c *Controller) CurrentView() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SelectedPin returns the pin payload for the pin-detail view.
func (c *Controller) SelectedPin() *domain.Pin {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedPin
}

// SelectedStore returns the store whose details are open, if any.
func (c *Controller) SelectedStore() *domain.Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedStore
}

// SettingsSection returns the sub-state of the settings view.
func (c *Controller) SettingsSection() domain.SettingsSection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settingsSection
}
