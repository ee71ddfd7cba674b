// Package catalog holds the salon discovery data: stores, their service
// menus, technicians and bookable time slots.
package catalog

import (
	"sort"
	"sync"

	"lacquer/internal/domain"
)

// Catalog is an in-memory store directory. Reads copy values out so
// callers can never mutate catalog state through a returned entity.
type Catalog struct {
	mu     sync.RWMutex
	stores map[int64]domain.Store
}

// New returns a catalog seeded with the demo store directory.
func New() *Catalog {
	c := &Catalog{stores: make(map[int64]domain.Store)}
	for _, s := range seedStores() {
		c.stores[s.ID] = s
	}
	return c
}

// Store returns a copy of the store with the given id.
func (c *Catalog) Store(id int64) (*domain.Store, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.stores[id]
	if !ok {
		return nil, domain.ErrUnknownStore
	}
	cp := copyStore(s)
	return &cp, nil
}

// Stores returns all stores ordered by id.
func (c *Catalog) Stores() []domain.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Store, 0, len(c.stores))
	for _, s := range c.stores {
		out = append(out, copyStore(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Service resolves a service from a store's menu.
func (c *Catalog) Service(storeID int64, id domain.ServiceID) (*domain.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.stores[storeID]
	if !ok {
		return nil, domain.ErrUnknownStore
	}
	for _, svc := range s.Services {
		if svc.ID == id {
			cp := svc
			return &cp, nil
		}
	}
	return nil, domain.ErrUnknownService
}

// Staff resolves a technician from a store's roster.
func (c *Catalog) Staff(storeID int64, id domain.StaffID) (*domain.Staff, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.stores[storeID]
	if !ok {
		return nil, domain.ErrUnknownStore
	}
	for _, st := range s.Staff {
		if st.ID == id {
			cp := st
			return &cp, nil
		}
	}
	return nil, domain.ErrUnknownStaff
}

// HasTimeSlot reports whether the store offers the given slot.
func (c *Catalog) HasTimeSlot(storeID int64, slot domain.TimeSlot) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.stores[storeID]
	if !ok {
		return false
	}
	for _, ts := range s.TimeSlots {
		if ts == slot {
			return true
		}
	}
	return false
}

// UpdateServicePrice changes a service price in place. Exists so tests
// can verify bookings snapshot prices instead of referencing the menu.
func (c *Catalog) UpdateServicePrice(storeID int64, id domain.ServiceID, priceCents int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.stores[storeID]
	if !ok {
		return domain.ErrUnknownStore
	}
	for i := range s.Services {
		if s.Services[i].ID == id {
			s.Services[i].PriceCents = priceCents
			c.stores[storeID] = s
			return nil
		}
	}
	return domain.ErrUnknownService
}

func copyStore(s domain.Store) domain.Store {
	cp := s
	cp.Services = append([]domain.Service(nil), s.Services...)
	cp.Staff = append([]domain.Staff(nil), s.Staff...)
	cp.TimeSlots = append([]domain.TimeSlot(nil), s.TimeSlots...)
	return cp
}
