package domain

import "time"

// ServiceID identifies a salon service within a store's menu.
type ServiceID string

// StaffID identifies a technician. Empty means "any available".
type StaffID string

// TimeSlot is a start-of-appointment label, e.g. "14:00".
type TimeSlot string

// Service is a bookable salon service with a fixed price and duration.
type Service struct {
	ID              ServiceID
	Name            string
	PriceCents      int64
	DurationMinutes int
}

// Staff is a technician offered by a store.
type Staff struct {
	ID   StaffID
	Name string
}

// Store is a salon offering services at fixed time slots.
type Store struct {
	ID          int64
	Name        string
	Address     string
	Rating      float64
	ReviewCount int
	Services    []Service
	Staff       []Staff
	TimeSlots   []TimeSlot
}

// Pin is a gallery item opened in the pin-detail view.
type Pin struct {
	ID       string
	Title    string
	ImageURL string
	StoreID  int64
}

// Booking is the immutable artifact produced by a confirmed booking session.
// Services are value snapshots; later catalog changes do not affect a booking.
type Booking struct {
	ID                   string
	StoreID              int64
	StoreName            string
	Services             []Service
	Date                 time.Time
	Time                 TimeSlot
	Staff                StaffID
	TotalPriceCents      int64
	TotalDurationMinutes int
	CreatedAt            time.Time
}

// User is the profile record returned by the auth service.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
