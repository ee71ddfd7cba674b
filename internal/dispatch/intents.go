package dispatch

import (
	"time"

	"lacquer/internal/domain"
)

// Intent is a command emitted by a rendering collaborator. Views never
// touch the state machines directly; they enqueue intents and the
// dispatcher routes them.
type Intent interface {
	intentName() string
}

// OpenPath resolves a URL path and navigates to the resulting view.
type OpenPath struct {
	Path   string
	Scroll int
}

// NavigateTo switches to a view directly (bottom navigation).
type NavigateTo struct {
	View   domain.View
	Scroll int
}

// Back returns to the current view's parent.
type Back struct {
	Scroll int
}

// OpenPin opens the pin-detail view for a gallery item.
type OpenPin struct {
	Pin    domain.Pin
	Scroll int
}

// SelectStore opens store details and starts a booking session for it.
type SelectStore struct {
	StoreID int64
	Scroll  int
}

// ToggleService adds or removes a service from the active booking session.
type ToggleService struct {
	ServiceID domain.ServiceID
}

// SetDate selects the appointment date.
type SetDate struct {
	Date time.Time
}

// SetTimeSlot selects the appointment time slot.
type SetTimeSlot struct {
	Slot domain.TimeSlot
}

// SetStaff selects a technician; empty means any available.
type SetStaff struct {
	StaffID domain.StaffID
}

// OpenSettings opens the settings view on a given sub-section.
type OpenSettings struct {
	Section domain.SettingsSection
	Scroll  int
}

// ConfirmBooking confirms the active booking session.
type ConfirmBooking struct{}

// CancelBookingSession abandons the active booking session.
type CancelBookingSession struct{}

// DismissLatestBooking pops the most recent pending booking.
type DismissLatestBooking struct{}

// CancelBooking removes a pending booking by id.
type CancelBooking struct {
	ID string
}

// ExportHistory writes booking history to an xlsx file at Path.
type ExportHistory struct {
	Path string
}

// Login submits credentials to the auth service.
type Login struct {
	Email    string
	Password string
}

// Logout clears the session and returns to the login view.
type Logout struct{}

func (OpenPath) intentName() string             { return "open_path" }
func (NavigateTo) intentName() string           { return "navigate_to" }
func (Back) intentName() string                 { return "back" }
func (OpenPin) intentName() string              { return "open_pin" }
func (SelectStore) intentName() string          { return "select_store" }
func (ToggleService) intentName() string        { return "toggle_service" }
func (SetDate) intentName() string              { return "set_date" }
func (SetTimeSlot) intentName() string          { return "set_time_slot" }
func (SetStaff) intentName() string             { return "set_staff" }
func (OpenSettings) intentName() string         { return "open_settings" }
func (ConfirmBooking) intentName() string       { return "confirm_booking" }
func (CancelBookingSession) intentName() string { return "cancel_booking_session" }
func (DismissLatestBooking) intentName() string { return "dismiss_latest_booking" }
func (CancelBooking) intentName() string        { return "cancel_booking" }
func (ExportHistory) intentName() string        { return "export_history" }
func (Login) intentName() string                { return "login" }
func (Logout) intentName() string               { return "logout" }
