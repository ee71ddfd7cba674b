package domain

// View identifies a top-level navigable screen in the client.
type View string

const (
	ViewHome           View = "home"
	ViewServices       View = "services"
	ViewAppointments   View = "appointments"
	ViewProfile        View = "profile"
	ViewDeals          View = "deals"
	ViewPinDetail      View = "pin-detail"
	ViewEditProfile    View = "edit-profile"
	ViewOrderHistory   View = "order-history"
	ViewMyPoints       View = "my-points"
	ViewMyCoupons      View = "my-coupons"
	ViewMyGiftCards    View = "my-gift-cards"
	ViewSettings       View = "settings"
	ViewVipDescription View = "vip-description"
	ViewLogin          View = "login"
	ViewRegister       View = "register"
)

var publicViews = map[View]bool{
	ViewLogin:    true,
	ViewRegister: true,
}

// Public reports whether the view is reachable without authentication.
func (v View) Public() bool {
	return publicViews[v]
}

// SettingsSection is the sub-state of the Settings view.
type SettingsSection string

const (
	SettingsMain     SettingsSection = "main"
	SettingsReferral SettingsSection = "referral"
	SettingsVip      SettingsSection = "vip"
)
