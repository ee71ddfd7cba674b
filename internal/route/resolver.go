// Package route maps client URL paths to logical views.
package route

import (
	"strconv"
	"strings"

	"lacquer/internal/domain"
)

// Params carries values extracted from parameterized path segments.
type Params map[string]string

// StoreID returns the numeric storeId parameter.
func (p Params) StoreID() (int64, bool) {
	raw, ok := p["storeId"]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type routeDef struct {
	pattern string
	view    domain.View
}

// The table is ordered most-specific first: a parameterized route is
// listed before its bare prefix so /services/:storeId wins over /services.
var table = []routeDef{
	{"/services/:storeId", domain.ViewServices},
	{"/services", domain.ViewServices},
	{"/appointments", domain.ViewAppointments},
	{"/profile", domain.ViewProfile},
	{"/deals", domain.ViewDeals},
	{"/pin-detail", domain.ViewPinDetail},
	{"/edit-profile", domain.ViewEditProfile},
	{"/order-history", domain.ViewOrderHistory},
	{"/my-points", domain.ViewMyPoints},
	{"/my-coupons", domain.ViewMyCoupons},
	{"/my-gift-cards", domain.ViewMyGiftCards},
	{"/settings", domain.ViewSettings},
	{"/vip-description", domain.ViewVipDescription},
	{"/login", domain.ViewLogin},
	{"/register", domain.ViewRegister},
	{"/", domain.ViewHome},
}

// Resolver performs a pure, deterministic path-to-view mapping.
type Resolver struct{}

// NewResolver returns the route resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve maps path to a view and extracted parameters. Unknown paths
// fall through to Home for authenticated clients and Login otherwise.
func (r *Resolver) Resolve(path string, authenticated bool) (domain.View, Params) {
	segments := split(path)

	for _, def := range table {
		if params, ok := match(split(def.pattern), segments); ok {
			return def.view, params
		}
	}

	if authenticated {
		return domain.ViewHome, Params{}
	}
	return domain.ViewLogin, Params{}
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func match(pattern, segments []string) (Params, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := Params{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segments[i] == "" {
				return nil, false
			}
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}
