package route

import (
	"testing"

	"lacquer/internal/domain"
)

func TestResolveKnownPaths(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name string
		path string
		view domain.View
	}{
		{"root", "/", domain.ViewHome},
		{"services list", "/services", domain.ViewServices},
		{"appointments", "/appointments", domain.ViewAppointments},
		{"profile", "/profile", domain.ViewProfile},
		{"deals", "/deals", domain.ViewDeals},
		{"pin detail", "/pin-detail", domain.ViewPinDetail},
		{"edit profile", "/edit-profile", domain.ViewEditProfile},
		{"order history", "/order-history", domain.ViewOrderHistory},
		{"my points", "/my-points", domain.ViewMyPoints},
		{"my coupons", "/my-coupons", domain.ViewMyCoupons},
		{"my gift cards", "/my-gift-cards", domain.ViewMyGiftCards},
		{"settings", "/settings", domain.ViewSettings},
		{"vip description", "/vip-description", domain.ViewVipDescription},
		{"login", "/login", domain.ViewLogin},
		{"register", "/register", domain.ViewRegister},
		{"trailing slash", "/services/", domain.ViewServices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, _ := r.Resolve(tt.path, true)
			if view != tt.view {
				t.Errorf("Resolve(%q): expected %s, got %s", tt.path, tt.view, view)
			}
		})
	}
}

func TestResolveStoreParameter(t *testing.T) {
	r := NewResolver()

	view, params := r.Resolve("/services/42", true)
	if view != domain.ViewServices {
		t.Fatalf("expected services view, got %s", view)
	}
	id, ok := params.StoreID()
	if !ok {
		t.Fatal("expected storeId parameter")
	}
	if id != 42 {
		t.Errorf("expected storeId 42, got %d", id)
	}

	view, params = r.Resolve("/services", true)
	if view != domain.ViewServices {
		t.Fatalf("expected services view, got %s", view)
	}
	if _, ok := params.StoreID(); ok {
		t.Error("expected no storeId parameter for bare services path")
	}
}

func TestResolveMalformedStoreID(t *testing.T) {
	r := NewResolver()

	for _, raw := range []string{"abc", "-1", "0", "1.5"} {
		view, params := r.Resolve("/services/"+raw, true)
		if view != domain.ViewServices {
			t.Errorf("path /services/%s: expected services view, got %s", raw, view)
		}
		if _, ok := params.StoreID(); ok {
			t.Errorf("path /services/%s: expected invalid storeId", raw)
		}
	}
}

func TestResolveCatchAll(t *testing.T) {
	r := NewResolver()

	view, _ := r.Resolve("/no-such-page", true)
	if view != domain.ViewHome {
		t.Errorf("authenticated catch-all: expected home, got %s", view)
	}

	view, _ = r.Resolve("/no-such-page", false)
	if view != domain.ViewLogin {
		t.Errorf("unauthenticated catch-all: expected login, got %s", view)
	}

	view, _ = r.Resolve("/services/1/extra", false)
	if view != domain.ViewLogin {
		t.Errorf("deep unknown path: expected login, got %s", view)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := NewResolver()
	for i := 0; i < 3; i++ {
		view, params := r.Resolve("/services/7", true)
		if view != domain.ViewServices {
			t.Fatalf("run %d: got %s", i, view)
		}
		if id, _ := params.StoreID(); id != 7 {
			t.Fatalf("run %d: got storeId %d", i, id)
		}
	}
}
