package catalog

import "lacquer/internal/domain"

func defaultMenu() []domain.Service {
	return []domain.Service{
		{ID: "classic-mani", Name: "Manicure", PriceCents: 2000, DurationMinutes: 25},
		{ID: "mani-pedi", Name: "Manicure and pedicure", PriceCents: 5000, DurationMinutes: 55},
		{ID: "gel-remove", Name: "Gel Remove", PriceCents: 800, DurationMinutes: 15},
		{ID: "gel-mani", Name: "Gel Manicure", PriceCents: 3000, DurationMinutes: 40},
		{ID: "acrylic-full-set", Name: "Acrylic Full Set", PriceCents: 4500, DurationMinutes: 60},
		{ID: "dip-powder", Name: "Dip Powder", PriceCents: 4000, DurationMinutes: 45},
	}
}

func defaultStaff() []domain.Staff {
	return []domain.Staff{
		{ID: "1", Name: "Linda"},
		{ID: "2", Name: "Sarah"},
		{ID: "3", Name: "Jessica"},
		{ID: "4", Name: "Amy"},
	}
}

func defaultSlots() []domain.TimeSlot {
	return []domain.TimeSlot{"09:00", "09:30", "10:00", "11:00", "13:30", "14:00", "15:30", "16:00"}
}

func seedStores() []domain.Store {
	return []domain.Store{
		{
			ID:          1,
			Name:        "JM Nails By Michelle",
			Address:     "573 State St, Springfield, 01109",
			Rating:      5.0,
			ReviewCount: 9,
			Services:    defaultMenu(),
			Staff:       defaultStaff(),
			TimeSlots:   defaultSlots(),
		},
		{
			ID:          2,
			Name:        "Luxe Nail Spa",
			Address:     "123 Main St, Downtown, 01103",
			Rating:      4.8,
			ReviewCount: 124,
			Services:    defaultMenu(),
			Staff:       defaultStaff(),
			TimeSlots:   defaultSlots(),
		},
		{
			ID:          3,
			Name:        "Golden Touch Salon",
			Address:     "442 Broadway, West Side, 01105",
			Rating:      4.9,
			ReviewCount: 56,
			Services:    defaultMenu(),
			Staff:       defaultStaff(),
			TimeSlots:   defaultSlots(),
		},
	}
}
