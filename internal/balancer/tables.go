package balancer

import "room_balancer/internal/domain"

// DefaultCapacity is the physical room count of the default property.
const DefaultCapacity = 321

// DefaultProperty returns the built-in table for Embassy Suites Centennial Park.
// Every call returns a fresh copy.
func DefaultProperty() domain.Property {
	return domain.Property{
		Name:     "Embassy Suites Centennial Park",
		Capacity: DefaultCapacity,
		Rooms: []domain.RoomType{
			{Code: "KNGN", Description: "Standard King", Inventory: 94, Tier: 4, Bed: domain.BedKing,
				UpgradePath: []string{"KSVN", "KEXN", "NKSP", "NKSPK", "NKSCJ"}},
			{Code: "TDBN", Description: "Standard 2 Double", Inventory: 126, Tier: 4, Bed: domain.BedDouble,
				UpgradePath:       []string{"TSVN", "TCSN", "NDSPXC"},
				CrossCategoryPath: []string{"KNGN", "KSVN", "KEXN", "NKSP"}},
			{Code: "KSVN", Description: "Park View King", Inventory: 44, Tier: 3, Bed: domain.BedKing,
				UpgradePath: []string{"KEXN", "NKSPK", "NKSCJ", "NKSP"}},
			{Code: "TSVN", Description: "Park View Double", Inventory: 20, Tier: 3, Bed: domain.BedDouble,
				UpgradePath:       []string{"TCSN", "NDSPXC"},
				CrossCategoryPath: []string{"KSVN", "KEXN", "NKSP", "NKSPK"}},
			{Code: "NKSQA", Description: "King ADA (tub)", Inventory: 13, Tier: 4, Bed: domain.BedKing, ADA: true,
				UpgradePath:       []string{"NKSQB", "NKSPD"},
				CrossCategoryPath: []string{"KNGN", "KSVN", "KEXN"}},
			{Code: "NKSQB", Description: "King ADA (roll-in)", Inventory: 2, Tier: 4, Bed: domain.BedKing, ADA: true,
				UpgradePath:       []string{"NKSPD"},
				CrossCategoryPath: []string{"KNGN", "KSVN", "KEXN"}},
			{Code: "NDSPXC", Description: "Premium Corner Double", Inventory: 5, Tier: 2, Bed: domain.BedDouble},
			{Code: "TCSN", Description: "Conference Suite", Inventory: 5, Tier: 2, Bed: domain.BedDouble,
				CrossCategoryPath: []string{"KEXN", "NKSP", "NKSPK"}},
			{Code: "KEXN", Description: "Executive King", Inventory: 3, Tier: 2, Bed: domain.BedKing,
				UpgradePath: []string{"NKSPK", "NKSCJ", "NKSP"}},
			{Code: "NKSCJ", Description: "Park View King Corner", Inventory: 2, Tier: 2, Bed: domain.BedKing},
			{Code: "NKSPK", Description: "Premium Park View King", Inventory: 2, Tier: 2, Bed: domain.BedKing},
			{Code: "NKSP", Description: "Premium King", Inventory: 1, Tier: 2, Bed: domain.BedKing},
			{Code: "NKSPD", Description: "Premium King ADA", Inventory: 1, Tier: 2, Bed: domain.BedKing, ADA: true,
				CrossCategoryPath: []string{"NKSP", "KEXN", "NKSPK"}},
			{Code: "KSLN", Description: "Centennial Suite", Inventory: 1, Tier: 1, Bed: domain.BedKing, NamedSuite: true},
			{Code: "KSPN", Description: "Presidential Suite", Inventory: 1, Tier: 1, Bed: domain.BedKing, NamedSuite: true},
			{Code: "KOTN", Description: "Governor's Suite", Inventory: 1, Tier: 1, Bed: domain.BedKing, NamedSuite: true},
		},
		NamedSuiteOrder: []string{"KSPN", "KOTN", "KSLN"},
		RatePriority: map[string]int{
			"Direct":      1,
			"AAA":         2,
			"Government":  3,
			"Corporate":   4,
			"Third-Party": 5,
			"Hilton Go":   6,
		},
		LoyaltyPriority: map[string]int{
			"Lifetime Diamond": 100,
			"Diamond":          90,
			"Gold":             80,
			"Silver":           70,
			"Blue":             60,
			"Non-Member":       50,
		},
		LowValueRate:     5,
		ADAMarker:        "ADA",
		ConnectingMarker: "Connecting",
	}
}
