package domain

import (
	"fmt"
	"strings"
)

type BedShape string

const (
	BedUnknown BedShape = ""
	BedKing    BedShape = "king"
	BedDouble  BedShape = "double"
)

// UnknownRatePriority is the rate code given to rate types missing from the table.
const UnknownRatePriority = 99

// RoomType is one sellable category. Tier 1 is the best category; larger
// numbers are worse and 0 means unranked.
type RoomType struct {
	Code              string   `mapstructure:"code" json:"code"`
	Description       string   `mapstructure:"description" json:"description,omitempty"`
	Inventory         int      `mapstructure:"inventory" json:"inventory"`
	Tier              int      `mapstructure:"tier" json:"tier"`
	Bed               BedShape `mapstructure:"bed" json:"bed,omitempty"`
	NamedSuite        bool     `mapstructure:"named_suite" json:"named_suite,omitempty"`
	ADA               bool     `mapstructure:"ada" json:"ada,omitempty"`
	UpgradePath       []string `mapstructure:"upgrade_path" json:"upgrade_path,omitempty"`
	CrossCategoryPath []string `mapstructure:"cross_category_path" json:"cross_category_path,omitempty"`
}

// Property is the static configuration of one hotel.
type Property struct {
	Name     string     `mapstructure:"name" json:"name"`
	Capacity int        `mapstructure:"capacity" json:"capacity"`
	Rooms    []RoomType `mapstructure:"room_types" json:"room_types"`
	// NamedSuiteOrder is the scan order for the named-suite fallback.
	NamedSuiteOrder []string       `mapstructure:"named_suite_order" json:"named_suite_order"`
	RatePriority    map[string]int `mapstructure:"rate_priority" json:"rate_priority"`
	LoyaltyPriority map[string]int `mapstructure:"loyalty_priority" json:"loyalty_priority"`
	// LowValueRate is the first rate code treated as low value.
	LowValueRate     int    `mapstructure:"low_value_rate" json:"low_value_rate"`
	ADAMarker        string `mapstructure:"ada_marker" json:"ada_marker"`
	ConnectingMarker string `mapstructure:"connecting_marker" json:"connecting_marker"`
}

func (p Property) RoomType(code string) (RoomType, bool) {
	for _, rt := range p.Rooms {
		if rt.Code == code {
			return rt, true
		}
	}
	return RoomType{}, false
}

func (p Property) TotalInventory() int {
	n := 0
	for _, rt := range p.Rooms {
		n += rt.Inventory
	}
	return n
}

// RateCode returns the priority code of a rate type; lower codes are served first.
func (p Property) RateCode(rate string) int {
	if n, ok := lookupFold(p.RatePriority, rate); ok {
		return n
	}
	return UnknownRatePriority
}

// LoyaltyRank returns the loyalty weight of a tier; unrecognized tiers rank 0.
func (p Property) LoyaltyRank(tier string) int {
	n, _ := lookupFold(p.LoyaltyPriority, tier)
	return n
}

func (p Property) IsLowValueRate(rate string) bool {
	return p.LowValueRate > 0 && p.RateCode(rate) >= p.LowValueRate
}

func (p Property) NeedsADA(r Reservation) bool { return r.Requests(p.ADAMarker) }

// Validate checks the table is internally consistent.
func (p Property) Validate() error {
	if p.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidProperty)
	}
	if len(p.Rooms) == 0 {
		return fmt.Errorf("%w: no room types", ErrInvalidProperty)
	}
	seen := make(map[string]RoomType, len(p.Rooms))
	for _, rt := range p.Rooms {
		if strings.TrimSpace(rt.Code) == "" {
			return fmt.Errorf("%w: room type without code", ErrInvalidProperty)
		}
		if _, dup := seen[rt.Code]; dup {
			return fmt.Errorf("%w: duplicate room type %s", ErrInvalidProperty, rt.Code)
		}
		if rt.Inventory < 0 || rt.Tier < 0 {
			return fmt.Errorf("%w: %s has negative inventory or tier", ErrInvalidProperty, rt.Code)
		}
		seen[rt.Code] = rt
	}
	for _, rt := range p.Rooms {
		for _, c := range append(append([]string{}, rt.UpgradePath...), rt.CrossCategoryPath...) {
			if _, ok := seen[c]; !ok {
				return fmt.Errorf("%w: %s references unknown room type %s", ErrInvalidProperty, rt.Code, c)
			}
		}
	}
	for _, c := range p.NamedSuiteOrder {
		rt, ok := seen[c]
		if !ok || !rt.NamedSuite {
			return fmt.Errorf("%w: %s in named suite order is not a named suite", ErrInvalidProperty, c)
		}
	}
	if k := foldDuplicate(p.RatePriority); k != "" {
		return fmt.Errorf("%w: rate type %q listed twice with different case", ErrInvalidProperty, k)
	}
	if k := foldDuplicate(p.LoyaltyPriority); k != "" {
		return fmt.Errorf("%w: loyalty tier %q listed twice with different case", ErrInvalidProperty, k)
	}
	if p.TotalInventory() > p.Capacity {
		return fmt.Errorf("%w: inventory %d exceeds capacity %d", ErrInvalidProperty, p.TotalInventory(), p.Capacity)
	}
	return nil
}

// foldDuplicate returns a key that another key of m equals case-insensitively,
// or "". The smallest such key is returned so the error is stable.
func foldDuplicate(m map[string]int) string {
	seen := make(map[string]string, len(m))
	dup := ""
	for k := range m {
		f := strings.ToLower(k)
		if other, ok := seen[f]; ok {
			if c := min(k, other); dup == "" || c < dup {
				dup = c
			}
			continue
		}
		seen[f] = k
	}
	return dup
}

// lookupFold matches keys case-insensitively; config loaders lowercase map keys.
func lookupFold(m map[string]int, k string) (int, bool) {
	if v, ok := m[k]; ok {
		return v, true
	}
	for key, v := range m {
		if strings.EqualFold(key, k) {
			return v, true
		}
	}
	return 0, false
}
