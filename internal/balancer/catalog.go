package balancer

import "room_balancer/internal/domain"

// Catalog is an indexed, read-only view of a Property used during one run.
type Catalog struct {
	prop  domain.Property
	types map[string]domain.RoomType
	order []string
}

func NewCatalog(p domain.Property) *Catalog {
	c := &Catalog{
		prop:  p,
		types: make(map[string]domain.RoomType, len(p.Rooms)),
		order: make([]string, 0, len(p.Rooms)),
	}
	for _, rt := range p.Rooms {
		if _, dup := c.types[rt.Code]; dup {
			continue
		}
		c.types[rt.Code] = rt
		c.order = append(c.order, rt.Code)
	}
	return c
}

// Lookup returns the room type for code. Unknown codes resolve to a type with
// zero inventory and no tier.
func (c *Catalog) Lookup(code string) domain.RoomType {
	if rt, ok := c.types[code]; ok {
		return rt
	}
	return domain.RoomType{Code: code}
}

func (c *Catalog) Known(code string) bool {
	_, ok := c.types[code]
	return ok
}

func (c *Catalog) Inventory(code string) int { return c.Lookup(code).Inventory }

func (c *Catalog) IsNamedSuite(code string) bool { return c.Lookup(code).NamedSuite }

func (c *Catalog) IsADA(code string) bool { return c.Lookup(code).ADA }

// Codes lists room types in table order.
func (c *Catalog) Codes() []string { return c.order }

// NamedSuites lists named suites in fallback order. Suites absent from the
// configured order are appended in table order.
func (c *Catalog) NamedSuites() []string {
	out := make([]string, 0, len(c.prop.NamedSuiteOrder))
	seen := make(map[string]bool)
	for _, code := range c.prop.NamedSuiteOrder {
		if c.IsNamedSuite(code) && !seen[code] {
			out = append(out, code)
			seen[code] = true
		}
	}
	for _, code := range c.order {
		if c.types[code].NamedSuite && !seen[code] {
			out = append(out, code)
		}
	}
	return out
}
