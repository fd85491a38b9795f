package shared

import (
	"fmt"

	"github.com/spf13/viper"

	"room_balancer/internal/balancer"
	"room_balancer/internal/domain"
)

// LoadProperty reads a property table from a YAML, JSON or TOML file. An empty
// path selects the built-in table. Sections missing from the file keep their
// built-in values.
func LoadProperty(path string) (domain.Property, error) {
	def := balancer.DefaultProperty()
	if path == "" {
		return def, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return domain.Property{}, fmt.Errorf("read property file %s: %w", path, err)
	}
	var p domain.Property
	if err := v.Unmarshal(&p); err != nil {
		return domain.Property{}, fmt.Errorf("%w: %v", domain.ErrInvalidProperty, err)
	}

	if p.Name == "" {
		p.Name = def.Name
	}
	if len(p.Rooms) == 0 {
		p.Rooms = def.Rooms
		if p.NamedSuiteOrder == nil {
			p.NamedSuiteOrder = def.NamedSuiteOrder
		}
	}
	if p.Capacity == 0 {
		p.Capacity = p.TotalInventory()
	}
	if len(p.RatePriority) == 0 {
		p.RatePriority = def.RatePriority
	}
	if len(p.LoyaltyPriority) == 0 {
		p.LoyaltyPriority = def.LoyaltyPriority
	}
	if p.LowValueRate == 0 {
		p.LowValueRate = def.LowValueRate
	}
	if p.ADAMarker == "" {
		p.ADAMarker = def.ADAMarker
	}
	if p.ConnectingMarker == "" {
		p.ConnectingMarker = def.ConnectingMarker
	}

	if err := p.Validate(); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}
