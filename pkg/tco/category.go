package tco

import (
	"fmt"
	"strings"
)

// Category tags every cost item. The set is closed: capital categories
// describe procured assets, operating categories describe recurring costs.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryVehicle
	CategoryBattery
	CategoryInfrastructure
	CategoryChargingPoint
	CategoryEnergy
	CategoryMaintenance
	CategoryStaff
	CategoryOther
)

// Kind separates capital (CAPEX) from operating (OPEX) categories.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindCapital
	KindOperating
)

// Categories lists every known category in reporting order.
var Categories = []Category{
	CategoryVehicle,
	CategoryBattery,
	CategoryInfrastructure,
	CategoryChargingPoint,
	CategoryEnergy,
	CategoryMaintenance,
	CategoryStaff,
	CategoryOther,
}

// ParseCategory accepts the upper-case labels used in reports as well as
// lower-case and kebab-case spellings.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	for _, c := range Categories {
		if c.String() == normalized {
			return c, nil
		}
	}
	return CategoryUnknown, invalid("category", s, "unrecognized category")
}

func (c Category) String() string {
	switch c {
	case CategoryVehicle:
		return "VEHICLE"
	case CategoryBattery:
		return "BATTERY"
	case CategoryInfrastructure:
		return "INFRASTRUCTURE"
	case CategoryChargingPoint:
		return "CHARGING_POINT"
	case CategoryEnergy:
		return "ENERGY"
	case CategoryMaintenance:
		return "MAINTENANCE"
	case CategoryStaff:
		return "STAFF"
	case CategoryOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// Kind reports whether c is a capital or an operating category.
func (c Category) Kind() Kind {
	switch c {
	case CategoryVehicle, CategoryBattery, CategoryInfrastructure, CategoryChargingPoint:
		return KindCapital
	case CategoryEnergy, CategoryMaintenance, CategoryStaff, CategoryOther:
		return KindOperating
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindCapital:
		return "CAPEX"
	case KindOperating:
		return "OPEX"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets categories serve as JSON object keys.
func (c Category) MarshalText() ([]byte, error) {
	if c.Kind() == KindUnknown {
		return nil, fmt.Errorf("cannot marshal unknown category %d", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses a category label.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
