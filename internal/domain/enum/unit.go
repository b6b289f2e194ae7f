package enum

import (
	"encoding/json"
	"strings"
)

// Unit is the measure an order line quantity is expressed in
type Unit int

const (
	UnitUnidad Unit = 0
	UnitKg     Unit = 1
	UnitLitro  Unit = 2
	UnitCaja   Unit = 3
)

var unitNames = [...]string{"unidad", "kg", "litro", "caja"}

func (u Unit) String() string {
	if !u.IsValid() {
		return "unidad"
	}
	return unitNames[u]
}

// IsValid reports whether u is one of the known units
func (u Unit) IsValid() bool {
	return int(u) >= 0 && int(u) < len(unitNames)
}

// ParseUnit resolves a unit from its name. An empty string yields UnitUnidad.
func ParseUnit(s string) (Unit, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return UnitUnidad, true
	}
	for i, name := range unitNames {
		if name == s {
			return Unit(i), true
		}
	}
	return UnitUnidad, false
}

func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}
