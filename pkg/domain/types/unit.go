package types

import "fmt"

// Unit identifies an organizational sub-group (company-equivalent) that
// scopes roster, report and task visibility.
type Unit string

const (
	UnitC1  Unit = "C1"
	UnitC2  Unit = "C2"
	UnitC3  Unit = "C3"
	UnitC4  Unit = "C4"
	UnitC5  Unit = "C5"
	UnitC6  Unit = "C6"
	UnitC7  Unit = "C7"
	UnitC8  Unit = "C8"
	UnitC9  Unit = "C9"
	UnitC10 Unit = "C10"
	UnitC11 Unit = "C11"
	UnitC12 Unit = "C12"
	UnitC13 Unit = "C13"
	UnitC14 Unit = "C14"
)

// AllUnits returns all valid units in display order
func AllUnits() []Unit {
	return []Unit{
		UnitC1, UnitC2, UnitC3, UnitC4, UnitC5, UnitC6, UnitC7,
		UnitC8, UnitC9, UnitC10, UnitC11, UnitC12, UnitC13, UnitC14,
	}
}

// IsValid checks if the unit is valid
func (u Unit) IsValid() bool {
	switch u {
	case UnitC1, UnitC2, UnitC3, UnitC4, UnitC5, UnitC6, UnitC7,
		UnitC8, UnitC9, UnitC10, UnitC11, UnitC12, UnitC13, UnitC14:
		return true
	default:
		return false
	}
}

// String returns the string representation of the unit
func (u Unit) String() string {
	return string(u)
}

// DisplayName returns the human-readable company name
func (u Unit) DisplayName() string {
	return "Student Company " + string(u)[1:]
}

// ParseUnit parses a string into a Unit
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if !u.IsValid() {
		return "", fmt.Errorf("invalid unit: %s", s)
	}
	return u, nil
}
