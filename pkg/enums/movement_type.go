package enums

import "fmt"

// MovementType classifies a stock ledger entry.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

var validMovementTypes = []MovementType{
	MovementIn,
	MovementOut,
}

// String implements fmt.Stringer.
func (m MovementType) String() string {
	return string(m)
}

// Validate reports whether the value is a known movement type.
func (m MovementType) Validate() error {
	for _, v := range validMovementTypes {
		if m == v {
			return nil
		}
	}
	return fmt.Errorf("invalid movement type %q", string(m))
}

// SignedQuantity applies the ledger sign convention: IN adds, OUT subtracts.
func (m MovementType) SignedQuantity(qty float64) float64 {
	if m == MovementOut {
		return -qty
	}
	return qty
}

// ParseMovementType converts a raw string into a MovementType.
func ParseMovementType(value string) (MovementType, error) {
	m := MovementType(value)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}
