package enums

import "fmt"

// OrderStatus tracks the lifecycle of a client order. Transitions are
// deliberately unconstrained: any status may move to any other.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// Validate reports whether the value is a known order status.
func (s OrderStatus) Validate() error {
	for _, v := range validOrderStatuses {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid order status %q", string(s))
}

// ParseOrderStatus converts a raw string into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	s := OrderStatus(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}
