package enums

import "fmt"

// InvoiceStatus tracks the billing lifecycle of an invoice. Like order
// statuses, transitions are unconstrained.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "PENDING"
	InvoiceStatusPaid     InvoiceStatus = "PAID"
	InvoiceStatusCanceled InvoiceStatus = "CANCELED"
)

var validInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusPending,
	InvoiceStatusPaid,
	InvoiceStatusCanceled,
}

// String implements fmt.Stringer.
func (s InvoiceStatus) String() string {
	return string(s)
}

// Validate reports whether the value is a known invoice status.
func (s InvoiceStatus) Validate() error {
	for _, v := range validInvoiceStatuses {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid invoice status %q", string(s))
}

// ParseInvoiceStatus converts a raw string into an InvoiceStatus.
func ParseInvoiceStatus(value string) (InvoiceStatus, error) {
	s := InvoiceStatus(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}
