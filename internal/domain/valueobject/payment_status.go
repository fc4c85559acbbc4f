package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// PaymentStatus – immutable value object
// ---------------------------------------------------------------------------

// PaymentStatus represents the verification stage of a repayment.
type PaymentStatus struct {
	value string
}

const (
	paymentStatusPending   = "PENDING"
	paymentStatusCompleted = "COMPLETED"
	paymentStatusRejected  = "REJECTED"
)

var (
	PaymentStatusPending   = PaymentStatus{value: paymentStatusPending}
	PaymentStatusCompleted = PaymentStatus{value: paymentStatusCompleted}
	PaymentStatusRejected  = PaymentStatus{value: paymentStatusRejected}
)

var validPaymentStatuses = map[string]PaymentStatus{
	paymentStatusPending:   PaymentStatusPending,
	paymentStatusCompleted: PaymentStatusCompleted,
	paymentStatusRejected:  PaymentStatusRejected,
}

// NewPaymentStatus creates a PaymentStatus from a raw string.
func NewPaymentStatus(s string) (PaymentStatus, error) {
	v, ok := validPaymentStatuses[s]
	if !ok {
		return PaymentStatus{}, fmt.Errorf("invalid payment status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s PaymentStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s PaymentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s PaymentStatus) Equal(other PaymentStatus) bool { return s.value == other.value }
