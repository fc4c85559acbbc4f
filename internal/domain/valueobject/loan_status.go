package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending   = "PENDING"
	loanStatusActive    = "ACTIVE"
	loanStatusRejected  = "REJECTED"
	loanStatusSettled   = "SETTLED"
	loanStatusDefaulted = "DEFAULTED"
)

var (
	LoanStatusPending   = LoanStatus{value: loanStatusPending}
	LoanStatusActive    = LoanStatus{value: loanStatusActive}
	LoanStatusRejected  = LoanStatus{value: loanStatusRejected}
	LoanStatusSettled   = LoanStatus{value: loanStatusSettled}
	LoanStatusDefaulted = LoanStatus{value: loanStatusDefaulted}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:   LoanStatusPending,
	loanStatusActive:    LoanStatusActive,
	loanStatusRejected:  LoanStatusRejected,
	loanStatusSettled:   LoanStatusSettled,
	loanStatusDefaulted: LoanStatusDefaulted,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsTerminal returns true for states from which no transition is permitted.
func (s LoanStatus) IsTerminal() bool {
	switch s.value {
	case loanStatusRejected, loanStatusSettled, loanStatusDefaulted:
		return true
	default:
		return false
	}
}
