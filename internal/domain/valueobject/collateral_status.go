package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// CollateralStatus – immutable value object
// ---------------------------------------------------------------------------

// CollateralStatus represents the review/custody stage of a collateral item.
type CollateralStatus struct {
	value string
}

const (
	collateralStatusPendingReview = "PENDING_REVIEW"
	collateralStatusApproved      = "APPROVED"
	collateralStatusRejected      = "REJECTED"
	collateralStatusHeld          = "HELD"
	collateralStatusReturned      = "RETURNED"
	collateralStatusSeized        = "SEIZED"
)

var (
	CollateralStatusPendingReview = CollateralStatus{value: collateralStatusPendingReview}
	CollateralStatusApproved      = CollateralStatus{value: collateralStatusApproved}
	CollateralStatusRejected      = CollateralStatus{value: collateralStatusRejected}
	CollateralStatusHeld          = CollateralStatus{value: collateralStatusHeld}
	CollateralStatusReturned      = CollateralStatus{value: collateralStatusReturned}
	CollateralStatusSeized        = CollateralStatus{value: collateralStatusSeized}
)

var validCollateralStatuses = map[string]CollateralStatus{
	collateralStatusPendingReview: CollateralStatusPendingReview,
	collateralStatusApproved:      CollateralStatusApproved,
	collateralStatusRejected:      CollateralStatusRejected,
	collateralStatusHeld:          CollateralStatusHeld,
	collateralStatusReturned:      CollateralStatusReturned,
	collateralStatusSeized:        CollateralStatusSeized,
}

// NewCollateralStatus creates a CollateralStatus from a raw string.
func NewCollateralStatus(s string) (CollateralStatus, error) {
	v, ok := validCollateralStatuses[s]
	if !ok {
		return CollateralStatus{}, fmt.Errorf("invalid collateral status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s CollateralStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s CollateralStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s CollateralStatus) Equal(other CollateralStatus) bool { return s.value == other.value }
