package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/event"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CollateralItem entity
// ---------------------------------------------------------------------------

// CollateralItem is a pledged asset attached to a loan. The item only carries
// opaque storage references to its attachments, never the bytes.
//
// Review: PENDING_REVIEW -> APPROVED | REJECTED. Custody: APPROVED -> HELD
// when the loan activates, HELD -> RETURNED on settlement, HELD -> SEIZED on
// default. Review decisions never transition the loan itself.
type CollateralItem struct {
	id             string
	loanID         string
	description    string
	estimatedValue decimal.Decimal
	attachmentRefs []string
	status         valueobject.CollateralStatus
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// NewCollateralItem creates an item in PENDING_REVIEW status.
func NewCollateralItem(
	loanID, description string,
	estimatedValue decimal.Decimal,
	attachmentRefs []string,
	now time.Time,
) (CollateralItem, error) {
	if loanID == "" {
		return CollateralItem{}, fmt.Errorf("%w: loan ID is required", valueobject.ErrValidation)
	}
	if description == "" {
		return CollateralItem{}, fmt.Errorf("%w: description is required", valueobject.ErrValidation)
	}
	if estimatedValue.LessThanOrEqual(decimal.Zero) {
		return CollateralItem{}, fmt.Errorf("%w: estimated value must be positive", valueobject.ErrValidation)
	}

	id := uuid.New().String()
	item := CollateralItem{
		id:             id,
		loanID:         loanID,
		description:    description,
		estimatedValue: estimatedValue,
		attachmentRefs: copyRefs(attachmentRefs),
		status:         valueobject.CollateralStatusPendingReview,
		createdAt:      now,
		updatedAt:      now,
	}
	item.domainEvents = append(item.domainEvents, event.NewCollateralSubmitted(id, loanID, estimatedValue))
	return item, nil
}

// ReconstructCollateralItem rebuilds from persistence.
func ReconstructCollateralItem(
	id, loanID, description string,
	estimatedValue decimal.Decimal,
	attachmentRefs []string,
	status valueobject.CollateralStatus,
	createdAt, updatedAt time.Time,
) CollateralItem {
	return CollateralItem{
		id:             id,
		loanID:         loanID,
		description:    description,
		estimatedValue: estimatedValue,
		attachmentRefs: copyRefs(attachmentRefs),
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve transitions PENDING_REVIEW -> APPROVED.
func (c CollateralItem) Approve(now time.Time) (CollateralItem, error) {
	return c.review(valueobject.CollateralStatusApproved, "approve", now)
}

// Reject transitions PENDING_REVIEW -> REJECTED.
func (c CollateralItem) Reject(now time.Time) (CollateralItem, error) {
	return c.review(valueobject.CollateralStatusRejected, "reject", now)
}

func (c CollateralItem) review(to valueobject.CollateralStatus, decision string, now time.Time) (CollateralItem, error) {
	if !c.status.Equal(valueobject.CollateralStatusPendingReview) {
		return c, fmt.Errorf("cannot %s collateral in %s state: %w",
			decision, c.status, valueobject.ErrInvalidStatusTransition)
	}
	next := c
	next.status = to
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCollateralReviewed(c.id, c.loanID, decision))
	return next, nil
}

// Hold transitions APPROVED -> HELD when the owning loan activates.
func (c CollateralItem) Hold(now time.Time) (CollateralItem, error) {
	return c.custody(valueobject.CollateralStatusApproved, valueobject.CollateralStatusHeld, now)
}

// Return transitions HELD -> RETURNED when the owning loan settles.
func (c CollateralItem) Return(now time.Time) (CollateralItem, error) {
	return c.custody(valueobject.CollateralStatusHeld, valueobject.CollateralStatusReturned, now)
}

// Seize transitions HELD -> SEIZED when the owning loan defaults.
func (c CollateralItem) Seize(now time.Time) (CollateralItem, error) {
	return c.custody(valueobject.CollateralStatusHeld, valueobject.CollateralStatusSeized, now)
}

func (c CollateralItem) custody(from, to valueobject.CollateralStatus, now time.Time) (CollateralItem, error) {
	if !c.status.Equal(from) {
		return c, fmt.Errorf("collateral custody change %s -> %s not allowed from %s: %w",
			from, to, c.status, valueobject.ErrInvalidStatusTransition)
	}
	next := c
	next.status = to
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCollateralCustodyChanged(c.id, c.loanID, to.String()))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c CollateralItem) ID() string                            { return c.id }
func (c CollateralItem) LoanID() string                        { return c.loanID }
func (c CollateralItem) Description() string                   { return c.description }
func (c CollateralItem) EstimatedValue() decimal.Decimal       { return c.estimatedValue }
func (c CollateralItem) Status() valueobject.CollateralStatus  { return c.status }
func (c CollateralItem) CreatedAt() time.Time                  { return c.createdAt }
func (c CollateralItem) UpdatedAt() time.Time                  { return c.updatedAt }
func (c CollateralItem) DomainEvents() []event.DomainEvent     { return c.domainEvents }

// AttachmentRefs returns a defensive copy of the storage references.
func (c CollateralItem) AttachmentRefs() []string {
	return copyRefs(c.attachmentRefs)
}

// ClearEvents returns a copy with an empty event list.
func (c CollateralItem) ClearEvents() CollateralItem {
	next := c
	next.domainEvents = nil
	return next
}

func copyRefs(refs []string) []string {
	if refs == nil {
		return nil
	}
	out := make([]string, len(refs))
	copy(out, refs)
	return out
}
