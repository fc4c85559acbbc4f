package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/model"
	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func newItem(t *testing.T) model.CollateralItem {
	t.Helper()
	item, err := model.NewCollateralItem(
		"loan-001", "motorbike", decimal.NewFromInt(2500),
		[]string{"attachments/ref-1"}, time.Now().UTC(),
	)
	require.NoError(t, err)
	return item
}

func TestNewCollateralItem(t *testing.T) {
	t.Run("starts in pending review", func(t *testing.T) {
		item := newItem(t)
		assert.Equal(t, "PENDING_REVIEW", item.Status().String())
		assert.Len(t, item.DomainEvents(), 1)
	})

	t.Run("requires a positive estimated value", func(t *testing.T) {
		_, err := model.NewCollateralItem("loan-001", "motorbike", decimal.Zero, nil, time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("requires a description", func(t *testing.T) {
		_, err := model.NewCollateralItem("loan-001", "", decimal.NewFromInt(100), nil, time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrValidation)
	})
}

func TestCollateralItem_Review(t *testing.T) {
	t.Run("approve then reject fails", func(t *testing.T) {
		item := newItem(t)

		approved, err := item.Approve(time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", approved.Status().String())

		_, err = approved.Reject(time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("reject is terminal for review", func(t *testing.T) {
		item := newItem(t)

		rejected, err := item.Reject(time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", rejected.Status().String())

		_, err = rejected.Approve(time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestCollateralItem_Custody(t *testing.T) {
	t.Run("approved collateral is held, then returned on settlement", func(t *testing.T) {
		item := newItem(t)
		approved, err := item.Approve(time.Now().UTC())
		require.NoError(t, err)

		held, err := approved.Hold(time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, "HELD", held.Status().String())

		returned, err := held.Return(time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, "RETURNED", returned.Status().String())
	})

	t.Run("held collateral is seized on default", func(t *testing.T) {
		item := newItem(t)
		approved, err := item.Approve(time.Now().UTC())
		require.NoError(t, err)
		held, err := approved.Hold(time.Now().UTC())
		require.NoError(t, err)

		seized, err := held.Seize(time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, "SEIZED", seized.Status().String())
	})

	t.Run("cannot hold unreviewed collateral", func(t *testing.T) {
		item := newItem(t)
		_, err := item.Hold(time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("cannot seize collateral that is not held", func(t *testing.T) {
		item := newItem(t)
		approved, err := item.Approve(time.Now().UTC())
		require.NoError(t, err)

		_, err = approved.Seize(time.Now().UTC())
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestCollateralItem_AttachmentRefs(t *testing.T) {
	item := newItem(t)

	refs := item.AttachmentRefs()
	refs[0] = "tampered"

	assert.Equal(t, []string{"attachments/ref-1"}, item.AttachmentRefs())
}
