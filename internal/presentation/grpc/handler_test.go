package grpc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/remy-crypto/dunkuloans-sub000/internal/domain/valueobject"
)

func TestToStatusError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"not found", fmt.Errorf("loan x: %w", valueobject.ErrNotFound), codes.NotFound},
		{"validation", fmt.Errorf("%w: bad input", valueobject.ErrValidation), codes.InvalidArgument},
		{"duplicate transaction", fmt.Errorf("replayed: %w", valueobject.ErrDuplicateTransaction), codes.AlreadyExists},
		{"concurrency conflict", fmt.Errorf("lost race: %w", valueobject.ErrConcurrencyConflict), codes.Aborted},
		{"invalid transition", fmt.Errorf("wrong state: %w", valueobject.ErrInvalidStatusTransition), codes.FailedPrecondition},
		{"loan finalized", fmt.Errorf("done: %w", valueobject.ErrLoanFinalized), codes.FailedPrecondition},
		{"missing collateral", fmt.Errorf("unbacked: %w", valueobject.ErrMissingCollateral), codes.FailedPrecondition},
		{"unknown", fmt.Errorf("disk on fire"), codes.Internal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ok := status.FromError(toStatusError(tc.err))
			require.True(t, ok)
			assert.Equal(t, tc.want, st.Code())
		})
	}
}
