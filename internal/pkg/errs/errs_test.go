//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"zoea-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Run("sentinel is visible to errors.Is", func(t *testing.T) {
		cause := errs.New("capacity exhausted")
		err := errs.Mark(errs.Wrap(cause, "reserving tickets"), errs.ErrCapacityExceeded)

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		require.ErrorIs(t, err, cause)
	})

	t.Run("cause message survives", func(t *testing.T) {
		err := errs.Mark(errs.New("ticket is not on sale"), errs.ErrValidation)
		assert.Contains(t, err.Error(), "ticket is not on sale")
	})

	t.Run("nil cause yields the sentinel", func(t *testing.T) {
		err := errs.Mark(nil, errs.ErrValidation)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("unrelated sentinels do not match", func(t *testing.T) {
		err := errs.Mark(errs.New("boom"), errs.ErrValidation)
		require.False(t, errors.Is(err, errs.ErrCapacityExceeded))
	})
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, errs.Wrap(nil, "ignored"))
}
