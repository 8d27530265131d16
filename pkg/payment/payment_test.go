package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRetryableStatus(t *testing.T) {
	for _, status := range []int{0, 409, 429, 500, 502, 503} {
		require.True(t, RetryableStatus(status), status)
	}
	for _, status := range []int{400, 401, 402, 404, 422} {
		require.False(t, RetryableStatus(status), status)
	}
}

func TestRejectedKeepsCause(t *testing.T) {
	cause := errors.New("card declined")
	err := Rejected(cause)
	require.ErrorIs(t, err, ErrRejected)
	require.ErrorIs(t, err, cause)
}
