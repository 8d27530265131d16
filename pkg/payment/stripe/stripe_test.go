package stripe

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/noah-isme/skillpath-api/pkg/payment"
)

func TestClassifySeparatesRejectionsFromOutages(t *testing.T) {
	declined := classify(&stripe.Error{HTTPStatusCode: 402, Code: stripe.ErrorCodeCardDeclined, Msg: "Your card was declined."})
	require.ErrorIs(t, declined, payment.ErrRejected)

	invalid := classify(&stripe.Error{HTTPStatusCode: 400, Msg: "Invalid currency"})
	require.ErrorIs(t, invalid, payment.ErrRejected)

	outage := classify(&stripe.Error{HTTPStatusCode: 503, Msg: "Service unavailable"})
	require.NotErrorIs(t, outage, payment.ErrRejected)

	network := classify(errors.New("dial tcp: i/o timeout"))
	require.NotErrorIs(t, network, payment.ErrRejected)
}

func TestNewRequiresSecretKey(t *testing.T) {
	_, err := New(" ", zerolog.Nop())
	require.Error(t, err)

	gateway, err := New("sk_test_123", zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, ProviderName, gateway.Provider())
}
