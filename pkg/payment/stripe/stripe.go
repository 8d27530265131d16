package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/noah-isme/skillpath-api/pkg/payment"
)

// ProviderName identifies this gateway in configuration and metrics.
const ProviderName = "stripe"

// Gateway creates Stripe PaymentIntents for card payments.
type Gateway struct {
	client *client.API
	logger zerolog.Logger
}

// New constructs a Stripe gateway from a secret key.
func New(secretKey string, logger zerolog.Logger) (*Gateway, error) {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &Gateway{
		client: sc,
		logger: logger.With().Str("component", "stripe").Logger(),
	}, nil
}

// Provider returns the gateway name.
func (g *Gateway) Provider() string {
	return ProviderName
}

// CreateIntent registers a card PaymentIntent for the intent amount in minor units and returns
// its client secret.
func (g *Gateway) CreateIntent(ctx context.Context, intent payment.Intent) (payment.Result, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(intent.Amount),
		Currency:           stripe.String(strings.ToLower(intent.Currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	if intent.IdempotencyKey != "" {
		params.SetIdempotencyKey(intent.IdempotencyKey)
	}

	created, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return payment.Result{}, classify(err)
	}

	g.logger.Debug().Str("intent_id", created.ID).Int64("amount", created.Amount).Msg("payment intent created")

	return payment.Result{
		ClientSecret: created.ClientSecret,
		Amount:       created.Amount,
		Currency:     string(created.Currency),
	}, nil
}

// classify marks Stripe answers that cannot succeed on retry as rejected. Transport failures
// and 5xx answers stay retryable.
func classify(err error) error {
	err = fmt.Errorf("create stripe payment intent: %w", err)

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && !payment.RetryableStatus(stripeErr.HTTPStatusCode) {
		return payment.Rejected(err)
	}
	return err
}
