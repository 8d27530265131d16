package midtrans

import (
	"context"
	"fmt"
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/pkg/payment"
)

// ProviderName identifies this gateway in configuration and metrics.
const ProviderName = "midtrans"

// Currency is the only currency Snap charges in.
const Currency = "idr"

// Gateway creates Midtrans Snap transactions. The Snap token plays the role of the client secret.
type Gateway struct {
	client snap.Client
	logger zerolog.Logger
}

// New constructs a Snap gateway. Production switches from the sandbox to the live environment.
func New(serverKey string, production bool, logger zerolog.Logger) (*Gateway, error) {
	serverKey = strings.TrimSpace(serverKey)
	if serverKey == "" {
		return nil, fmt.Errorf("midtrans server key must be provided")
	}

	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	g := &Gateway{logger: logger.With().Str("component", "midtrans").Logger()}
	g.client.New(serverKey, env)
	return g, nil
}

// Provider returns the gateway name.
func (g *Gateway) Provider() string {
	return ProviderName
}

// CreateIntent opens a Snap transaction. Snap charges whole rupiah, so minor units are rounded up
// to the next rupiah and the result reports the amount actually charged. The idempotency key
// becomes the order id, which Snap refuses to reuse.
func (g *Gateway) CreateIntent(ctx context.Context, intent payment.Intent) (payment.Result, error) {
	if err := ctx.Err(); err != nil {
		return payment.Result{}, err
	}
	if !strings.EqualFold(intent.Currency, Currency) {
		return payment.Result{}, payment.Rejected(fmt.Errorf("midtrans charges %s only, got %q", Currency, intent.Currency))
	}

	whole := WholeUnits(intent.Amount)
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  "skillpath-" + intent.IdempotencyKey,
			GrossAmt: whole,
		},
	}

	resp, snapErr := g.client.CreateTransaction(req)
	if snapErr != nil {
		return payment.Result{}, classify(snapErr)
	}

	g.logger.Debug().Str("order_id", req.TransactionDetails.OrderID).Int64("gross_amount", whole).Msg("snap transaction created")

	return payment.Result{
		ClientSecret: resp.Token,
		Amount:       whole * 100,
		Currency:     Currency,
	}, nil
}

// classify marks Snap answers that cannot succeed on retry as rejected.
func classify(snapErr *midtrans.Error) error {
	err := fmt.Errorf("create midtrans transaction: %s", snapErr.Message)
	if !payment.RetryableStatus(snapErr.StatusCode) {
		return payment.Rejected(err)
	}
	return err
}

// WholeUnits converts minor currency units into whole units, rounding partial units up.
func WholeUnits(minor int64) int64 {
	if minor <= 0 {
		return 0
	}
	return (minor + 99) / 100
}
