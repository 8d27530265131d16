// Package payment holds the contract shared by the payment processor gateways.
package payment

import (
	"errors"
	"fmt"
)

// ErrRejected marks a processor answer that will not change on retry, such as an invalid
// request or a declined card.
var ErrRejected = errors.New("payment request rejected by processor")

// Intent is one logical request for a client-confirmable payment. Retries of the same
// intent reuse IdempotencyKey so the processor never creates it twice.
type Intent struct {
	Amount         int64
	Currency       string
	IdempotencyKey string
}

// Result describes what the processor will actually charge.
type Result struct {
	ClientSecret string
	Amount       int64
	Currency     string
}

// Rejected wraps a processor error as ErrRejected.
func Rejected(err error) error {
	return fmt.Errorf("%w: %w", ErrRejected, err)
}

// RetryableStatus reports whether a processor HTTP status may succeed when retried.
// Zero means no response was received.
func RetryableStatus(status int) bool {
	return status == 0 || status == 409 || status == 429 || status >= 500
}
