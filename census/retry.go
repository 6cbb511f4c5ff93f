package census

import (
	"context"
	"errors"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/cenkalti/backoff/v4"
)

// Defaults for the call-layer retry applied to single-shot API calls.
const (
	DefaultRetries    = 3
	DefaultRetryDelay = 10 * time.Second
)

// CallPolicy is the retry contract applied around single-shot API calls
// (trigger and standalone run info reads). Retries use a fixed delay.
// Responses the API actually answered (non-2xx statuses) are permanent;
// only transport-level failures retry. The polling loop never uses this —
// it calls the client directly.
type CallPolicy struct {
	Retries uint64
	Delay   time.Duration
}

// DefaultCallPolicy returns the standard 3-retry, 10 second delay policy.
func DefaultCallPolicy() CallPolicy {
	return CallPolicy{Retries: DefaultRetries, Delay: DefaultRetryDelay}
}

// retryCall invokes fn, retrying transport-level failures per the policy.
// Cancelling ctx stops any further attempts.
func retryCall(ctx context.Context, policy CallPolicy, fn func() error) error {
	operation := func() error {
		err := fn()
		if err != nil && !errors.Is(err, requests.ErrTransport) {
			return backoff.Permanent(err)
		}
		return err
	}
	delays := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(policy.Delay), policy.Retries), ctx)
	return backoff.Retry(operation, delays)
}
