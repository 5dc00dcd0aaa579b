package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAuthRequired means a cart operation was attempted without a valid
// session. Recovered by prompting sign-in, never by retrying.
var ErrAuthRequired = errors.New("authentication required")

// ValidationError is a programming-contract violation: callers are expected
// to satisfy preconditions, so this is not a user-facing retry case.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteRejection is an explicit application-level refusal by the remote
// cart resource, surfaced verbatim to the caller.
type RemoteRejection struct {
	Status  int
	Message string
}

func (e RemoteRejection) Error() string {
	return fmt.Sprintf("remote rejected request (status %d): %s", e.Status, e.Message)
}

// TransportFailure is a network-level failure: timeout, unreachable host,
// or a server-side fault. Retrying is the caller's decision.
type TransportFailure struct {
	Err error
}

func (e TransportFailure) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e TransportFailure) Unwrap() error {
	return e.Err
}

// PricingError means a line's price could not be resolved from catalog data.
// The affected line is non-purchasable, never zero-cost.
type PricingError struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Reason    string
}

func (e PricingError) Error() string {
	if e.VariantID != nil {
		return fmt.Sprintf("cannot price product %s variant %s: %s", e.ProductID, *e.VariantID, e.Reason)
	}
	return fmt.Sprintf("cannot price product %s: %s", e.ProductID, e.Reason)
}
