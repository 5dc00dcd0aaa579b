package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

func domainAuthRequired(reason string) error {
	return fmt.Errorf("%s: %w", reason, domain.ErrAuthRequired)
}

// mapTransportError keeps context cancellation distinguishable from a real
// network fault, so callers can stop quietly on navigation or logout.
func mapTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return domain.TransportFailure{Err: err}
}

// mapStatus translates a non-2xx response into the error taxonomy:
// 401/403 mean the credential is missing or rejected, other 4xx are
// explicit application-level rejections, 5xx count as transport failures.
func mapStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := readErrorMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domainAuthRequired("server rejected credential")
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return domain.RemoteRejection{Status: resp.StatusCode, Message: message}
	default:
		return domain.TransportFailure{
			Err: fmt.Errorf("server error (status %d): %s", resp.StatusCode, message),
		}
	}
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}

	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}

	return string(raw)
}

// IsRetryable reports whether an error is worth offering a retry for:
// transport failures are, auth failures and rejections are not.
func IsRetryable(err error) bool {
	var tf domain.TransportFailure
	return errors.As(err, &tf)
}
