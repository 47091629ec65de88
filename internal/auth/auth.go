// Package auth verifies bearer tokens issued by an external identity
// provider. Signing keys come from the provider's JWKS endpoint; the service
// itself never mints or stores credentials.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for any token that fails verification. The
// reason is deliberately not exposed to callers.
var ErrInvalidToken = errors.New("invalid token")

// Verifier checks a bearer token and returns the authenticated user ID.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}
