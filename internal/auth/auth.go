// Package auth implements the three account connection flows: password login
// for Bluesky, the interactive cookie-harvest login for Twitter, and the
// OAuth2 authorization-code flow for Mastodon. Each flow ends in the same
// place: a Result carrying the network, the canonical username and the
// serialized credential blob to persist. A failed flow leaves no state behind;
// the user restarts it from the connect form.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/sidereusnuntius/goposter/internal/domain"
)

// ErrSessionState is returned when the OAuth callback arrives without a
// matching pending negotiation, e.g. when it is opened directly, replayed, or
// the negotiation expired. The error is terminal for that request.
var ErrSessionState = errors.New("no pending login for this request")

// Result is the successful outcome of any connection flow.
type Result struct {
	Network     domain.Network
	Username    string
	Credentials string
}

// PasswordAuthenticator logs in with user-supplied credentials in one call.
type PasswordAuthenticator interface {
	Login(ctx context.Context, handle, password string) (Result, error)
}

// BrowserAuthenticator opens an interactive browser window and blocks until
// the user has completed the provider's own login inside it.
type BrowserAuthenticator interface {
	Harvest(ctx context.Context) (Result, error)
}

// OAuthAuthenticator spans two HTTP requests separated by a redirect to the
// provider's authorization page.
type OAuthAuthenticator interface {
	// Begin registers the client with the instance and returns the URL to
	// redirect the user's browser to.
	Begin(ctx context.Context, instance string) (authURL string, err error)
	// Complete consumes the pending negotiation identified by state and
	// exchanges the authorization code for credentials.
	Complete(ctx context.Context, state, code string) (Result, error)
}

func newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
