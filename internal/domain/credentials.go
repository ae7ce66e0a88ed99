package domain

import (
	"encoding/json"
	"fmt"
)

// The three credential shapes serialized into Account.Credentials. Field names
// are part of the stored format; changing them invalidates existing accounts.

// BlueskyCredentials holds the handle and app password. The publisher
// re-authenticates with them on every post instead of caching session tokens.
type BlueskyCredentials struct {
	Handle      string `json:"handle"`
	AppPassword string `json:"password"`
}

// MastodonCredentials holds the instance host and the OAuth access token
// obtained from the authorization-code exchange.
type MastodonCredentials struct {
	Instance    string `json:"instance"`
	AccessToken string `json:"access_token"`
}

// Cookie is one browser cookie harvested from the interactive Twitter login.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain,omitempty"`
	Path     string  `json:"path,omitempty"`
	Expiry   float64 `json:"expiry,omitempty"`
	HTTPOnly bool    `json:"httpOnly,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
}

// TwitterCredentials holds the full cookie jar of a logged-in session.
type TwitterCredentials struct {
	Cookies []Cookie `json:"cookies"`
}

func EncodeCredentials(creds any) (string, error) {
	b, err := json.Marshal(creds)
	if err != nil {
		return "", fmt.Errorf("failed to serialize credentials: %w", err)
	}
	return string(b), nil
}

func (a Account) BlueskyCredentials() (c BlueskyCredentials, err error) {
	err = a.decode(Bluesky, &c)
	return
}

func (a Account) MastodonCredentials() (c MastodonCredentials, err error) {
	err = a.decode(Mastodon, &c)
	return
}

func (a Account) TwitterCredentials() (c TwitterCredentials, err error) {
	err = a.decode(Twitter, &c)
	return
}

func (a Account) decode(want Network, into any) error {
	if a.Network != want {
		return fmt.Errorf("account %d is a %s account, not %s", a.ID, a.Network, want)
	}
	if err := json.Unmarshal([]byte(a.Credentials), into); err != nil {
		return fmt.Errorf("stored %s credentials are unreadable: %w", a.Network, err)
	}
	return nil
}
