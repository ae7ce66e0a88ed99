package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-mastodon"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/domain"
	"golang.org/x/oauth2"
)

const (
	clientName     = "goposter"
	mastodonScopes = "write:statuses read"
)

// Mastodon is the OAuth2 authorization-code flow. There is no pre-shared
// client id: Begin registers a fresh client application with whatever
// instance the user names, stashes the registration in the pending store, and
// Complete picks it back up when the callback arrives.
type Mastodon struct {
	// BaseURL is the public URL of this app; the redirect URI is derived
	// from it.
	BaseURL string
	Pending *PendingStore
}

func (m *Mastodon) Begin(ctx context.Context, instance string) (string, error) {
	instance = normalizeInstance(instance)
	server := "https://" + instance

	app, err := mastodon.RegisterApp(ctx, &mastodon.AppConfig{
		Server:       server,
		ClientName:   clientName,
		Scopes:       mastodonScopes,
		RedirectURIs: m.redirectURI(),
	})
	if err != nil {
		log.Error().Err(err).Str("instance", instance).Msg("mastodon app registration failed")
		return "", fmt.Errorf("failed to register app with %s: %w", instance, err)
	}

	state, err := newState()
	if err != nil {
		return "", err
	}
	m.Pending.Put(state, PendingLogin{
		Instance:     instance,
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
	})

	log.Info().Str("instance", instance).Msg("redirecting to mastodon authorize page")
	return m.oauthConfig(instance, app.ClientID, app.ClientSecret).AuthCodeURL(state), nil
}

func (m *Mastodon) Complete(ctx context.Context, state, code string) (Result, error) {
	pending, err := m.Pending.Consume(state)
	if err != nil {
		return Result{}, err
	}
	server := "https://" + pending.Instance

	token, err := m.oauthConfig(pending.Instance, pending.ClientID, pending.ClientSecret).Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("instance", pending.Instance).Msg("mastodon token exchange failed")
		return Result{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	client := mastodon.NewClient(&mastodon.Config{
		Server:       server,
		ClientID:     pending.ClientID,
		ClientSecret: pending.ClientSecret,
		AccessToken:  token.AccessToken,
	})
	account, err := client.GetAccountCurrentUser(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to verify credentials with %s: %w", pending.Instance, err)
	}

	blob, err := domain.EncodeCredentials(domain.MastodonCredentials{
		Instance:    pending.Instance,
		AccessToken: token.AccessToken,
	})
	if err != nil {
		return Result{}, err
	}

	username := fmt.Sprintf("%s@%s", account.Username, pending.Instance)
	log.Info().Str("username", username).Msg("mastodon login succeeded")
	return Result{
		Network:     domain.Mastodon,
		Username:    username,
		Credentials: blob,
	}, nil
}

func (m *Mastodon) oauthConfig(instance, clientID, clientSecret string) *oauth2.Config {
	server := "https://" + instance
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       strings.Split(mastodonScopes, " "),
		Endpoint: oauth2.Endpoint{
			AuthURL:  server + "/oauth/authorize",
			TokenURL: server + "/oauth/token",
		},
		RedirectURL: m.redirectURI(),
	}
}

func (m *Mastodon) redirectURI() string {
	return strings.TrimRight(m.BaseURL, "/") + "/login/mastodon/callback"
}

func normalizeInstance(instance string) string {
	instance = strings.TrimSpace(instance)
	instance = strings.TrimPrefix(instance, "https://")
	instance = strings.TrimPrefix(instance, "http://")
	return strings.TrimRight(instance, "/")
}
