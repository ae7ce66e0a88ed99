package auth

import "testing"

func TestNormalizeInstance(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mastodon.social", "mastodon.social"},
		{"https://mastodon.social", "mastodon.social"},
		{"http://mastodon.social/", "mastodon.social"},
		{"  mastodon.social  ", "mastodon.social"},
		{"fosstodon.org//", "fosstodon.org"},
	}
	for _, tc := range tests {
		if got := normalizeInstance(tc.in); got != tc.want {
			t.Errorf("normalizeInstance(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRedirectURI(t *testing.T) {
	m := &Mastodon{BaseURL: "http://localhost:5001/"}
	if got := m.redirectURI(); got != "http://localhost:5001/login/mastodon/callback" {
		t.Errorf("unexpected redirect URI: %q", got)
	}
}

func TestOAuthConfig(t *testing.T) {
	m := &Mastodon{BaseURL: "http://localhost:5001"}
	cfg := m.oauthConfig("mastodon.social", "id", "secret")
	if cfg.Endpoint.AuthURL != "https://mastodon.social/oauth/authorize" {
		t.Errorf("unexpected auth URL: %q", cfg.Endpoint.AuthURL)
	}
	if cfg.Endpoint.TokenURL != "https://mastodon.social/oauth/token" {
		t.Errorf("unexpected token URL: %q", cfg.Endpoint.TokenURL)
	}
	if len(cfg.Scopes) != 2 {
		t.Errorf("expected the write:statuses and read scopes, got %v", cfg.Scopes)
	}
}
