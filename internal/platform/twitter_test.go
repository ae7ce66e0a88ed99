package platform

import (
	"testing"

	"github.com/sidereusnuntius/goposter/internal/domain"
)

func TestCookieParamsDropsExpiry(t *testing.T) {
	cookies := []domain.Cookie{
		{
			Name:     "auth_token",
			Value:    "abc123",
			Domain:   ".x.com",
			Path:     "/",
			Expiry:   1893456000,
			HTTPOnly: true,
			Secure:   true,
		},
		{Name: "ct0", Value: "csrf"},
	}

	params := cookieParams(cookies)
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}

	p := params[0]
	if p.Name != "auth_token" || p.Value != "abc123" || p.Domain != ".x.com" || p.Path != "/" {
		t.Errorf("cookie fields did not carry over: %+v", p)
	}
	if !p.HTTPOnly || !p.Secure {
		t.Error("flags did not carry over")
	}
	if p.Expires != nil {
		t.Error("expiry must not be restored; cookies go back as session cookies")
	}
}
