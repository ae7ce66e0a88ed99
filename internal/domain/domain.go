// Package domain holds the core types shared by the stores, the auth flows and
// the publisher: networks, accounts, staged uploads and credential blobs.
package domain

// Network identifies one of the supported social networks. Dispatch on it is
// done through typed maps and per-network implementations, never by comparing
// raw strings at call sites.
type Network string

const (
	Bluesky  Network = "bluesky"
	Twitter  Network = "twitter"
	Mastodon Network = "mastodon"
)

// All lists the supported networks in the order they appear on the connect page.
var All = []Network{Bluesky, Twitter, Mastodon}

func (n Network) Valid() bool {
	switch n {
	case Bluesky, Twitter, Mastodon:
		return true
	}
	return false
}

// Title returns the display form of the network name, e.g. "Twitter".
func (n Network) Title() string {
	switch n {
	case Bluesky:
		return "Bluesky"
	case Twitter:
		return "Twitter"
	case Mastodon:
		return "Mastodon"
	}
	if n == "" {
		return ""
	}
	s := string(n)
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-32) + s[1:]
	}
	return s
}
