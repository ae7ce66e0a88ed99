package publish

import "github.com/sidereusnuntius/goposter/internal/domain"

// DefaultLimit applies to networks without a known ceiling.
const DefaultLimit = 500

var limits = map[domain.Network]int{
	domain.Twitter:  280,
	domain.Bluesky:  300,
	domain.Mastodon: 500,
}

// Limit returns the character ceiling for a network.
func Limit(n domain.Network) int {
	if l, ok := limits[n]; ok {
		return l
	}
	return DefaultLimit
}
