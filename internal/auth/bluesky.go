package auth

import (
	"context"
	"fmt"

	comatproto "github.com/bluesky-social/indigo/api/atproto"
	"github.com/bluesky-social/indigo/xrpc"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/domain"
)

const DefaultPDS = "https://bsky.social"

// Bluesky is the password flow. It verifies the handle and app password
// against the PDS once, then stores the pair itself as the credential: the
// publisher re-authenticates fresh on every post instead of caching the
// session tokens.
type Bluesky struct {
	// Host is the PDS to log in against; DefaultPDS when empty.
	Host string
}

func (b *Bluesky) Login(ctx context.Context, handle, password string) (Result, error) {
	client := &xrpc.Client{Host: b.host()}

	sess, err := comatproto.ServerCreateSession(ctx, client, &comatproto.ServerCreateSession_Input{
		Identifier: handle,
		Password:   password,
	})
	if err != nil {
		log.Error().Err(err).Str("handle", handle).Msg("bluesky login failed")
		return Result{}, fmt.Errorf("bluesky login failed: %w", err)
	}

	blob, err := domain.EncodeCredentials(domain.BlueskyCredentials{
		Handle:      handle,
		AppPassword: password,
	})
	if err != nil {
		return Result{}, err
	}

	log.Info().Str("handle", sess.Handle).Str("did", sess.Did).Msg("bluesky login succeeded")
	return Result{
		Network:     domain.Bluesky,
		Username:    sess.Handle,
		Credentials: blob,
	}, nil
}

func (b *Bluesky) host() string {
	if b.Host == "" {
		return DefaultPDS
	}
	return b.Host
}
