package platform

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mattn/go-mastodon"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/domain"
)

type Mastodon struct{}

func NewMastodon() *Mastodon {
	return &Mastodon{}
}

func (m *Mastodon) Network() domain.Network {
	return domain.Mastodon
}

// Publish uploads each staged file for its media id, then creates one public
// status referencing them all, authenticated with the stored bearer token.
// go-mastodon surfaces non-2xx responses with the response body as the error
// detail, which ends up verbatim in the per-account result.
func (m *Mastodon) Publish(ctx context.Context, account domain.Account, text string, media []domain.Upload) (string, error) {
	creds, err := account.MastodonCredentials()
	if err != nil {
		return "", err
	}

	client := mastodon.NewClient(&mastodon.Config{
		Server:      "https://" + creds.Instance,
		AccessToken: creds.AccessToken,
	})

	var mediaIDs []mastodon.ID
	for _, u := range media {
		attachment, err := client.UploadMediaFromReader(ctx, bytes.NewReader(u.Body))
		if err != nil {
			return "", fmt.Errorf("failed to upload %q to mastodon: %w", u.Filename, err)
		}
		mediaIDs = append(mediaIDs, attachment.ID)
	}

	status, err := client.PostStatus(ctx, &mastodon.Toot{
		Status:     text,
		MediaIDs:   mediaIDs,
		Visibility: mastodon.VisibilityPublic,
	})
	if err != nil {
		return "", fmt.Errorf("failed to post to mastodon: %w", err)
	}

	log.Info().Str("url", status.URL).Msg("posted to mastodon")
	return fmt.Sprintf("Posted to Mastodon: %s", status.URL), nil
}
