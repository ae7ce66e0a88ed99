// Package platform holds one publish adapter per supported network. The
// adapters share the publish.Adapter contract but nothing else: Bluesky is a
// signed API call, Mastodon a REST call, Twitter a scripted browser.
package platform

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	comatproto "github.com/bluesky-social/indigo/api/atproto"
	appbsky "github.com/bluesky-social/indigo/api/bsky"
	lexutil "github.com/bluesky-social/indigo/lex/util"
	"github.com/bluesky-social/indigo/xrpc"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/auth"
	"github.com/sidereusnuntius/goposter/internal/domain"
)

// Bluesky allows at most four images per post.
const maxBlueskyImages = 4

var linkRegex = regexp.MustCompile(`(?i)https?://[^\s]+`)

type Bluesky struct {
	// Host is the PDS to post through; auth.DefaultPDS when empty.
	Host string
}

func NewBluesky() *Bluesky {
	return &Bluesky{}
}

func (b *Bluesky) Network() domain.Network {
	return domain.Bluesky
}

// Publish re-authenticates with the stored handle and app password, uploads
// the staged media as blobs, annotates URLs in the text with link facets and
// creates the post record.
func (b *Bluesky) Publish(ctx context.Context, account domain.Account, text string, media []domain.Upload) (string, error) {
	creds, err := account.BlueskyCredentials()
	if err != nil {
		return "", err
	}

	client := &xrpc.Client{Host: b.host()}
	sess, err := comatproto.ServerCreateSession(ctx, client, &comatproto.ServerCreateSession_Input{
		Identifier: creds.Handle,
		Password:   creds.AppPassword,
	})
	if err != nil {
		return "", fmt.Errorf("bluesky login failed: %w", err)
	}
	client.Auth = &xrpc.AuthInfo{
		AccessJwt:  sess.AccessJwt,
		RefreshJwt: sess.RefreshJwt,
		Handle:     sess.Handle,
		Did:        sess.Did,
	}

	embed, err := b.uploadImages(ctx, client, media)
	if err != nil {
		return "", err
	}

	post := &appbsky.FeedPost{
		LexiconTypeID: "app.bsky.feed.post",
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Text:          text,
		Facets:        detectLinkFacets(text),
		Embed:         embed,
	}

	res, err := comatproto.RepoCreateRecord(ctx, client, &comatproto.RepoCreateRecord_Input{
		Collection: "app.bsky.feed.post",
		Repo:       client.Auth.Did,
		Record:     &lexutil.LexiconTypeDecoder{Val: post},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create bluesky post: %w", err)
	}

	log.Info().Str("uri", res.Uri).Msg("posted to bluesky")
	return fmt.Sprintf("Posted to Bluesky: %s", res.Uri), nil
}

func (b *Bluesky) uploadImages(ctx context.Context, client *xrpc.Client, media []domain.Upload) (*appbsky.FeedPost_Embed, error) {
	if len(media) == 0 {
		return nil, nil
	}
	if len(media) > maxBlueskyImages {
		log.Warn().Int("staged", len(media)).Msg("bluesky allows at most 4 images per post, truncating")
		media = media[:maxBlueskyImages]
	}

	var images []*appbsky.EmbedImages_Image
	for _, m := range media {
		resp, err := comatproto.RepoUploadBlob(ctx, client, bytes.NewReader(m.Body))
		if err != nil {
			return nil, fmt.Errorf("failed to upload %q to bluesky: %w", m.Filename, err)
		}
		images = append(images, &appbsky.EmbedImages_Image{
			Alt:   m.Filename,
			Image: resp.Blob,
		})
	}

	return &appbsky.FeedPost_Embed{
		EmbedImages: &appbsky.EmbedImages{Images: images},
	}, nil
}

// detectLinkFacets marks the byte range of every URL in text so the remote
// renders it as a link. Facet indices are byte offsets, not rune offsets.
func detectLinkFacets(text string) []*appbsky.RichtextFacet {
	var facets []*appbsky.RichtextFacet
	for _, match := range linkRegex.FindAllStringIndex(text, -1) {
		facets = append(facets, &appbsky.RichtextFacet{
			Index: &appbsky.RichtextFacet_ByteSlice{
				ByteStart: int64(match[0]),
				ByteEnd:   int64(match[1]),
			},
			Features: []*appbsky.RichtextFacet_Features_Elem{
				{
					RichtextFacet_Link: &appbsky.RichtextFacet_Link{
						Uri: text[match[0]:match[1]],
					},
				},
			},
		})
	}
	return facets
}

func (b *Bluesky) host() string {
	if b.Host == "" {
		return auth.DefaultPDS
	}
	return b.Host
}
