package platform

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/domain"
	"github.com/sidereusnuntius/goposter/internal/storage"
)

const (
	twitterURL     = "https://twitter.com"
	twitterHomeURL = "https://twitter.com/home"

	composeSelector   = `[data-testid='tweetTextarea_0']`
	fileInputSelector = `input[data-testid='fileInput']`
	postButtonXPath   = `//span[text()='Post']/ancestor::button`
)

// Twitter publishes by driving a browser: there is no API credential, only
// the harvested cookie jar. Each publish spins up a fresh browser, restores
// the cookies, types the message into the compose surface and clicks Post.
// Brittle by nature; it breaks whenever the provider changes its DOM.
type Twitter struct {
	spool    storage.Spool
	headless bool
	// settle is the fixed wait after submitting, giving the upload time to
	// finish before the browser is torn down.
	settle time.Duration
}

func NewTwitter(spool storage.Spool, headless bool) *Twitter {
	return &Twitter{spool: spool, headless: headless, settle: 5 * time.Second}
}

func (t *Twitter) Network() domain.Network {
	return domain.Twitter
}

func (t *Twitter) Publish(ctx context.Context, account domain.Account, text string, media []domain.Upload) (string, error) {
	creds, err := account.TwitterCredentials()
	if err != nil {
		return "", err
	}

	// Staged bytes have to exist as local files for the native file input.
	// The spool files are removed on every path out, like the browser.
	paths, cleanup, err := t.spoolMedia(media)
	if err != nil {
		return "", err
	}
	defer cleanup()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", t.headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelAlloc()
	defer cancelBrowser()

	actions := []chromedp.Action{
		chromedp.Navigate(twitterURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetCookies(cookieParams(creds.Cookies)).Do(ctx)
		}),
		chromedp.Navigate(twitterHomeURL),
		chromedp.WaitVisible(composeSelector, chromedp.ByQuery),
	}
	if len(paths) > 0 {
		actions = append(actions,
			chromedp.SetUploadFiles(fileInputSelector, paths, chromedp.ByQuery),
			chromedp.Sleep(t.settle),
		)
	}
	actions = append(actions,
		chromedp.SendKeys(composeSelector, text, chromedp.ByQuery),
		chromedp.WaitVisible(postButtonXPath, chromedp.BySearch),
		chromedp.WaitEnabled(postButtonXPath, chromedp.BySearch),
		chromedp.Click(postButtonXPath, chromedp.BySearch),
		chromedp.Sleep(t.settle),
	)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("failed to post to twitter: %w", err)
	}

	log.Info().Str("username", account.Username).Msg("posted to twitter")
	return "Posted to Twitter successfully", nil
}

func (t *Twitter) spoolMedia(media []domain.Upload) (paths []string, cleanup func(), err error) {
	cleanup = func() {
		for _, p := range paths {
			if err := t.spool.Remove(p); err != nil {
				log.Warn().Err(err).Str("path", p).Msg("failed to remove spool file")
			}
		}
	}

	for _, m := range media {
		path, err := t.spool.Write(m.Filename, bytes.NewReader(m.Body))
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to spool %q: %w", m.Filename, err)
		}
		paths = append(paths, path)
	}
	return paths, cleanup, nil
}

// cookieParams converts stored cookies into browser cookie parameters. The
// harvested expiry is dropped on purpose: restoring it can make the browser
// discard cookies whose clock-skewed expiry looks past, so they are restored
// as session cookies instead.
func cookieParams(cookies []domain.Cookie) []*network.CookieParam {
	params := make([]*network.CookieParam, 0, len(cookies))
	for _, c := range cookies {
		params = append(params, &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
		})
	}
	return params
}
