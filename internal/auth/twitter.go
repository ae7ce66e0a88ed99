package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	cdpstorage "github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/domain"
)

const (
	twitterLoginURL = "https://twitter.com/i/flow/login"
	twitterHomeURL  = "https://twitter.com/home"

	// loggedInSelector only appears once the user has finished the whole
	// login flow, 2FA included.
	loggedInSelector = `[data-testid='primaryColumn']`
	profileSelector  = `[data-testid='AppTabBar_Profile_Link']`

	// FallbackUsername is stored when the best-effort profile scrape fails.
	FallbackUsername = "twitter_user"
)

// Twitter is the cookie-harvest flow. It opens a visible browser window on
// the provider's login page and blocks until the logged-in timeline appears,
// then harvests every session cookie as the durable credential. The flow
// depends on the provider's DOM staying stable and has no refresh strategy
// for expired cookies; reconnecting is the only recovery.
type Twitter struct {
	// LoginTimeout bounds the wait for the user to finish logging in.
	// Defaults to five minutes.
	LoginTimeout time.Duration
}

func (t *Twitter) Harvest(ctx context.Context) (Result, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	// Tears the browser process down on every path out of this function.
	defer cancelAlloc()
	defer cancelBrowser()

	log.Info().Msg("opening browser window for twitter login")
	waitCtx, cancelWait := context.WithTimeout(browserCtx, t.timeout())
	defer cancelWait()
	err := chromedp.Run(waitCtx,
		chromedp.Navigate(twitterLoginURL),
		chromedp.WaitVisible(loggedInSelector, chromedp.ByQuery),
	)
	if err != nil {
		log.Error().Err(err).Msg("twitter login was not completed")
		return Result{}, fmt.Errorf("twitter login was not completed: %w", err)
	}

	var cookies []*network.Cookie
	err = chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = cdpstorage.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read session cookies: %w", err)
	}

	username := t.scrapeUsername(browserCtx)

	creds := domain.TwitterCredentials{}
	for _, c := range cookies {
		creds.Cookies = append(creds.Cookies, domain.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expiry:   c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
		})
	}
	blob, err := domain.EncodeCredentials(creds)
	if err != nil {
		return Result{}, err
	}

	log.Info().Str("username", username).Int("cookies", len(creds.Cookies)).Msg("twitter login succeeded")
	return Result{
		Network:     domain.Twitter,
		Username:    username,
		Credentials: blob,
	}, nil
}

// scrapeUsername navigates to the user's profile and reads the handle from
// the resulting URL. Best effort only: any failure falls back to a
// placeholder rather than failing the whole flow.
func (t *Twitter) scrapeUsername(browserCtx context.Context) string {
	scrapeCtx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var location string
	err := chromedp.Run(scrapeCtx,
		chromedp.Navigate(twitterHomeURL),
		chromedp.Sleep(2*time.Second),
		chromedp.WaitVisible(profileSelector, chromedp.ByQuery),
		chromedp.Click(profileSelector, chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
		chromedp.Location(&location),
	)
	if err != nil {
		log.Warn().Err(err).Msg("could not scrape twitter username, using placeholder")
		return FallbackUsername
	}

	parts := strings.Split(strings.TrimRight(location, "/"), "/")
	username := parts[len(parts)-1]
	if username == "" || strings.Contains(username, "?") {
		return FallbackUsername
	}
	return username
}

func (t *Twitter) timeout() time.Duration {
	if t.LoginTimeout <= 0 {
		return 300 * time.Second
	}
	return t.LoginTimeout
}
