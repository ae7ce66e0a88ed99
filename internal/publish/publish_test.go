package publish

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sidereusnuntius/goposter/internal/db"
	"github.com/sidereusnuntius/goposter/internal/domain"
)

var ctx = context.Background()

// fakeStore is an in-memory db.DB with injectable failures.
type fakeStore struct {
	accounts []domain.Account
	uploads  []domain.Upload
	cleared  bool

	listUploadsErr error
}

func (f *fakeStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return f.accounts, nil
}

func (f *fakeStore) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Account{}, db.ErrNotFound
}

func (f *fakeStore) InsertAccount(ctx context.Context, account domain.Account) (int64, error) {
	f.accounts = append(f.accounts, account)
	return account.ID, nil
}

func (f *fakeStore) DeleteAccount(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeStore) ListUploads(ctx context.Context) ([]domain.Upload, error) {
	if f.listUploadsErr != nil {
		return nil, f.listUploadsErr
	}
	return f.uploads, nil
}

func (f *fakeStore) InsertUpload(ctx context.Context, upload domain.Upload) (int64, error) {
	f.uploads = append(f.uploads, upload)
	return upload.ID, nil
}

func (f *fakeStore) DeleteUpload(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeStore) ClearUploads(ctx context.Context) error {
	f.uploads = nil
	f.cleared = true
	return nil
}

// fakeAdapter records calls and fails for usernames listed in failFor.
type fakeAdapter struct {
	network domain.Network
	calls   []string
	media   [][]domain.Upload
	failFor map[string]error
}

func (f *fakeAdapter) Network() domain.Network {
	return f.network
}

func (f *fakeAdapter) Publish(ctx context.Context, account domain.Account, text string, media []domain.Upload) (string, error) {
	f.calls = append(f.calls, account.Username)
	f.media = append(f.media, media)
	if err, ok := f.failFor[account.Username]; ok {
		return "", err
	}
	return "posted as " + account.Username, nil
}

func newTestPublisher(accounts ...domain.Account) (*Publisher, *fakeStore, map[domain.Network]*fakeAdapter) {
	store := &fakeStore{accounts: accounts}
	adapters := map[domain.Network]*fakeAdapter{
		domain.Bluesky:  {network: domain.Bluesky},
		domain.Twitter:  {network: domain.Twitter},
		domain.Mastodon: {network: domain.Mastodon},
	}
	p := New(store, adapters[domain.Bluesky], adapters[domain.Twitter], adapters[domain.Mastodon])
	return p, store, adapters
}

func TestPublishRejectsEmptyMessage(t *testing.T) {
	p, store, adapters := newTestPublisher(domain.Account{ID: 1, Network: domain.Bluesky, Username: "a"})
	store.uploads = []domain.Upload{{ID: 1, Filename: "a.png"}}

	_, err := p.Publish(ctx, "   \n\t", []int64{1})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(adapters[domain.Bluesky].calls) != 0 {
		t.Error("no adapter should have been called")
	}
	if store.cleared {
		t.Error("staging must survive a validation rejection")
	}
}

func TestPublishRejectsNoValidTargets(t *testing.T) {
	p, _, _ := newTestPublisher(domain.Account{ID: 1, Network: domain.Bluesky, Username: "a"})

	for _, targets := range [][]int64{nil, {42, 99}} {
		_, err := p.Publish(ctx, "hello", targets)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("targets %v: expected ErrValidation, got %v", targets, err)
		}
	}
}

func TestPublishEnforcesPerTargetCeiling(t *testing.T) {
	p, store, adapters := newTestPublisher(
		domain.Account{ID: 1, Network: domain.Twitter, Username: "t"},
		domain.Account{ID: 2, Network: domain.Mastodon, Username: "m"},
	)
	message := strings.Repeat("x", 300)

	// 300 runes is over Twitter's 280 ceiling: the whole post is rejected.
	_, err := p.Publish(ctx, message, []int64{1, 2})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "Twitter") {
		t.Errorf("rejection should name the offending network: %s", err)
	}
	if len(adapters[domain.Mastodon].calls) != 0 {
		t.Error("a ceiling rejection must not reach any adapter")
	}

	// The same message to Mastodon alone is fine.
	results, err := p.Publish(ctx, message, []int64{2})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Errorf("expected one successful result, got %+v", results)
	}
	if !store.cleared {
		t.Error("staging should be cleared after attempts")
	}
}

func TestPublishCountsRunesNotBytes(t *testing.T) {
	p, _, _ := newTestPublisher(domain.Account{ID: 1, Network: domain.Twitter, Username: "t"})

	// 280 multi-byte runes, well over 280 bytes.
	message := strings.Repeat("é", 280)
	results, err := p.Publish(ctx, message, []int64{1})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Errorf("expected success at exactly the ceiling, got %+v", results)
	}
}

func TestPublishIsolatesFailuresAndKeepsOrder(t *testing.T) {
	p, store, adapters := newTestPublisher(
		domain.Account{ID: 1, Network: domain.Bluesky, Username: "b"},
		domain.Account{ID: 2, Network: domain.Twitter, Username: "t"},
		domain.Account{ID: 3, Network: domain.Mastodon, Username: "m"},
	)
	store.uploads = []domain.Upload{{ID: 7, Filename: "pic.png"}}
	adapters[domain.Twitter].failFor = map[string]error{"t": errors.New("timeline never loaded")}

	results, err := p.Publish(ctx, "hello", []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"b", "t", "m"} {
		if results[i].Account.Username != want {
			t.Errorf("result %d: expected account %q, got %q", i, want, results[i].Account.Username)
		}
	}
	if results[0].Success != true || results[1].Success != false || results[2].Success != true {
		t.Errorf("expected [success failure success], got %+v", results)
	}
	if results[1].Message != "timeline never loaded" {
		t.Errorf("failure message should carry the adapter error, got %q", results[1].Message)
	}

	// Every adapter saw the full staging buffer, and one failure still
	// clears it.
	for _, n := range []domain.Network{domain.Bluesky, domain.Twitter, domain.Mastodon} {
		if len(adapters[n].media) != 1 || len(adapters[n].media[0]) != 1 {
			t.Errorf("%s adapter should have received the staged upload", n)
		}
	}
	if !store.cleared {
		t.Error("staging should be cleared even when an attempt fails")
	}
}

func TestPublishDropsUnknownTargets(t *testing.T) {
	p, _, adapters := newTestPublisher(domain.Account{ID: 1, Network: domain.Bluesky, Username: "b"})

	results, err := p.Publish(ctx, "hello", []int64{42, 1, 99})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(results) != 1 || results[0].Account.ID != 1 {
		t.Errorf("expected only the known target to be attempted, got %+v", results)
	}
	if len(adapters[domain.Bluesky].calls) != 1 {
		t.Errorf("expected exactly one adapter call, got %d", len(adapters[domain.Bluesky].calls))
	}
}

func TestCheckLength(t *testing.T) {
	accounts := []domain.Account{
		{ID: 1, Network: domain.Twitter, Username: "t"},
		{ID: 2, Network: domain.Mastodon, Username: "m"},
	}

	tests := []struct {
		name    string
		message string
		targets []int64
		want    string
	}{
		{
			name:    "empty message",
			message: "  ",
			targets: []int64{1},
			want:    "",
		},
		{
			name:    "fits the strictest target",
			message: strings.Repeat("x", 280),
			targets: []int64{1, 2},
			want:    "",
		},
		{
			name:    "over the strictest target",
			message: strings.Repeat("x", 300),
			targets: []int64{1, 2},
			want:    "Warning: Your message (300 characters) exceeds the 280-character limit for selected networks.",
		},
		{
			name:    "lenient target alone",
			message: strings.Repeat("x", 300),
			targets: []int64{2},
			want:    "",
		},
		{
			name:    "no targets given checks all accounts",
			message: strings.Repeat("x", 300),
			targets: nil,
			want:    "Warning: Your message (300 characters) exceeds the 280-character limit for selected networks.",
		},
		{
			name:    "only unknown targets",
			message: "hello",
			targets: []int64{42},
			want:    "Warning: No valid accounts selected to check length against.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, _, _ := newTestPublisher(accounts...)
			got, err := p.CheckLength(ctx, tc.message, tc.targets)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCheckLengthNoAccountsConnected(t *testing.T) {
	p, _, _ := newTestPublisher()
	got, err := p.CheckLength(ctx, "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != "Warning: No accounts connected to check length against." {
		t.Errorf("got %q", got)
	}
}

func TestLimit(t *testing.T) {
	if Limit(domain.Twitter) != 280 || Limit(domain.Bluesky) != 300 || Limit(domain.Mastodon) != 500 {
		t.Error("unexpected network ceiling")
	}
	if Limit(domain.Network("friendica")) != DefaultLimit {
		t.Error("unknown networks should get the default ceiling")
	}
}
