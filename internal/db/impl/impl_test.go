package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/sidereusnuntius/goposter/internal/db"
	"github.com/sidereusnuntius/goposter/internal/domain"
	"github.com/sidereusnuntius/goposter/internal/initialization"
)

var DB db.DB
var ctx = context.Background()

func TestMain(m *testing.M) {
	d, err := initialization.OpenDB("file:temp?mode=memory")
	if err != nil {
		return
	}

	err = initialization.SetupDB(d)
	if err != nil {
		return
	}
	DB = New(d)
	m.Run()
}

func TestInsertAndListAccounts(t *testing.T) {
	first, err := DB.InsertAccount(ctx, domain.Account{
		Network:     domain.Bluesky,
		Username:    "alice.bsky.social",
		Credentials: `{"handle":"alice.bsky.social","password":"hunter2"}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := DB.InsertAccount(ctx, domain.Account{
		Network:     domain.Mastodon,
		Username:    "alice@mastodon.social",
		Credentials: `{"instance":"https://mastodon.social","access_token":"tok"}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if second <= first {
		t.Errorf("expected ids to grow, got %d then %d", first, second)
	}

	accounts, err := DB.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ID != first || accounts[1].ID != second {
		t.Errorf("expected insertion order [%d %d], got [%d %d]", first, second, accounts[0].ID, accounts[1].ID)
	}
	if accounts[0].Username != "alice.bsky.social" {
		t.Errorf("unexpected username: %q", accounts[0].Username)
	}
	if accounts[1].Network != domain.Mastodon {
		t.Errorf("unexpected network: %q", accounts[1].Network)
	}
}

func TestGetAccount(t *testing.T) {
	id, err := DB.InsertAccount(ctx, domain.Account{
		Network:     domain.Twitter,
		Username:    "twitter_user",
		Credentials: `{"cookies":[]}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	account, err := DB.GetAccount(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if account.Network != domain.Twitter || account.Username != "twitter_user" {
		t.Errorf("got wrong account back: %+v", account)
	}
	if account.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	_, err = DB.GetAccount(ctx, 9999)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	id, err := DB.InsertAccount(ctx, domain.Account{
		Network:     domain.Bluesky,
		Username:    "bob.bsky.social",
		Credentials: `{"handle":"bob.bsky.social","password":"pw"}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if err = DB.DeleteAccount(ctx, id); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	_, err = DB.GetAccount(ctx, id)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	err = DB.DeleteAccount(ctx, id)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestUploadsStaging(t *testing.T) {
	first, err := DB.InsertUpload(ctx, domain.Upload{
		Filename:    "a.png",
		ContentType: "image/png",
		Body:        []byte{0x89, 'P', 'N', 'G'},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	second, err := DB.InsertUpload(ctx, domain.Upload{
		Filename:    "b.jpg",
		ContentType: "image/jpeg",
		Body:        []byte{0xff, 0xd8},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	uploads, err := DB.ListUploads(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(uploads))
	}
	if uploads[0].ID != first || uploads[1].ID != second {
		t.Errorf("expected insertion order [%d %d], got [%d %d]", first, second, uploads[0].ID, uploads[1].ID)
	}
	if string(uploads[1].Body) != string([]byte{0xff, 0xd8}) {
		t.Errorf("upload body did not round trip: %v", uploads[1].Body)
	}

	if err = DB.DeleteUpload(ctx, first); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	uploads, err = DB.ListUploads(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(uploads) != 1 || uploads[0].ID != second {
		t.Errorf("expected only upload %d to remain, got %+v", second, uploads)
	}

	err = DB.DeleteUpload(ctx, first)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}

	if err = DB.ClearUploads(ctx); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	uploads, err = DB.ListUploads(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(uploads) != 0 {
		t.Errorf("expected staging to be empty after clear, got %d rows", len(uploads))
	}

	// Clearing an already empty buffer is fine.
	if err = DB.ClearUploads(ctx); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}
