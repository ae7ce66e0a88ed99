// Package service defines the operations the web layer calls. The
// implementation lives in service/impl; tests substitute fakes.
package service

import (
	"context"
	"errors"

	"github.com/sidereusnuntius/goposter/internal/domain"
	"github.com/sidereusnuntius/goposter/internal/publish"
)

var ErrInvalidInput = errors.New("invalid")

type Service interface {
	AccountService
	UploadService
	PostService
}

type AccountService interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// AvailableNetworks returns the networks without a connected account, in
	// display order; the connect page shows one card per entry.
	AvailableNetworks(ctx context.Context) ([]domain.Network, error)
	// ConnectBluesky runs the password flow and persists the account.
	ConnectBluesky(ctx context.Context, handle, password string) (domain.Account, error)
	// ConnectTwitter runs the interactive cookie-harvest flow and persists
	// the account. It blocks until the user finishes logging in or the flow
	// times out.
	ConnectTwitter(ctx context.Context) (domain.Account, error)
	// BeginMastodonLogin registers a client with the instance and returns the
	// authorization URL to redirect the user to.
	BeginMastodonLogin(ctx context.Context, instance string) (string, error)
	// CompleteMastodonLogin consumes the pending negotiation, exchanges the
	// code and persists the account. Returns auth.ErrSessionState when no
	// matching negotiation exists.
	CompleteMastodonLogin(ctx context.Context, state, code string) (domain.Account, error)
	// Logout deletes the account by id.
	Logout(ctx context.Context, id int64) error
}

type UploadService interface {
	ListUploads(ctx context.Context) ([]domain.Upload, error)
	StageUpload(ctx context.Context, filename, contentType string, body []byte) (domain.Upload, error)
	DeleteUpload(ctx context.Context, id int64) error
}

type PostService interface {
	// Publish fans the message out to the targets; see publish.Publisher.
	Publish(ctx context.Context, message string, targets []int64) ([]publish.Result, error)
	// CheckLength returns an advisory warning string, or "" if the message fits.
	CheckLength(ctx context.Context, message string, targets []int64) (string, error)
}
