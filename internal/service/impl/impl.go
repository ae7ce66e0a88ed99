package impl

import (
	"context"
	"fmt"

	"github.com/sidereusnuntius/goposter/internal/auth"
	"github.com/sidereusnuntius/goposter/internal/db"
	"github.com/sidereusnuntius/goposter/internal/domain"
	"github.com/sidereusnuntius/goposter/internal/publish"
	"github.com/sidereusnuntius/goposter/internal/service"
)

type serviceImpl struct {
	store     db.DB
	password  auth.PasswordAuthenticator
	browser   auth.BrowserAuthenticator
	oauth     auth.OAuthAuthenticator
	publisher *publish.Publisher
}

func New(store db.DB, password auth.PasswordAuthenticator, browser auth.BrowserAuthenticator, oauth auth.OAuthAuthenticator, publisher *publish.Publisher) service.Service {
	return &serviceImpl{
		store:     store,
		password:  password,
		browser:   browser,
		oauth:     oauth,
		publisher: publisher,
	}
}

func (s *serviceImpl) Publish(ctx context.Context, message string, targets []int64) ([]publish.Result, error) {
	return s.publisher.Publish(ctx, message, targets)
}

func (s *serviceImpl) CheckLength(ctx context.Context, message string, targets []int64) (string, error) {
	return s.publisher.CheckLength(ctx, message, targets)
}

// persist stores a successful auth result and returns the created account.
func (s *serviceImpl) persist(ctx context.Context, res auth.Result) (domain.Account, error) {
	account := domain.Account{
		Network:     res.Network,
		Username:    res.Username,
		Credentials: res.Credentials,
	}
	id, err := s.store.InsertAccount(ctx, account)
	if err != nil {
		return domain.Account{}, err
	}
	account.ID = id
	return account, nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
}
