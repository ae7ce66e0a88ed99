package impl

import (
	"context"
	"errors"
	"strings"

	"github.com/sidereusnuntius/goposter/internal/domain"
	"github.com/sidereusnuntius/goposter/internal/validate"
)

func (s *serviceImpl) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.store.ListAccounts(ctx)
}

// AvailableNetworks treats network as a singleton per type: a network's
// connect card is offered only while no account of that network exists. The
// storage layer itself does not enforce uniqueness; should duplicate rows
// appear, every one of them is listed and targetable, and the card stays
// hidden until the last one is logged out.
func (s *serviceImpl) AvailableNetworks(ctx context.Context) ([]domain.Network, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	connected := make(map[domain.Network]bool, len(accounts))
	for _, a := range accounts {
		connected[a.Network] = true
	}

	var available []domain.Network
	for _, n := range domain.All {
		if !connected[n] {
			available = append(available, n)
		}
	}
	return available, nil
}

func (s *serviceImpl) ConnectBluesky(ctx context.Context, handle, password string) (domain.Account, error) {
	handle = strings.TrimSpace(handle)
	if err := errors.Join(validate.Handle(handle), validate.Password(password)); err != nil {
		return domain.Account{}, invalid(err)
	}

	res, err := s.password.Login(ctx, handle, password)
	if err != nil {
		return domain.Account{}, err
	}
	return s.persist(ctx, res)
}

func (s *serviceImpl) ConnectTwitter(ctx context.Context) (domain.Account, error) {
	res, err := s.browser.Harvest(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	return s.persist(ctx, res)
}

func (s *serviceImpl) BeginMastodonLogin(ctx context.Context, instance string) (string, error) {
	if err := validate.Instance(instance); err != nil {
		return "", invalid(err)
	}
	return s.oauth.Begin(ctx, instance)
}

func (s *serviceImpl) CompleteMastodonLogin(ctx context.Context, state, code string) (domain.Account, error) {
	res, err := s.oauth.Complete(ctx, state, code)
	if err != nil {
		return domain.Account{}, err
	}
	return s.persist(ctx, res)
}

func (s *serviceImpl) Logout(ctx context.Context, id int64) error {
	return s.store.DeleteAccount(ctx, id)
}
