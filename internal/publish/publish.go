// Package publish maps one message to N platform-specific publish calls. It
// owns the pre-flight validation, the per-network character ceilings, the
// per-target failure isolation and the unconditional clearing of the upload
// staging buffer after an attempt.
package publish

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/db"
	"github.com/sidereusnuntius/goposter/internal/domain"
	"github.com/sidereusnuntius/goposter/internal/validate"
)

// ErrValidation marks rejections that happen before any network call: empty
// message, no valid target, or a message over a targeted network's ceiling.
var ErrValidation = errors.New("invalid post")

// Adapter translates a generic publish request into one network's protocol.
// The returned detail is a human-readable success message, typically carrying
// the remote post identifier.
type Adapter interface {
	Network() domain.Network
	Publish(ctx context.Context, account domain.Account, text string, media []domain.Upload) (detail string, err error)
}

// Result is the outcome of one target's publish attempt.
type Result struct {
	Account domain.Account
	Success bool
	Message string
}

type Publisher struct {
	store    db.DB
	adapters map[domain.Network]Adapter
}

func New(store db.DB, adapters ...Adapter) *Publisher {
	m := make(map[domain.Network]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Network()] = a
	}
	return &Publisher{store: store, adapters: m}
}

// Publish validates, then attempts every target in input order. A failure on
// one target is converted into that target's result entry and never aborts
// the remaining targets. The staging buffer is cleared once all targets have
// been attempted, whatever the outcomes; a validation rejection happens
// before any attempt and leaves staging untouched.
func (p *Publisher) Publish(ctx context.Context, message string, targets []int64) ([]Result, error) {
	accounts, err := p.resolve(ctx, targets)
	if err != nil {
		return nil, err
	}

	if err := validate.Message(message); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: please select at least one account to post to", ErrValidation)
	}

	length := utf8.RuneCountInString(message)
	for _, account := range accounts {
		if limit := Limit(account.Network); length > limit {
			return nil, fmt.Errorf("%w: message too long for %s (%d characters exceeds %d-character limit)",
				ErrValidation, account.Network.Title(), length, limit)
		}
	}

	media, err := p.store.ListUploads(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(accounts))
	for _, account := range accounts {
		results = append(results, p.attempt(ctx, account, message, media))
	}

	if err := p.store.ClearUploads(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear upload staging after publish")
	}

	return results, nil
}

func (p *Publisher) attempt(ctx context.Context, account domain.Account, message string, media []domain.Upload) Result {
	adapter, ok := p.adapters[account.Network]
	if !ok {
		return Result{
			Account: account,
			Message: fmt.Sprintf("unknown network: %s", account.Network),
		}
	}

	detail, err := adapter.Publish(ctx, account, message, media)
	if err != nil {
		log.Error().Err(err).
			Str("network", string(account.Network)).
			Str("username", account.Username).
			Msg("publish attempt failed")
		return Result{Account: account, Message: err.Error()}
	}

	log.Info().
		Str("network", string(account.Network)).
		Str("username", account.Username).
		Msg("publish attempt succeeded")
	return Result{Account: account, Success: true, Message: detail}
}

// CheckLength is the advisory pre-submit check. It warns against the minimum
// ceiling among the candidate targets, or among all connected accounts when
// no candidates are given, and returns an empty string when the message fits.
func (p *Publisher) CheckLength(ctx context.Context, message string, targets []int64) (string, error) {
	if err := validate.Message(message); err != nil {
		return "", nil
	}

	var accounts []domain.Account
	var err error
	if len(targets) == 0 {
		accounts, err = p.store.ListAccounts(ctx)
		if err != nil {
			return "", err
		}
		if len(accounts) == 0 {
			return "Warning: No accounts connected to check length against.", nil
		}
	} else {
		accounts, err = p.resolve(ctx, targets)
		if err != nil {
			return "", err
		}
		if len(accounts) == 0 {
			return "Warning: No valid accounts selected to check length against.", nil
		}
	}

	min := Limit(accounts[0].Network)
	for _, account := range accounts[1:] {
		if limit := Limit(account.Network); limit < min {
			min = limit
		}
	}

	if length := utf8.RuneCountInString(message); length > min {
		return fmt.Sprintf("Warning: Your message (%d characters) exceeds the %d-character limit for selected networks.",
			length, min), nil
	}
	return "", nil
}

// resolve maps target ids to accounts, silently dropping unknown ids.
func (p *Publisher) resolve(ctx context.Context, targets []int64) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(targets))
	for _, id := range targets {
		account, err := p.store.GetAccount(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}
