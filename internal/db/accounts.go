package db

import (
	"context"

	"github.com/sidereusnuntius/goposter/internal/domain"
)

// Accounts persists connected accounts. ListAccounts returns rows in insertion
// order; GetAccount and DeleteAccount are keyed by id. There is no update
// operation: accounts are replaced by logging out and connecting again.
type Accounts interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// GetAccount returns ErrNotFound for unknown ids.
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	InsertAccount(ctx context.Context, account domain.Account) (id int64, err error)
	// DeleteAccount returns ErrNotFound when no row with the id exists.
	DeleteAccount(ctx context.Context, id int64) error
}
