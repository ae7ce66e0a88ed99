package impl

import (
	"context"
	"fmt"

	"github.com/sidereusnuntius/goposter/internal/db"
	"github.com/sidereusnuntius/goposter/internal/domain"
)

func (d *dbImpl) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, network, username, credentials, created_at, updated_at
		FROM accounts
		ORDER BY id;
	`)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		err = rows.Scan(&a.ID, &a.Network, &a.Username, &a.Credentials, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, d.HandleError(err)
		}
		accounts = append(accounts, a)
	}
	return accounts, d.HandleError(rows.Err())
}

func (d *dbImpl) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	var a domain.Account
	err := d.db.QueryRowContext(ctx, `
		SELECT id, network, username, credentials, created_at, updated_at
		FROM accounts
		WHERE id = ?;
	`, id).Scan(&a.ID, &a.Network, &a.Username, &a.Credentials, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, d.HandleError(err)
	}
	return a, nil
}

func (d *dbImpl) InsertAccount(ctx context.Context, account domain.Account) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO accounts (network, username, credentials, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, account.Network, account.Username, account.Credentials)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s account: %w", account.Network, d.HandleError(err))
	}
	return res.LastInsertId()
}

func (d *dbImpl) DeleteAccount(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?;`, id)
	if err != nil {
		return d.HandleError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return d.HandleError(err)
	}
	if affected == 0 {
		return db.ErrNotFound
	}
	return nil
}
