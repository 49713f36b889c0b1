package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reacademix/authd/internal/common"
	"github.com/reacademix/authd/internal/dbx"
	"github.com/reacademix/authd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByEmail returns the account stored under the exact email given, or
// common.ErrorNotFound when no row matches.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, email, password_hash, name, role, status, created_at
		 FROM accounts
		 WHERE email = $1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.Name, &account.Role, &account.Status, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (email, password_hash, name, role, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Email, account.PasswordHash, account.Name,
		account.Role, account.Status).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
