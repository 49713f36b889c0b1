package accounts

import (
	"context"

	"github.com/reacademix/authd/internal/server/models"
)

// Repository is the account store boundary. FindByEmail is case-sensitive
// on the stored normalized form; normalizing input is the caller's job.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
}
