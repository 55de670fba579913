// Package accounts implements the credential store: account persistence,
// password verification and session token issuance.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/recipekeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a new account and returns it with the assigned id.
	// A username collision yields common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByUsername performs a case-sensitive exact-match lookup.
	// Returns common.ErrorNotFound when no such account exists.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// List returns every account ordered by id.
	List(ctx context.Context) ([]*models.Account, error)

	// CreateIfAbsent inserts the account unless the username is already
	// taken, in which case it does nothing. Used for admin seeding.
	CreateIfAbsent(ctx context.Context, account *models.Account) error
}
