// Package recipes implements owner-scoped persistence and operations for
// personal recipes. Every query embeds the caller's account id, which is the
// sole access-control mechanism for this resource.
package recipes

import (
	"context"

	"github.com/dmitrijs2005/recipekeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a recipe and returns it with the assigned id.
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)

	// ListByOwner returns all recipes whose owner_id matches ownerID.
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Recipe, error)

	// DeleteOwned deletes the recipe only when both id and owner match.
	// Affecting zero rows is not an error: whether the id belonged to
	// another owner or never existed must stay indistinguishable.
	DeleteOwned(ctx context.Context, id int64, ownerID int64) error
}
