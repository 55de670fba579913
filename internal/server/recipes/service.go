package recipes

import (
	"context"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/server/models"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create saves a recipe owned by the calling account. Any authenticated
// identity may create; ownership is fixed to the caller.
func (s *Service) Create(ctx context.Context, ownerID int64, title, ingredients, instructions string) (*models.Recipe, error) {

	recipe := &models.Recipe{
		Title:        title,
		Ingredients:  ingredients,
		Instructions: instructions,
		OwnerID:      ownerID,
	}

	recipe, err := s.repo.Create(ctx, recipe)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return recipe, nil
}

// ListOwn returns only the caller's recipes.
func (s *Service) ListOwn(ctx context.Context, ownerID int64) ([]*models.Recipe, error) {

	result, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}

// Delete removes the recipe only if the caller owns it. Deleting a recipe
// that does not exist, or that belongs to someone else, succeeds silently.
func (s *Service) Delete(ctx context.Context, id int64, ownerID int64) error {

	if err := s.repo.DeleteOwned(ctx, id, ownerID); err != nil {
		return common.ErrorInternal
	}

	return nil
}
