// Package db wires the durable store: it opens the connection pool, applies
// migrations and hands out repository instances. Components receive their
// repositories from here instead of reaching for a global handle.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/recipekeeper/internal/server/accounts"
	"github.com/dmitrijs2005/recipekeeper/internal/server/recipes"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Accounts() accounts.Repository
	Recipes() recipes.Repository
}
