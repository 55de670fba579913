package models

// Recipe is a personal recipe saved by an account. The text fields are opaque:
// no structure is enforced on ingredients or instructions. OwnerID is set at
// creation and never changes; every query against recipes is scoped to it.
type Recipe struct {
	ID           int64
	Title        string
	Ingredients  string
	Instructions string
	OwnerID      int64
}
