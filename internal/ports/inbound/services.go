// Package inbound defines the service interfaces exposed to the HTTP layer
package inbound

import (
	"context"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/shopping"
	"github.com/kookt/v1/internal/domain/user"
)

// GenerationService is the AI recipe generation pipeline
type GenerationService interface {
	GenerateRecipe(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error)
	ImproveRecipe(ctx context.Context, existing *recipe.Recipe, feedback string) (*recipe.Recipe, error)
	RegenerateLast(ctx context.Context) (*recipe.Recipe, error)
	SuggestIngredients(ctx context.Context, partial string) ([]string, error)
}

// RecipeService manages the saved recipe collection
type RecipeService interface {
	Load(ctx context.Context) error
	List() []recipe.Recipe
	Get(id string) (*recipe.Recipe, error)
	Save(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (*recipe.Recipe, error)
	Rate(ctx context.Context, id string, rating float64) error
	SetNotes(ctx context.Context, id string, notes string) error
	MarkCooked(ctx context.Context, id string) error
	Filter(f recipe.Filter) []recipe.Recipe
	Favorites() []recipe.Recipe
}

// ShoppingService manages the active shopping list
type ShoppingService interface {
	Load(ctx context.Context) error
	ActiveList() *shopping.List
	CreateListWithItems(ctx context.Context, name string, items []shopping.Item) (*shopping.List, error)
	GenerateFromRecipe(ctx context.Context, r *recipe.Recipe) (*shopping.List, error)
	GenerateFromRecipes(ctx context.Context, recipes []recipe.Recipe) (*shopping.List, error)
	AddItem(ctx context.Context, item shopping.Item) error
	UpdateItem(ctx context.Context, item shopping.Item) error
	RemoveItem(ctx context.Context, itemID string) error
	ToggleItem(ctx context.Context, itemID string) error
	ClearCheckedItems(ctx context.Context) error
	FindDuplicateItems() [][]shopping.Item
	MergeDuplicateItems(ctx context.Context) error
	SortItemsByCategory(ctx context.Context) error
	SuggestedItems(limit int) []string
}

// IngredientService manages the pantry of available ingredients
type IngredientService interface {
	Load(ctx context.Context) error
	List() []recipe.Ingredient
	Add(ctx context.Context, ing recipe.Ingredient) (*recipe.Ingredient, error)
	Remove(ctx context.Context, id string) error
	UpdateQuantity(ctx context.Context, id string, quantity float64, unit string) error
	ToggleAvailability(ctx context.Context, id string) (*recipe.Ingredient, error)
	ByCategory(category recipe.IngredientCategory, onlyAvailable bool) []recipe.Ingredient
	AvailableNames() []string
	ImportFromText(ctx context.Context, text string) ([]recipe.Ingredient, error)
	ExportText() string
}

// UserService manages the profile, preferences, stats and history
type UserService interface {
	Load(ctx context.Context) error
	Profile() (*user.Profile, error)
	CompleteOnboarding(ctx context.Context, prefs user.Preferences) (*user.Profile, error)
	UpdatePreferences(ctx context.Context, prefs user.Preferences) error
	RecordGenerated(ctx context.Context) error
	RecordCooked(ctx context.Context, minutes int) error
	RecordFavorite(ctx context.Context, favorited bool) error
	RecordIngredientsSaved(ctx context.Context, count int) error
	ResetStats(ctx context.Context) error
	RecentIngredients() []string
	AddRecentIngredients(ctx context.Context, names ...string) error
	Logout(ctx context.Context) error
}
