package storage

import (
	"context"
	"encoding/json"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/shopping"
	"github.com/kookt/v1/internal/domain/user"
	"github.com/kookt/v1/internal/domain/validation"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// ExportBundle is the round-trippable backup document. Every field is
// optional so imports can apply partial bundles.
type ExportBundle struct {
	Profile              *user.Profile       `json:"profile,omitempty"`
	Recipes              []recipe.Recipe     `json:"recipes,omitempty"`
	ShoppingList         *shopping.List      `json:"shoppingList,omitempty"`
	RecentIngredients    []string            `json:"recentIngredients,omitempty"`
	AvailableIngredients []recipe.Ingredient `json:"availableIngredients,omitempty"`
}

// Export collects every stored collection into one JSON document
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	profile, err := s.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := s.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.LoadShoppingList(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.RecentIngredients(ctx)
	if err != nil {
		return nil, err
	}
	pantry, err := s.LoadIngredients(ctx)
	if err != nil {
		return nil, err
	}

	bundle := ExportBundle{
		Profile:              profile,
		Recipes:              recipes,
		ShoppingList:         list,
		RecentIngredients:    recent,
		AvailableIngredients: pantry,
	}

	return json.MarshalIndent(bundle, "", "  ")
}

// Import applies a bundle field by field. Present fields replace the
// stored collection; absent fields leave it untouched. Recipes and the
// shopping list are validated through the same schema that gates AI
// output before anything is written.
func (s *Store) Import(ctx context.Context, data []byte) error {
	var bundle ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return apperrors.NewBadRequestError("export bundle is not valid JSON").WithCause(err)
	}

	for i := range bundle.Recipes {
		if err := validation.ValidateRecipe(&bundle.Recipes[i]); err != nil {
			if appErr, ok := err.(*apperrors.AppError); ok {
				return appErr.WithMetadata("recipe", bundle.Recipes[i].Title)
			}
			return err
		}
	}
	if bundle.ShoppingList != nil {
		if err := validation.ValidateShoppingList(bundle.ShoppingList); err != nil {
			return err
		}
	}
	for i := range bundle.AvailableIngredients {
		if err := validation.ValidateIngredient(&bundle.AvailableIngredients[i]); err != nil {
			if appErr, ok := err.(*apperrors.AppError); ok {
				return appErr.WithMetadata("ingredient", bundle.AvailableIngredients[i].Name)
			}
			return err
		}
	}

	if bundle.Profile != nil {
		if err := s.SaveProfile(ctx, bundle.Profile); err != nil {
			return err
		}
		if err := s.SetOnboardingCompleted(ctx, bundle.Profile.OnboardingCompleted); err != nil {
			return err
		}
	}
	if bundle.Recipes != nil {
		if err := s.SaveRecipes(ctx, bundle.Recipes); err != nil {
			return err
		}
	}
	if bundle.ShoppingList != nil {
		if err := s.SaveShoppingList(ctx, bundle.ShoppingList); err != nil {
			return err
		}
	}
	if bundle.RecentIngredients != nil {
		if err := s.save(ctx, KeyRecentIngredients, bundle.RecentIngredients); err != nil {
			return err
		}
	}
	if bundle.AvailableIngredients != nil {
		if err := s.SaveIngredients(ctx, bundle.AvailableIngredients); err != nil {
			return err
		}
	}

	return nil
}
