package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/shopping"
	"github.com/kookt/v1/internal/domain/user"
	"github.com/kookt/v1/internal/ports/outbound"
)

// Store provides typed accessors over the generic key-value adapter.
// Each collection lives under one fixed key as a JSON blob; a whole
// collection is rewritten on every save, which makes single-collection
// writes atomic at the adapter's granularity.
type Store struct {
	kv outbound.KeyValueStore
}

// NewStore wraps a key-value store with typed accessors
func NewStore(kv outbound.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// KV exposes the underlying adapter
func (s *Store) KV() outbound.KeyValueStore {
	return s.kv
}

func (s *Store) load(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, outbound.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, data)
}

// LoadRecipes reads the saved recipe collection; a missing key yields
// an empty slice.
func (s *Store) LoadRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	if _, err := s.load(ctx, KeySavedRecipes, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// SaveRecipes rewrites the saved recipe collection
func (s *Store) SaveRecipes(ctx context.Context, recipes []recipe.Recipe) error {
	return s.save(ctx, KeySavedRecipes, recipes)
}

// LoadShoppingList reads the active shopping list, nil when absent
func (s *Store) LoadShoppingList(ctx context.Context) (*shopping.List, error) {
	var list shopping.List
	ok, err := s.load(ctx, KeyShoppingList, &list)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &list, nil
}

// SaveShoppingList rewrites the active shopping list
func (s *Store) SaveShoppingList(ctx context.Context, list *shopping.List) error {
	return s.save(ctx, KeyShoppingList, list)
}

// DeleteShoppingList removes the active shopping list
func (s *Store) DeleteShoppingList(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyShoppingList)
}

// LoadProfile reads the user profile, nil when absent
func (s *Store) LoadProfile(ctx context.Context) (*user.Profile, error) {
	var profile user.Profile
	ok, err := s.load(ctx, KeyUserProfile, &profile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

// SaveProfile rewrites the user profile
func (s *Store) SaveProfile(ctx context.Context, profile *user.Profile) error {
	return s.save(ctx, KeyUserProfile, profile)
}

// OnboardingCompleted reads the onboarding flag, false when absent
func (s *Store) OnboardingCompleted(ctx context.Context) (bool, error) {
	var done bool
	if _, err := s.load(ctx, KeyOnboarding, &done); err != nil {
		return false, err
	}
	return done, nil
}

// SetOnboardingCompleted writes the onboarding flag
func (s *Store) SetOnboardingCompleted(ctx context.Context, done bool) error {
	return s.save(ctx, KeyOnboarding, done)
}

// LoadIngredients reads the pantry of available ingredients; a
// missing key yields an empty slice.
func (s *Store) LoadIngredients(ctx context.Context) ([]recipe.Ingredient, error) {
	var ingredients []recipe.Ingredient
	if _, err := s.load(ctx, KeyAvailableIngredients, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// SaveIngredients rewrites the pantry
func (s *Store) SaveIngredients(ctx context.Context, ingredients []recipe.Ingredient) error {
	return s.save(ctx, KeyAvailableIngredients, ingredients)
}

// RecentIngredients reads the recent-ingredients history,
// most recent first.
func (s *Store) RecentIngredients(ctx context.Context) ([]string, error) {
	var names []string
	if _, err := s.load(ctx, KeyRecentIngredients, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// AddRecentIngredients prepends names to the history, deduplicating
// case-insensitively and capping at RecentIngredientsCap entries.
func (s *Store) AddRecentIngredients(ctx context.Context, names ...string) ([]string, error) {
	history, err := s.RecentIngredients(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		filtered := make([]string, 0, len(history)+1)
		filtered = append(filtered, name)
		for _, existing := range history {
			if !strings.EqualFold(existing, name) {
				filtered = append(filtered, existing)
			}
		}
		history = filtered
	}

	if len(history) > RecentIngredientsCap {
		history = history[:RecentIngredientsCap]
	}

	if err := s.save(ctx, KeyRecentIngredients, history); err != nil {
		return nil, err
	}
	return history, nil
}

// ClearAll wipes every stored collection. Used by logout.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.kv.Clear(ctx)
}
