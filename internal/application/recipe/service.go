// Package recipe implements the saved recipe state manager
package recipe

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/validation"
	"github.com/kookt/v1/internal/infrastructure/storage"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// Service is the CRUD container over the persisted recipe collection.
// Mutations change memory first, then write through synchronously; on
// a write failure the in-memory state is kept and the error surfaces
// to the caller.
type Service struct {
	store  *storage.Store
	logger *zap.Logger

	mu      sync.RWMutex
	recipes []recipe.Recipe
}

// NewService creates the recipe state manager
func NewService(store *storage.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("recipe-service"),
	}
}

// Load reads the persisted collection, replacing in-memory state
func (s *Service) Load(ctx context.Context) error {
	recipes, err := s.store.LoadRecipes(ctx)
	if err != nil {
		s.logger.Error("Failed to load recipes", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.recipes = recipes
	s.mu.Unlock()

	s.logger.Info("Recipes loaded", zap.Int("count", len(recipes)))
	return nil
}

// List returns a copy of the collection
func (s *Service) List() []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recipe.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Get returns the recipe with the given id
func (s *Service) Get(id string) (*recipe.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.recipes {
		if s.recipes[i].ID == id {
			r := s.recipes[i]
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Recipe", id)
}

// Save validates and appends a recipe, then writes through
func (s *Service) Save(ctx context.Context, r *recipe.Recipe) error {
	if err := validation.ValidateRecipe(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes = append(s.recipes, *r)
	return s.persist(ctx)
}

// Update replaces an existing recipe by id
func (s *Service) Update(ctx context.Context, r *recipe.Recipe) error {
	if err := validation.ValidateRecipe(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == r.ID {
			r.UpdatedAt = time.Now()
			s.recipes[i] = *r
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Recipe", r.ID)
}

// Delete removes a recipe by id
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == id {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Recipe", id)
}

// ToggleFavorite flips the favorite flag and returns the updated recipe
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == id {
			s.recipes[i].IsFavorite = !s.recipes[i].IsFavorite
			s.recipes[i].UpdatedAt = time.Now()
			if err := s.persist(ctx); err != nil {
				return nil, err
			}
			r := s.recipes[i]
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Recipe", id)
}

// Rate sets the rating, bounded to [0, 5]
func (s *Service) Rate(ctx context.Context, id string, rating float64) error {
	if rating < 0 || rating > 5 {
		return apperrors.NewBadRequestError("rating must be between 0 and 5")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == id {
			s.recipes[i].Rating = rating
			s.recipes[i].UpdatedAt = time.Now()
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Recipe", id)
}

// SetNotes replaces the user notes on a recipe
func (s *Service) SetNotes(ctx context.Context, id string, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == id {
			s.recipes[i].Notes = notes
			s.recipes[i].UpdatedAt = time.Now()
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Recipe", id)
}

// MarkCooked increments the cook counter
func (s *Service) MarkCooked(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recipes {
		if s.recipes[i].ID == id {
			s.recipes[i].CookCount++
			s.recipes[i].UpdatedAt = time.Now()
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Recipe", id)
}

// Filter returns the recipes matching every criterion of the filter
func (s *Service) Filter(f recipe.Filter) []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recipe.Recipe
	for i := range s.recipes {
		if s.recipes[i].Matches(f) {
			out = append(out, s.recipes[i])
		}
	}
	return out
}

// Favorites is a derived index over the primary collection, never
// persisted separately.
func (s *Service) Favorites() []recipe.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recipe.Recipe
	for i := range s.recipes {
		if s.recipes[i].IsFavorite {
			out = append(out, s.recipes[i])
		}
	}
	return out
}

// persist writes the whole collection through. Callers hold the lock.
func (s *Service) persist(ctx context.Context) error {
	if err := s.store.SaveRecipes(ctx, s.recipes); err != nil {
		s.logger.Error("Failed to persist recipes", zap.Error(err))
		return err
	}
	return nil
}
