// Package ingredient implements the pantry state manager
package ingredient

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/validation"
	"github.com/kookt/v1/internal/infrastructure/storage"
	apperrors "github.com/kookt/v1/pkg/errors"
	"github.com/kookt/v1/pkg/format"
)

// DefaultUnit is assumed when free-text input carries no unit
const DefaultUnit = "pièce"

// Service manages the pantry of available ingredients. Mutations
// change memory first, then write through synchronously; on a write
// failure the in-memory state is kept and the error surfaces to the
// caller.
type Service struct {
	store  *storage.Store
	logger *zap.Logger

	mu          sync.RWMutex
	ingredients []recipe.Ingredient
}

// NewService creates the pantry state manager
func NewService(store *storage.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("ingredient-service"),
	}
}

// Load reads the persisted pantry, replacing in-memory state
func (s *Service) Load(ctx context.Context) error {
	ingredients, err := s.store.LoadIngredients(ctx)
	if err != nil {
		s.logger.Error("Failed to load pantry", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.ingredients = ingredients
	s.mu.Unlock()

	s.logger.Info("Pantry loaded", zap.Int("count", len(ingredients)))
	return nil
}

// List returns a copy of the pantry
func (s *Service) List() []recipe.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recipe.Ingredient, len(s.ingredients))
	copy(out, s.ingredients)
	return out
}

// Add upserts an ingredient into the pantry. A case-insensitive name
// match replaces the existing entry in place, preserving its id;
// otherwise the ingredient is appended with generated defaults.
func (s *Service) Add(ctx context.Context, ing recipe.Ingredient) (*recipe.Ingredient, error) {
	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	if ing.Category == "" {
		ing.Category = recipe.CategoryOther
	}
	ing.Available = true

	if err := validation.ValidateIngredient(&ing); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.ingredients {
		if strings.EqualFold(s.ingredients[i].Name, ing.Name) {
			ing.ID = s.ingredients[i].ID
			s.ingredients[i] = ing
			if err := s.persist(ctx); err != nil {
				return nil, err
			}
			return &ing, nil
		}
	}

	s.ingredients = append(s.ingredients, ing)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &ing, nil
}

// Remove deletes an ingredient from the pantry by id
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.ingredients {
		if s.ingredients[i].ID == id {
			s.ingredients = append(s.ingredients[:i], s.ingredients[i+1:]...)
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Ingredient", id)
}

// UpdateQuantity replaces the quantity and unit of a pantry entry
func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity float64, unit string) error {
	if quantity <= 0 {
		return apperrors.NewBadRequestError("quantity must be positive")
	}
	if unit == "" {
		return apperrors.NewBadRequestError("unit must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.ingredients {
		if s.ingredients[i].ID == id {
			s.ingredients[i].Quantity = quantity
			s.ingredients[i].Unit = unit
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Ingredient", id)
}

// ToggleAvailability flips the available flag of a pantry entry
func (s *Service) ToggleAvailability(ctx context.Context, id string) (*recipe.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.ingredients {
		if s.ingredients[i].ID == id {
			s.ingredients[i].Available = !s.ingredients[i].Available
			if err := s.persist(ctx); err != nil {
				return nil, err
			}
			ing := s.ingredients[i]
			return &ing, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Ingredient", id)
}

// ByCategory returns the pantry entries in one category, optionally
// restricted to available ones.
func (s *Service) ByCategory(category recipe.IngredientCategory, onlyAvailable bool) []recipe.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recipe.Ingredient, 0)
	for _, ing := range s.ingredients {
		if ing.Category != category {
			continue
		}
		if onlyAvailable && !ing.Available {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// AvailableNames returns the names of every available pantry entry
func (s *Service) AvailableNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		if ing.Available {
			names = append(names, ing.Name)
		}
	}
	return names
}

// lineRe captures an optional quantity and unit before the name,
// matching inputs like "2 tomates", "500 g de riz" or "farine".
var lineRe = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*([^\s\d]*)\s+(.+)$`)

// ImportFromText parses free text such as "2 tomates, 1 oignon, 500 g
// de riz" and upserts each entry into the pantry. Lines without a
// recognizable quantity default to one piece.
func (s *Service) ImportFromText(ctx context.Context, text string) ([]recipe.Ingredient, error) {
	added := make([]recipe.Ingredient, 0)

	for _, line := range regexp.MustCompile(`[,\n]`).Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ing := recipe.Ingredient{Quantity: 1, Unit: DefaultUnit, Name: line}
		if m := lineRe.FindStringSubmatch(line); m != nil {
			quantity, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
			if err == nil && quantity > 0 {
				ing.Quantity = quantity
				if m[2] != "" {
					ing.Unit = m[2]
				}
				ing.Name = stripArticle(m[3])
			}
		}

		result, err := s.Add(ctx, ing)
		if err != nil {
			return nil, err
		}
		added = append(added, *result)
	}

	if len(added) == 0 {
		return nil, apperrors.NewBadRequestError("no ingredient found in text")
	}
	return added, nil
}

// ExportText renders the available pantry entries as one shareable
// line, e.g. "2 pièces Tomate, 500 g Riz".
func (s *Service) ExportText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parts := make([]string, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		if !ing.Available {
			continue
		}
		parts = append(parts, format.Quantity(ing.Quantity, ing.Unit)+" "+ing.Name)
	}
	return strings.Join(parts, ", ")
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.store.SaveIngredients(ctx, s.ingredients); err != nil {
		s.logger.Error("Failed to persist pantry", zap.Error(err))
		return err
	}
	return nil
}

func stripArticle(name string) string {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "de "):
		return strings.TrimSpace(name[3:])
	case strings.HasPrefix(lower, "d'"):
		return strings.TrimSpace(name[2:])
	}
	return name
}
