// Package shopping implements the shopping list aggregator and state manager
package shopping

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/shopping"
	"github.com/kookt/v1/internal/infrastructure/storage"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// DefaultListName names lists created implicitly by aggregation
const DefaultListName = "Ma liste de courses"

// Service manages the active shopping list. Every mutation recomputes
// the total price and refreshes the update timestamp before writing
// through.
type Service struct {
	store  *storage.Store
	logger *zap.Logger

	mu   sync.RWMutex
	list *shopping.List
}

// NewService creates the shopping state manager
func NewService(store *storage.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("shopping-service"),
	}
}

// Load reads the persisted list, replacing in-memory state
func (s *Service) Load(ctx context.Context) error {
	list, err := s.store.LoadShoppingList(ctx)
	if err != nil {
		s.logger.Error("Failed to load shopping list", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.list = list
	s.mu.Unlock()

	if list != nil {
		s.logger.Info("Shopping list loaded", zap.Int("items", len(list.Items)))
	}
	return nil
}

// ActiveList returns a copy of the current list, nil when none exists
func (s *Service) ActiveList() *shopping.List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.list == nil {
		return nil
	}
	return copyList(s.list)
}

// CreateListWithItems assembles a complete list in memory and performs
// a single write, so a partially populated list can never be observed
// in storage.
func (s *Service) CreateListWithItems(ctx context.Context, name string, items []shopping.Item) (*shopping.List, error) {
	if name == "" {
		name = DefaultListName
	}

	now := time.Now()
	list := &shopping.List{
		ID:        uuid.New().String(),
		Name:      name,
		Items:     make([]shopping.Item, 0, len(items)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, item := range items {
		list.Items = append(list.Items, prepareItem(item))
	}
	list.RecomputeTotal()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = list
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return copyList(list), nil
}

// GenerateFromRecipe maps each ingredient 1:1 into a shopping item
// tagged with recipe provenance and appends to the active list,
// creating one when absent.
func (s *Service) GenerateFromRecipe(ctx context.Context, r *recipe.Recipe) (*shopping.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureList()
	for _, ing := range r.Ingredients {
		s.list.Items = append(s.list.Items, itemFromIngredient(ing, r))
	}
	s.afterMutation()

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Shopping list generated from recipe",
		zap.String("recipe_id", r.ID),
		zap.Int("items", len(s.list.Items)),
	)
	return copyList(s.list), nil
}

// GenerateFromRecipes merges the ingredient lists of several recipes.
// Ingredients sharing a case-insensitive name and the same unit merge
// into one item with summed quantities; differing units stay separate
// line items. Provenance notes accumulate every contributing recipe
// title.
func (s *Service) GenerateFromRecipes(ctx context.Context, recipes []recipe.Recipe) (*shopping.List, error) {
	type group struct {
		item    shopping.Item
		sources []string
	}

	var order []string
	groups := make(map[string]*group)

	for ri := range recipes {
		r := &recipes[ri]
		for _, ing := range r.Ingredients {
			key := shopping.NormalizedName(ing.Name) + "|" + strings.ToLower(ing.Unit)
			g, ok := groups[key]
			if !ok {
				g = &group{item: itemFromIngredient(ing, r)}
				groups[key] = g
				order = append(order, key)
			} else {
				g.item.Quantity += ing.Quantity
				g.item.EstimatedPrice += ing.EstimatedPrice
			}
			g.sources = appendUnique(g.sources, r.Title)
		}
	}

	items := make([]shopping.Item, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.item.Notes = "Pour: " + strings.Join(g.sources, ", ")
		items = append(items, g.item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.list = &shopping.List{
		ID:        uuid.New().String(),
		Name:      DefaultListName,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.list.RecomputeTotal()

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Shopping list generated from recipes",
		zap.Int("recipes", len(recipes)),
		zap.Int("items", len(items)),
	)
	return copyList(s.list), nil
}

// AddItem appends a single item to the active list
func (s *Service) AddItem(ctx context.Context, item shopping.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureList()
	s.list.Items = append(s.list.Items, prepareItem(item))
	s.afterMutation()
	return s.persist(ctx)
}

// UpdateItem replaces an item by id
func (s *Service) UpdateItem(ctx context.Context, item shopping.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list == nil {
		return apperrors.NewNotFoundError("Shopping list item", item.ID)
	}
	for i := range s.list.Items {
		if s.list.Items[i].ID == item.ID {
			s.list.Items[i] = item
			s.afterMutation()
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Shopping list item", item.ID)
}

// RemoveItem deletes an item by id
func (s *Service) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list == nil {
		return apperrors.NewNotFoundError("Shopping list item", itemID)
	}
	for i := range s.list.Items {
		if s.list.Items[i].ID == itemID {
			s.list.Items = append(s.list.Items[:i], s.list.Items[i+1:]...)
			s.afterMutation()
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Shopping list item", itemID)
}

// ToggleItem flips the checked state of an item
func (s *Service) ToggleItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list == nil {
		return apperrors.NewNotFoundError("Shopping list item", itemID)
	}
	for i := range s.list.Items {
		if s.list.Items[i].ID == itemID {
			s.list.Items[i].IsChecked = !s.list.Items[i].IsChecked
			s.afterMutation()
			return s.persist(ctx)
		}
	}
	return apperrors.NewNotFoundError("Shopping list item", itemID)
}

// ClearCheckedItems removes every checked item
func (s *Service) ClearCheckedItems(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list == nil {
		return nil
	}

	remaining := s.list.Items[:0]
	for _, item := range s.list.Items {
		if !item.IsChecked {
			remaining = append(remaining, item)
		}
	}
	s.list.Items = remaining
	s.afterMutation()
	return s.persist(ctx)
}

// FindDuplicateItems groups items sharing a case-insensitive trimmed
// name, returning only groups with more than one member.
func (s *Service) FindDuplicateItems() [][]shopping.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.list == nil {
		return nil
	}

	var order []string
	byName := make(map[string][]shopping.Item)
	for _, item := range s.list.Items {
		key := shopping.NormalizedName(item.Name)
		if _, ok := byName[key]; !ok {
			order = append(order, key)
		}
		byName[key] = append(byName[key], item)
	}

	var out [][]shopping.Item
	for _, key := range order {
		if len(byName[key]) > 1 {
			out = append(out, byName[key])
		}
	}
	return out
}

// MergeDuplicateItems collapses duplicate names. Quantities sum only
// within the same unit; a name bought in two units stays as two lines.
// A merged item is checked when any of its duplicates was checked, and
// provenance notes accumulate.
func (s *Service) MergeDuplicateItems(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list == nil {
		return nil
	}

	var order []string
	merged := make(map[string]*shopping.Item)

	for _, item := range s.list.Items {
		key := shopping.NormalizedName(item.Name) + "|" + strings.ToLower(item.Unit)
		existing, ok := merged[key]
		if !ok {
			copied := item
			merged[key] = &copied
			order = append(order, key)
			continue
		}
		existing.Quantity += item.Quantity
		existing.EstimatedPrice += item.EstimatedPrice
		existing.IsChecked = existing.IsChecked || item.IsChecked
		if item.Notes != "" && !strings.Contains(existing.Notes, item.Notes) {
			if existing.Notes == "" {
				existing.Notes = item.Notes
			} else {
				existing.Notes += "; " + item.Notes
			}
		}
	}

	items := make([]shopping.Item, 0, len(order))
	for _, key := range order {
		items = append(items, *merged[key])
	}
	s.list.Items = items
	s.afterMutation()
	return s.persist(ctx)
}

// SortItemsByCategory reorders items into category groups, keeping the
// insertion order of first category appearance.
func (s *Service) SortItemsByCategory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.list == nil {
		return nil
	}

	var order []recipe.IngredientCategory
	seen := make(map[recipe.IngredientCategory]int)
	for _, item := range s.list.Items {
		if _, ok := seen[item.Category]; !ok {
			seen[item.Category] = len(order)
			order = append(order, item.Category)
		}
	}

	sort.SliceStable(s.list.Items, func(i, j int) bool {
		return seen[s.list.Items[i].Category] < seen[s.list.Items[j].Category]
	})
	s.afterMutation()
	return s.persist(ctx)
}

// commonStaples seeds the suggested-items feature
var commonStaples = []string{
	"sel", "poivre", "huile d'olive", "beurre", "farine",
	"sucre", "lait", "oeufs", "pain", "riz",
}

// SuggestedItems proposes staples missing from the active list
func (s *Service) SuggestedItems(limit int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	present := make(map[string]bool)
	if s.list != nil {
		for _, item := range s.list.Items {
			present[shopping.NormalizedName(item.Name)] = true
		}
	}

	var out []string
	for _, name := range commonStaples {
		if !present[shopping.NormalizedName(name)] {
			out = append(out, name)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// ensureList lazily creates the active list. Callers hold the lock.
func (s *Service) ensureList() {
	if s.list != nil {
		return
	}
	now := time.Now()
	s.list = &shopping.List{
		ID:        uuid.New().String(),
		Name:      DefaultListName,
		Items:     []shopping.Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// afterMutation maintains the list invariants. Callers hold the lock.
func (s *Service) afterMutation() {
	s.list.RecomputeTotal()
	s.list.Touch()
}

// persist writes the list through. Callers hold the lock.
func (s *Service) persist(ctx context.Context) error {
	if err := s.store.SaveShoppingList(ctx, s.list); err != nil {
		s.logger.Error("Failed to persist shopping list", zap.Error(err))
		return err
	}
	return nil
}

func prepareItem(item shopping.Item) shopping.Item {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Category == "" {
		item.Category = recipe.CategoryOther
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	return item
}

func itemFromIngredient(ing recipe.Ingredient, r *recipe.Recipe) shopping.Item {
	category := ing.Category
	if category == "" {
		category = recipe.CategoryOther
	}
	return shopping.Item{
		ID:             uuid.New().String(),
		Name:           ing.Name,
		Quantity:       ing.Quantity,
		Unit:           ing.Unit,
		Category:       category,
		EstimatedPrice: ing.EstimatedPrice,
		RecipeID:       r.ID,
		RecipeName:     r.Title,
		AddedAt:        time.Now(),
	}
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

func copyList(list *shopping.List) *shopping.List {
	out := *list
	out.Items = make([]shopping.Item, len(list.Items))
	copy(out.Items, list.Items)
	return &out
}
