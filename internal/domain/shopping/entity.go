// Package shopping defines the shopping list domain model
package shopping

import (
	"math"
	"strings"
	"time"

	"github.com/kookt/v1/internal/domain/recipe"
)

// Item is a single line of a shopping list
type Item struct {
	ID             string                    `json:"id" validate:"required"`
	Name           string                    `json:"name" validate:"required"`
	Quantity       float64                   `json:"quantity" validate:"gt=0"`
	Unit           string                    `json:"unit" validate:"required"`
	Category       recipe.IngredientCategory `json:"category" validate:"category"`
	EstimatedPrice float64                   `json:"estimatedPrice,omitempty" validate:"min=0"`
	IsChecked      bool                      `json:"isChecked"`
	RecipeID       string                    `json:"recipeId,omitempty"`
	RecipeName     string                    `json:"recipeName,omitempty"`
	IsOptional     bool                      `json:"isOptional"`
	Notes          string                    `json:"notes,omitempty"`
	AddedAt        time.Time                 `json:"addedAt"`
}

// List is an unordered collection of items; ordering only emerges
// through category grouping.
type List struct {
	ID                  string    `json:"id" validate:"required"`
	Name                string    `json:"name" validate:"required"`
	Items               []Item    `json:"items" validate:"dive"`
	TotalEstimatedPrice float64   `json:"totalEstimatedPrice" validate:"min=0"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	IsArchived          bool      `json:"isArchived"`
}

// CategoryGroup is the per-category view of a list
type CategoryGroup struct {
	Category     recipe.IngredientCategory `json:"category"`
	Items        []Item                    `json:"items"`
	CheckedCount int                       `json:"checkedCount"`
	TotalCount   int                       `json:"totalCount"`
	Subtotal     float64                   `json:"subtotal"`
}

// RecomputeTotal re-derives TotalEstimatedPrice from the items, treating
// a missing price as zero. Called on every mutation so the stored total
// never drifts from the sum.
func (l *List) RecomputeTotal() {
	total := 0.0
	for _, item := range l.Items {
		total += item.EstimatedPrice
	}
	l.TotalEstimatedPrice = total
}

// Touch refreshes UpdatedAt after a structural change
func (l *List) Touch() {
	l.UpdatedAt = time.Now()
}

// CompletionPercentage returns the rounded percentage of checked items,
// zero for an empty list.
func (l *List) CompletionPercentage() int {
	if len(l.Items) == 0 {
		return 0
	}
	checked := 0
	for _, item := range l.Items {
		if item.IsChecked {
			checked++
		}
	}
	return int(math.Round(float64(checked) / float64(len(l.Items)) * 100))
}

// ItemsByCategory groups items by category. Group order is the
// insertion order of each category's first appearance.
func (l *List) ItemsByCategory() []CategoryGroup {
	var order []recipe.IngredientCategory
	groups := make(map[recipe.IngredientCategory]*CategoryGroup)

	for _, item := range l.Items {
		g, ok := groups[item.Category]
		if !ok {
			g = &CategoryGroup{Category: item.Category}
			groups[item.Category] = g
			order = append(order, item.Category)
		}
		g.Items = append(g.Items, item)
		g.TotalCount++
		g.Subtotal += item.EstimatedPrice
		if item.IsChecked {
			g.CheckedCount++
		}
	}

	result := make([]CategoryGroup, 0, len(order))
	for _, cat := range order {
		result = append(result, *groups[cat])
	}
	return result
}

// NormalizedName is the merge key for duplicate detection
func NormalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
