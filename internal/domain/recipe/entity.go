// Package recipe defines the recipe domain model
package recipe

import (
	"strings"
	"time"
)

// Recipe is the central domain entity. Instances come from the AI
// generation pipeline or from imported data; both paths go through the
// same schema validation before reaching a store.
type Recipe struct {
	ID            string         `json:"id" validate:"required"`
	Title         string         `json:"title" validate:"required,min=1,max=200"`
	Description   string         `json:"description" validate:"required"`
	PrepTime      int            `json:"prepTime" validate:"min=0"`
	CookTime      int            `json:"cookTime" validate:"min=0"`
	TotalTime     int            `json:"totalTime" validate:"min=0"`
	Servings      int            `json:"servings" validate:"min=1,max=20"`
	Difficulty    Difficulty     `json:"difficulty" validate:"difficulty"`
	Cuisine       string         `json:"cuisine,omitempty"`
	Ingredients   []Ingredient   `json:"ingredients" validate:"required,min=1,dive"`
	Steps         []Step         `json:"steps" validate:"required,min=1,dive"`
	Nutrition     *Nutrition     `json:"nutrition,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Dietary       []DietaryTag   `json:"dietary" validate:"dive,dietary"`
	Allergens     []string       `json:"allergens,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	AIGenerated   bool           `json:"aiGenerated"`
	Author        string         `json:"author,omitempty"`
	Source        string         `json:"source,omitempty"`
	Rating        float64        `json:"rating,omitempty" validate:"min=0,max=5"`
	IsFavorite    bool           `json:"isFavorite"`
	CookCount     int            `json:"cookCount" validate:"min=0"`
	Notes         string         `json:"notes,omitempty"`
	EstimatedCost *EstimatedCost `json:"estimatedCost,omitempty"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
}

// Step is a single ordered cooking instruction
type Step struct {
	ID          string `json:"id" validate:"required"`
	Order       int    `json:"order" validate:"min=1"`
	Instruction string `json:"instruction" validate:"required"`
	Duration    int    `json:"duration,omitempty" validate:"min=0"`
	Temperature int    `json:"temperature,omitempty"`
	Tips        string `json:"tips,omitempty"`
	// IsCompleted tracks cooking-mode progress per viewing session only
	IsCompleted bool `json:"isCompleted"`
}

// Ingredient is embedded in a recipe or held as a pantry item
type Ingredient struct {
	ID             string             `json:"id"`
	Name           string             `json:"name" validate:"required"`
	Quantity       float64            `json:"quantity" validate:"gt=0"`
	Unit           string             `json:"unit" validate:"required"`
	Category       IngredientCategory `json:"category,omitempty" validate:"omitempty,category"`
	Available      bool               `json:"available"`
	Nutrition      *Nutrition         `json:"nutritionalInfo,omitempty"`
	Allergens      []string           `json:"allergens,omitempty"`
	EstimatedPrice float64            `json:"estimatedPrice,omitempty" validate:"min=0"`
}

// Nutrition summarizes macros per serving
type Nutrition struct {
	Calories int     `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
	Fiber    float64 `json:"fiber,omitempty"`
}

// EstimatedCost is an optional total and per-serving cost estimate
type EstimatedCost struct {
	Total      float64 `json:"total"`
	PerServing float64 `json:"perServing"`
}

// Substitution suggests replacements for an ingredient the user lacks
type Substitution struct {
	OriginalIngredient string   `json:"originalIngredient"`
	Alternatives       []string `json:"alternatives"`
	Reason             string   `json:"reason,omitempty"`
}

// GenerationRequest captures what the user wants generated. Ephemeral,
// never persisted.
type GenerationRequest struct {
	Ingredients         []string     `json:"ingredients" validate:"required,min=1"`
	DietaryRestrictions []DietaryTag `json:"dietaryRestrictions,omitempty" validate:"dive,dietary"`
	Allergens           []string     `json:"allergens,omitempty"`
	MaxTime             int          `json:"maxTime,omitempty" validate:"min=0"`
	Servings            int          `json:"servings,omitempty" validate:"min=0,max=20"`
	BudgetLevel         BudgetLevel  `json:"budgetLevel,omitempty"`
	Goals               []string     `json:"goals,omitempty"`
	Cuisine             string       `json:"cuisine,omitempty"`
	Difficulty          Difficulty   `json:"difficulty,omitempty"`
}

// ApplyDefaults fills unset request fields
func (r *GenerationRequest) ApplyDefaults() {
	if r.Servings == 0 {
		r.Servings = 2
	}
	if r.BudgetLevel == "" {
		r.BudgetLevel = BudgetMedium
	}
}

// Filter describes the queries the recipe store supports
type Filter struct {
	Query      string
	Difficulty Difficulty
	Cuisine    string
	Dietary    []DietaryTag
	MaxTime    int
}

// Matches reports whether the recipe satisfies every criterion of the
// filter. The text query searches title, description, ingredient names
// and tags; dietary tags must ALL be present on the recipe.
func (r *Recipe) Matches(f Filter) bool {
	if f.Query != "" && !r.matchesQuery(f.Query) {
		return false
	}
	if f.Difficulty != "" && r.Difficulty != f.Difficulty {
		return false
	}
	if f.Cuisine != "" && !strings.EqualFold(r.Cuisine, f.Cuisine) {
		return false
	}
	if f.MaxTime > 0 && r.TotalTime > f.MaxTime {
		return false
	}
	for _, tag := range f.Dietary {
		if !r.HasDietaryTag(tag) {
			return false
		}
	}
	return true
}

func (r *Recipe) matchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), q) {
			return true
		}
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// HasDietaryTag reports whether the recipe carries the given tag
func (r *Recipe) HasDietaryTag(tag DietaryTag) bool {
	for _, t := range r.Dietary {
		if t == tag {
			return true
		}
	}
	return false
}
