// Package user defines the user profile domain model
package user

import (
	"time"

	"github.com/kookt/v1/internal/domain/recipe"
)

// SkillLevel is the user's self-reported cooking skill
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "debutant"
	SkillIntermediate SkillLevel = "intermediaire"
	SkillAdvanced     SkillLevel = "avance"
)

// Valid checks if the skill level is a known value
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// AvailableTime is how long the user typically wants to spend cooking
type AvailableTime string

const (
	TimeQuick  AvailableTime = "rapide"
	TimeMedium AvailableTime = "moyen"
	TimeLong   AvailableTime = "long"
)

// Valid checks if the available time is a known value
func (t AvailableTime) Valid() bool {
	switch t {
	case TimeQuick, TimeMedium, TimeLong:
		return true
	}
	return false
}

// Preferences drive prompt construction and recipe filtering
type Preferences struct {
	DietaryRestrictions []recipe.DietaryTag `json:"dietaryRestrictions,omitempty" validate:"dive,dietary"`
	Allergens           []string            `json:"allergens,omitempty"`
	DislikedIngredients []string            `json:"dislikedIngredients,omitempty"`
	PreferredCuisines   []string            `json:"preferredCuisines,omitempty"`
	SkillLevel          SkillLevel          `json:"skillLevel,omitempty" validate:"omitempty,skill_level"`
	AvailableTime       AvailableTime       `json:"availableTime,omitempty" validate:"omitempty,available_time"`
	Budget              recipe.BudgetLevel  `json:"budget,omitempty" validate:"omitempty,budget_level"`
	PreferredServings   int                 `json:"preferredServings,omitempty" validate:"min=0,max=12"`
	KitchenEquipment    []string            `json:"kitchenEquipment,omitempty"`
	Notifications       bool                `json:"notifications"`
}

// Profile is created once at onboarding completion and persists until
// an explicit logout wipes it.
type Profile struct {
	ID                  string      `json:"id" validate:"required"`
	Preferences         Preferences `json:"preferences"`
	Stats               UsageStats  `json:"stats"`
	OnboardingCompleted bool        `json:"onboardingCompleted"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// UsageStats are monotonically non-decreasing counters, reset only by
// an explicit reset or logout.
type UsageStats struct {
	RecipesGenerated int `json:"recipesGenerated" validate:"min=0"`
	RecipesCooked    int `json:"recipesCooked" validate:"min=0"`
	FavoriteRecipes  int `json:"favoriteRecipes" validate:"min=0"`
	TotalCookingTime int `json:"totalCookingTime" validate:"min=0"`
	IngredientsSaved int `json:"ingredientsSaved" validate:"min=0"`
}
