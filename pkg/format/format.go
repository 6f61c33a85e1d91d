// Package format renders domain values into display strings and
// shareable text. Every function is pure.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kookt/v1/internal/domain/recipe"
)

// Minutes renders a duration in minutes as "45 min" or "1 h 05"
func Minutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %02d", hours, rest)
}

// Quantity renders a quantity with its unit, trimming trailing zeros
func Quantity(quantity float64, unit string) string {
	q := strconv.FormatFloat(quantity, 'f', -1, 64)
	if unit == "" {
		return q
	}
	return q + " " + unit
}

// Price renders a euro amount in French convention
func Price(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	s = strings.ReplaceAll(s, ".", ",")
	return s + " €"
}

var difficultyLabels = map[recipe.Difficulty]string{
	recipe.DifficultyEasy:   "Facile",
	recipe.DifficultyMedium: "Moyen",
	recipe.DifficultyHard:   "Difficile",
}

// DifficultyLabel returns the display label for a difficulty
func DifficultyLabel(d recipe.Difficulty) string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return string(d)
}

var dietaryLabels = map[recipe.DietaryTag]string{
	recipe.DietaryVegetarian:  "Végétarien",
	recipe.DietaryVegan:       "Vegan",
	recipe.DietaryGlutenFree:  "Sans gluten",
	recipe.DietaryDairyFree:   "Sans lactose",
	recipe.DietaryHalal:       "Halal",
	recipe.DietaryKosher:      "Casher",
	recipe.DietaryPaleo:       "Paléo",
	recipe.DietaryKeto:        "Kéto",
	recipe.DietaryLowCarb:     "Low-carb",
	recipe.DietaryHighProtein: "Riche en protéines",
}

// DietaryLabel returns the display label for a dietary tag
func DietaryLabel(t recipe.DietaryTag) string {
	if label, ok := dietaryLabels[t]; ok {
		return label
	}
	return string(t)
}

var categoryLabels = map[recipe.IngredientCategory]string{
	recipe.CategoryProduce:   "Fruits et légumes",
	recipe.CategoryMeatFish:  "Viandes et poissons",
	recipe.CategoryDairy:     "Produits laitiers",
	recipe.CategoryGrains:    "Céréales et féculents",
	recipe.CategorySeasoning: "Condiments et épices",
	recipe.CategoryFats:      "Huiles et graisses",
	recipe.CategoryOther:     "Autres",
}

// CategoryLabel returns the display label for an ingredient category
func CategoryLabel(c recipe.IngredientCategory) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
