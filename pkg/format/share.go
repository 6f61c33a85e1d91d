package format

import (
	"fmt"
	"strings"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/shopping"
)

// ShoppingListText renders a list grouped by category with checkbox
// markers and a totals footer.
func ShoppingListText(list *shopping.List) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", list.Name)
	b.WriteString(strings.Repeat("=", len(list.Name)))
	b.WriteString("\n")

	for _, group := range list.ItemsByCategory() {
		fmt.Fprintf(&b, "\n%s (%d/%d)\n", CategoryLabel(group.Category), group.CheckedCount, group.TotalCount)
		for _, item := range group.Items {
			marker := "[ ]"
			if item.IsChecked {
				marker = "[x]"
			}
			fmt.Fprintf(&b, "%s %s - %s", marker, item.Name, Quantity(item.Quantity, item.Unit))
			if item.EstimatedPrice > 0 {
				fmt.Fprintf(&b, " (%s)", Price(item.EstimatedPrice))
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\nTotal estimé : %s\n", Price(list.TotalEstimatedPrice))
	fmt.Fprintf(&b, "Progression : %d%%\n", list.CompletionPercentage())

	return b.String()
}

// ShoppingListCompact renders a condensed single block suited to chat
// sharing: one line per unchecked item.
func ShoppingListCompact(list *shopping.List) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛒 %s\n", list.Name)
	for _, item := range list.Items {
		if item.IsChecked {
			continue
		}
		fmt.Fprintf(&b, "• %s (%s)\n", item.Name, Quantity(item.Quantity, item.Unit))
	}
	if list.TotalEstimatedPrice > 0 {
		fmt.Fprintf(&b, "Total : %s", Price(list.TotalEstimatedPrice))
	}

	return strings.TrimRight(b.String(), "\n")
}

// RecipeShareText renders a recipe as shareable text
func RecipeShareText(r *recipe.Recipe) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "%s\n\n", r.Description)
	fmt.Fprintf(&b, "⏱ %s (préparation %s, cuisson %s)\n", Minutes(r.TotalTime), Minutes(r.PrepTime), Minutes(r.CookTime))
	fmt.Fprintf(&b, "👥 %d personnes · %s\n", r.Servings, DifficultyLabel(r.Difficulty))

	b.WriteString("\nIngrédients :\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "• %s : %s\n", ing.Name, Quantity(ing.Quantity, ing.Unit))
	}

	b.WriteString("\nÉtapes :\n")
	for _, step := range r.Steps {
		fmt.Fprintf(&b, "%d. %s\n", step.Order, step.Instruction)
	}

	if len(r.Dietary) > 0 {
		labels := make([]string, len(r.Dietary))
		for i, tag := range r.Dietary {
			labels[i] = DietaryLabel(tag)
		}
		fmt.Fprintf(&b, "\n%s\n", strings.Join(labels, " · "))
	}

	return b.String()
}
