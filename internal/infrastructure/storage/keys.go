package storage

// Fixed storage keys, one per logical collection
const (
	KeyUserProfile          = "@kookt:userPreferences"
	KeySavedRecipes         = "@kookt:savedRecipes"
	KeyShoppingList         = "@kookt:shoppingList"
	KeyOnboarding           = "@kookt:onboardingCompleted"
	KeyRecentIngredients    = "@kookt:recentIngredients"
	KeyAvailableIngredients = "@kookt:availableIngredients"
)

// RecentIngredientsCap bounds the recent-ingredients history
const RecentIngredientsCap = 20
