package recipe

// Difficulty represents how demanding a recipe is to cook
type Difficulty string

const (
	DifficultyEasy   Difficulty = "facile"
	DifficultyMedium Difficulty = "moyen"
	DifficultyHard   Difficulty = "difficile"
)

// Valid checks if the difficulty is a known value
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Difficulties lists every valid difficulty value
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// DietaryTag represents a dietary category a recipe can satisfy
type DietaryTag string

const (
	DietaryVegetarian  DietaryTag = "vegetarien"
	DietaryVegan       DietaryTag = "vegan"
	DietaryGlutenFree  DietaryTag = "sans-gluten"
	DietaryDairyFree   DietaryTag = "sans-lactose"
	DietaryHalal       DietaryTag = "halal"
	DietaryKosher      DietaryTag = "casher"
	DietaryPaleo       DietaryTag = "paleo"
	DietaryKeto        DietaryTag = "keto"
	DietaryLowCarb     DietaryTag = "low-carb"
	DietaryHighProtein DietaryTag = "high-protein"
)

// Valid checks if the dietary tag is a known value
func (t DietaryTag) Valid() bool {
	switch t {
	case DietaryVegetarian, DietaryVegan, DietaryGlutenFree, DietaryDairyFree,
		DietaryHalal, DietaryKosher, DietaryPaleo, DietaryKeto,
		DietaryLowCarb, DietaryHighProtein:
		return true
	}
	return false
}

// DietaryTags lists every valid dietary tag
func DietaryTags() []DietaryTag {
	return []DietaryTag{
		DietaryVegetarian, DietaryVegan, DietaryGlutenFree, DietaryDairyFree,
		DietaryHalal, DietaryKosher, DietaryPaleo, DietaryKeto,
		DietaryLowCarb, DietaryHighProtein,
	}
}

// IngredientCategory groups ingredients for shopping and pantry views
type IngredientCategory string

const (
	CategoryProduce   IngredientCategory = "fruits-legumes"
	CategoryMeatFish  IngredientCategory = "viandes-poissons"
	CategoryDairy     IngredientCategory = "produits-laitiers"
	CategoryGrains    IngredientCategory = "cereales-feculents"
	CategorySeasoning IngredientCategory = "condiments-epices"
	CategoryFats      IngredientCategory = "huiles-graisses"
	CategoryOther     IngredientCategory = "autres"
)

// Valid checks if the category is a known value
func (c IngredientCategory) Valid() bool {
	switch c {
	case CategoryProduce, CategoryMeatFish, CategoryDairy, CategoryGrains,
		CategorySeasoning, CategoryFats, CategoryOther:
		return true
	}
	return false
}

// IngredientCategories lists every valid ingredient category
func IngredientCategories() []IngredientCategory {
	return []IngredientCategory{
		CategoryProduce, CategoryMeatFish, CategoryDairy, CategoryGrains,
		CategorySeasoning, CategoryFats, CategoryOther,
	}
}

// BudgetLevel expresses the cost target of a generation request
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "economique"
	BudgetMedium BudgetLevel = "moyen"
	BudgetHigh   BudgetLevel = "eleve"
)

// Valid checks if the budget level is a known value
func (b BudgetLevel) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}
