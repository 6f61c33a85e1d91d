package shopping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/shopping"
	"github.com/kookt/v1/internal/infrastructure/storage"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// ShoppingServiceTestSuite provides a test suite for the shopping list manager
type ShoppingServiceTestSuite struct {
	suite.Suite
	store   *storage.Store
	service *Service
}

func (suite *ShoppingServiceTestSuite) SetupTest() {
	suite.store = storage.NewStore(storage.NewMemoryStore())
	suite.service = NewService(suite.store, zap.NewNop())
}

func (suite *ShoppingServiceTestSuite) omelette() recipe.Recipe {
	return recipe.Recipe{
		ID:    "r-omelette",
		Title: "Omelette",
		Ingredients: []recipe.Ingredient{
			{Name: "Oeufs", Quantity: 2, Unit: "pièces", Category: recipe.CategoryDairy, EstimatedPrice: 0.6},
			{Name: "Beurre", Quantity: 20, Unit: "g", Category: recipe.CategoryFats, EstimatedPrice: 0.3},
		},
	}
}

func (suite *ShoppingServiceTestSuite) pancakes() recipe.Recipe {
	return recipe.Recipe{
		ID:    "r-pancakes",
		Title: "Pancakes",
		Ingredients: []recipe.Ingredient{
			{Name: "oeufs", Quantity: 3, Unit: "pièces", Category: recipe.CategoryDairy, EstimatedPrice: 0.9},
			{Name: "Farine", Quantity: 250, Unit: "g", Category: recipe.CategoryGrains, EstimatedPrice: 0.5},
			{Name: "Lait", Quantity: 30, Unit: "cl", Category: recipe.CategoryDairy, EstimatedPrice: 0.4},
		},
	}
}

func (suite *ShoppingServiceTestSuite) TestGenerateFromRecipes() {
	suite.Run("SameNameSameUnit_ShouldMergeQuantities", func() {
		list, err := suite.service.GenerateFromRecipes(context.Background(),
			[]recipe.Recipe{suite.omelette(), suite.pancakes()})

		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), list)

		var eggs *shopping.Item
		for i := range list.Items {
			if shopping.NormalizedName(list.Items[i].Name) == "oeufs" {
				eggs = &list.Items[i]
			}
		}
		require.NotNil(suite.T(), eggs)
		assert.InDelta(suite.T(), 5.0, eggs.Quantity, 0.001)
		assert.Equal(suite.T(), "Pour: Omelette, Pancakes", eggs.Notes)

		// omelette has 2 ingredients, pancakes 3, one pair merged
		assert.Len(suite.T(), list.Items, 4)
	})

	suite.Run("SameNameDifferentUnit_ShouldStaySeparate", func() {
		a := recipe.Recipe{ID: "a", Title: "A", Ingredients: []recipe.Ingredient{
			{Name: "Lait", Quantity: 30, Unit: "cl"},
		}}
		b := recipe.Recipe{ID: "b", Title: "B", Ingredients: []recipe.Ingredient{
			{Name: "Lait", Quantity: 1, Unit: "l"},
		}}

		list, err := suite.service.GenerateFromRecipes(context.Background(), []recipe.Recipe{a, b})

		require.NoError(suite.T(), err)
		assert.Len(suite.T(), list.Items, 2)
	})

	suite.Run("TotalMatchesItemPrices", func() {
		list, err := suite.service.GenerateFromRecipes(context.Background(),
			[]recipe.Recipe{suite.omelette(), suite.pancakes()})

		require.NoError(suite.T(), err)

		sum := 0.0
		for _, item := range list.Items {
			sum += item.EstimatedPrice
		}
		assert.InDelta(suite.T(), sum, list.TotalEstimatedPrice, 0.001)
	})

	suite.Run("ShouldPersistThrough", func() {
		_, err := suite.service.GenerateFromRecipes(context.Background(),
			[]recipe.Recipe{suite.omelette()})
		require.NoError(suite.T(), err)

		stored, err := suite.store.LoadShoppingList(context.Background())
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), stored)
		assert.Len(suite.T(), stored.Items, 2)
	})
}

func (suite *ShoppingServiceTestSuite) TestGenerateFromRecipe() {
	suite.Run("ShouldAppendToActiveList", func() {
		om := suite.omelette()
		_, err := suite.service.GenerateFromRecipe(context.Background(), &om)
		require.NoError(suite.T(), err)

		pc := suite.pancakes()
		list, err := suite.service.GenerateFromRecipe(context.Background(), &pc)
		require.NoError(suite.T(), err)

		// Single-recipe aggregation maps 1:1, no merging
		assert.Len(suite.T(), list.Items, 5)
		assert.Equal(suite.T(), DefaultListName, list.Name)
		assert.Equal(suite.T(), "r-omelette", list.Items[0].RecipeID)
		assert.Equal(suite.T(), "Omelette", list.Items[0].RecipeName)
	})
}

func (suite *ShoppingServiceTestSuite) TestCreateListWithItems() {
	items := []shopping.Item{
		{Name: "Tomate", Quantity: 4, Unit: "pièces"},
		{Name: "Riz", Quantity: 500, Unit: "g", Category: recipe.CategoryGrains, EstimatedPrice: 1.2},
	}

	list, err := suite.service.CreateListWithItems(context.Background(), "Courses du samedi", items)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Courses du samedi", list.Name)
	require.Len(suite.T(), list.Items, 2)

	// prepared items receive ids and a default category
	assert.NotEmpty(suite.T(), list.Items[0].ID)
	assert.Equal(suite.T(), recipe.CategoryOther, list.Items[0].Category)
	assert.False(suite.T(), list.Items[0].AddedAt.IsZero())
	assert.InDelta(suite.T(), 1.2, list.TotalEstimatedPrice, 0.001)

	stored, err := suite.store.LoadShoppingList(context.Background())
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), list.ID, stored.ID)
}

func (suite *ShoppingServiceTestSuite) TestItemMutations() {
	suite.Run("AddItem_ShouldCreateListWhenAbsent", func() {
		err := suite.service.AddItem(context.Background(), shopping.Item{
			Name: "Sel", Quantity: 1, Unit: "paquet",
		})

		require.NoError(suite.T(), err)
		list := suite.service.ActiveList()
		require.NotNil(suite.T(), list)
		assert.Len(suite.T(), list.Items, 1)
	})

	suite.Run("ToggleItem_ShouldFlipChecked", func() {
		list := suite.service.ActiveList()
		itemID := list.Items[0].ID

		require.NoError(suite.T(), suite.service.ToggleItem(context.Background(), itemID))
		assert.True(suite.T(), suite.service.ActiveList().Items[0].IsChecked)

		require.NoError(suite.T(), suite.service.ToggleItem(context.Background(), itemID))
		assert.False(suite.T(), suite.service.ActiveList().Items[0].IsChecked)
	})

	suite.Run("UpdateItem_UnknownID_ShouldReturnNotFound", func() {
		err := suite.service.UpdateItem(context.Background(), shopping.Item{ID: "missing"})
		assert.Equal(suite.T(), apperrors.CodeNotFound, apperrors.GetCode(err))
	})

	suite.Run("RemoveItem_ShouldDeleteAndRecompute", func() {
		list := suite.service.ActiveList()
		require.NoError(suite.T(), suite.service.RemoveItem(context.Background(), list.Items[0].ID))
		assert.Empty(suite.T(), suite.service.ActiveList().Items)
		assert.Zero(suite.T(), suite.service.ActiveList().TotalEstimatedPrice)
	})
}

func (suite *ShoppingServiceTestSuite) TestClearCheckedItems() {
	_, err := suite.service.CreateListWithItems(context.Background(), "", []shopping.Item{
		{Name: "Tomate", Quantity: 1, Unit: "pièce", IsChecked: true},
		{Name: "Riz", Quantity: 1, Unit: "paquet"},
		{Name: "Lait", Quantity: 1, Unit: "l", IsChecked: true},
	})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.ClearCheckedItems(context.Background()))

	list := suite.service.ActiveList()
	require.Len(suite.T(), list.Items, 1)
	assert.Equal(suite.T(), "Riz", list.Items[0].Name)
}

func (suite *ShoppingServiceTestSuite) TestDuplicates() {
	suite.Run("FindDuplicateItems_GroupsByName", func() {
		_, err := suite.service.CreateListWithItems(context.Background(), "", []shopping.Item{
			{Name: "Tomate", Quantity: 2, Unit: "pièces"},
			{Name: "tomate ", Quantity: 3, Unit: "pièces"},
			{Name: "Riz", Quantity: 1, Unit: "paquet"},
		})
		require.NoError(suite.T(), err)

		groups := suite.service.FindDuplicateItems()
		require.Len(suite.T(), groups, 1)
		assert.Len(suite.T(), groups[0], 2)
	})

	suite.Run("MergeDuplicateItems_SumsWithinUnit", func() {
		_, err := suite.service.CreateListWithItems(context.Background(), "", []shopping.Item{
			{Name: "Tomate", Quantity: 2, Unit: "pièces", EstimatedPrice: 1, IsChecked: true, Notes: "marché"},
			{Name: "tomate", Quantity: 3, Unit: "pièces", EstimatedPrice: 1.5, Notes: "supermarché"},
			{Name: "Tomate", Quantity: 500, Unit: "g"},
		})
		require.NoError(suite.T(), err)

		require.NoError(suite.T(), suite.service.MergeDuplicateItems(context.Background()))

		list := suite.service.ActiveList()
		require.Len(suite.T(), list.Items, 2)

		merged := list.Items[0]
		assert.InDelta(suite.T(), 5.0, merged.Quantity, 0.001)
		assert.InDelta(suite.T(), 2.5, merged.EstimatedPrice, 0.001)
		assert.True(suite.T(), merged.IsChecked)
		assert.Equal(suite.T(), "marché; supermarché", merged.Notes)

		// the gram line survives untouched
		assert.Equal(suite.T(), "g", list.Items[1].Unit)
		assert.InDelta(suite.T(), 500.0, list.Items[1].Quantity, 0.001)
	})
}

func (suite *ShoppingServiceTestSuite) TestSortItemsByCategory() {
	_, err := suite.service.CreateListWithItems(context.Background(), "", []shopping.Item{
		{Name: "Tomate", Quantity: 1, Unit: "pièce", Category: recipe.CategoryProduce},
		{Name: "Poulet", Quantity: 1, Unit: "kg", Category: recipe.CategoryMeatFish},
		{Name: "Courgette", Quantity: 1, Unit: "pièce", Category: recipe.CategoryProduce},
	})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.SortItemsByCategory(context.Background()))

	list := suite.service.ActiveList()
	assert.Equal(suite.T(), recipe.CategoryProduce, list.Items[0].Category)
	assert.Equal(suite.T(), recipe.CategoryProduce, list.Items[1].Category)
	assert.Equal(suite.T(), recipe.CategoryMeatFish, list.Items[2].Category)

	// stable: within a category the original order survives
	assert.Equal(suite.T(), "Tomate", list.Items[0].Name)
	assert.Equal(suite.T(), "Courgette", list.Items[1].Name)
}

func (suite *ShoppingServiceTestSuite) TestSuggestedItems() {
	suite.Run("WithoutList_ShouldProposeStaples", func() {
		names := suite.service.SuggestedItems(3)
		assert.Len(suite.T(), names, 3)
	})

	suite.Run("PresentStaples_AreExcluded", func() {
		_, err := suite.service.CreateListWithItems(context.Background(), "", []shopping.Item{
			{Name: "Sel", Quantity: 1, Unit: "paquet"},
		})
		require.NoError(suite.T(), err)

		names := suite.service.SuggestedItems(0)
		assert.NotContains(suite.T(), names, "sel")
		assert.Contains(suite.T(), names, "poivre")
	})
}

func (suite *ShoppingServiceTestSuite) TestLoad() {
	_, err := suite.service.CreateListWithItems(context.Background(), "Persistée", []shopping.Item{
		{Name: "Riz", Quantity: 1, Unit: "paquet"},
	})
	require.NoError(suite.T(), err)

	fresh := NewService(suite.store, zap.NewNop())
	require.NoError(suite.T(), fresh.Load(context.Background()))

	list := fresh.ActiveList()
	require.NotNil(suite.T(), list)
	assert.Equal(suite.T(), "Persistée", list.Name)
	assert.Len(suite.T(), list.Items, 1)
}

func TestShoppingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingServiceTestSuite))
}
