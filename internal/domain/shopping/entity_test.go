package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/kookt/v1/internal/domain/recipe"
)

// ListTestSuite provides a test suite for the shopping list entity
type ListTestSuite struct {
	suite.Suite
}

func (suite *ListTestSuite) sampleList() *List {
	return &List{
		ID:   "l1",
		Name: "Ma liste de courses",
		Items: []Item{
			{ID: "a", Name: "Tomate", Quantity: 4, Unit: "pièces", Category: recipe.CategoryProduce, EstimatedPrice: 2.5, IsChecked: true},
			{ID: "b", Name: "Poulet", Quantity: 500, Unit: "g", Category: recipe.CategoryMeatFish, EstimatedPrice: 6},
			{ID: "c", Name: "Courgette", Quantity: 2, Unit: "pièces", Category: recipe.CategoryProduce, EstimatedPrice: 1.5},
		},
	}
}

func (suite *ListTestSuite) TestRecomputeTotal() {
	list := suite.sampleList()
	list.TotalEstimatedPrice = 999 // stale value

	list.RecomputeTotal()

	assert.InDelta(suite.T(), 10.0, list.TotalEstimatedPrice, 0.001)
}

func (suite *ListTestSuite) TestCompletionPercentage() {
	suite.Run("EmptyList_ShouldBeZero", func() {
		list := &List{}
		assert.Equal(suite.T(), 0, list.CompletionPercentage())
	})

	suite.Run("OneOfThreeChecked_ShouldRound", func() {
		list := suite.sampleList()
		assert.Equal(suite.T(), 33, list.CompletionPercentage())
	})

	suite.Run("AllChecked_ShouldBeHundred", func() {
		list := suite.sampleList()
		for i := range list.Items {
			list.Items[i].IsChecked = true
		}
		assert.Equal(suite.T(), 100, list.CompletionPercentage())
	})
}

func (suite *ListTestSuite) TestItemsByCategory() {
	list := suite.sampleList()

	groups := list.ItemsByCategory()

	assert.Len(suite.T(), groups, 2)

	// Group order follows the first appearance of each category
	assert.Equal(suite.T(), recipe.CategoryProduce, groups[0].Category)
	assert.Equal(suite.T(), 2, groups[0].TotalCount)
	assert.Equal(suite.T(), 1, groups[0].CheckedCount)
	assert.InDelta(suite.T(), 4.0, groups[0].Subtotal, 0.001)

	assert.Equal(suite.T(), recipe.CategoryMeatFish, groups[1].Category)
	assert.Equal(suite.T(), 1, groups[1].TotalCount)
	assert.Equal(suite.T(), 0, groups[1].CheckedCount)
}

func (suite *ListTestSuite) TestNormalizedName() {
	assert.Equal(suite.T(), "tomate", NormalizedName("  Tomate "))
	assert.Equal(suite.T(), NormalizedName("POULET"), NormalizedName("poulet"))
}

func TestListTestSuite(t *testing.T) {
	suite.Run(t, new(ListTestSuite))
}
