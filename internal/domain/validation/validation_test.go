package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/user"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// ValidationTestSuite provides a test suite for the schema validators
type ValidationTestSuite struct {
	suite.Suite
}

func (suite *ValidationTestSuite) validRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		ID:          "r1",
		Title:       "Poulet basquaise",
		Description: "Poulet mijoté aux poivrons",
		PrepTime:    15,
		CookTime:    45,
		TotalTime:   60,
		Servings:    4,
		Difficulty:  recipe.DifficultyMedium,
		Ingredients: []recipe.Ingredient{
			{Name: "Poulet", Quantity: 1, Unit: "kg", Category: recipe.CategoryMeatFish},
			{Name: "Poivron", Quantity: 3, Unit: "pièces", Category: recipe.CategoryProduce},
		},
		Steps: []recipe.Step{
			{ID: "step_1", Order: 1, Instruction: "Faire revenir le poulet"},
			{ID: "step_2", Order: 2, Instruction: "Ajouter les poivrons et mijoter"},
		},
		Dietary: []recipe.DietaryTag{recipe.DietaryGlutenFree},
	}
}

func (suite *ValidationTestSuite) validationFields(err error) apperrors.ValidationErrors {
	appErr, ok := err.(*apperrors.AppError)
	require.True(suite.T(), ok)
	require.Equal(suite.T(), apperrors.CodeValidationFailed, appErr.Code)

	fields, ok := appErr.Metadata["validation_errors"].(apperrors.ValidationErrors)
	require.True(suite.T(), ok)
	return fields
}

func (suite *ValidationTestSuite) TestValidateRecipe() {
	suite.Run("ValidRecipe_ShouldPass", func() {
		assert.NoError(suite.T(), ValidateRecipe(suite.validRecipe()))
	})

	suite.Run("ValidationIsIdempotent", func() {
		r := suite.validRecipe()
		require.NoError(suite.T(), ValidateRecipe(r))
		assert.NoError(suite.T(), ValidateRecipe(r))
	})

	suite.Run("MultipleViolations_ShouldAggregate", func() {
		r := suite.validRecipe()
		r.Title = ""
		r.Servings = 0
		r.Difficulty = "expert"

		err := ValidateRecipe(r)
		require.Error(suite.T(), err)

		fields := suite.validationFields(err)
		assert.GreaterOrEqual(suite.T(), len(fields), 3)

		var tags []string
		for _, f := range fields {
			tags = append(tags, f.Tag)
		}
		assert.Contains(suite.T(), tags, "required")
		assert.Contains(suite.T(), tags, "min")
		assert.Contains(suite.T(), tags, "difficulty")
	})

	suite.Run("TotalTimeMismatch_ShouldFail", func() {
		r := suite.validRecipe()
		r.TotalTime = 90

		err := ValidateRecipe(r)
		require.Error(suite.T(), err)

		fields := suite.validationFields(err)
		require.Len(suite.T(), fields, 1)
		assert.Equal(suite.T(), "totaltime_sum", fields[0].Tag)
	})

	suite.Run("StepsOutOfOrder_ShouldFail", func() {
		r := suite.validRecipe()
		r.Steps[0].Order = 2
		r.Steps[1].Order = 1

		err := ValidateRecipe(r)
		require.Error(suite.T(), err)

		fields := suite.validationFields(err)
		require.Len(suite.T(), fields, 1)
		assert.Equal(suite.T(), "step_order", fields[0].Tag)
	})

	suite.Run("DuplicateStepOrder_ShouldFail", func() {
		r := suite.validRecipe()
		r.Steps[1].Order = 1

		err := ValidateRecipe(r)
		assert.Error(suite.T(), err)
	})

	suite.Run("NoIngredients_ShouldFail", func() {
		r := suite.validRecipe()
		r.Ingredients = nil

		err := ValidateRecipe(r)
		assert.Error(suite.T(), err)
	})

	suite.Run("NestedIngredientViolation_ShouldCarryFieldPath", func() {
		r := suite.validRecipe()
		r.Ingredients[1].Quantity = 0

		err := ValidateRecipe(r)
		require.Error(suite.T(), err)

		fields := suite.validationFields(err)
		require.Len(suite.T(), fields, 1)
		assert.Equal(suite.T(), "Ingredients[1].Quantity", fields[0].Field)
		assert.Equal(suite.T(), "gt", fields[0].Tag)
	})

	suite.Run("UnknownDietaryTag_ShouldFail", func() {
		r := suite.validRecipe()
		r.Dietary = append(r.Dietary, recipe.DietaryTag("carnivore"))

		err := ValidateRecipe(r)
		assert.Error(suite.T(), err)
	})
}

func (suite *ValidationTestSuite) TestValidateGenerationRequest() {
	suite.Run("ValidRequest_ShouldPass", func() {
		req := &recipe.GenerationRequest{
			Ingredients: []string{"tomate", "basilic"},
			Servings:    2,
		}
		assert.NoError(suite.T(), ValidateGenerationRequest(req))
	})

	suite.Run("EmptyIngredients_ShouldFail", func() {
		req := &recipe.GenerationRequest{}
		assert.Error(suite.T(), ValidateGenerationRequest(req))
	})

	suite.Run("TooManyServings_ShouldFail", func() {
		req := &recipe.GenerationRequest{
			Ingredients: []string{"tomate"},
			Servings:    50,
		}
		assert.Error(suite.T(), ValidateGenerationRequest(req))
	})
}

func (suite *ValidationTestSuite) TestValidatePreferences() {
	suite.Run("ValidPreferences_ShouldPass", func() {
		prefs := &user.Preferences{
			DietaryRestrictions: []recipe.DietaryTag{recipe.DietaryVegetarian},
			SkillLevel:          user.SkillBeginner,
			AvailableTime:       user.TimeQuick,
			Budget:              recipe.BudgetLow,
			PreferredServings:   2,
		}
		assert.NoError(suite.T(), ValidatePreferences(prefs))
	})

	suite.Run("EmptyEnums_ShouldPass", func() {
		assert.NoError(suite.T(), ValidatePreferences(&user.Preferences{}))
	})

	suite.Run("UnknownSkillLevel_ShouldFail", func() {
		prefs := &user.Preferences{SkillLevel: "chef-etoile"}

		err := ValidatePreferences(prefs)
		require.Error(suite.T(), err)

		fields := suite.validationFields(err)
		require.Len(suite.T(), fields, 1)
		assert.Equal(suite.T(), "skill_level", fields[0].Tag)
	})

	suite.Run("TooManyPreferredServings_ShouldFail", func() {
		prefs := &user.Preferences{PreferredServings: 20}
		assert.Error(suite.T(), ValidatePreferences(prefs))
	})
}

func TestValidationTestSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}
