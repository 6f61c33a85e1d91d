package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// mockClient implements outbound.AIClient with overridable behavior
type mockClient struct {
	configured   bool
	generateFn   func(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error)
	improveFn    func(ctx context.Context, existing *recipe.Recipe, feedback string) (*recipe.Recipe, error)
	suggestFn    func(ctx context.Context, partial string, limit int) ([]string, error)
	generateCall int
}

func (m *mockClient) GenerateRecipe(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
	m.generateCall++
	return m.generateFn(ctx, req)
}

func (m *mockClient) ImproveRecipe(ctx context.Context, existing *recipe.Recipe, feedback string) (*recipe.Recipe, error) {
	return m.improveFn(ctx, existing, feedback)
}

func (m *mockClient) SuggestIngredients(ctx context.Context, partial string, limit int) ([]string, error) {
	return m.suggestFn(ctx, partial, limit)
}

func (m *mockClient) IsConfigured() bool {
	return m.configured
}

// GenerationServiceTestSuite provides a test suite for the generation pipeline
type GenerationServiceTestSuite struct {
	suite.Suite
	client  *mockClient
	service *Service
}

func (suite *GenerationServiceTestSuite) SetupTest() {
	suite.client = &mockClient{configured: true}
	suite.service = NewService(suite.client, zap.NewNop())
}

func (suite *GenerationServiceTestSuite) draft() *recipe.Recipe {
	return &recipe.Recipe{
		Title:       "Gratin de courgettes",
		Description: "Gratin fondant au fromage",
		PrepTime:    15,
		CookTime:    30,
		TotalTime:   99, // deliberately wrong, the pipeline recomputes it
		Servings:    4,
		Difficulty:  recipe.DifficultyEasy,
		Ingredients: []recipe.Ingredient{
			{Name: "Courgette", Quantity: 3, Unit: "pièces"},
			{Name: "Fromage râpé", Quantity: 100, Unit: "g", Category: recipe.CategoryDairy},
		},
		Steps: []recipe.Step{
			{Order: 7, Instruction: "Couper les courgettes"},
			{Order: 3, Instruction: "Enfourner 30 minutes"},
		},
		Rating:     4.5,
		IsFavorite: true,
		CookCount:  12,
	}
}

func (suite *GenerationServiceTestSuite) TestGenerateRecipe() {
	suite.Run("ValidDraft_ShouldBeNormalized", func() {
		suite.client.generateFn = func(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
			return suite.draft(), nil
		}

		result, err := suite.service.GenerateRecipe(context.Background(), &recipe.GenerationRequest{
			Ingredients: []string{"courgette"},
		})

		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result)

		assert.NotEmpty(suite.T(), result.ID)
		assert.True(suite.T(), result.AIGenerated)
		assert.Equal(suite.T(), RecipeAuthor, result.Author)
		assert.Equal(suite.T(), RecipeSource, result.Source)
		assert.Equal(suite.T(), 45, result.TotalTime)
		assert.False(suite.T(), result.CreatedAt.IsZero())
		assert.False(suite.T(), result.UpdatedAt.IsZero())

		// User-owned fields never come from the model
		assert.False(suite.T(), result.IsFavorite)
		assert.Zero(suite.T(), result.CookCount)
		assert.Zero(suite.T(), result.Rating)

		require.Len(suite.T(), result.Steps, 2)
		assert.Equal(suite.T(), "step_1", result.Steps[0].ID)
		assert.Equal(suite.T(), 1, result.Steps[0].Order)
		assert.Equal(suite.T(), "step_2", result.Steps[1].ID)
		assert.Equal(suite.T(), 2, result.Steps[1].Order)

		// Uncategorized ingredients fall back to "autres"
		assert.Equal(suite.T(), recipe.CategoryOther, result.Ingredients[0].Category)
		assert.Equal(suite.T(), recipe.CategoryDairy, result.Ingredients[1].Category)
		assert.NotEmpty(suite.T(), result.Ingredients[0].ID)
	})

	suite.Run("RequestDefaults_ShouldApply", func() {
		var seen *recipe.GenerationRequest
		suite.client.generateFn = func(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
			seen = req
			return suite.draft(), nil
		}

		_, err := suite.service.GenerateRecipe(context.Background(), &recipe.GenerationRequest{
			Ingredients: []string{"courgette"},
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, seen.Servings)
		assert.Equal(suite.T(), recipe.BudgetMedium, seen.BudgetLevel)
	})

	suite.Run("EmptyIngredients_ShouldFailBeforeModelCall", func() {
		suite.client.generateFn = func(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
			suite.FailNow("model must not be called")
			return nil, nil
		}

		_, err := suite.service.GenerateRecipe(context.Background(), &recipe.GenerationRequest{})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	suite.Run("ClientError_ShouldPropagate", func() {
		suite.client.generateFn = func(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
			return nil, apperrors.NewMalformedResponseError(assert.AnError)
		}

		_, err := suite.service.GenerateRecipe(context.Background(), &recipe.GenerationRequest{
			Ingredients: []string{"courgette"},
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeMalformedResponse, apperrors.GetCode(err))
	})

	suite.Run("InvalidDraft_ShouldFailValidation", func() {
		suite.client.generateFn = func(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
			d := suite.draft()
			d.Title = ""
			return d, nil
		}

		_, err := suite.service.GenerateRecipe(context.Background(), &recipe.GenerationRequest{
			Ingredients: []string{"courgette"},
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})
}

func (suite *GenerationServiceTestSuite) TestRegenerateLast() {
	suite.Run("WithoutPriorRequest_ShouldReturnNotFound", func() {
		_, err := suite.service.RegenerateLast(context.Background())

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeNotFound, apperrors.GetCode(err))
	})

	suite.Run("AfterGeneration_ShouldReplayRequest", func() {
		var lastIngredients []string
		suite.client.generateFn = func(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
			lastIngredients = req.Ingredients
			return suite.draft(), nil
		}

		_, err := suite.service.GenerateRecipe(context.Background(), &recipe.GenerationRequest{
			Ingredients: []string{"courgette", "fromage"},
		})
		require.NoError(suite.T(), err)

		result, err := suite.service.RegenerateLast(context.Background())
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), result)

		assert.Equal(suite.T(), []string{"courgette", "fromage"}, lastIngredients)
		assert.Equal(suite.T(), 2, suite.client.generateCall)
	})

	suite.Run("FailedGeneration_ShouldNotBecomeLastRequest", func() {
		client := &mockClient{configured: true}
		client.generateFn = func(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
			return nil, apperrors.NewExternalServiceError("model endpoint", assert.AnError)
		}
		service := NewService(client, zap.NewNop())

		_, err := service.GenerateRecipe(context.Background(), &recipe.GenerationRequest{
			Ingredients: []string{"courgette"},
		})
		require.Error(suite.T(), err)

		_, err = service.RegenerateLast(context.Background())
		assert.Equal(suite.T(), apperrors.CodeNotFound, apperrors.GetCode(err))
	})
}

func (suite *GenerationServiceTestSuite) TestImproveRecipe() {
	suite.Run("ShouldPreserveIdentityAndCreationTime", func() {
		existing := suite.draft()
		existing.ID = "original-id"
		existing.CreatedAt = existing.CreatedAt.AddDate(0, -1, 0)
		original := *existing

		suite.client.improveFn = func(ctx context.Context, r *recipe.Recipe, feedback string) (*recipe.Recipe, error) {
			d := suite.draft()
			d.Title = "Gratin de courgettes allégé"
			return d, nil
		}

		result, err := suite.service.ImproveRecipe(context.Background(), existing, "moins de fromage")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "original-id", result.ID)
		assert.Equal(suite.T(), original.CreatedAt, result.CreatedAt)
		assert.Equal(suite.T(), "Gratin de courgettes allégé", result.Title)
		assert.True(suite.T(), result.UpdatedAt.After(result.CreatedAt))
	})

	suite.Run("ShouldPreserveUserState", func() {
		existing := suite.draft()
		existing.ID = "original-id"
		existing.IsFavorite = true
		existing.CookCount = 3
		existing.Rating = 4.5
		existing.Notes = "Doubler le fromage"

		suite.client.improveFn = func(ctx context.Context, r *recipe.Recipe, feedback string) (*recipe.Recipe, error) {
			return suite.draft(), nil
		}

		result, err := suite.service.ImproveRecipe(context.Background(), existing, "moins de sel")

		require.NoError(suite.T(), err)
		assert.True(suite.T(), result.IsFavorite)
		assert.Equal(suite.T(), 3, result.CookCount)
		assert.Equal(suite.T(), 4.5, result.Rating)
		assert.Equal(suite.T(), "Doubler le fromage", result.Notes)
	})

	suite.Run("EmptyFeedback_ShouldBeRejected", func() {
		_, err := suite.service.ImproveRecipe(context.Background(), suite.draft(), "")

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeBadRequest, apperrors.GetCode(err))
	})
}

func TestGenerationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GenerationServiceTestSuite))
}
