package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	apperrors "github.com/kookt/v1/pkg/errors"
)

// SuggestionsTestSuite provides a test suite for ingredient suggestions
type SuggestionsTestSuite struct {
	suite.Suite
}

func (suite *SuggestionsTestSuite) TestSuggestIngredients() {
	suite.Run("EmptyPartial_ShouldReturnEmpty", func() {
		service := NewService(&mockClient{configured: true}, zap.NewNop())

		names, err := service.SuggestIngredients(context.Background(), "   ")

		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), names)
	})

	suite.Run("NotConfigured_ShouldUseFallback", func() {
		client := &mockClient{configured: false}
		client.suggestFn = func(ctx context.Context, partial string, limit int) ([]string, error) {
			suite.FailNow("model must not be called without a credential")
			return nil, nil
		}
		service := NewService(client, zap.NewNop())

		names, err := service.SuggestIngredients(context.Background(), "tom")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"tomate"}, names)
	})

	suite.Run("Configured_ShouldDelegateToModel", func() {
		client := &mockClient{configured: true}
		client.suggestFn = func(ctx context.Context, partial string, limit int) ([]string, error) {
			assert.Equal(suite.T(), "tom", partial)
			assert.Equal(suite.T(), SuggestionLimit, limit)
			return []string{"tomate", "tomate cerise"}, nil
		}
		service := NewService(client, zap.NewNop())

		names, err := service.SuggestIngredients(context.Background(), "tom")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"tomate", "tomate cerise"}, names)
	})

	suite.Run("ModelFailure_ShouldFallBackSilently", func() {
		client := &mockClient{configured: true}
		client.suggestFn = func(ctx context.Context, partial string, limit int) ([]string, error) {
			return nil, apperrors.NewExternalServiceError("model endpoint", assert.AnError)
		}
		service := NewService(client, zap.NewNop())

		names, err := service.SuggestIngredients(context.Background(), "p")

		require.NoError(suite.T(), err)
		assert.NotEmpty(suite.T(), names)
		assert.LessOrEqual(suite.T(), len(names), SuggestionLimit)
	})

	suite.Run("FallbackIsCaseInsensitive", func() {
		service := NewService(&mockClient{}, zap.NewNop())

		names, err := service.SuggestIngredients(context.Background(), "POU")

		require.NoError(suite.T(), err)
		assert.Contains(suite.T(), names, "poulet")
	})

	suite.Run("FallbackRespectsLimit", func() {
		assert.LessOrEqual(suite.T(), len(fallbackSuggestions("p")), SuggestionLimit)
	})

	suite.Run("NoMatch_ShouldReturnEmpty", func() {
		assert.Empty(suite.T(), fallbackSuggestions("xyz"))
	})
}

func TestSuggestionsTestSuite(t *testing.T) {
	suite.Run(t, new(SuggestionsTestSuite))
}
