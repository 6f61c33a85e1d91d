// Package ai implements the recipe generation pipeline
package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/validation"
	"github.com/kookt/v1/internal/ports/outbound"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// RecipeAuthor is stamped on every generated recipe
const RecipeAuthor = "Kookt IA"

// RecipeSource identifies the generation pipeline as origin
const RecipeSource = "kookt-ai"

// Service turns a generation request into a validated recipe. The
// model is untrusted input: every response goes through the same
// schema validation as hand-authored data, so downstream code never
// special-cases AI-origin recipes.
type Service struct {
	client outbound.AIClient
	logger *zap.Logger

	mu          sync.Mutex
	lastRequest *recipe.GenerationRequest
}

// NewService creates the generation pipeline service
func NewService(client outbound.AIClient, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger.Named("ai-service"),
	}
}

// GenerateRecipe runs the full pipeline: request validation, model
// call, normalization, schema validation. It performs no persistence;
// storing the result is the caller's decision.
func (s *Service) GenerateRecipe(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
	req.ApplyDefaults()
	if err := validation.ValidateGenerationRequest(req); err != nil {
		return nil, err
	}

	s.logger.Info("Generating recipe",
		zap.Int("ingredients", len(req.Ingredients)),
		zap.Int("servings", req.Servings),
	)

	draft, err := s.client.GenerateRecipe(ctx, req)
	if err != nil {
		s.logger.Error("Recipe generation failed", zap.Error(err))
		return nil, err
	}

	result := normalize(draft)
	if err := validation.ValidateRecipe(result); err != nil {
		s.logger.Error("Generated recipe failed validation", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.lastRequest = req
	s.mu.Unlock()

	s.logger.Info("Recipe generated",
		zap.String("recipe_id", result.ID),
		zap.String("title", result.Title),
	)

	return result, nil
}

// RegenerateLast replays the most recent generation request
func (s *Service) RegenerateLast(ctx context.Context) (*recipe.Recipe, error) {
	s.mu.Lock()
	last := s.lastRequest
	s.mu.Unlock()

	if last == nil {
		return nil, apperrors.NewAppError(apperrors.CodeNotFound,
			"No previous generation request", "")
	}

	return s.GenerateRecipe(ctx, last)
}

// ImproveRecipe reworks an existing recipe according to feedback. The
// original identity and user state (favorite flag, rating, cook count,
// notes) survive; the culinary content is replaced by the validated
// model output.
func (s *Service) ImproveRecipe(ctx context.Context, existing *recipe.Recipe, feedback string) (*recipe.Recipe, error) {
	if feedback == "" {
		return nil, apperrors.NewBadRequestError("feedback must not be empty")
	}

	s.logger.Info("Improving recipe",
		zap.String("recipe_id", existing.ID),
		zap.String("title", existing.Title),
	)

	draft, err := s.client.ImproveRecipe(ctx, existing, feedback)
	if err != nil {
		s.logger.Error("Recipe improvement failed", zap.Error(err))
		return nil, err
	}

	result := normalize(draft)
	result.ID = existing.ID
	result.CreatedAt = existing.CreatedAt
	result.UpdatedAt = time.Now()
	result.IsFavorite = existing.IsFavorite
	result.CookCount = existing.CookCount
	result.Rating = existing.Rating
	result.Notes = existing.Notes

	if err := validation.ValidateRecipe(result); err != nil {
		s.logger.Error("Improved recipe failed validation", zap.Error(err))
		return nil, err
	}

	return result, nil
}

// normalize injects everything the model does not supply. The total
// time is recomputed from prep and cook time regardless of what the
// payload claimed, and steps are renumbered sequentially with fresh
// synthetic ids.
func normalize(draft *recipe.Recipe) *recipe.Recipe {
	now := time.Now()

	r := *draft
	r.ID = uuid.New().String()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.AIGenerated = true
	r.Author = RecipeAuthor
	r.Source = RecipeSource
	r.TotalTime = r.PrepTime + r.CookTime
	r.IsFavorite = false
	r.CookCount = 0
	r.Rating = 0

	steps := make([]recipe.Step, len(draft.Steps))
	for i, step := range draft.Steps {
		step.ID = fmt.Sprintf("step_%d", i+1)
		step.Order = i + 1
		step.IsCompleted = false
		steps[i] = step
	}
	r.Steps = steps

	ingredients := make([]recipe.Ingredient, len(draft.Ingredients))
	for i, ing := range draft.Ingredients {
		if ing.ID == "" {
			ing.ID = uuid.New().String()
		}
		if ing.Category == "" {
			ing.Category = recipe.CategoryOther
		}
		ingredients[i] = ing
	}
	r.Ingredients = ingredients

	return &r
}
