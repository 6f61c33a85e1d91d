// Package openai implements the model endpoint client over an
// OpenAI-compatible chat completions API
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/infrastructure/config"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// Client calls the chat completions endpoint. One attempt per call, no
// internal retry; the context bounds and cancels the request.
type Client struct {
	cfg    *config.AIConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a model endpoint client
func NewClient(cfg *config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
		logger: logger.Named("openai-client"),
	}
}

// IsConfigured reports whether an API key is present
func (c *Client) IsConfigured() bool {
	return c.cfg.IsConfigured()
}

// Chat completions wire structures

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// recipePayload is the raw external payload the model is asked to
// produce. Mapping to the domain type is explicit so every injected
// default is visible in one place.
type recipePayload struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	PrepTime      int                   `json:"prepTime"`
	CookTime      int                   `json:"cookTime"`
	Servings      int                   `json:"servings"`
	Difficulty    string                `json:"difficulty"`
	Cuisine       string                `json:"cuisine"`
	Ingredients   []ingredientPayload   `json:"ingredients"`
	Steps         []stepPayload         `json:"steps"`
	Nutrition     *nutritionPayload     `json:"nutrition"`
	Tags          []string              `json:"tags"`
	Dietary       []string              `json:"dietary"`
	Allergens     []string              `json:"allergens"`
	EstimatedCost *costPayload          `json:"estimatedCost"`
	Substitutions []substitutionPayload `json:"substitutions"`
}

type ingredientPayload struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
	Available      *bool   `json:"available"`
	EstimatedPrice float64 `json:"estimatedPrice"`
}

type stepPayload struct {
	Order       int    `json:"order"`
	Instruction string `json:"instruction"`
	Duration    int    `json:"duration"`
	Temperature int    `json:"temperature"`
	Tips        string `json:"tips"`
}

type nutritionPayload struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

type costPayload struct {
	Total      float64 `json:"total"`
	PerServing float64 `json:"perServing"`
}

type substitutionPayload struct {
	OriginalIngredient string   `json:"originalIngredient"`
	Alternatives       []string `json:"alternatives"`
	Reason             string   `json:"reason"`
}

// GenerateRecipe asks the model for a recipe draft. The returned
// recipe carries only model-supplied content; identifiers and
// timestamps are stamped by the pipeline.
func (c *Client) GenerateRecipe(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error) {
	if !c.IsConfigured() {
		return nil, apperrors.NewNotConfiguredError("recipe generation")
	}

	content, err := c.call(ctx, systemPrompt(), generationPrompt(req))
	if err != nil {
		return nil, err
	}

	payload, err := parsePayload(content)
	if err != nil {
		c.logger.Error("Failed to parse model response", zap.Error(err))
		return nil, apperrors.NewMalformedResponseError(err)
	}

	return mapPayload(payload), nil
}

// ImproveRecipe asks the model to rework an existing recipe according
// to free-text feedback.
func (c *Client) ImproveRecipe(ctx context.Context, existing *recipe.Recipe, feedback string) (*recipe.Recipe, error) {
	if !c.IsConfigured() {
		return nil, apperrors.NewNotConfiguredError("recipe improvement")
	}

	seed, err := json.Marshal(existing)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode recipe")
	}

	content, err := c.call(ctx, systemPrompt(), improvementPrompt(string(seed), feedback))
	if err != nil {
		return nil, err
	}

	payload, err := parsePayload(content)
	if err != nil {
		c.logger.Error("Failed to parse model response", zap.Error(err))
		return nil, apperrors.NewMalformedResponseError(err)
	}

	return mapPayload(payload), nil
}

// SuggestIngredients asks the model to complete a partial ingredient
// name. Callers fall back to the built-in list on any error.
func (c *Client) SuggestIngredients(ctx context.Context, partial string, limit int) ([]string, error) {
	if !c.IsConfigured() {
		return nil, apperrors.NewNotConfiguredError("ingredient suggestions")
	}

	content, err := c.call(ctx, suggestionSystemPrompt(), suggestionPrompt(partial, limit))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Suggestions []string `json:"suggestions"`
	}
	cleaned := extractJSON(content, "{", "}")
	if cleaned == "" {
		return nil, apperrors.NewMalformedResponseError(fmt.Errorf("no JSON object in response"))
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, apperrors.NewMalformedResponseError(err)
	}

	names := payload.Suggestions
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// call performs the chat completions request and returns the nested
// message content.
func (c *Client) call(ctx context.Context, system, user string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewExternalServiceError("model endpoint", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewExternalServiceError("model endpoint", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewExternalServiceError("model endpoint",
			fmt.Errorf("API error %d: %s", resp.StatusCode, string(body)))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", apperrors.NewMalformedResponseError(err)
	}

	if len(chatResp.Choices) == 0 {
		return "", apperrors.NewMalformedResponseError(fmt.Errorf("no response choices returned"))
	}

	c.logger.Info("Model call completed",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
		zap.Int("total_tokens", chatResp.Usage.TotalTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}

// parsePayload interprets the message content as a single JSON recipe
// object. No partial recovery is attempted on malformed payloads.
func parsePayload(content string) (*recipePayload, error) {
	jsonStr := extractJSON(content, "{", "}")
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var payload recipePayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &payload, nil
}

// extractJSON trims surrounding prose the model sometimes emits around
// the JSON body.
func extractJSON(content, opening, closing string) string {
	content = strings.TrimSpace(content)
	start := strings.Index(content, opening)
	end := strings.LastIndex(content, closing)
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}

// mapPayload converts the raw external payload into a domain recipe
// draft. Ingredients default to available, categories to "autres";
// identifiers, timestamps and derived fields stay unset here.
func mapPayload(p *recipePayload) *recipe.Recipe {
	ingredients := make([]recipe.Ingredient, len(p.Ingredients))
	for i, ing := range p.Ingredients {
		available := true
		if ing.Available != nil {
			available = *ing.Available
		}
		category := recipe.IngredientCategory(ing.Category)
		if !category.Valid() {
			category = recipe.CategoryOther
		}
		ingredients[i] = recipe.Ingredient{
			Name:           ing.Name,
			Quantity:       ing.Quantity,
			Unit:           ing.Unit,
			Category:       category,
			Available:      available,
			EstimatedPrice: ing.EstimatedPrice,
		}
	}

	steps := make([]recipe.Step, len(p.Steps))
	for i, st := range p.Steps {
		steps[i] = recipe.Step{
			Order:       st.Order,
			Instruction: st.Instruction,
			Duration:    st.Duration,
			Temperature: st.Temperature,
			Tips:        st.Tips,
		}
	}

	dietary := make([]recipe.DietaryTag, 0, len(p.Dietary))
	for _, tag := range p.Dietary {
		if t := recipe.DietaryTag(tag); t.Valid() {
			dietary = append(dietary, t)
		}
	}

	r := &recipe.Recipe{
		Title:       p.Title,
		Description: p.Description,
		PrepTime:    p.PrepTime,
		CookTime:    p.CookTime,
		Servings:    p.Servings,
		Difficulty:  recipe.Difficulty(p.Difficulty),
		Cuisine:     p.Cuisine,
		Ingredients: ingredients,
		Steps:       steps,
		Tags:        p.Tags,
		Dietary:     dietary,
		Allergens:   p.Allergens,
	}

	if p.Nutrition != nil {
		r.Nutrition = &recipe.Nutrition{
			Calories: p.Nutrition.Calories,
			Protein:  p.Nutrition.Protein,
			Carbs:    p.Nutrition.Carbs,
			Fat:      p.Nutrition.Fat,
			Fiber:    p.Nutrition.Fiber,
		}
	}

	if p.EstimatedCost != nil {
		r.EstimatedCost = &recipe.EstimatedCost{
			Total:      p.EstimatedCost.Total,
			PerServing: p.EstimatedCost.PerServing,
		}
	}

	for _, sub := range p.Substitutions {
		r.Substitutions = append(r.Substitutions, recipe.Substitution{
			OriginalIngredient: sub.OriginalIngredient,
			Alternatives:       sub.Alternatives,
			Reason:             sub.Reason,
		})
	}

	return r
}
