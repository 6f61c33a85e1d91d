package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// GenerateRecipe runs the generation pipeline. On success the recipe
// is returned but not stored; saving is an explicit follow-up call.
// Usage stats and the recent-ingredients history are updated as side
// effects when a profile exists.
func (h *APIHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipe.GenerationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if len(req.Ingredients) == 0 {
		h.respondError(w, r, apperrors.NewBadRequestError("ingredients must not be empty"))
		return
	}

	result, err := h.generation.GenerateRecipe(r.Context(), &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.recordGeneration(r, req.Ingredients)

	respondJSON(w, http.StatusOK, result)
}

// recordGeneration updates stats and history. Both are best-effort:
// a missing profile or storage hiccup must not fail the generation.
func (h *APIHandlers) recordGeneration(r *http.Request, ingredients []string) {
	if err := h.users.RecordGenerated(r.Context()); err != nil && !apperrors.Is(err, apperrors.CodeNotFound) {
		h.logger.Warn("Failed to record generation stat", zap.Error(err))
	}
	if err := h.users.AddRecentIngredients(r.Context(), ingredients...); err != nil {
		h.logger.Warn("Failed to record recent ingredients", zap.Error(err))
	}
}

// ImproveRecipe reworks a stored recipe from user feedback and
// persists the improved version in place.
func (h *APIHandlers) ImproveRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	existing, err := h.recipes.Get(id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	improved, err := h.generation.ImproveRecipe(r.Context(), existing, body.Feedback)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.recipes.Update(r.Context(), improved); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, improved)
}

// RegenerateLast replays the most recent generation request
func (h *APIHandlers) RegenerateLast(w http.ResponseWriter, r *http.Request) {
	result, err := h.generation.RegenerateLast(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SuggestIngredients completes a partial ingredient name, falling back
// to the built-in list when the model is unreachable.
func (h *APIHandlers) SuggestIngredients(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")

	suggestions, err := h.generation.SuggestIngredients(r.Context(), partial)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}
