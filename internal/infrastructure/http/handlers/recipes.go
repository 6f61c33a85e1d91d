package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	apperrors "github.com/kookt/v1/pkg/errors"
	"github.com/kookt/v1/pkg/format"
)

// ListRecipes returns the collection, optionally filtered by query
// parameters: q, difficulty, cuisine, dietary (comma separated, ALL
// must match), max_time.
func (h *APIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := recipe.Filter{
		Query:      q.Get("q"),
		Difficulty: recipe.Difficulty(q.Get("difficulty")),
		Cuisine:    q.Get("cuisine"),
	}
	if raw := q.Get("dietary"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			f.Dietary = append(f.Dietary, recipe.DietaryTag(strings.TrimSpace(tag)))
		}
	}
	if raw := q.Get("max_time"); raw != "" {
		maxTime, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, r, apperrors.NewBadRequestError("max_time must be an integer"))
			return
		}
		f.MaxTime = maxTime
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"recipes": h.recipes.Filter(f)})
}

// GetRecipe returns one recipe by id
func (h *APIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	result, err := h.recipes.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SaveRecipe validates and stores a recipe
func (h *APIHandlers) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	var body recipe.Recipe
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.recipes.Save(r.Context(), &body); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, body)
}

// UpdateRecipe replaces a stored recipe
func (h *APIHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var body recipe.Recipe
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}
	body.ID = chi.URLParam(r, "id")

	if err := h.recipes.Update(r.Context(), &body); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, body)
}

// DeleteRecipe removes a recipe
func (h *APIHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite flips the favorite flag and mirrors it in the stats
func (h *APIHandlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	result, err := h.recipes.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.users.RecordFavorite(r.Context(), result.IsFavorite); err != nil && !apperrors.Is(err, apperrors.CodeNotFound) {
		h.logger.Warn("Failed to record favorite stat", zap.Error(err))
	}

	respondJSON(w, http.StatusOK, result)
}

// RateRecipe sets the rating
func (h *APIHandlers) RateRecipe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Rating float64 `json:"rating"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.recipes.Rate(r.Context(), chi.URLParam(r, "id"), body.Rating); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetRecipeNotes replaces the user notes
func (h *APIHandlers) SetRecipeNotes(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.recipes.SetNotes(r.Context(), chi.URLParam(r, "id"), body.Notes); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkRecipeCooked increments the cook counter and the usage stats
func (h *APIHandlers) MarkRecipeCooked(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.recipes.MarkCooked(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	cooked, err := h.recipes.Get(id)
	if err == nil {
		if statErr := h.users.RecordCooked(r.Context(), cooked.TotalTime); statErr != nil && !apperrors.Is(statErr, apperrors.CodeNotFound) {
			h.logger.Warn("Failed to record cooked stat", zap.Error(statErr))
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFavorites returns the favorites index
func (h *APIHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"recipes": h.recipes.Favorites()})
}

// ShareRecipe renders the shareable text form of a recipe
func (h *APIHandlers) ShareRecipe(w http.ResponseWriter, r *http.Request) {
	result, err := h.recipes.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"text": format.RecipeShareText(result)})
}
