package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/recipe"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// ListIngredients returns the pantry, optionally filtered by category
// and availability.
func (h *APIHandlers) ListIngredients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if raw := q.Get("category"); raw != "" {
		category := recipe.IngredientCategory(raw)
		if !category.Valid() {
			h.respondError(w, r, apperrors.NewBadRequestError("unknown ingredient category"))
			return
		}
		onlyAvailable := q.Get("available") == "true"
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"ingredients": h.ingredients.ByCategory(category, onlyAvailable),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"ingredients": h.ingredients.List()})
}

// AddIngredient upserts a pantry entry by name
func (h *APIHandlers) AddIngredient(w http.ResponseWriter, r *http.Request) {
	var ing recipe.Ingredient
	if err := decodeJSON(r, &ing); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.ingredients.Add(r.Context(), ing)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.recordIngredientsSaved(r, 1)

	respondJSON(w, http.StatusCreated, result)
}

// recordIngredientsSaved updates the saved-ingredients stat. Best
// effort: a missing profile must not fail the pantry mutation.
func (h *APIHandlers) recordIngredientsSaved(r *http.Request, count int) {
	if err := h.users.RecordIngredientsSaved(r.Context(), count); err != nil && !apperrors.Is(err, apperrors.CodeNotFound) {
		h.logger.Warn("Failed to record saved-ingredients stat", zap.Error(err))
	}
}

// RemoveIngredient deletes a pantry entry
func (h *APIHandlers) RemoveIngredient(w http.ResponseWriter, r *http.Request) {
	if err := h.ingredients.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateIngredientQuantity replaces the quantity and unit of an entry
func (h *APIHandlers) UpdateIngredientQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.ingredients.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), body.Quantity, body.Unit); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleIngredientAvailability flips the available flag
func (h *APIHandlers) ToggleIngredientAvailability(w http.ResponseWriter, r *http.Request) {
	result, err := h.ingredients.ToggleAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// AvailableIngredientNames returns the names of the available entries
func (h *APIHandlers) AvailableIngredientNames(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"names": h.ingredients.AvailableNames()})
}

// ImportIngredientsFromText parses free text like "2 tomates, 1
// oignon, 500 g de riz" into pantry entries.
func (h *APIHandlers) ImportIngredientsFromText(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	added, err := h.ingredients.ImportFromText(r.Context(), body.Text)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.recordIngredientsSaved(r, len(added))

	respondJSON(w, http.StatusOK, map[string]interface{}{"ingredients": added})
}

// ExportIngredientsText renders the available pantry as one line
func (h *APIHandlers) ExportIngredientsText(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"text": h.ingredients.ExportText()})
}
