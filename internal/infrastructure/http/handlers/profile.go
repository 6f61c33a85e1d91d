package handlers

import (
	"io"
	"net/http"

	"github.com/kookt/v1/internal/domain/user"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// GetProfile returns the current profile
func (h *APIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.Profile()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// CompleteOnboarding creates the profile from the onboarding flow
func (h *APIHandlers) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var prefs user.Preferences
	if err := decodeJSON(r, &prefs); err != nil {
		h.respondError(w, r, err)
		return
	}

	profile, err := h.users.CompleteOnboarding(r.Context(), prefs)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, profile)
}

// UpdatePreferences replaces the stored preferences
func (h *APIHandlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs user.Preferences
	if err := decodeJSON(r, &prefs); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.users.UpdatePreferences(r.Context(), prefs); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetStats zeroes the usage counters
func (h *APIHandlers) ResetStats(w http.ResponseWriter, r *http.Request) {
	if err := h.users.ResetStats(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecentIngredients returns the capped history, most recent first
func (h *APIHandlers) RecentIngredients(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"ingredients": h.users.RecentIngredients()})
}

// AddRecentIngredients records ingredient names into the history
func (h *APIHandlers) AddRecentIngredients(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}
	if len(body.Ingredients) == 0 {
		h.respondError(w, r, apperrors.NewBadRequestError("ingredients must not be empty"))
		return
	}

	if err := h.users.AddRecentIngredients(r.Context(), body.Ingredients...); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ingredients": h.users.RecentIngredients()})
}

// Logout wipes the profile and every stored collection
func (h *APIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportData returns the full backup bundle as one JSON document
func (h *APIHandlers) ExportData(w http.ResponseWriter, r *http.Request) {
	data, err := h.backup.Export(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="kookt-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ImportData applies a backup bundle field by field, then reloads the
// in-memory state managers from storage.
func (h *APIHandlers) ImportData(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, r, apperrors.NewBadRequestError("failed to read request body"))
		return
	}

	if err := h.backup.Import(r.Context(), data); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.recipes.Load(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.shopping.Load(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.ingredients.Load(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.users.Load(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
