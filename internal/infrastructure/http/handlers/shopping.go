package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kookt/v1/internal/domain/recipe"
	"github.com/kookt/v1/internal/domain/shopping"
	apperrors "github.com/kookt/v1/pkg/errors"
	"github.com/kookt/v1/pkg/format"
)

// GetShoppingList returns the active list
func (h *APIHandlers) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	list := h.shopping.ActiveList()
	if list == nil {
		h.respondError(w, r, apperrors.NewAppError(apperrors.CodeNotFound, "No active shopping list", ""))
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// CreateShoppingList creates a list with its items in one atomic write
func (h *APIHandlers) CreateShoppingList(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string          `json:"name"`
		Items []shopping.Item `json:"items"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	list, err := h.shopping.CreateListWithItems(r.Context(), body.Name, body.Items)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

// GenerateFromRecipe appends one recipe's ingredients to the list
func (h *APIHandlers) GenerateFromRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recipes.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	list, err := h.shopping.GenerateFromRecipe(r.Context(), rec)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GenerateFromRecipes builds a merged list from several stored recipes
func (h *APIHandlers) GenerateFromRecipes(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RecipeIDs []string `json:"recipeIds"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}
	if len(body.RecipeIDs) == 0 {
		h.respondError(w, r, apperrors.NewBadRequestError("recipeIds must not be empty"))
		return
	}

	recipes := make([]recipe.Recipe, 0, len(body.RecipeIDs))
	for _, id := range body.RecipeIDs {
		rec, err := h.recipes.Get(id)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		recipes = append(recipes, *rec)
	}

	list, err := h.shopping.GenerateFromRecipes(r.Context(), recipes)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// AddShoppingItem appends one item
func (h *APIHandlers) AddShoppingItem(w http.ResponseWriter, r *http.Request) {
	var item shopping.Item
	if err := decodeJSON(r, &item); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.shopping.AddItem(r.Context(), item); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.shopping.ActiveList())
}

// UpdateShoppingItem replaces an item by id
func (h *APIHandlers) UpdateShoppingItem(w http.ResponseWriter, r *http.Request) {
	var item shopping.Item
	if err := decodeJSON(r, &item); err != nil {
		h.respondError(w, r, err)
		return
	}
	item.ID = chi.URLParam(r, "id")

	if err := h.shopping.UpdateItem(r.Context(), item); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveShoppingItem deletes an item
func (h *APIHandlers) RemoveShoppingItem(w http.ResponseWriter, r *http.Request) {
	if err := h.shopping.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleShoppingItem flips the checked state
func (h *APIHandlers) ToggleShoppingItem(w http.ResponseWriter, r *http.Request) {
	if err := h.shopping.ToggleItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearCheckedItems removes every checked item
func (h *APIHandlers) ClearCheckedItems(w http.ResponseWriter, r *http.Request) {
	if err := h.shopping.ClearCheckedItems(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ShoppingCategories returns the per-category view of the list
func (h *APIHandlers) ShoppingCategories(w http.ResponseWriter, r *http.Request) {
	list := h.shopping.ActiveList()
	if list == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"categories": []shopping.CategoryGroup{}})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": list.ItemsByCategory(),
		"completion": list.CompletionPercentage(),
	})
}

// FindDuplicates lists groups of same-name items
func (h *APIHandlers) FindDuplicates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"duplicates": h.shopping.FindDuplicateItems()})
}

// MergeDuplicates collapses duplicate items
func (h *APIHandlers) MergeDuplicates(w http.ResponseWriter, r *http.Request) {
	if err := h.shopping.MergeDuplicateItems(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.shopping.ActiveList())
}

// SortByCategory reorders the list items into category groups
func (h *APIHandlers) SortByCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.shopping.SortItemsByCategory(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.shopping.ActiveList())
}

// SuggestedShoppingItems proposes staples missing from the list
func (h *APIHandlers) SuggestedShoppingItems(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.respondError(w, r, apperrors.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": h.shopping.SuggestedItems(limit)})
}

// ShareShoppingList renders the list as shareable text. The "compact"
// format suits chat sharing; the default groups by category.
func (h *APIHandlers) ShareShoppingList(w http.ResponseWriter, r *http.Request) {
	list := h.shopping.ActiveList()
	if list == nil {
		h.respondError(w, r, apperrors.NewAppError(apperrors.CodeNotFound, "No active shopping list", ""))
		return
	}

	var text string
	if r.URL.Query().Get("format") == "compact" {
		text = format.ShoppingListCompact(list)
	} else {
		text = format.ShoppingListText(list)
	}
	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}
