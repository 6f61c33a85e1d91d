// Package handlers implements the JSON REST API handlers
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/ports/inbound"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// APIHandlers bundles the services behind the REST surface
type APIHandlers struct {
	generation  inbound.GenerationService
	recipes     inbound.RecipeService
	shopping    inbound.ShoppingService
	ingredients inbound.IngredientService
	users       inbound.UserService
	backup      BackupService
	logger      *zap.Logger
}

// BackupService is the export/import surface of the storage layer
type BackupService interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) error
}

// NewAPIHandlers creates the handler set
func NewAPIHandlers(
	generation inbound.GenerationService,
	recipes inbound.RecipeService,
	shopping inbound.ShoppingService,
	ingredients inbound.IngredientService,
	users inbound.UserService,
	backup BackupService,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		generation:  generation,
		recipes:     recipes,
		shopping:    shopping,
		ingredients: ingredients,
		users:       users,
		backup:      backup,
		logger:      logger.Named("api-handlers"),
	}
}

// HealthCheck reports service liveness
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps application errors onto HTTP statuses and the
// shared error envelope.
func (h *APIHandlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.Wrap(err, "request failed")
	requestID := chimiddleware.GetReqID(r.Context())

	if appErr.StatusCode() >= 500 {
		h.logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}

	respondJSON(w, appErr.StatusCode(), apperrors.ToErrorResponse(appErr, requestID))
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewBadRequestError("invalid JSON request body")
	}
	return nil
}
