// Package server provides the HTTP server over the chi router
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/kookt/v1/internal/infrastructure/config"
	"github.com/kookt/v1/internal/infrastructure/http/handlers"
	"github.com/kookt/v1/internal/infrastructure/http/middleware"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *chi.Mux
	server   *http.Server
	handlers *handlers.APIHandlers
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, logger *zap.Logger, apiHandlers *handlers.APIHandlers) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		handlers: apiHandlers,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures the REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	h := s.handlers

	r.Get("/health", h.HealthCheck)

	// Generation pipeline
	r.Route("/ai", func(r chi.Router) {
		r.Post("/generate", h.GenerateRecipe)
		r.Post("/regenerate", h.RegenerateLast)
		r.Post("/improve/{id}", h.ImproveRecipe)
		r.Get("/suggestions", h.SuggestIngredients)
	})

	// Recipe collection
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Post("/", h.SaveRecipe)
		r.Get("/favorites", h.ListFavorites)
		r.Get("/{id}", h.GetRecipe)
		r.Put("/{id}", h.UpdateRecipe)
		r.Delete("/{id}", h.DeleteRecipe)
		r.Post("/{id}/favorite", h.ToggleFavorite)
		r.Post("/{id}/rating", h.RateRecipe)
		r.Put("/{id}/notes", h.SetRecipeNotes)
		r.Post("/{id}/cooked", h.MarkRecipeCooked)
		r.Get("/{id}/share", h.ShareRecipe)
	})

	// Shopping list
	r.Route("/shopping", func(r chi.Router) {
		r.Get("/", h.GetShoppingList)
		r.Post("/", h.CreateShoppingList)
		r.Post("/from-recipe/{id}", h.GenerateFromRecipe)
		r.Post("/from-recipes", h.GenerateFromRecipes)
		r.Post("/items", h.AddShoppingItem)
		r.Put("/items/{id}", h.UpdateShoppingItem)
		r.Delete("/items/{id}", h.RemoveShoppingItem)
		r.Post("/items/{id}/toggle", h.ToggleShoppingItem)
		r.Post("/clear-checked", h.ClearCheckedItems)
		r.Get("/categories", h.ShoppingCategories)
		r.Get("/duplicates", h.FindDuplicates)
		r.Post("/merge-duplicates", h.MergeDuplicates)
		r.Post("/sort", h.SortByCategory)
		r.Get("/suggested", h.SuggestedShoppingItems)
		r.Get("/share", h.ShareShoppingList)
	})

	// Pantry
	r.Route("/ingredients", func(r chi.Router) {
		r.Get("/", h.ListIngredients)
		r.Post("/", h.AddIngredient)
		r.Get("/names", h.AvailableIngredientNames)
		r.Post("/import", h.ImportIngredientsFromText)
		r.Get("/export", h.ExportIngredientsText)
		r.Delete("/{id}", h.RemoveIngredient)
		r.Put("/{id}/quantity", h.UpdateIngredientQuantity)
		r.Post("/{id}/toggle", h.ToggleIngredientAvailability)
	})

	// Profile and data
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Post("/onboarding", h.CompleteOnboarding)
		r.Put("/preferences", h.UpdatePreferences)
		r.Post("/stats/reset", h.ResetStats)
		r.Get("/recent-ingredients", h.RecentIngredients)
		r.Post("/recent-ingredients", h.AddRecentIngredients)
		r.Post("/logout", h.Logout)
	})

	r.Get("/export", h.ExportData)
	r.Post("/import", h.ImportData)
}

// Handler exposes the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
