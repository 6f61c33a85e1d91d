// Package user implements the profile state manager
package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kookt/v1/internal/domain/user"
	"github.com/kookt/v1/internal/domain/validation"
	"github.com/kookt/v1/internal/infrastructure/storage"
	apperrors "github.com/kookt/v1/pkg/errors"
)

// Service manages the user profile, preferences, usage stats and the
// recent-ingredients history.
type Service struct {
	store  *storage.Store
	logger *zap.Logger

	mu      sync.RWMutex
	profile *user.Profile
	recent  []string
}

// NewService creates the user state manager
func NewService(store *storage.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("user-service"),
	}
}

// Load reads the profile and history, replacing in-memory state
func (s *Service) Load(ctx context.Context) error {
	profile, err := s.store.LoadProfile(ctx)
	if err != nil {
		s.logger.Error("Failed to load profile", zap.Error(err))
		return err
	}
	recent, err := s.store.RecentIngredients(ctx)
	if err != nil {
		s.logger.Error("Failed to load recent ingredients", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.profile = profile
	s.recent = recent
	s.mu.Unlock()
	return nil
}

// Profile returns a copy of the current profile
func (s *Service) Profile() (*user.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return nil, apperrors.NewAppError(apperrors.CodeNotFound,
			"Profile not found", "onboarding has not been completed")
	}
	p := *s.profile
	return &p, nil
}

// CompleteOnboarding creates the profile once. A second call updates
// preferences on the existing profile rather than recreating it.
func (s *Service) CompleteOnboarding(ctx context.Context, prefs user.Preferences) (*user.Profile, error) {
	if err := validation.ValidatePreferences(&prefs); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.profile == nil {
		s.profile = &user.Profile{
			ID:                  uuid.New().String(),
			Preferences:         prefs,
			OnboardingCompleted: true,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		s.logger.Info("Profile created", zap.String("profile_id", s.profile.ID))
	} else {
		s.profile.Preferences = prefs
		s.profile.OnboardingCompleted = true
		s.profile.UpdatedAt = now
	}

	if err := s.persistProfile(ctx); err != nil {
		return nil, err
	}
	if err := s.store.SetOnboardingCompleted(ctx, true); err != nil {
		return nil, err
	}

	p := *s.profile
	return &p, nil
}

// UpdatePreferences replaces the stored preferences
func (s *Service) UpdatePreferences(ctx context.Context, prefs user.Preferences) error {
	if err := validation.ValidatePreferences(&prefs); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return apperrors.NewAppError(apperrors.CodeNotFound,
			"Profile not found", "onboarding has not been completed")
	}
	s.profile.Preferences = prefs
	s.profile.UpdatedAt = time.Now()
	return s.persistProfile(ctx)
}

// RecordGenerated bumps the generated-recipes counter
func (s *Service) RecordGenerated(ctx context.Context) error {
	return s.updateStats(ctx, func(stats *user.UsageStats) {
		stats.RecipesGenerated++
	})
}

// RecordCooked bumps the cooked counter and accumulates cooking time
func (s *Service) RecordCooked(ctx context.Context, minutes int) error {
	return s.updateStats(ctx, func(stats *user.UsageStats) {
		stats.RecipesCooked++
		if minutes > 0 {
			stats.TotalCookingTime += minutes
		}
	})
}

// RecordFavorite bumps the favorites counter. Counters only ever
// grow; ResetStats is the single way down, so unfavoriting is a no-op.
func (s *Service) RecordFavorite(ctx context.Context, favorited bool) error {
	if !favorited {
		return nil
	}
	return s.updateStats(ctx, func(stats *user.UsageStats) {
		stats.FavoriteRecipes++
	})
}

// RecordIngredientsSaved bumps the saved-ingredients counter
func (s *Service) RecordIngredientsSaved(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}
	return s.updateStats(ctx, func(stats *user.UsageStats) {
		stats.IngredientsSaved += count
	})
}

// ResetStats zeroes every counter. The only sanctioned way counters
// decrease besides logout.
func (s *Service) ResetStats(ctx context.Context) error {
	return s.updateStats(ctx, func(stats *user.UsageStats) {
		*stats = user.UsageStats{}
	})
}

// RecentIngredients returns the history, most recent first
func (s *Service) RecentIngredients() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.recent))
	copy(out, s.recent)
	return out
}

// AddRecentIngredients records ingredient names into the capped,
// deduplicated history.
func (s *Service) AddRecentIngredients(ctx context.Context, names ...string) error {
	history, err := s.store.AddRecentIngredients(ctx, names...)
	if err != nil {
		s.logger.Error("Failed to update recent ingredients", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.recent = history
	s.mu.Unlock()
	return nil
}

// Logout wipes every stored collection and the in-memory state in one
// destructive operation.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearAll(ctx); err != nil {
		s.logger.Error("Failed to clear storage on logout", zap.Error(err))
		return err
	}

	s.profile = nil
	s.recent = nil
	s.logger.Info("User logged out, storage cleared")
	return nil
}

func (s *Service) updateStats(ctx context.Context, apply func(*user.UsageStats)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return apperrors.NewAppError(apperrors.CodeNotFound,
			"Profile not found", "onboarding has not been completed")
	}
	apply(&s.profile.Stats)
	s.profile.UpdatedAt = time.Now()
	return s.persistProfile(ctx)
}

// persistProfile writes the profile through. Callers hold the lock.
func (s *Service) persistProfile(ctx context.Context) error {
	if err := s.store.SaveProfile(ctx, s.profile); err != nil {
		s.logger.Error("Failed to persist profile", zap.Error(err))
		return err
	}
	return nil
}
