// Package outbound defines the interfaces the application depends on
package outbound

import (
	"context"
	"errors"

	"github.com/kookt/v1/internal/domain/recipe"
)

// ErrKeyNotFound is returned by KeyValueStore.Get on a missing key
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the persistence adapter. One fixed key per logical
// collection; values are opaque JSON blobs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// AIClient is the external model endpoint. Implementations perform a
// single attempt per call with no internal retry; a missing credential
// must short-circuit to a not-configured error before any network
// activity.
type AIClient interface {
	GenerateRecipe(ctx context.Context, req *recipe.GenerationRequest) (*recipe.Recipe, error)
	ImproveRecipe(ctx context.Context, existing *recipe.Recipe, feedback string) (*recipe.Recipe, error)
	SuggestIngredients(ctx context.Context, partial string, limit int) ([]string, error)
	IsConfigured() bool
}
