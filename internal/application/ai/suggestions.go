package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// SuggestionLimit caps the number of returned suggestions
const SuggestionLimit = 5

// commonIngredients is the built-in fallback vocabulary. Suggestions
// must keep working without a credential or network, so this list is a
// hard requirement, not an optimization.
var commonIngredients = []string{
	"tomate", "oignon", "ail", "pomme de terre", "carotte",
	"courgette", "aubergine", "poivron", "champignon", "epinards",
	"poulet", "boeuf", "porc", "saumon", "thon",
	"oeuf", "lait", "beurre", "creme fraiche", "fromage",
	"yaourt", "riz", "pates", "farine", "pain",
	"huile d'olive", "sel", "poivre", "basilic", "persil",
	"thym", "citron", "pomme", "banane", "orange",
}

// SuggestIngredients completes a partial ingredient name. The model is
// consulted when configured; any failure falls back to a
// case-insensitive prefix match over the built-in list. The fallback
// path never blocks on network availability.
func (s *Service) SuggestIngredients(ctx context.Context, partial string) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []string{}, nil
	}

	if s.client.IsConfigured() {
		names, err := s.client.SuggestIngredients(ctx, partial, SuggestionLimit)
		if err == nil {
			return names, nil
		}
		s.logger.Warn("Model suggestions unavailable, using fallback",
			zap.Error(err),
			zap.String("partial", partial),
		)
	}

	return fallbackSuggestions(partial), nil
}

// fallbackSuggestions runs the static prefix match
func fallbackSuggestions(partial string) []string {
	prefix := strings.ToLower(partial)
	matches := make([]string, 0, SuggestionLimit)

	for _, name := range commonIngredients {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			matches = append(matches, name)
			if len(matches) == SuggestionLimit {
				break
			}
		}
	}

	return matches
}
