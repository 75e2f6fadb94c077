package invoices

import (
	"math"
	"strings"

	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
)

// wordOverlapThreshold is the minimum word-overlap confidence for a
// partial match to count.
const wordOverlapThreshold = 0.3

// Match links an OCR line description to a catalog ingredient.
// IngredientID is nil when nothing scored above the threshold.
type Match struct {
	Description    string  `json:"description"`
	IngredientID   *string `json:"ingredient_id"`
	IngredientName *string `json:"ingredient_name"`
	Confidence     float64 `json:"confidence"`
}

// MatchIngredients scores each description against the ingredient
// catalog: exact name match wins outright, then substring containment,
// then word overlap. Confidence is rounded to two decimals.
func MatchIngredients(descriptions []string, ingredients []domain.Ingredient) []Match {
	matches := make([]Match, len(descriptions))
	for i, description := range descriptions {
		matches[i] = matchOne(description, ingredients)
	}
	return matches
}

func matchOne(description string, ingredients []domain.Ingredient) Match {
	descLower := strings.ToLower(strings.TrimSpace(description))
	match := Match{Description: description}

	best := 0.0
	for _, ing := range ingredients {
		ingLower := strings.ToLower(ing.Name)

		if descLower == ingLower {
			id, name := ing.ID, ing.Name
			return Match{Description: description, IngredientID: &id, IngredientName: &name, Confidence: 1.0}
		}

		if strings.Contains(descLower, ingLower) || strings.Contains(ingLower, descLower) {
			confidence := float64(min(len(descLower), len(ingLower))) / float64(max(len(descLower), len(ingLower)))
			if confidence > best {
				best = confidence
				id, name := ing.ID, ing.Name
				match.IngredientID = &id
				match.IngredientName = &name
				match.Confidence = round2(confidence)
			}
		}

		if confidence := wordOverlap(descLower, ingLower); confidence > wordOverlapThreshold && confidence > best {
			best = confidence
			id, name := ing.ID, ing.Name
			match.IngredientID = &id
			match.IngredientName = &name
			match.Confidence = round2(confidence)
		}
	}

	return match
}

func wordOverlap(a, b string) float64 {
	aWords := strings.Fields(a)
	bWords := strings.Fields(b)
	if len(aWords) == 0 || len(bWords) == 0 {
		return 0
	}

	matching := 0
	for _, w := range aWords {
		for _, bw := range bWords {
			if strings.Contains(bw, w) || strings.Contains(w, bw) {
				matching++
				break
			}
		}
	}

	return float64(matching) / float64(max(len(aWords), len(bWords)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
