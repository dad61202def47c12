// Package classifier scores free text against per-category keyword lists.
// It is a deterministic heuristic, not a learned model: a pure function of
// the input text and the dictionary built from the live category list.
package classifier

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// Suggestion is the classification result. Category and CategoryID are
// nil when no keyword matched at all.
type Suggestion struct {
	Category    *string
	CategoryID  *int64
	Confidence  float64
	Explanation string
}

// Classifier holds the immutable keyword dictionary. It is safe for
// concurrent use.
type Classifier struct {
	keywords map[string][]string
}

// New builds a classifier over the given dictionary; nil falls back to
// DefaultKeywords.
func New(keywords map[string][]string) *Classifier {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	return &Classifier{keywords: keywords}
}

// Suggest scores the concatenated, lower-cased title and description
// against every category. For each category the score is the sum of
// whole-word match counts of its keywords. The strictly greatest score
// wins; on ties the candidate evaluated first is kept, and candidates
// are evaluated in ascending category-id order so the tie-break is
// deterministic regardless of the store's iteration order.
func (c *Classifier) Suggest(title, description string, categories []domain.Category) Suggestion {
	text := strings.TrimSpace(strings.ToLower(title + " " + description))
	if text == "" {
		return Suggestion{Explanation: "texto vacío"}
	}

	ordered := make([]domain.Category, len(categories))
	copy(ordered, categories)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var best *domain.Category
	bestScore := 0
	for i := range ordered {
		cat := ordered[i]
		score := 0
		for _, kw := range c.keywordsFor(cat.Name) {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
			if err != nil {
				continue
			}
			score += len(re.FindAllStringIndex(text, -1))
		}
		if score > bestScore {
			best = &ordered[i]
			bestScore = score
		}
	}

	if best == nil || bestScore == 0 {
		return Suggestion{
			Confidence:  0,
			Explanation: "No se encontraron coincidencias claras. Seleccione manualmente.",
		}
	}

	totalKws := len(c.keywordsFor(best.Name))
	if totalKws == 0 {
		totalKws = 1
	}
	confidence := math.Min(0.99, math.Round(float64(bestScore)/float64(totalKws)*100)/100)

	name := best.Name
	id := best.ID
	return Suggestion{
		Category:    &name,
		CategoryID:  &id,
		Confidence:  confidence,
		Explanation: fmt.Sprintf("Se encontraron %d coincidencias con palabras clave de %q.", bestScore, name),
	}
}

func (c *Classifier) keywordsFor(categoryName string) []string {
	if kws, ok := c.keywords[categoryName]; ok {
		return kws
	}
	return []string{strings.ToLower(categoryName)}
}
