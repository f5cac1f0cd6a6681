// Package classify assigns feed items to portal categories by keyword.
package classify

import (
	"strings"
	"unicode"
)

// Keywords maps a portal category to words that suggest it. The lowercased
// category name always counts as a keyword.
type Keywords map[string][]string

// Default covers the stock portal categories.
var Default = Keywords{
	"Politics": {
		"election", "parliament", "senate", "minister", "president", "government",
		"vote", "policy", "campaign", "congress", "lawmakers", "party",
	},
	"Science": {
		"research", "scientists", "study", "physics", "chemistry", "biology",
		"discovery", "experiment", "laboratory", "genome",
	},
	"Health": {
		"hospital", "disease", "vaccine", "medical", "doctor", "patients",
		"virus", "mental health", "cancer", "treatment", "nutrition",
	},
	"Sports": {
		"football", "cricket", "tennis", "olympics", "match", "tournament",
		"league", "championship", "goal", "coach", "world cup",
	},
	"World": {
		"united nations", "foreign", "border", "war", "refugee", "embassy", "summit", "treaty",
	},
	"Business": {
		"market", "stocks", "economy", "inflation", "earnings", "startup",
		"investors", "bank", "revenue", "shares", "merger",
	},
	"Tech": {
		"software", "ai", "artificial intelligence", "smartphone", "chip",
		"internet", "app", "cyber", "robot", "computing", "developer",
	},
	"Travel": {"tourism", "airline", "flight", "destination", "hotel", "visa", "passport"},
	"Art":    {"painting", "museum", "gallery", "exhibition", "sculpture", "artist"},
	"Environment": {
		"climate", "emissions", "pollution", "wildlife", "renewable", "forest",
		"carbon", "global warming", "biodiversity",
	},
	"Education": {"school", "university", "students", "teachers", "exam", "curriculum"},
	"Food":      {"recipe", "restaurant", "chef", "cuisine", "dish", "cooking"},
	"Fashion":   {"designer", "runway", "clothing", "fashion week", "couture"},
	"Automotive": {
		"car", "electric vehicle", "ev", "automaker", "engine", "motor", "tesla",
	},
	"Space": {
		"nasa", "rocket", "orbit", "satellite", "mars", "moon", "astronaut", "telescope", "isro",
	},
	"Culture":   {"festival", "film", "music", "heritage", "tradition", "literature"},
	"Lifestyle": {"wellness", "fitness", "home", "relationships", "hobby"},
	"Gaming":    {"video game", "console", "esports", "playstation", "xbox", "nintendo", "gamers"},
}

// Func returns a classifier over categories, in order of precedence.
// Items that match nothing get fallback.
func (k Keywords) Func(categories []string, fallback string) func(title, description string) string {
	return func(title, description string) string {
		if c, ok := k.Classify(categories, title, description); ok {
			return c
		}
		return fallback
	}
}

// Classify picks the best scoring category. Title keywords are weighted 2x;
// ties go to the earlier category. ok is false when nothing matched.
func (k Keywords) Classify(categories []string, title, description string) (string, bool) {
	titleTokens := tokenize(title)
	descTokens := tokenize(description)
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	best, bestScore := "", 0
	for _, cat := range categories {
		score := 0
		for _, kw := range append([]string{strings.ToLower(cat)}, k[cat]...) {
			if !strings.Contains(kw, " ") {
				score += 2*count(titleTokens, kw) + count(descTokens, kw)
				continue
			}
			if strings.Contains(titleLower, kw) {
				score += 2
			}
			if strings.Contains(descLower, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	return best, bestScore > 0
}

// count matches whole tokens, or prefixes for longer keywords ("election"
// matches "elections").
func count(tokens []string, kw string) int {
	n := 0
	for _, t := range tokens {
		if t == kw || (len(kw) > 3 && strings.HasPrefix(t, kw)) {
			n++
		}
	}
	return n
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
