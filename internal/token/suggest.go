package token

import "github.com/agext/levenshtein"

// suggestibleWords is every reserved word and multi-word-operator component
// eligible for a "did you mean" suggestion, built once from WORD_TOKENS and
// BareWordGuard so it never drifts from the lexical vocabulary. Shared by
// the lexer (bare multi-word-operator words) and the parser (unexpected
// tokens), since both sit on top of this package and neither can import the
// other.
var suggestibleWords = func() []string {
	out := make([]string, 0, len(WORD_TOKENS)+len(BareWordGuard))
	for word := range WORD_TOKENS {
		out = append(out, word)
	}
	for word := range BareWordGuard {
		out = append(out, word)
	}
	return out
}()

// SuggestThreshold is the maximum Levenshtein distance a lexeme may be from
// a reserved word and still be offered as a suggestion.
const SuggestThreshold = 2

// SuggestKeyword returns the closest reserved word or multi-word-operator
// component to lexeme by Levenshtein distance, or "" if lexeme is empty or
// nothing is close enough to be a plausible typo.
func SuggestKeyword(lexeme string) string {
	if lexeme == "" {
		return ""
	}
	best := ""
	bestDist := SuggestThreshold + 1
	for _, word := range suggestibleWords {
		if word == lexeme {
			continue
		}
		d := levenshtein.Distance(lexeme, word, nil)
		if d < bestDist {
			bestDist = d
			best = word
		}
	}
	if bestDist > SuggestThreshold {
		return ""
	}
	return best
}
