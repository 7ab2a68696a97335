package categorization

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// fuzzyMaxDistance is the largest Levenshtein distance still accepted as a
// payee typo ("swigy" -> "swiggy").
const fuzzyMaxDistance = 2

// minFuzzyKeywordLen guards short keywords: distance 2 against a 3-letter
// keyword matches almost anything.
const minFuzzyKeywordLen = 4

// FuzzyCategory is the fallback when no keyword hits exactly. It compares
// each payee token against every rule keyword by Levenshtein distance and
// returns the owning category of the closest keyword within bounds. Equal
// distances resolve to the earlier-declared rule.
func FuzzyCategory(rules []CategoryRule, payee string) (string, bool) {
	tokens := strings.Fields(strings.ToLower(payee))
	if len(tokens) == 0 {
		return "", false
	}

	bestDist := fuzzyMaxDistance + 1
	bestIdx := -1

	for i, rule := range rules {
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if len(kw) < minFuzzyKeywordLen {
				continue
			}
			for _, token := range tokens {
				dist := fuzzy.LevenshteinDistance(token, kw)
				if dist < bestDist {
					bestDist, bestIdx = dist, i
				}
			}
		}
	}

	if bestIdx < 0 {
		return "", false
	}
	return rules[bestIdx].Name, true
}
